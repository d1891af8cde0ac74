// Package notes exposes the CRM thread between consultant and client.
package notes

import (
	"encoding/json"
	"fmt"
	"net/http"

	core "advisory_platform/pkg/core/records"
	"advisory_platform/pkg/core/store"
)

// Handler holds dependencies for note endpoints.
type Handler struct {
	notes *store.NotesRepo
}

// NewHandler creates a notes handler.
func NewHandler(notesRepo *store.NotesRepo) *Handler {
	return &Handler{notes: notesRepo}
}

// AddRequest appends one note to a client thread.
type AddRequest struct {
	ClientID string    `json:"client_id"`
	Author   core.Role `json:"author"`
	Body     string    `json:"body"`
}

// HandleNotes serves GET (thread) and POST (append).
func (h *Handler) HandleNotes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	switch r.Method {
	case "OPTIONS":
		w.WriteHeader(http.StatusOK)
	case "GET":
		h.handleList(w, r)
	case "POST":
		h.handleAdd(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		http.Error(w, "client_id is required", http.StatusBadRequest)
		return
	}

	thread, err := h.notes.ListByClient(r.Context(), clientID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load notes: %v", err), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(thread)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Author != core.RoleConsultant && req.Author != core.RoleClient {
		http.Error(w, "author must be consultant or client", http.StatusBadRequest)
		return
	}

	note, err := h.notes.Add(r.Context(), req.ClientID, req.Author, req.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(note)
}

// ReadRequest marks the other party's notes as read.
type ReadRequest struct {
	ClientID string    `json:"client_id"`
	Reader   core.Role `json:"reader"`
}

// HandleMarkRead stamps unread notes for the reader.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.notes.MarkRead(r.Context(), req.ClientID, req.Reader); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "read"})
}
