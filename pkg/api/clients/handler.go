// Package clients exposes the firm's client roster.
package clients

import (
	"encoding/json"
	"fmt"
	"net/http"

	core "advisory_platform/pkg/core/records"
	"advisory_platform/pkg/core/store"

	"github.com/google/uuid"
)

// Handler holds dependencies for client endpoints.
type Handler struct {
	clients *store.ClientsRepo
}

// NewHandler creates a clients handler.
func NewHandler(clientsRepo *store.ClientsRepo) *Handler {
	return &Handler{clients: clientsRepo}
}

// HandleClients serves GET (portfolio listing) and POST (create/update).
func (h *Handler) HandleClients(w http.ResponseWriter, r *http.Request) {
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
		h.handleSave(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	consultantID := r.URL.Query().Get("consultant_id")
	if consultantID == "" {
		http.Error(w, "consultant_id is required", http.StatusBadRequest)
		return
	}

	list, err := h.clients.ListByConsultant(r.Context(), consultantID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load clients: %v", err), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var c core.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	if err := h.clients.Save(r.Context(), &c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(c)
}
