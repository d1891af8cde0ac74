// Package records exposes monthly figure entry and the consultant
// validation workflow.
package records

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	core "advisory_platform/pkg/core/records"
	"advisory_platform/pkg/core/store"
)

// Handler holds dependencies for record endpoints.
type Handler struct {
	records *store.RecordsRepo
}

// NewHandler creates a records handler.
func NewHandler(recordsRepo *store.RecordsRepo) *Handler {
	return &Handler{records: recordsRepo}
}

// HandleRecords serves GET (year listing) and POST (upsert one month).
func (h *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
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
		h.handleUpsert(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if clientID == "" || err != nil {
		http.Error(w, "client_id and year are required", http.StatusBadRequest)
		return
	}

	recs, err := h.records.GetYear(r.Context(), clientID, year)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load records: %v", err), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(recs)
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var rec core.MonthlyRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.records.Upsert(r.Context(), &rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Printf("[RECORDS] Saved %s for client %s\n", rec.PeriodLabel(), rec.ClientID)
	json.NewEncoder(w).Encode(map[string]string{"status": "saved", "period": rec.PeriodLabel()})
}

// ValidateRequest flips one month to validated.
type ValidateRequest struct {
	ClientID     string `json:"client_id"`
	FiscalYear   int    `json:"fiscal_year"`
	Month        int    `json:"month"`
	ConsultantID string `json:"consultant_id"`
}

// HandleValidate marks a month as reviewed by the consultant.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
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

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ConsultantID == "" {
		http.Error(w, "consultant_id is required", http.StatusBadRequest)
		return
	}

	if err := h.records.MarkValidated(r.Context(), req.ClientID, req.FiscalYear, req.Month, req.ConsultantID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "validated"})
}
