// Package ratios exposes the ratio engine over HTTP: a stateless compute
// endpoint and the per-client dashboard built from stored records.
package ratios

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"advisory_platform/pkg/core/calc"
	"advisory_platform/pkg/core/records"
	"advisory_platform/pkg/core/store"
)

// Handler holds dependencies for ratio endpoints.
type Handler struct {
	records *store.RecordsRepo
}

// NewHandler creates a ratios handler.
func NewHandler(recordsRepo *store.RecordsRepo) *Handler {
	return &Handler{records: recordsRepo}
}

// HandleCompute computes ratios for figures supplied in the request body.
// Stateless; used by the entry form for live preview before saving.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
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

	var in calc.RatioInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(calc.CalculateRatios(in))
}

// MonthView is one dashboard row: the period, its ratios and entry status.
type MonthView struct {
	Month  int                  `json:"month"`
	Period string               `json:"period"`
	Status records.RecordStatus `json:"status"`
	Ratios calc.RatioResult     `json:"ratios"`
}

// DashboardResponse is a client's fiscal year at a glance.
type DashboardResponse struct {
	ClientID      string           `json:"client_id"`
	FiscalYear    int              `json:"fiscal_year"`
	Months        []MonthView      `json:"months"`
	YearToDate    calc.RatioResult `json:"year_to_date"`
	RevenueGrowth []float64        `json:"revenue_growth"` // month-over-month
	BFRTrend      []float64        `json:"bfr_trend"`      // 3-month rolling average
}

// HandleDashboard assembles the dashboard for ?client_id=&year=.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

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

	resp := DashboardResponse{ClientID: clientID, FiscalYear: year}

	var inputs []calc.RatioInput
	var bfrSeries []float64
	prevCA := 0.0
	for _, rec := range recs {
		in := rec.RatioInput()
		res := calc.CalculateRatios(in)

		resp.Months = append(resp.Months, MonthView{
			Month:  rec.Month,
			Period: rec.PeriodLabel(),
			Status: rec.Status,
			Ratios: res,
		})

		inputs = append(inputs, in)
		bfrSeries = append(bfrSeries, res.BFRDays)
		resp.RevenueGrowth = append(resp.RevenueGrowth, calc.GrowthRate(rec.CA, prevCA))
		prevCA = rec.CA
	}

	resp.YearToDate = calc.CalculateRatios(calc.YearToDate(inputs))
	resp.BFRTrend = calc.RollingAverage(bfrSeries, 3)

	json.NewEncoder(w).Encode(resp)
}
