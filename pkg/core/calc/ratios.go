// Package calc provides deterministic financial calculations for client
// dashboards: the monthly ratio engine and trend helpers built on top of it.
package calc

// =============================================================================
// MONTHLY RATIO ENGINE
// =============================================================================

// RatioInput is one accounting period's figures for one client.
// Fields are plain numbers, never optional: callers default missing source
// data to 0 before calling, and the engine treats 0 and "absent" identically.
type RatioInput struct {
	CA                 float64 `json:"ca"`                  // Revenue total (chiffre d'affaires)
	MarginTotal        float64 `json:"margin_total"`        // Gross margin
	Salaries           float64 `json:"salaries"`            // Payroll cost incl. employer burden
	HoursWorked        float64 `json:"hours_worked"`        // Total staff hours
	ReceivablesClients float64 `json:"receivables_clients"` // Customer receivables at period end
	DebtsSuppliers     float64 `json:"debts_suppliers"`     // Supplier payables at period end
	StockTotal         float64 `json:"stock_total"`         // Inventory value at period end
}

// RatioResult pairs each ratio with an inactive flag. An inactive ratio has
// no meaningful source data behind it: its value is 0 and the dashboard
// renders "n/a" instead of the number. An active ratio may still be 0.
type RatioResult struct {
	DSO                 float64 `json:"dso"`          // days
	DSOInactive         bool    `json:"dso_inactive"`
	DPO                 float64 `json:"dpo"`          // days
	DPOInactive         bool    `json:"dpo_inactive"`
	DIO                 float64 `json:"dio"`          // days
	DIOInactive         bool    `json:"dio_inactive"`
	BFRDays             float64 `json:"bfr_days"`     // days, may be negative
	BFRDaysInactive     bool    `json:"bfr_days_inactive"`
	SalaryRatio         float64 `json:"salary_ratio"` // percent of revenue
	SalaryRatioInactive bool    `json:"salary_ratio_inactive"`
	ProductivityPerHour float64 `json:"productivity_per_hour"` // currency/hour
	ProductivityInactive bool   `json:"productivity_inactive"`
	CostPerHour         float64 `json:"cost_per_hour"` // currency/hour
	CostPerHourInactive bool    `json:"cost_per_hour_inactive"`
}

// daysPerMonth is a fixed 30-day normalization. Deliberately not the actual
// calendar length, so ratios stay comparable across months.
const daysPerMonth = 30.0

// CalculateRatios derives the dashboard ratios from one period snapshot.
// Total function: no error path, and every division is gated by a strict
// positivity check on its denominator, so finite inputs can never produce
// NaN or Inf.
func CalculateRatios(in RatioInput) RatioResult {
	// Achats (cost of sales) is not tracked directly; it is inferred as
	// revenue minus margin, clamped at zero so a margin reported above
	// revenue cannot flip the sign of dependent ratios.
	achats := in.CA - in.MarginTotal
	if achats < 0 {
		achats = 0
	}

	// Strictly positive, not merely non-zero: these quantities are never
	// legitimately negative, so negative input counts as absent data.
	hasCA := in.CA > 0
	hasAchats := achats > 0
	hasSalaries := in.Salaries > 0
	hasHours := in.HoursWorked > 0
	hasReceivables := in.ReceivablesClients > 0
	hasDebtsSuppliers := in.DebtsSuppliers > 0
	hasStock := in.StockTotal > 0

	var res RatioResult

	if hasCA {
		res.DSO = in.ReceivablesClients / in.CA * daysPerMonth
		res.SalaryRatio = in.Salaries / in.CA * 100
	}
	res.DSOInactive = !(hasCA && hasReceivables)
	res.SalaryRatioInactive = !(hasCA && hasSalaries)

	// DPO and DIO share the achats denominator; DSO uses revenue.
	if hasAchats {
		res.DPO = in.DebtsSuppliers / achats * daysPerMonth
		res.DIO = in.StockTotal / achats * daysPerMonth
	}
	res.DPOInactive = !(hasAchats && hasDebtsSuppliers)
	res.DIOInactive = !(hasAchats && hasStock)

	// BFR in days is always the raw sum of its constituents. An inactive
	// constituent is 0 and contributes nothing; the flag trips only when
	// all three are inactive.
	res.BFRDays = res.DSO + res.DIO - res.DPO
	res.BFRDaysInactive = res.DSOInactive && res.DPOInactive && res.DIOInactive

	if hasHours {
		res.ProductivityPerHour = in.CA / in.HoursWorked
		res.CostPerHour = in.Salaries / in.HoursWorked
	}
	res.ProductivityInactive = !(hasCA && hasHours)
	res.CostPerHourInactive = !(hasSalaries && hasHours)

	return res
}
