package calc

import "math"

// =============================================================================
// TREND & AGGREGATION HELPERS
// Dashboard-level supplements on top of the monthly ratio engine.
// =============================================================================

// GrowthRate returns the relative change from prior to current.
// A zero prior yields 0 rather than a blow-up.
func GrowthRate(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return (current - prior) / math.Abs(prior)
}

// CAGR computes the compound annual growth rate over the given span.
func CAGR(endingValue, beginningValue float64, years int) float64 {
	if beginningValue == 0 || years == 0 {
		return 0
	}
	return math.Pow(endingValue/beginningValue, 1.0/float64(years)) - 1
}

// YearToDate folds monthly snapshots into a single cumulative input.
// Flow figures (revenue, margin, payroll, hours) are summed; position
// figures (receivables, payables, stock) keep the latest month's value,
// since they are period-end balances, not flows.
func YearToDate(months []RatioInput) RatioInput {
	var ytd RatioInput
	for _, m := range months {
		ytd.CA += m.CA
		ytd.MarginTotal += m.MarginTotal
		ytd.Salaries += m.Salaries
		ytd.HoursWorked += m.HoursWorked
		ytd.ReceivablesClients = m.ReceivablesClients
		ytd.DebtsSuppliers = m.DebtsSuppliers
		ytd.StockTotal = m.StockTotal
	}
	return ytd
}

// RollingAverage smooths a ratio series with a trailing window. Entries
// before the window fills average whatever is available so the output
// always has the same length as the input.
func RollingAverage(series []float64, window int) []float64 {
	if window <= 1 || len(series) == 0 {
		out := make([]float64, len(series))
		copy(out, series)
		return out
	}

	out := make([]float64, len(series))
	sum := 0.0
	for i, v := range series {
		sum += v
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= series[i-window]
		}
		out[i] = sum / float64(n)
	}
	return out
}
