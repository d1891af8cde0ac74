package calc

import (
	"math"
	"testing"
)

func TestGrowthRate(t *testing.T) {
	if g := GrowthRate(120, 100); !closeTo(g, 0.2) {
		t.Errorf("expected 0.2, got %v", g)
	}
	if g := GrowthRate(80, 100); !closeTo(g, -0.2) {
		t.Errorf("expected -0.2, got %v", g)
	}
	// Negative prior: magnitude-relative, direction preserved.
	if g := GrowthRate(-50, -100); !closeTo(g, 0.5) {
		t.Errorf("expected 0.5, got %v", g)
	}
	if g := GrowthRate(100, 0); g != 0 {
		t.Errorf("zero prior must yield 0, got %v", g)
	}
}

func TestCAGR(t *testing.T) {
	// Doubling over one year is 100% growth.
	if c := CAGR(200, 100, 1); !closeTo(c, 1.0) {
		t.Errorf("expected 1.0, got %v", c)
	}
	// 21% over two years is 10%/year.
	if c := CAGR(121, 100, 2); math.Abs(c-0.10) > 1e-9 {
		t.Errorf("expected 0.10, got %v", c)
	}
	if c := CAGR(100, 0, 3); c != 0 {
		t.Errorf("zero beginning must yield 0, got %v", c)
	}
	if c := CAGR(100, 50, 0); c != 0 {
		t.Errorf("zero years must yield 0, got %v", c)
	}
}

func TestYearToDate(t *testing.T) {
	months := []RatioInput{
		{CA: 100, MarginTotal: 40, Salaries: 25, HoursWorked: 50, ReceivablesClients: 15, DebtsSuppliers: 8, StockTotal: 5},
		{CA: 200, MarginTotal: 80, Salaries: 50, HoursWorked: 100, ReceivablesClients: 30, DebtsSuppliers: 16, StockTotal: 10},
	}
	ytd := YearToDate(months)

	if ytd.CA != 300 || ytd.MarginTotal != 120 || ytd.Salaries != 75 || ytd.HoursWorked != 150 {
		t.Errorf("flows not summed: %+v", ytd)
	}
	// Balances come from the latest month, not the sum.
	if ytd.ReceivablesClients != 30 || ytd.DebtsSuppliers != 16 || ytd.StockTotal != 10 {
		t.Errorf("balances should be latest values: %+v", ytd)
	}
}

func TestYearToDateEmpty(t *testing.T) {
	ytd := YearToDate(nil)
	res := CalculateRatios(ytd)
	if !res.BFRDaysInactive {
		t.Error("empty YTD must produce fully inactive ratios")
	}
}

func TestRollingAverage(t *testing.T) {
	series := []float64{3, 6, 9, 12}
	out := RollingAverage(series, 3)

	want := []float64{3, 4.5, 6, 9}
	for i := range want {
		if !closeTo(out[i], want[i]) {
			t.Errorf("index %d: expected %v, got %v", i, want[i], out[i])
		}
	}

	// Window of 1 is the identity.
	out = RollingAverage(series, 1)
	for i := range series {
		if out[i] != series[i] {
			t.Errorf("window 1 should copy input, got %v", out)
		}
	}

	if len(RollingAverage(nil, 3)) != 0 {
		t.Error("empty input should stay empty")
	}
}
