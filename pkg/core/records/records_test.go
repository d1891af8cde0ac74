package records

import (
	"testing"

	"advisory_platform/pkg/core/calc"
)

func TestRatioInputDefaulting(t *testing.T) {
	// A record with only revenue filled must hand the engine zeros for the
	// rest, which the engine reads as absent data.
	r := MonthlyRecord{ClientID: "c1", FiscalYear: 2025, Month: 6, CA: 50000}

	in := r.RatioInput()
	if in != (calc.RatioInput{CA: 50000}) {
		t.Errorf("unexpected conversion: %+v", in)
	}

	res := calc.CalculateRatios(in)
	if !res.DSOInactive || !res.SalaryRatioInactive {
		t.Error("unfilled figures should leave dependent ratios inactive")
	}
}

func TestPeriodLabel(t *testing.T) {
	r := MonthlyRecord{FiscalYear: 2025, Month: 3}
	if got := r.PeriodLabel(); got != "2025-03" {
		t.Errorf("expected 2025-03, got %s", got)
	}
}

func TestValidate(t *testing.T) {
	valid := MonthlyRecord{ClientID: "c1", FiscalYear: 2025, Month: 12}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cases := []MonthlyRecord{
		{FiscalYear: 2025, Month: 1},                  // missing client
		{ClientID: "c1", FiscalYear: 2025, Month: 0},  // month low
		{ClientID: "c1", FiscalYear: 2025, Month: 13}, // month high
		{ClientID: "c1", FiscalYear: 1850, Month: 1},  // year out of range
		{ClientID: "c1", FiscalYear: 2025, Month: 1, CA: -10},          // negative revenue
		{ClientID: "c1", FiscalYear: 2025, Month: 1, StockTotal: -0.5}, // negative balance
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
