package calc

import (
	"math"
	"testing"
)

const eps = 1e-9

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// baseInput is the reference snapshot used across scenarios.
// achats = 100000 - 40000 = 60000.
func baseInput() RatioInput {
	return RatioInput{
		CA:                 100000,
		MarginTotal:        40000,
		Salaries:           25000,
		HoursWorked:        500,
		ReceivablesClients: 15000,
		DebtsSuppliers:     8000,
		StockTotal:         5000,
	}
}

func TestCalculateRatiosNominal(t *testing.T) {
	res := CalculateRatios(baseInput())

	// dso = 15000/100000*30 = 4.5
	// dpo = 8000/60000*30  = 4.0
	// dio = 5000/60000*30  = 2.5
	// bfr = 4.5 + 2.5 - 4.0 = 3.0
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"dso", res.DSO, 4.5},
		{"dpo", res.DPO, 4.0},
		{"dio", res.DIO, 2.5},
		{"bfr_days", res.BFRDays, 3.0},
		{"salary_ratio", res.SalaryRatio, 25},
		{"productivity_per_hour", res.ProductivityPerHour, 200},
		{"cost_per_hour", res.CostPerHour, 50},
	}
	for _, c := range checks {
		if !closeTo(c.got, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}

	flags := []struct {
		name string
		got  bool
	}{
		{"dso_inactive", res.DSOInactive},
		{"dpo_inactive", res.DPOInactive},
		{"dio_inactive", res.DIOInactive},
		{"bfr_days_inactive", res.BFRDaysInactive},
		{"salary_ratio_inactive", res.SalaryRatioInactive},
		{"productivity_inactive", res.ProductivityInactive},
		{"cost_per_hour_inactive", res.CostPerHourInactive},
	}
	for _, f := range flags {
		if f.got {
			t.Errorf("%s: expected active, got inactive", f.name)
		}
	}
}

func TestCalculateRatiosZeroRevenue(t *testing.T) {
	in := baseInput()
	in.CA = 0

	res := CalculateRatios(in)

	if res.DSO != 0 || !res.DSOInactive {
		t.Errorf("dso: expected 0/inactive, got %v/%v", res.DSO, res.DSOInactive)
	}
	if res.SalaryRatio != 0 || !res.SalaryRatioInactive {
		t.Errorf("salary_ratio: expected 0/inactive, got %v/%v", res.SalaryRatio, res.SalaryRatioInactive)
	}
	if res.ProductivityPerHour != 0 || !res.ProductivityInactive {
		t.Errorf("productivity: expected 0/inactive, got %v/%v", res.ProductivityPerHour, res.ProductivityInactive)
	}
	// Cost per hour only needs salaries and hours; zero revenue leaves it alone.
	if res.CostPerHour != 50 || res.CostPerHourInactive {
		t.Errorf("cost_per_hour: expected 50/active, got %v/%v", res.CostPerHour, res.CostPerHourInactive)
	}
}

func TestCalculateRatiosMarginEatsRevenue(t *testing.T) {
	// Margin equal to revenue collapses achats to 0, which must shut down
	// the two achats-based ratios without touching the others.
	in := baseInput()
	in.MarginTotal = in.CA

	res := CalculateRatios(in)

	if res.DPO != 0 || !res.DPOInactive {
		t.Errorf("dpo: expected 0/inactive, got %v/%v", res.DPO, res.DPOInactive)
	}
	if res.DIO != 0 || !res.DIOInactive {
		t.Errorf("dio: expected 0/inactive, got %v/%v", res.DIO, res.DIOInactive)
	}
	if res.DSOInactive {
		t.Error("dso should stay active when only achats collapses")
	}

	// Margin above revenue behaves identically (the clamp, not a sign flip).
	in.MarginTotal = in.CA * 3
	res = CalculateRatios(in)
	if res.DPO != 0 || !res.DPOInactive || res.DIO != 0 || !res.DIOInactive {
		t.Errorf("margin > revenue: expected clamped achats, got dpo=%v dio=%v", res.DPO, res.DIO)
	}
}

func TestCalculateRatiosNegativeBFR(t *testing.T) {
	// Heavy supplier debt with light receivables drives BFR-days negative.
	// That is a favorable cash-conversion cycle, not an error.
	in := baseInput()
	in.ReceivablesClients = 1000
	in.DebtsSuppliers = 50000

	res := CalculateRatios(in)

	if res.BFRDays >= 0 {
		t.Errorf("expected negative bfr_days, got %v", res.BFRDays)
	}
	if res.BFRDaysInactive {
		t.Error("negative bfr_days must remain active")
	}
	if !closeTo(res.BFRDays, res.DSO+res.DIO-res.DPO) {
		t.Errorf("bfr identity broken: %v vs %v", res.BFRDays, res.DSO+res.DIO-res.DPO)
	}
}

func TestCalculateRatiosAllZero(t *testing.T) {
	res := CalculateRatios(RatioInput{})

	values := []float64{res.DSO, res.DPO, res.DIO, res.BFRDays, res.SalaryRatio, res.ProductivityPerHour, res.CostPerHour}
	for i, v := range values {
		if v != 0 {
			t.Errorf("value %d: expected 0 on empty input, got %v", i, v)
		}
	}
	flags := []bool{res.DSOInactive, res.DPOInactive, res.DIOInactive, res.BFRDaysInactive,
		res.SalaryRatioInactive, res.ProductivityInactive, res.CostPerHourInactive}
	for i, f := range flags {
		if !f {
			t.Errorf("flag %d: expected inactive on empty input", i)
		}
	}
}

func TestCalculateRatiosExtremeMagnitudes(t *testing.T) {
	in := RatioInput{
		CA:                 1e12,
		MarginTotal:        4e11,
		Salaries:           2.5e11,
		HoursWorked:        5e9,
		ReceivablesClients: 1.5e11,
		DebtsSuppliers:     8e10,
		StockTotal:         5e10,
	}
	assertAllFinite(t, CalculateRatios(in))
}

func assertAllFinite(t *testing.T, res RatioResult) {
	t.Helper()
	values := map[string]float64{
		"dso":                   res.DSO,
		"dpo":                   res.DPO,
		"dio":                   res.DIO,
		"bfr_days":              res.BFRDays,
		"salary_ratio":          res.SalaryRatio,
		"productivity_per_hour": res.ProductivityPerHour,
		"cost_per_hour":         res.CostPerHour,
	}
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s: not finite (%v)", name, v)
		}
	}
}

// TestRatioInvariantsOverDomainGrid sweeps every combination of present and
// absent fields and checks the three structural guarantees: finiteness,
// inactive implies exactly zero, and the BFR identity.
func TestRatioInvariantsOverDomainGrid(t *testing.T) {
	levels := []float64{0, 0.01, 1, 37500, 1e12}

	// Each of the 7 fields independently present or absent (2^7 masks),
	// crossed with a few magnitudes.
	for mask := 0; mask < 1<<7; mask++ {
		for _, v := range levels {
			in := RatioInput{}
			if mask&1 != 0 {
				in.CA = v
			}
			if mask&2 != 0 {
				in.MarginTotal = v / 2
			}
			if mask&4 != 0 {
				in.Salaries = v / 4
			}
			if mask&8 != 0 {
				in.HoursWorked = v / 100
			}
			if mask&16 != 0 {
				in.ReceivablesClients = v / 5
			}
			if mask&32 != 0 {
				in.DebtsSuppliers = v / 8
			}
			if mask&64 != 0 {
				in.StockTotal = v / 10
			}

			res := CalculateRatios(in)
			assertAllFinite(t, res)

			pairs := []struct {
				name     string
				val      float64
				inactive bool
			}{
				{"dso", res.DSO, res.DSOInactive},
				{"dpo", res.DPO, res.DPOInactive},
				{"dio", res.DIO, res.DIOInactive},
				{"bfr_days", res.BFRDays, res.BFRDaysInactive},
				{"salary_ratio", res.SalaryRatio, res.SalaryRatioInactive},
				{"productivity_per_hour", res.ProductivityPerHour, res.ProductivityInactive},
				{"cost_per_hour", res.CostPerHour, res.CostPerHourInactive},
			}
			for _, p := range pairs {
				if p.inactive && p.val != 0 {
					t.Fatalf("mask=%d level=%v: %s inactive but value %v != 0", mask, v, p.name, p.val)
				}
			}

			if !closeTo(res.BFRDays, res.DSO+res.DIO-res.DPO) {
				t.Fatalf("mask=%d level=%v: bfr identity broken", mask, v)
			}
			wantBFRInactive := res.DSOInactive && res.DPOInactive && res.DIOInactive
			if res.BFRDaysInactive != wantBFRInactive {
				t.Fatalf("mask=%d level=%v: bfr flag %v, constituents say %v", mask, v, res.BFRDaysInactive, wantBFRInactive)
			}
		}
	}
}

// TestRatioScaleInvariance: scaling all monetary figures by the same positive
// constant leaves the pure-rate ratios unchanged.
func TestRatioScaleInvariance(t *testing.T) {
	base := CalculateRatios(baseInput())

	for _, k := range []float64{0.001, 3, 1e6} {
		in := baseInput()
		in.CA *= k
		in.MarginTotal *= k
		in.Salaries *= k
		in.ReceivablesClients *= k
		in.DebtsSuppliers *= k
		in.StockTotal *= k

		scaled := CalculateRatios(in)

		rates := []struct {
			name string
			a, b float64
		}{
			{"dso", base.DSO, scaled.DSO},
			{"dpo", base.DPO, scaled.DPO},
			{"dio", base.DIO, scaled.DIO},
			{"bfr_days", base.BFRDays, scaled.BFRDays},
			{"salary_ratio", base.SalaryRatio, scaled.SalaryRatio},
		}
		for _, r := range rates {
			if !closeTo(r.a, r.b) {
				t.Errorf("k=%v: %s not scale invariant (%v vs %v)", k, r.name, r.a, r.b)
			}
		}
	}
}

func TestCalculateRatiosIsPure(t *testing.T) {
	in := baseInput()
	first := CalculateRatios(in)
	second := CalculateRatios(in)
	if first != second {
		t.Error("same input must produce identical results")
	}
}
