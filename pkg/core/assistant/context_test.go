package assistant

import (
	"strings"
	"testing"

	"advisory_platform/pkg/core/records"
)

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(4.5, false, "days"); got != "4.5 days" {
		t.Errorf("expected '4.5 days', got %q", got)
	}
	if got := FormatRatio(0, true, "days"); got != "n/a" {
		t.Errorf("inactive ratio must render n/a, got %q", got)
	}
	if got := FormatRatio(25, false, ""); got != "25.0" {
		t.Errorf("expected '25.0', got %q", got)
	}
}

func TestBuildClientContextNoData(t *testing.T) {
	client := &records.Client{ID: "c1", Name: "Boulangerie Petit"}

	ctx := BuildClientContext(client, nil)

	if !strings.Contains(ctx, "Boulangerie Petit") {
		t.Error("context should name the client")
	}
	if !strings.Contains(ctx, "No validated figures") {
		t.Error("context should state that no figures exist")
	}
}

func TestBuildClientContextGrounding(t *testing.T) {
	client := &records.Client{ID: "c1", Name: "Boulangerie Petit", Sector: "food retail"}
	latest := &records.MonthlyRecord{
		ClientID: "c1", FiscalYear: 2025, Month: 6,
		CA: 100000, MarginTotal: 40000, Salaries: 25000, HoursWorked: 500,
		ReceivablesClients: 15000, DebtsSuppliers: 8000, StockTotal: 5000,
		Status: records.StatusValidated,
	}

	ctx := BuildClientContext(client, latest)

	for _, want := range []string{"2025-06", "4.5 days", "25.0 % of revenue", "200.0 per hour"} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context missing %q:\n%s", want, ctx)
		}
	}
	if strings.Contains(ctx, "n/a") {
		t.Error("fully populated month should have no n/a ratios")
	}
}

func TestBuildClientContextInactiveRatios(t *testing.T) {
	client := &records.Client{ID: "c1", Name: "Boulangerie Petit"}
	// Only revenue entered: everything downstream of the missing figures
	// must show n/a, never a fake zero.
	latest := &records.MonthlyRecord{ClientID: "c1", FiscalYear: 2025, Month: 1, CA: 50000}

	ctx := BuildClientContext(client, latest)

	if !strings.Contains(ctx, "n/a") {
		t.Errorf("expected n/a markers in context:\n%s", ctx)
	}
	if strings.Contains(ctx, "DSO (days sales outstanding): 0.0") {
		t.Error("inactive DSO must not render as numeric zero")
	}
}

func TestBuildSystemPromptFallback(t *testing.T) {
	// Registry is empty in tests, so the hardcoded prompt must kick in.
	client := &records.Client{ID: "c1", Name: "Boulangerie Petit"}

	sys := BuildSystemPrompt(client, nil)

	if !strings.Contains(sys, "financial assistant") {
		t.Error("fallback system prompt missing")
	}
	if !strings.Contains(sys, "CLIENT DATA") {
		t.Error("grounding block missing")
	}
}
