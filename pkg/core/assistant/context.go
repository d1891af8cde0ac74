package assistant

import (
	"fmt"
	"strings"

	"advisory_platform/pkg/core/calc"
	"advisory_platform/pkg/core/prompt"
	"advisory_platform/pkg/core/records"
)

// fallbackSystemPrompt is used when the prompt library failed to load.
const fallbackSystemPrompt = `You are the financial assistant of a consulting firm, speaking to one of its small-business clients.
Answer questions using ONLY the figures provided in the context below. Figures marked "n/a" have no reliable source data: say so instead of guessing a value.
Keep answers short, concrete and in the same language as the user's message. Respond in plain Markdown.`

// FormatRatio renders one ratio for prompt or dashboard use. Inactive
// ratios render as "n/a" rather than a misleading zero.
func FormatRatio(value float64, inactive bool, unit string) string {
	if inactive {
		return "n/a"
	}
	if unit == "" {
		return fmt.Sprintf("%.1f", value)
	}
	return fmt.Sprintf("%.1f %s", value, unit)
}

// BuildClientContext renders the grounding block injected into the system
// prompt: the latest validated month's figures and the derived ratios.
func BuildClientContext(client *records.Client, latest *records.MonthlyRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Client: %s", client.Name)
	if client.Sector != "" {
		fmt.Fprintf(&b, " (%s)", client.Sector)
	}
	b.WriteString("\n")

	if latest == nil {
		b.WriteString("No validated figures are available yet for this client.\n")
		return b.String()
	}

	res := calc.CalculateRatios(latest.RatioInput())

	fmt.Fprintf(&b, "Latest validated period: %s\n\n", latest.PeriodLabel())
	fmt.Fprintf(&b, "Figures:\n")
	fmt.Fprintf(&b, "- Revenue: %.2f\n", latest.CA)
	fmt.Fprintf(&b, "- Gross margin: %.2f\n", latest.MarginTotal)
	fmt.Fprintf(&b, "- Payroll: %.2f\n", latest.Salaries)
	fmt.Fprintf(&b, "- Hours worked: %.2f\n", latest.HoursWorked)
	fmt.Fprintf(&b, "- Customer receivables: %.2f\n", latest.ReceivablesClients)
	fmt.Fprintf(&b, "- Supplier payables: %.2f\n", latest.DebtsSuppliers)
	fmt.Fprintf(&b, "- Inventory: %.2f\n\n", latest.StockTotal)

	fmt.Fprintf(&b, "Derived ratios:\n")
	fmt.Fprintf(&b, "- DSO (days sales outstanding): %s\n", FormatRatio(res.DSO, res.DSOInactive, "days"))
	fmt.Fprintf(&b, "- DPO (days payable outstanding): %s\n", FormatRatio(res.DPO, res.DPOInactive, "days"))
	fmt.Fprintf(&b, "- DIO (days inventory outstanding): %s\n", FormatRatio(res.DIO, res.DIOInactive, "days"))
	fmt.Fprintf(&b, "- BFR (working capital requirement): %s\n", FormatRatio(res.BFRDays, res.BFRDaysInactive, "days"))
	fmt.Fprintf(&b, "- Payroll ratio: %s\n", FormatRatio(res.SalaryRatio, res.SalaryRatioInactive, "% of revenue"))
	fmt.Fprintf(&b, "- Productivity: %s\n", FormatRatio(res.ProductivityPerHour, res.ProductivityInactive, "per hour"))
	fmt.Fprintf(&b, "- Labor cost: %s\n", FormatRatio(res.CostPerHour, res.CostPerHourInactive, "per hour"))

	return b.String()
}

// BuildSystemPrompt combines the advisor prompt from the library (or the
// hardcoded fallback) with the client grounding context.
func BuildSystemPrompt(client *records.Client, latest *records.MonthlyRecord) string {
	system, err := prompt.GetAdvisorPrompt("chat")
	if err != nil || system == "" {
		system = fallbackSystemPrompt
	}

	return system + "\n\n--- CLIENT DATA ---\n" + BuildClientContext(client, latest)
}
