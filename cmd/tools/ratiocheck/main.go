// ratiocheck computes dashboard ratios for a JSON snapshot from the command
// line. Handy for verifying a client's month without going through the API.
//
//	ratiocheck -data '{"ca":100000,"margin_total":40000,...}'
//	ratiocheck -mode check -data '...'   # consistency checks only
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"advisory_platform/pkg/core/calc"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "JSON snapshot payload")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	var in calc.RatioInput
	if err := json.Unmarshal([]byte(*dataStr), &in); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "check":
		runChecks(in)
	case "calculate":
		runCalculations(in)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
	}
}

func runChecks(in calc.RatioInput) {
	ok := true
	if in.MarginTotal > in.CA {
		fmt.Printf("Warning: margin (%.2f) exceeds revenue (%.2f); achats will be clamped to 0\n", in.MarginTotal, in.CA)
		ok = false
	}
	for name, v := range map[string]float64{
		"ca": in.CA, "margin_total": in.MarginTotal, "salaries": in.Salaries,
		"hours_worked": in.HoursWorked, "receivables_clients": in.ReceivablesClients,
		"debts_suppliers": in.DebtsSuppliers, "stock_total": in.StockTotal,
	} {
		if v < 0 {
			fmt.Printf("Warning: %s is negative (%.2f); treated as absent data\n", name, v)
			ok = false
		}
	}
	if ok {
		fmt.Println("Success: snapshot is consistent")
	}
}

func runCalculations(in calc.RatioInput) {
	res := calc.CalculateRatios(in)
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
