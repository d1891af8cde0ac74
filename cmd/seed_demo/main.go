// seed_demo loads a demo client with a year of monthly figures so the
// dashboard and assistant have something to show on a fresh database.
package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"advisory_platform/pkg/core/records"
	"advisory_platform/pkg/core/store"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	pool := store.GetPool()
	clientsRepo := store.NewClientsRepo(pool)
	recordsRepo := store.NewRecordsRepo(pool)

	client := &records.Client{
		ID:           "demo-boulangerie",
		Name:         "Boulangerie Petit",
		Siren:        "123456789",
		Sector:       "food retail",
		ConsultantID: "consultant-demo",
	}
	if err := clientsRepo.Save(ctx, client); err != nil {
		fmt.Printf("[FATAL] Failed to save demo client: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[SEED] Client %s created\n", client.ID)

	// Twelve months with a mild seasonal swing around realistic figures.
	for month := 1; month <= 12; month++ {
		season := 1 + 0.15*math.Sin(float64(month)/12*2*math.Pi)
		rec := &records.MonthlyRecord{
			ClientID:           client.ID,
			FiscalYear:         2025,
			Month:              month,
			CA:                 100000 * season,
			MarginTotal:        40000 * season,
			Salaries:           25000,
			HoursWorked:        500,
			ReceivablesClients: 15000 * season,
			DebtsSuppliers:     8000 * season,
			StockTotal:         5000,
		}
		if err := recordsRepo.Upsert(ctx, rec); err != nil {
			fmt.Printf("[FATAL] Failed to seed %s: %v\n", rec.PeriodLabel(), err)
			os.Exit(1)
		}
		if err := recordsRepo.MarkValidated(ctx, client.ID, 2025, month, client.ConsultantID); err != nil {
			fmt.Printf("[FATAL] Failed to validate %s: %v\n", rec.PeriodLabel(), err)
			os.Exit(1)
		}
	}

	fmt.Println("[SEED] 12 validated months written for fiscal year 2025")
}
