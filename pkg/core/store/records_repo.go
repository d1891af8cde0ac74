package store

import (
	"context"
	"fmt"
	"time"

	"advisory_platform/pkg/core/records"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordsRepo stores one row per (client, fiscal year, month) snapshot.
// Writes are last-write-wins upserts; the consultant UI is the only writer.
type RecordsRepo struct {
	pool *pgxpool.Pool
}

// NewRecordsRepo creates a records repository on the shared pool.
func NewRecordsRepo(pool *pgxpool.Pool) *RecordsRepo {
	return &RecordsRepo{pool: pool}
}

// Upsert writes a monthly snapshot. A re-entered month silently replaces the
// previous figures and drops back to draft until re-validated.
func (r *RecordsRepo) Upsert(ctx context.Context, rec *records.MonthlyRecord) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	query := `
		INSERT INTO monthly_records (
			client_id, fiscal_year, month,
			ca, margin_total, salaries, hours_worked,
			receivables_clients, debts_suppliers, stock_total,
			status, validated_by, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (client_id, fiscal_year, month)
		DO UPDATE SET
			ca = EXCLUDED.ca,
			margin_total = EXCLUDED.margin_total,
			salaries = EXCLUDED.salaries,
			hours_worked = EXCLUDED.hours_worked,
			receivables_clients = EXCLUDED.receivables_clients,
			debts_suppliers = EXCLUDED.debts_suppliers,
			stock_total = EXCLUDED.stock_total,
			status = 'draft',
			validated_by = NULL,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ClientID, rec.FiscalYear, rec.Month,
		rec.CA, rec.MarginTotal, rec.Salaries, rec.HoursWorked,
		rec.ReceivablesClients, rec.DebtsSuppliers, rec.StockTotal,
		records.StatusDraft, nil, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert record %s: %w", rec.PeriodLabel(), err)
	}
	return nil
}

// GetYear returns the months entered for a client's fiscal year, ordered.
func (r *RecordsRepo) GetYear(ctx context.Context, clientID string, fiscalYear int) ([]*records.MonthlyRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT client_id, fiscal_year, month,
		       ca, margin_total, salaries, hours_worked,
		       receivables_clients, debts_suppliers, stock_total,
		       status, COALESCE(validated_by, ''), updated_at
		FROM monthly_records
		WHERE client_id = $1 AND fiscal_year = $2
		ORDER BY month
	`

	rows, err := r.pool.Query(ctx, query, clientID, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var result []*records.MonthlyRecord
	for rows.Next() {
		var rec records.MonthlyRecord
		if err := rows.Scan(
			&rec.ClientID, &rec.FiscalYear, &rec.Month,
			&rec.CA, &rec.MarginTotal, &rec.Salaries, &rec.HoursWorked,
			&rec.ReceivablesClients, &rec.DebtsSuppliers, &rec.StockTotal,
			&rec.Status, &rec.ValidatedBy, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		result = append(result, &rec)
	}
	return result, nil
}

// GetMonth returns a single snapshot, or nil when the month was never entered.
func (r *RecordsRepo) GetMonth(ctx context.Context, clientID string, fiscalYear, month int) (*records.MonthlyRecord, error) {
	year, err := r.GetYear(ctx, clientID, fiscalYear)
	if err != nil {
		return nil, err
	}
	for _, rec := range year {
		if rec.Month == month {
			return rec, nil
		}
	}
	return nil, nil
}

// LatestValidated returns the most recent validated snapshot for a client,
// used to ground the assistant. Nil when nothing is validated yet.
func (r *RecordsRepo) LatestValidated(ctx context.Context, clientID string) (*records.MonthlyRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT client_id, fiscal_year, month,
		       ca, margin_total, salaries, hours_worked,
		       receivables_clients, debts_suppliers, stock_total,
		       status, COALESCE(validated_by, ''), updated_at
		FROM monthly_records
		WHERE client_id = $1 AND status = 'validated'
		ORDER BY fiscal_year DESC, month DESC
		LIMIT 1
	`

	var rec records.MonthlyRecord
	err := r.pool.QueryRow(ctx, query, clientID).Scan(
		&rec.ClientID, &rec.FiscalYear, &rec.Month,
		&rec.CA, &rec.MarginTotal, &rec.Salaries, &rec.HoursWorked,
		&rec.ReceivablesClients, &rec.DebtsSuppliers, &rec.StockTotal,
		&rec.Status, &rec.ValidatedBy, &rec.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest validated record: %w", err)
	}
	return &rec, nil
}

// MarkValidated flips a month to validated and stamps the consultant.
func (r *RecordsRepo) MarkValidated(ctx context.Context, clientID string, fiscalYear, month int, consultantID string) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		UPDATE monthly_records
		SET status = 'validated', validated_by = $4, updated_at = $5
		WHERE client_id = $1 AND fiscal_year = $2 AND month = $3
	`

	tag, err := r.pool.Exec(ctx, query, clientID, fiscalYear, month, consultantID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to validate record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no record for client %s period %04d-%02d", clientID, fiscalYear, month)
	}
	return nil
}
