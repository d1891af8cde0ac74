package store

import (
	"context"
	"fmt"
	"time"

	"advisory_platform/pkg/core/records"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientsRepo manages the firm's client roster.
type ClientsRepo struct {
	pool *pgxpool.Pool
}

// NewClientsRepo creates a clients repository on the shared pool.
func NewClientsRepo(pool *pgxpool.Pool) *ClientsRepo {
	return &ClientsRepo{pool: pool}
}

// Save upserts a client by id.
func (r *ClientsRepo) Save(ctx context.Context, c *records.Client) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}
	if c.ID == "" {
		return fmt.Errorf("client has no id")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO clients (id, name, siren, sector, consultant_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			siren = EXCLUDED.siren,
			sector = EXCLUDED.sector,
			consultant_id = EXCLUDED.consultant_id
	`

	_, err := r.pool.Exec(ctx, query, c.ID, c.Name, c.Siren, c.Sector, c.ConsultantID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save client %s: %w", c.ID, err)
	}
	return nil
}

// Get loads one client by id.
func (r *ClientsRepo) Get(ctx context.Context, id string) (*records.Client, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `SELECT id, name, COALESCE(siren, ''), COALESCE(sector, ''), consultant_id, created_at FROM clients WHERE id = $1`

	var c records.Client
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Siren, &c.Sector, &c.ConsultantID, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("client not found: %s", id)
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	return &c, nil
}

// ListByConsultant returns a consultant's portfolio, newest first.
func (r *ClientsRepo) ListByConsultant(ctx context.Context, consultantID string) ([]*records.Client, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, name, COALESCE(siren, ''), COALESCE(sector, ''), consultant_id, created_at
		FROM clients
		WHERE consultant_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, consultantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var result []*records.Client
	for rows.Next() {
		var c records.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Siren, &c.Sector, &c.ConsultantID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		result = append(result, &c)
	}
	return result, nil
}
