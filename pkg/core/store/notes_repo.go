package store

import (
	"context"
	"fmt"
	"time"

	"advisory_platform/pkg/core/records"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotesRepo stores the CRM notes exchanged between consultant and client.
type NotesRepo struct {
	pool *pgxpool.Pool
}

// NewNotesRepo creates a notes repository on the shared pool.
func NewNotesRepo(pool *pgxpool.Pool) *NotesRepo {
	return &NotesRepo{pool: pool}
}

// Add appends a note to a client's thread and returns it with id and
// timestamp filled in.
func (r *NotesRepo) Add(ctx context.Context, clientID string, author records.Role, body string) (*records.Note, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}
	if body == "" {
		return nil, fmt.Errorf("note body is empty")
	}

	note := &records.Note{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO crm_notes (id, client_id, author, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.pool.Exec(ctx, query, note.ID, note.ClientID, note.Author, note.Body, note.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}
	return note, nil
}

// ListByClient returns the full note thread for a client, oldest first.
func (r *NotesRepo) ListByClient(ctx context.Context, clientID string) ([]*records.Note, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, client_id, author, body, created_at, COALESCE(read_at, 'epoch'::timestamptz)
		FROM crm_notes
		WHERE client_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []*records.Note
	for rows.Next() {
		var n records.Note
		if err := rows.Scan(&n.ID, &n.ClientID, &n.Author, &n.Body, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, nil
}

// MarkRead stamps every unread note in the thread written by the other party.
// Replaces the old client-side "last read message" tracking.
func (r *NotesRepo) MarkRead(ctx context.Context, clientID string, reader records.Role) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		UPDATE crm_notes
		SET read_at = $3
		WHERE client_id = $1 AND author <> $2 AND read_at IS NULL
	`

	if _, err := r.pool.Exec(ctx, query, clientID, reader, time.Now()); err != nil {
		return fmt.Errorf("failed to mark notes read: %w", err)
	}
	return nil
}

// UnreadCount counts notes the reader has not seen yet.
func (r *NotesRepo) UnreadCount(ctx context.Context, clientID string, reader records.Role) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("database pool not configured")
	}

	query := `SELECT COUNT(*) FROM crm_notes WHERE client_id = $1 AND author <> $2 AND read_at IS NULL`

	var count int
	if err := r.pool.QueryRow(ctx, query, clientID, reader).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notes: %w", err)
	}
	return count, nil
}
