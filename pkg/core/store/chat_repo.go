package store

import (
	"context"
	"fmt"
	"time"

	"advisory_platform/pkg/core/records"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatRepo persists assistant conversations so a client can reopen a
// session from another device.
type ChatRepo struct {
	pool *pgxpool.Pool
}

// NewChatRepo creates a chat repository on the shared pool.
func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

// Append stores one turn of a conversation.
func (r *ChatRepo) Append(ctx context.Context, msg *records.ChatMessage) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO chat_messages (session_id, client_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.pool.Exec(ctx, query, msg.SessionID, msg.ClientID, msg.Role, msg.Content, msg.CreatedAt); err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// History returns a session's messages in order.
func (r *ChatRepo) History(ctx context.Context, sessionID string) ([]*records.ChatMessage, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT session_id, client_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var msgs []*records.ChatMessage
	for rows.Next() {
		var m records.ChatMessage
		if err := rows.Scan(&m.SessionID, &m.ClientID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat row: %w", err)
		}
		msgs = append(msgs, &m)
	}
	return msgs, nil
}
