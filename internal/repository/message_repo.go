package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nevochat/internal/models"
)

type MessageSQLite struct {
	db *sql.DB
}

func NewMessageSQLite(db *sql.DB) *MessageSQLite { return &MessageSQLite{db: db} }

var _ Messages = (*MessageSQLite)(nil)

const (
	insertMessageSQL = `INSERT INTO messages (message_id, sender, content, created_at) VALUES (?, ?, ?, ?) RETURNING seq`
	selectMessageSQL = `SELECT seq, message_id, sender, content, created_at FROM messages ORDER BY seq ASC`
)

// Append inserts m at the end of the log and returns its sequence number.
// SQLite allows a single writer at a time, so seq values form a total order.
func (r *MessageSQLite) Append(ctx context.Context, m models.Message) (int64, error) {
	var seq int64
	err := r.db.QueryRowContext(ctx, insertMessageSQL, m.MessageID, m.Username, m.Content, m.CreatedAt.UnixMilli()).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("insert message from %q: %w", m.Username, err)
	}
	return seq, nil
}

// ListAll returns the whole log, oldest first.
func (r *MessageSQLite) ListAll(ctx context.Context) ([]models.Message, error) {
	rows, err := r.db.QueryContext(ctx, selectMessageSQL)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	defer rows.Close()

	out := make([]models.Message, 0, 64)
	for rows.Next() {
		var (
			m         models.Message
			createdMs int64
		)
		if err := rows.Scan(&m.Seq, &m.MessageID, &m.Username, &m.Content, &createdMs); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}
