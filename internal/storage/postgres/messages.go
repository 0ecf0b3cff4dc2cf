package postgres

import (
	"context"
	"sort"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) error {
	if m.ID == "" {
		m.ID = newID()
	}
	query := `
        INSERT INTO messages (id, sender_id, recipient_id, body, read)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		m.ID, m.SenderID, m.RecipientID, m.Body, m.Read).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

// ListThreads derives one thread per counterpart: the latest message in each
// conversation plus the number of unread inbound messages.
func (s *Store) ListThreads(ctx context.Context, userID string) ([]models.Thread, error) {
	query := `
        SELECT DISTINCT ON (t.counterpart)
            t.counterpart, t.id, t.sender_id, t.recipient_id, t.body, t.read, t.created_at, t.updated_at
        FROM (
            SELECT m.*,
                CASE WHEN m.sender_id = $1 THEN m.recipient_id ELSE m.sender_id END AS counterpart
            FROM messages m
            WHERE m.sender_id = $1 OR m.recipient_id = $1
        ) t
        ORDER BY t.counterpart, t.created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Thread{}
	for rows.Next() {
		var t models.Thread
		m := &t.LastMessage
		if err := rows.Scan(&t.CounterpartID, &m.ID, &m.SenderID, &m.RecipientID,
			&m.Body, &m.Read, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	unread := map[string]int{}
	countQuery := `
        SELECT sender_id, COUNT(*) FROM messages
        WHERE recipient_id = $1 AND NOT read
        GROUP BY sender_id`
	crows, err := s.db.QueryContext(ctx, countQuery, userID)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var sender string
		var n int
		if err := crows.Scan(&sender, &n); err != nil {
			return nil, err
		}
		unread[sender] = n
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].UnreadCount = unread[out[i].CounterpartID]
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out, nil
}

func (s *Store) ListConversation(ctx context.Context, userID, counterpartID string) ([]models.Message, error) {
	out := []models.Message{}
	query := `
        SELECT * FROM messages
        WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
        ORDER BY created_at ASC`
	err := s.db.SelectContext(ctx, &out, query, userID, counterpartID)
	return out, err
}

func (s *Store) MarkConversationRead(ctx context.Context, userID, counterpartID string) error {
	_, err := s.db.ExecContext(ctx, `
        UPDATE messages SET read = TRUE, updated_at = NOW()
        WHERE recipient_id = $1 AND sender_id = $2 AND NOT read`,
		userID, counterpartID)
	return err
}
