package remote

import (
	"context"
	"sort"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) error {
	if m.ID == "" {
		m.ID = newID()
	}
	storage.Touch(&m.CreatedAt, &m.UpdatedAt)
	return insertDoc(ctx, s, colMessages, m.ID, m)
}

// allMessagesFor fetches both directions of a user's mail. Two equality
// queries; the document service has no OR operator.
func (s *Store) allMessagesFor(ctx context.Context, userID string) ([]models.Message, error) {
	sent, err := queryDocs[models.Message](ctx, s, colMessages, map[string]string{"senderId": userID})
	if err != nil {
		return nil, err
	}
	received, err := queryDocs[models.Message](ctx, s, colMessages, map[string]string{"recipientId": userID})
	if err != nil {
		return nil, err
	}
	return append(sent, received...), nil
}

func (s *Store) ListThreads(ctx context.Context, userID string) ([]models.Thread, error) {
	msgs, err := s.allMessagesFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	byCounterpart := map[string]*models.Thread{}
	for _, m := range msgs {
		counterpart := m.SenderID
		if m.SenderID == userID {
			counterpart = m.RecipientID
		}
		t, ok := byCounterpart[counterpart]
		if !ok {
			t = &models.Thread{CounterpartID: counterpart}
			byCounterpart[counterpart] = t
		}
		if m.CreatedAt.After(t.LastMessage.CreatedAt) {
			t.LastMessage = m
		}
		if m.RecipientID == userID && !m.Read {
			t.UnreadCount++
		}
	}

	out := []models.Thread{}
	for _, t := range byCounterpart {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out, nil
}

func (s *Store) ListConversation(ctx context.Context, userID, counterpartID string) ([]models.Message, error) {
	msgs, err := s.allMessagesFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []models.Message{}
	for _, m := range msgs {
		if m.SenderID == counterpartID || m.RecipientID == counterpartID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) MarkConversationRead(ctx context.Context, userID, counterpartID string) error {
	inbound, err := queryDocs[models.Message](ctx, s, colMessages, map[string]string{
		"recipientId": userID,
		"senderId":    counterpartID,
	})
	if err != nil {
		return err
	}
	for i := range inbound {
		if inbound[i].Read {
			continue
		}
		inbound[i].Read = true
		storage.Touch(nil, &inbound[i].UpdatedAt)
		if err := replaceDoc(ctx, s, colMessages, inbound[i].ID, &inbound[i]); err != nil {
			return err
		}
	}
	return nil
}
