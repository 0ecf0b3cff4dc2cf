package memory

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = newID()
	}
	s.stamp(&m.CreatedAt, &m.UpdatedAt)
	s.messages[m.ID] = *m
	s.track(m.ID)
	return nil
}

// ListThreads groups the user's messages by counterpart and reports the
// latest message plus unread count per counterpart, newest thread first.
// Threads are derived here, never stored.
func (s *Store) ListThreads(ctx context.Context, userID string) ([]models.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCounterpart := map[string]*models.Thread{}
	for _, m := range s.messages {
		var counterpart string
		switch userID {
		case m.SenderID:
			counterpart = m.RecipientID
		case m.RecipientID:
			counterpart = m.SenderID
		default:
			continue
		}

		t, ok := byCounterpart[counterpart]
		if !ok {
			t = &models.Thread{CounterpartID: counterpart, LastMessage: m}
			byCounterpart[counterpart] = t
		} else if s.newer(m.ID, t.LastMessage.ID) {
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
	sortByInsertDesc(s, out, func(t models.Thread) string { return t.LastMessage.ID })
	return out, nil
}

func (s *Store) ListConversation(ctx context.Context, userID, counterpartID string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Message{}
	for _, m := range s.messages {
		if (m.SenderID == userID && m.RecipientID == counterpartID) ||
			(m.SenderID == counterpartID && m.RecipientID == userID) {
			out = append(out, m)
		}
	}
	// oldest first, chat order
	sortByInsertDesc(s, out, func(m models.Message) string { return m.ID })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *Store) MarkConversationRead(ctx context.Context, userID, counterpartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.messages {
		if m.RecipientID == userID && m.SenderID == counterpartID && !m.Read {
			m.Read = true
			s.stamp(nil, &m.UpdatedAt)
			s.messages[id] = m
		}
	}
	return nil
}
