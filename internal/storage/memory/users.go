package memory

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = newID()
	}
	s.stamp(&u.CreatedAt, &u.UpdatedAt)
	s.users[u.ID] = *u
	s.track(u.ID)
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.User
	for id, u := range s.users {
		if u.Email != email {
			continue
		}
		u := u
		if found == nil || s.newer(id, found.ID) {
			found = &u
		}
	}
	return found, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return nil
	}
	u.CreatedAt = cur.CreatedAt
	s.stamp(nil, &u.UpdatedAt)
	s.users[u.ID] = *u
	return nil
}
