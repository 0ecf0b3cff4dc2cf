package remote

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	storage.Touch(&u.CreatedAt, &u.UpdatedAt)
	return insertDoc(ctx, s, colUsers, u.ID, u)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return getDoc[models.User](ctx, s, colUsers, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := queryDocs[models.User](ctx, s, colUsers, map[string]string{"email": email})
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return &users[0], nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	existing, err := getDoc[models.User](ctx, s, colUsers, u.ID)
	if err != nil || existing == nil {
		return err
	}
	u.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &u.UpdatedAt)
	return replaceDoc(ctx, s, colUsers, u.ID, u)
}
