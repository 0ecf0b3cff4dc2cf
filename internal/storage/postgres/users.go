package postgres

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	query := `
        INSERT INTO users (id, email, password_hash, first_name, last_name, role, currency)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.Currency).
		Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	u := &models.User{}
	err := s.db.GetContext(ctx, u, `SELECT * FROM users WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	query := `SELECT * FROM users WHERE email=$1 ORDER BY created_at DESC LIMIT 1`
	err := s.db.GetContext(ctx, u, query, email)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	query := `
        UPDATE users
        SET email=$1, password_hash=$2, first_name=$3, last_name=$4, role=$5, currency=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.Currency, u.ID).
		Scan(&u.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}
