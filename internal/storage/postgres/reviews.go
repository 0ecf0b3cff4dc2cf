package postgres

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	if r.ID == "" {
		r.ID = newID()
	}
	query := `
        INSERT INTO reviews (id, manufacturer_id, author_user_id, rating, comment)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		r.ID, r.ManufacturerID, r.AuthorUserID, r.Rating, r.Comment).
		Scan(&r.CreatedAt, &r.UpdatedAt)
}

func (s *Store) ListReviewsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Review, error) {
	out := []models.Review{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM reviews WHERE manufacturer_id=$1 ORDER BY created_at DESC`, manufacturerID)
	return out, err
}

func (s *Store) CreateCertification(ctx context.Context, c *models.Certification) error {
	if c.ID == "" {
		c.ID = newID()
	}
	query := `
        INSERT INTO certifications (id, manufacturer_id, name, issuer, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		c.ID, c.ManufacturerID, c.Name, c.Issuer, c.ExpiresAt).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *Store) ListCertificationsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Certification, error) {
	out := []models.Certification{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM certifications WHERE manufacturer_id=$1 ORDER BY created_at DESC`, manufacturerID)
	return out, err
}
