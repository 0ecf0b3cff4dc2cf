package remote

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	if r.ID == "" {
		r.ID = newID()
	}
	storage.Touch(&r.CreatedAt, &r.UpdatedAt)
	return insertDoc(ctx, s, colReviews, r.ID, r)
}

func (s *Store) ListReviewsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Review, error) {
	return queryDocs[models.Review](ctx, s, colReviews, map[string]string{"manufacturerId": manufacturerID})
}

func (s *Store) CreateCertification(ctx context.Context, c *models.Certification) error {
	if c.ID == "" {
		c.ID = newID()
	}
	storage.Touch(&c.CreatedAt, &c.UpdatedAt)
	return insertDoc(ctx, s, colCertifications, c.ID, c)
}

func (s *Store) ListCertificationsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Certification, error) {
	return queryDocs[models.Certification](ctx, s, colCertifications, map[string]string{"manufacturerId": manufacturerID})
}
