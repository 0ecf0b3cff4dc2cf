package memory

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = newID()
	}
	s.stamp(&r.CreatedAt, &r.UpdatedAt)
	s.reviews[r.ID] = *r
	s.track(r.ID)
	return nil
}

func (s *Store) ListReviewsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Review{}
	for _, r := range s.reviews {
		if r.ManufacturerID == manufacturerID {
			out = append(out, r)
		}
	}
	sortByInsertDesc(s, out, func(r models.Review) string { return r.ID })
	return out, nil
}

func (s *Store) CreateCertification(ctx context.Context, c *models.Certification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	s.stamp(&c.CreatedAt, &c.UpdatedAt)
	s.certifications[c.ID] = *c
	s.track(c.ID)
	return nil
}

func (s *Store) ListCertificationsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Certification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Certification{}
	for _, c := range s.certifications {
		if c.ManufacturerID == manufacturerID {
			out = append(out, c)
		}
	}
	sortByInsertDesc(s, out, func(c models.Certification) string { return c.ID })
	return out, nil
}
