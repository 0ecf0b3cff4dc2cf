package memory

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateVerificationRequest(ctx context.Context, vr *models.VerificationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vr.ID == "" {
		vr.ID = newID()
	}
	if vr.Status == "" {
		vr.Status = models.VerificationStatusPending
	}
	s.stamp(&vr.CreatedAt, &vr.UpdatedAt)
	s.verifications[vr.ID] = *vr
	s.track(vr.ID)
	return nil
}

func (s *Store) GetVerificationRequest(ctx context.Context, id string) (*models.VerificationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if vr, ok := s.verifications[id]; ok {
		return &vr, nil
	}
	return nil, nil
}

func (s *Store) ListVerificationRequests(ctx context.Context, status string) ([]models.VerificationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.VerificationRequest{}
	for _, vr := range s.verifications {
		if status != "" && vr.Status != status {
			continue
		}
		out = append(out, vr)
	}
	sortByInsertDesc(s, out, func(vr models.VerificationRequest) string { return vr.ID })
	return out, nil
}

func (s *Store) UpdateVerificationRequest(ctx context.Context, vr *models.VerificationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.verifications[vr.ID]
	if !ok {
		return nil
	}
	vr.CreatedAt = cur.CreatedAt
	s.stamp(nil, &vr.UpdatedAt)
	s.verifications[vr.ID] = *vr
	return nil
}
