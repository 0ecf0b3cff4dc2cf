package remote

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateVerificationRequest(ctx context.Context, vr *models.VerificationRequest) error {
	if vr.ID == "" {
		vr.ID = newID()
	}
	if vr.Status == "" {
		vr.Status = models.VerificationStatusPending
	}
	if vr.Documents == nil {
		vr.Documents = []string{}
	}
	storage.Touch(&vr.CreatedAt, &vr.UpdatedAt)
	return insertDoc(ctx, s, colVerifications, vr.ID, vr)
}

func (s *Store) GetVerificationRequest(ctx context.Context, id string) (*models.VerificationRequest, error) {
	return getDoc[models.VerificationRequest](ctx, s, colVerifications, id)
}

func (s *Store) ListVerificationRequests(ctx context.Context, status string) ([]models.VerificationRequest, error) {
	var filters map[string]string
	if status != "" {
		filters = map[string]string{"status": status}
	}
	return queryDocs[models.VerificationRequest](ctx, s, colVerifications, filters)
}

func (s *Store) UpdateVerificationRequest(ctx context.Context, vr *models.VerificationRequest) error {
	existing, err := getDoc[models.VerificationRequest](ctx, s, colVerifications, vr.ID)
	if err != nil || existing == nil {
		return err
	}
	vr.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &vr.UpdatedAt)
	return replaceDoc(ctx, s, colVerifications, vr.ID, vr)
}
