package remote

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateRfq(ctx context.Context, r *models.Rfq) error {
	if r.ID == "" {
		r.ID = newID()
	}
	if r.Status == "" {
		r.Status = models.RfqStatusDraft
	}
	storage.Touch(&r.CreatedAt, &r.UpdatedAt)
	return insertDoc(ctx, s, colRfqs, r.ID, r)
}

func (s *Store) GetRfq(ctx context.Context, id string) (*models.Rfq, error) {
	r, err := getDoc[models.Rfq](ctx, s, colRfqs, id)
	if err != nil || r == nil {
		return nil, err
	}
	storage.ApplyRfqExpiry(r)
	return r, nil
}

func (s *Store) ListRfqs(ctx context.Context, f storage.RfqFilter) ([]models.Rfq, error) {
	all, err := queryDocs[models.Rfq](ctx, s, colRfqs, nil)
	if err != nil {
		return nil, err
	}
	out := []models.Rfq{}
	for i := range all {
		storage.ApplyRfqExpiry(&all[i])
		if f.Status != "" && all[i].Status != f.Status {
			continue
		}
		if f.Category != "" && all[i].Category != f.Category {
			continue
		}
		out = append(out, all[i])
	}
	return out, nil
}

func (s *Store) ListRfqsByBrand(ctx context.Context, brandID string) ([]models.Rfq, error) {
	out, err := queryDocs[models.Rfq](ctx, s, colRfqs, map[string]string{"brandId": brandID})
	if err != nil {
		return nil, err
	}
	for i := range out {
		storage.ApplyRfqExpiry(&out[i])
	}
	return out, nil
}

func (s *Store) UpdateRfq(ctx context.Context, r *models.Rfq) error {
	existing, err := getDoc[models.Rfq](ctx, s, colRfqs, r.ID)
	if err != nil || existing == nil {
		return err
	}
	r.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &r.UpdatedAt)
	return replaceDoc(ctx, s, colRfqs, r.ID, r)
}

func (s *Store) CreateRfqResponse(ctx context.Context, resp *models.RfqResponse) error {
	if resp.ID == "" {
		resp.ID = newID()
	}
	storage.Touch(&resp.CreatedAt, &resp.UpdatedAt)
	return insertDoc(ctx, s, colRfqResponses, resp.ID, resp)
}

func (s *Store) GetRfqResponse(ctx context.Context, id string) (*models.RfqResponse, error) {
	return getDoc[models.RfqResponse](ctx, s, colRfqResponses, id)
}

func (s *Store) ListResponsesByRfq(ctx context.Context, rfqID string) ([]models.RfqResponse, error) {
	return queryDocs[models.RfqResponse](ctx, s, colRfqResponses, map[string]string{"rfqId": rfqID})
}

func (s *Store) ListResponsesByManufacturer(ctx context.Context, manufacturerID string) ([]models.RfqResponse, error) {
	return queryDocs[models.RfqResponse](ctx, s, colRfqResponses, map[string]string{"manufacturerId": manufacturerID})
}

func (s *Store) SetRfqResponseAwarded(ctx context.Context, id string, awarded bool) error {
	resp, err := getDoc[models.RfqResponse](ctx, s, colRfqResponses, id)
	if err != nil || resp == nil {
		return err
	}
	resp.IsAwarded = awarded
	storage.Touch(nil, &resp.UpdatedAt)
	return replaceDoc(ctx, s, colRfqResponses, id, resp)
}
