package memory

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateRfq(ctx context.Context, r *models.Rfq) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = newID()
	}
	if r.Status == "" {
		r.Status = models.RfqStatusDraft
	}
	s.stamp(&r.CreatedAt, &r.UpdatedAt)
	s.rfqs[r.ID] = *r
	s.track(r.ID)
	return nil
}

func (s *Store) GetRfq(ctx context.Context, id string) (*models.Rfq, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.rfqs[id]; ok {
		storage.ApplyRfqExpiry(&r)
		return &r, nil
	}
	return nil, nil
}

func (s *Store) ListRfqs(ctx context.Context, f storage.RfqFilter) ([]models.Rfq, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Rfq{}
	for _, r := range s.rfqs {
		// r is a copy; presenting expiry here leaves the stored record untouched.
		// The status filter runs afterwards so an overdue RFQ never makes the
		// active board.
		storage.ApplyRfqExpiry(&r)
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		out = append(out, r)
	}
	sortByInsertDesc(s, out, func(r models.Rfq) string { return r.ID })
	return out, nil
}

func (s *Store) ListRfqsByBrand(ctx context.Context, brandID string) ([]models.Rfq, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Rfq{}
	for _, r := range s.rfqs {
		if r.BrandID == brandID {
			storage.ApplyRfqExpiry(&r)
			out = append(out, r)
		}
	}
	sortByInsertDesc(s, out, func(r models.Rfq) string { return r.ID })
	return out, nil
}

func (s *Store) UpdateRfq(ctx context.Context, r *models.Rfq) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.rfqs[r.ID]
	if !ok {
		return nil
	}
	r.CreatedAt = cur.CreatedAt
	s.stamp(nil, &r.UpdatedAt)
	s.rfqs[r.ID] = *r
	return nil
}

func (s *Store) CreateRfqResponse(ctx context.Context, resp *models.RfqResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resp.ID == "" {
		resp.ID = newID()
	}
	s.stamp(&resp.CreatedAt, &resp.UpdatedAt)
	s.rfqResponses[resp.ID] = *resp
	s.track(resp.ID)
	return nil
}

func (s *Store) GetRfqResponse(ctx context.Context, id string) (*models.RfqResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.rfqResponses[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *Store) ListResponsesByRfq(ctx context.Context, rfqID string) ([]models.RfqResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.RfqResponse{}
	for _, r := range s.rfqResponses {
		if r.RfqID == rfqID {
			out = append(out, r)
		}
	}
	sortByInsertDesc(s, out, func(r models.RfqResponse) string { return r.ID })
	return out, nil
}

func (s *Store) ListResponsesByManufacturer(ctx context.Context, manufacturerID string) ([]models.RfqResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.RfqResponse{}
	for _, r := range s.rfqResponses {
		if r.ManufacturerID == manufacturerID {
			out = append(out, r)
		}
	}
	sortByInsertDesc(s, out, func(r models.RfqResponse) string { return r.ID })
	return out, nil
}

func (s *Store) SetRfqResponseAwarded(ctx context.Context, id string, awarded bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rfqResponses[id]
	if !ok {
		return nil
	}
	r.IsAwarded = awarded
	s.stamp(nil, &r.UpdatedAt)
	s.rfqResponses[id] = r
	return nil
}
