package memory

import (
	"context"
	"strings"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// Nothing stops two profile rows existing for one user (no unique constraint
// in the original data model), so every GetByUserID picks the most recently
// created row for that user.

// Manufacturers

func (s *Store) CreateManufacturer(ctx context.Context, m *models.Manufacturer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = newID()
	}
	s.stamp(&m.CreatedAt, &m.UpdatedAt)
	s.manufacturers[m.ID] = *m
	s.track(m.ID)
	return nil
}

func (s *Store) GetManufacturer(ctx context.Context, id string) (*models.Manufacturer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.manufacturers[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *Store) GetManufacturerByUserID(ctx context.Context, userID string) (*models.Manufacturer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Manufacturer
	for id, m := range s.manufacturers {
		if m.UserID != userID {
			continue
		}
		m := m
		if found == nil || s.newer(id, found.ID) {
			found = &m
		}
	}
	return found, nil
}

func (s *Store) ListManufacturers(ctx context.Context, f storage.ManufacturerFilter) ([]models.Manufacturer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Manufacturer{}
	for _, m := range s.manufacturers {
		if f.Parish != "" && !strings.EqualFold(m.Parish, f.Parish) {
			continue
		}
		if f.VerifiedOnly && !m.Verified {
			continue
		}
		if f.Capability != "" && !hasCapability(m.Capabilities, f.Capability) {
			continue
		}
		out = append(out, m)
	}
	sortByInsertDesc(s, out, func(m models.Manufacturer) string { return m.ID })
	return out, nil
}

func hasCapability(caps []string, want string) bool {
	for _, c := range caps {
		if strings.EqualFold(c, want) {
			return true
		}
	}
	return false
}

func (s *Store) UpdateManufacturer(ctx context.Context, m *models.Manufacturer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.manufacturers[m.ID]
	if !ok {
		return nil
	}
	m.CreatedAt = cur.CreatedAt
	s.stamp(nil, &m.UpdatedAt)
	s.manufacturers[m.ID] = *m
	return nil
}

// Brands

func (s *Store) CreateBrand(ctx context.Context, b *models.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = newID()
	}
	s.stamp(&b.CreatedAt, &b.UpdatedAt)
	s.brands[b.ID] = *b
	s.track(b.ID)
	return nil
}

func (s *Store) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.brands[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (s *Store) GetBrandByUserID(ctx context.Context, userID string) (*models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Brand
	for id, b := range s.brands {
		if b.UserID != userID {
			continue
		}
		b := b
		if found == nil || s.newer(id, found.ID) {
			found = &b
		}
	}
	return found, nil
}

func (s *Store) ListBrands(ctx context.Context) ([]models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Brand{}
	for _, b := range s.brands {
		out = append(out, b)
	}
	sortByInsertDesc(s, out, func(b models.Brand) string { return b.ID })
	return out, nil
}

func (s *Store) UpdateBrand(ctx context.Context, b *models.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.brands[b.ID]
	if !ok {
		return nil
	}
	b.CreatedAt = cur.CreatedAt
	s.stamp(nil, &b.UpdatedAt)
	s.brands[b.ID] = *b
	return nil
}

// Designers

func (s *Store) CreateDesigner(ctx context.Context, d *models.Designer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == "" {
		d.ID = newID()
	}
	s.stamp(&d.CreatedAt, &d.UpdatedAt)
	s.designers[d.ID] = *d
	s.track(d.ID)
	return nil
}

func (s *Store) GetDesigner(ctx context.Context, id string) (*models.Designer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.designers[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (s *Store) GetDesignerByUserID(ctx context.Context, userID string) (*models.Designer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Designer
	for id, d := range s.designers {
		if d.UserID != userID {
			continue
		}
		d := d
		if found == nil || s.newer(id, found.ID) {
			found = &d
		}
	}
	return found, nil
}

func (s *Store) ListDesigners(ctx context.Context) ([]models.Designer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Designer{}
	for _, d := range s.designers {
		out = append(out, d)
	}
	sortByInsertDesc(s, out, func(d models.Designer) string { return d.ID })
	return out, nil
}

func (s *Store) UpdateDesigner(ctx context.Context, d *models.Designer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.designers[d.ID]
	if !ok {
		return nil
	}
	d.CreatedAt = cur.CreatedAt
	s.stamp(nil, &d.UpdatedAt)
	s.designers[d.ID] = *d
	return nil
}

// Creators

func (s *Store) CreateCreator(ctx context.Context, c *models.Creator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	s.stamp(&c.CreatedAt, &c.UpdatedAt)
	s.creators[c.ID] = *c
	s.track(c.ID)
	return nil
}

func (s *Store) GetCreator(ctx context.Context, id string) (*models.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.creators[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *Store) GetCreatorByUserID(ctx context.Context, userID string) (*models.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Creator
	for id, c := range s.creators {
		if c.UserID != userID {
			continue
		}
		c := c
		if found == nil || s.newer(id, found.ID) {
			found = &c
		}
	}
	return found, nil
}

func (s *Store) ListCreators(ctx context.Context) ([]models.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Creator{}
	for _, c := range s.creators {
		out = append(out, c)
	}
	sortByInsertDesc(s, out, func(c models.Creator) string { return c.ID })
	return out, nil
}

func (s *Store) UpdateCreator(ctx context.Context, c *models.Creator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.creators[c.ID]
	if !ok {
		return nil
	}
	c.CreatedAt = cur.CreatedAt
	s.stamp(nil, &c.UpdatedAt)
	s.creators[c.ID] = *c
	return nil
}

// Financial institutions

func (s *Store) CreateInstitution(ctx context.Context, fi *models.FinancialInstitution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fi.ID == "" {
		fi.ID = newID()
	}
	s.stamp(&fi.CreatedAt, &fi.UpdatedAt)
	s.institutions[fi.ID] = *fi
	s.track(fi.ID)
	return nil
}

func (s *Store) GetInstitution(ctx context.Context, id string) (*models.FinancialInstitution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fi, ok := s.institutions[id]; ok {
		return &fi, nil
	}
	return nil, nil
}

func (s *Store) GetInstitutionByUserID(ctx context.Context, userID string) (*models.FinancialInstitution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.FinancialInstitution
	for id, fi := range s.institutions {
		if fi.UserID != userID {
			continue
		}
		fi := fi
		if found == nil || s.newer(id, found.ID) {
			found = &fi
		}
	}
	return found, nil
}

func (s *Store) ListInstitutions(ctx context.Context) ([]models.FinancialInstitution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.FinancialInstitution{}
	for _, fi := range s.institutions {
		out = append(out, fi)
	}
	sortByInsertDesc(s, out, func(fi models.FinancialInstitution) string { return fi.ID })
	return out, nil
}

func (s *Store) UpdateInstitution(ctx context.Context, fi *models.FinancialInstitution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.institutions[fi.ID]
	if !ok {
		return nil
	}
	fi.CreatedAt = cur.CreatedAt
	s.stamp(nil, &fi.UpdatedAt)
	s.institutions[fi.ID] = *fi
	return nil
}
