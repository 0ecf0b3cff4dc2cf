package memory

import (
	"context"
	"strings"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateRawMaterial(ctx context.Context, rm *models.RawMaterial) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rm.ID == "" {
		rm.ID = newID()
	}
	s.stamp(&rm.CreatedAt, &rm.UpdatedAt)
	s.rawMaterials[rm.ID] = *rm
	s.track(rm.ID)
	return nil
}

func (s *Store) GetRawMaterial(ctx context.Context, id string) (*models.RawMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rm, ok := s.rawMaterials[id]; ok {
		return &rm, nil
	}
	return nil, nil
}

func (s *Store) ListRawMaterials(ctx context.Context, category string) ([]models.RawMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.RawMaterial{}
	for _, rm := range s.rawMaterials {
		if category != "" && !strings.EqualFold(rm.Category, category) {
			continue
		}
		out = append(out, rm)
	}
	sortByInsertDesc(s, out, func(rm models.RawMaterial) string { return rm.ID })
	return out, nil
}

func (s *Store) CreateSupplier(ctx context.Context, sp *models.RawMaterialSupplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sp.ID == "" {
		sp.ID = newID()
	}
	s.stamp(&sp.CreatedAt, &sp.UpdatedAt)
	s.suppliers[sp.ID] = *sp
	s.track(sp.ID)
	return nil
}

func (s *Store) ListSuppliersByMaterial(ctx context.Context, rawMaterialID string) ([]models.RawMaterialSupplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.RawMaterialSupplier{}
	for _, sp := range s.suppliers {
		if sp.RawMaterialID == rawMaterialID {
			out = append(out, sp)
		}
	}
	sortByInsertDesc(s, out, func(sp models.RawMaterialSupplier) string { return sp.ID })
	return out, nil
}

func (s *Store) CreateProjectMaterial(ctx context.Context, pm *models.ProjectMaterial) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pm.ID == "" {
		pm.ID = newID()
	}
	if pm.TotalCents == 0 {
		pm.TotalCents = int64(pm.Quantity) * pm.UnitPriceCents
	}
	s.stamp(&pm.CreatedAt, &pm.UpdatedAt)
	s.projectMaterials[pm.ID] = *pm
	s.track(pm.ID)
	return nil
}

func (s *Store) ListProjectMaterials(ctx context.Context, projectID string) ([]models.ProjectMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ProjectMaterial{}
	for _, pm := range s.projectMaterials {
		if pm.ProjectID == projectID {
			out = append(out, pm)
		}
	}
	sortByInsertDesc(s, out, func(pm models.ProjectMaterial) string { return pm.ID })
	return out, nil
}
