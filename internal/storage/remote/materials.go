package remote

import (
	"context"
	"strings"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateRawMaterial(ctx context.Context, rm *models.RawMaterial) error {
	if rm.ID == "" {
		rm.ID = newID()
	}
	storage.Touch(&rm.CreatedAt, &rm.UpdatedAt)
	return insertDoc(ctx, s, colRawMaterials, rm.ID, rm)
}

func (s *Store) GetRawMaterial(ctx context.Context, id string) (*models.RawMaterial, error) {
	return getDoc[models.RawMaterial](ctx, s, colRawMaterials, id)
}

func (s *Store) ListRawMaterials(ctx context.Context, category string) ([]models.RawMaterial, error) {
	all, err := queryDocs[models.RawMaterial](ctx, s, colRawMaterials, nil)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return all, nil
	}
	out := []models.RawMaterial{}
	for _, rm := range all {
		if strings.EqualFold(rm.Category, category) {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (s *Store) CreateSupplier(ctx context.Context, sp *models.RawMaterialSupplier) error {
	if sp.ID == "" {
		sp.ID = newID()
	}
	storage.Touch(&sp.CreatedAt, &sp.UpdatedAt)
	return insertDoc(ctx, s, colSuppliers, sp.ID, sp)
}

func (s *Store) ListSuppliersByMaterial(ctx context.Context, rawMaterialID string) ([]models.RawMaterialSupplier, error) {
	return queryDocs[models.RawMaterialSupplier](ctx, s, colSuppliers, map[string]string{"rawMaterialId": rawMaterialID})
}

func (s *Store) CreateProjectMaterial(ctx context.Context, pm *models.ProjectMaterial) error {
	if pm.ID == "" {
		pm.ID = newID()
	}
	if pm.TotalCents == 0 {
		pm.TotalCents = int64(pm.Quantity) * pm.UnitPriceCents
	}
	storage.Touch(&pm.CreatedAt, &pm.UpdatedAt)
	return insertDoc(ctx, s, colProjectMats, pm.ID, pm)
}

func (s *Store) ListProjectMaterials(ctx context.Context, projectID string) ([]models.ProjectMaterial, error) {
	return queryDocs[models.ProjectMaterial](ctx, s, colProjectMats, map[string]string{"projectId": projectID})
}
