package postgres

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateRawMaterial(ctx context.Context, rm *models.RawMaterial) error {
	if rm.ID == "" {
		rm.ID = newID()
	}
	query := `
        INSERT INTO raw_materials (id, name, category, unit, description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		rm.ID, rm.Name, rm.Category, rm.Unit, rm.Description).
		Scan(&rm.CreatedAt, &rm.UpdatedAt)
}

func (s *Store) GetRawMaterial(ctx context.Context, id string) (*models.RawMaterial, error) {
	rm := &models.RawMaterial{}
	err := s.db.GetContext(ctx, rm, `SELECT * FROM raw_materials WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return rm, nil
}

func (s *Store) ListRawMaterials(ctx context.Context, category string) ([]models.RawMaterial, error) {
	out := []models.RawMaterial{}
	if category != "" {
		err := s.db.SelectContext(ctx, &out,
			`SELECT * FROM raw_materials WHERE LOWER(category)=LOWER($1) ORDER BY created_at DESC`, category)
		return out, err
	}
	err := s.db.SelectContext(ctx, &out, `SELECT * FROM raw_materials ORDER BY created_at DESC`)
	return out, err
}

func (s *Store) CreateSupplier(ctx context.Context, sp *models.RawMaterialSupplier) error {
	if sp.ID == "" {
		sp.ID = newID()
	}
	query := `
        INSERT INTO raw_material_suppliers (id, raw_material_id, name, parish, unit_price_cents)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		sp.ID, sp.RawMaterialID, sp.Name, sp.Parish, sp.UnitPriceCents).
		Scan(&sp.CreatedAt, &sp.UpdatedAt)
}

func (s *Store) ListSuppliersByMaterial(ctx context.Context, rawMaterialID string) ([]models.RawMaterialSupplier, error) {
	out := []models.RawMaterialSupplier{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM raw_material_suppliers WHERE raw_material_id=$1 ORDER BY created_at DESC`, rawMaterialID)
	return out, err
}

func (s *Store) CreateProjectMaterial(ctx context.Context, pm *models.ProjectMaterial) error {
	if pm.ID == "" {
		pm.ID = newID()
	}
	if pm.TotalCents == 0 {
		pm.TotalCents = int64(pm.Quantity) * pm.UnitPriceCents
	}
	query := `
        INSERT INTO project_materials (id, project_id, raw_material_id, supplier_id, quantity, unit_price_cents, total_cents)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		pm.ID, pm.ProjectID, pm.RawMaterialID, pm.SupplierID,
		pm.Quantity, pm.UnitPriceCents, pm.TotalCents).
		Scan(&pm.CreatedAt, &pm.UpdatedAt)
}

func (s *Store) ListProjectMaterials(ctx context.Context, projectID string) ([]models.ProjectMaterial, error) {
	out := []models.ProjectMaterial{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM project_materials WHERE project_id=$1 ORDER BY created_at DESC`, projectID)
	return out, err
}
