package postgres

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = models.ProjectStatusDraft
	}
	query := `
        INSERT INTO projects (id, brand_id, rfq_id, manufacturer_id, name, description, status, progress)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		p.ID, p.BrandID, p.RfqID, p.ManufacturerID, p.Name, p.Description, p.Status, p.Progress).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	p := &models.Project{}
	err := s.db.GetContext(ctx, p, `SELECT * FROM projects WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *Store) ListProjectsByBrand(ctx context.Context, brandID string) ([]models.Project, error) {
	out := []models.Project{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM projects WHERE brand_id=$1 ORDER BY created_at DESC`, brandID)
	return out, err
}

func (s *Store) ListProjectsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Project, error) {
	out := []models.Project{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM projects WHERE manufacturer_id=$1 ORDER BY created_at DESC`, manufacturerID)
	return out, err
}

func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	query := `
        UPDATE projects
        SET rfq_id=$1, manufacturer_id=$2, name=$3, description=$4, status=$5, progress=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query,
		p.RfqID, p.ManufacturerID, p.Name, p.Description, p.Status, p.Progress, p.ID).
		Scan(&p.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}

func (s *Store) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.Status == "" {
		m.Status = models.MilestoneStatusPending
	}
	query := `
        INSERT INTO milestones (id, project_id, name, status, due_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		m.ID, m.ProjectID, m.Name, m.Status, m.DueDate).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (s *Store) GetMilestone(ctx context.Context, id string) (*models.Milestone, error) {
	m := &models.Milestone{}
	err := s.db.GetContext(ctx, m, `SELECT * FROM milestones WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (s *Store) ListMilestonesByProject(ctx context.Context, projectID string) ([]models.Milestone, error) {
	out := []models.Milestone{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM milestones WHERE project_id=$1 ORDER BY created_at ASC`, projectID)
	return out, err
}

func (s *Store) UpdateMilestone(ctx context.Context, m *models.Milestone) error {
	query := `
        UPDATE milestones
        SET name=$1, status=$2, due_date=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query, m.Name, m.Status, m.DueDate, m.ID).
		Scan(&m.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}
