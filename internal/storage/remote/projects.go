package remote

import (
	"context"
	"sort"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = models.ProjectStatusDraft
	}
	storage.Touch(&p.CreatedAt, &p.UpdatedAt)
	return insertDoc(ctx, s, colProjects, p.ID, p)
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return getDoc[models.Project](ctx, s, colProjects, id)
}

func (s *Store) ListProjectsByBrand(ctx context.Context, brandID string) ([]models.Project, error) {
	return queryDocs[models.Project](ctx, s, colProjects, map[string]string{"brandId": brandID})
}

func (s *Store) ListProjectsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Project, error) {
	return queryDocs[models.Project](ctx, s, colProjects, map[string]string{"manufacturerId": manufacturerID})
}

func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	existing, err := getDoc[models.Project](ctx, s, colProjects, p.ID)
	if err != nil || existing == nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &p.UpdatedAt)
	return replaceDoc(ctx, s, colProjects, p.ID, p)
}

func (s *Store) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.Status == "" {
		m.Status = models.MilestoneStatusPending
	}
	storage.Touch(&m.CreatedAt, &m.UpdatedAt)
	return insertDoc(ctx, s, colMilestones, m.ID, m)
}

func (s *Store) GetMilestone(ctx context.Context, id string) (*models.Milestone, error) {
	return getDoc[models.Milestone](ctx, s, colMilestones, id)
}

func (s *Store) ListMilestonesByProject(ctx context.Context, projectID string) ([]models.Milestone, error) {
	out, err := queryDocs[models.Milestone](ctx, s, colMilestones, map[string]string{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateMilestone(ctx context.Context, m *models.Milestone) error {
	existing, err := getDoc[models.Milestone](ctx, s, colMilestones, m.ID)
	if err != nil || existing == nil {
		return err
	}
	m.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &m.UpdatedAt)
	return replaceDoc(ctx, s, colMilestones, m.ID, m)
}
