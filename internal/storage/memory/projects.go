package memory

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = models.ProjectStatusDraft
	}
	s.stamp(&p.CreatedAt, &p.UpdatedAt)
	s.projects[p.ID] = *p
	s.track(p.ID)
	return nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Store) ListProjectsByBrand(ctx context.Context, brandID string) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Project{}
	for _, p := range s.projects {
		if p.BrandID == brandID {
			out = append(out, p)
		}
	}
	sortByInsertDesc(s, out, func(p models.Project) string { return p.ID })
	return out, nil
}

func (s *Store) ListProjectsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Project{}
	for _, p := range s.projects {
		if p.ManufacturerID == manufacturerID {
			out = append(out, p)
		}
	}
	sortByInsertDesc(s, out, func(p models.Project) string { return p.ID })
	return out, nil
}

func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[p.ID]
	if !ok {
		return nil
	}
	p.CreatedAt = cur.CreatedAt
	s.stamp(nil, &p.UpdatedAt)
	s.projects[p.ID] = *p
	return nil
}

func (s *Store) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = newID()
	}
	if m.Status == "" {
		m.Status = models.MilestoneStatusPending
	}
	s.stamp(&m.CreatedAt, &m.UpdatedAt)
	s.milestones[m.ID] = *m
	s.track(m.ID)
	return nil
}

func (s *Store) GetMilestone(ctx context.Context, id string) (*models.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.milestones[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *Store) ListMilestonesByProject(ctx context.Context, projectID string) ([]models.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Milestone{}
	for _, m := range s.milestones {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	// milestones read oldest first so the timeline renders in order
	sortByInsertDesc(s, out, func(m models.Milestone) string { return m.ID })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *Store) UpdateMilestone(ctx context.Context, m *models.Milestone) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.milestones[m.ID]
	if !ok {
		return nil
	}
	m.CreatedAt = cur.CreatedAt
	s.stamp(nil, &m.UpdatedAt)
	s.milestones[m.ID] = *m
	return nil
}
