package memory

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateCourse(ctx context.Context, c *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	s.stamp(&c.CreatedAt, &c.UpdatedAt)
	s.courses[c.ID] = *c
	s.track(c.ID)
	return nil
}

func (s *Store) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.courses[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Course{}
	for _, c := range s.courses {
		out = append(out, c)
	}
	sortByInsertDesc(s, out, func(c models.Course) string { return c.ID })
	return out, nil
}

func (s *Store) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = newID()
	}
	s.stamp(&e.CreatedAt, &e.UpdatedAt)
	s.enrollments[e.ID] = *e
	s.track(e.ID)
	return nil
}

func (s *Store) GetEnrollment(ctx context.Context, id string) (*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.enrollments[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (s *Store) GetEnrollmentByCourseAndUser(ctx context.Context, courseID, userID string) (*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Enrollment
	for id, e := range s.enrollments {
		if e.CourseID != courseID || e.UserID != userID {
			continue
		}
		e := e
		if found == nil || s.newer(id, found.ID) {
			found = &e
		}
	}
	return found, nil
}

func (s *Store) ListEnrollmentsByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Enrollment{}
	for _, e := range s.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sortByInsertDesc(s, out, func(e models.Enrollment) string { return e.ID })
	return out, nil
}

func (s *Store) UpdateEnrollment(ctx context.Context, e *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.enrollments[e.ID]
	if !ok {
		return nil
	}
	e.CreatedAt = cur.CreatedAt
	s.stamp(nil, &e.UpdatedAt)
	s.enrollments[e.ID] = *e
	return nil
}
