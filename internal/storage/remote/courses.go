package remote

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateCourse(ctx context.Context, c *models.Course) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Modules == nil {
		c.Modules = []string{}
	}
	storage.Touch(&c.CreatedAt, &c.UpdatedAt)
	return insertDoc(ctx, s, colCourses, c.ID, c)
}

func (s *Store) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	return getDoc[models.Course](ctx, s, colCourses, id)
}

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	return queryDocs[models.Course](ctx, s, colCourses, nil)
}

func (s *Store) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	if e.ID == "" {
		e.ID = newID()
	}
	storage.Touch(&e.CreatedAt, &e.UpdatedAt)
	return insertDoc(ctx, s, colEnrollments, e.ID, e)
}

func (s *Store) GetEnrollment(ctx context.Context, id string) (*models.Enrollment, error) {
	return getDoc[models.Enrollment](ctx, s, colEnrollments, id)
}

func (s *Store) GetEnrollmentByCourseAndUser(ctx context.Context, courseID, userID string) (*models.Enrollment, error) {
	out, err := queryDocs[models.Enrollment](ctx, s, colEnrollments, map[string]string{
		"courseId": courseID,
		"userId":   userID,
	})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (s *Store) ListEnrollmentsByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	return queryDocs[models.Enrollment](ctx, s, colEnrollments, map[string]string{"userId": userID})
}

func (s *Store) UpdateEnrollment(ctx context.Context, e *models.Enrollment) error {
	existing, err := getDoc[models.Enrollment](ctx, s, colEnrollments, e.ID)
	if err != nil || existing == nil {
		return err
	}
	e.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &e.UpdatedAt)
	return replaceDoc(ctx, s, colEnrollments, e.ID, e)
}
