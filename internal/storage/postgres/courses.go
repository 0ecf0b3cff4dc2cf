package postgres

import (
	"context"

	"github.com/lib/pq"

	"github.com/jamakers/platform/pkg/models"
)

const courseCols = `id, title, description, level, modules, created_at, updated_at`

func scanCourse(row rowScanner) (*models.Course, error) {
	var c models.Course
	var mods pq.StringArray
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Level,
		&mods, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Modules = []string(mods)
	if c.Modules == nil {
		c.Modules = []string{}
	}
	return &c, nil
}

func (s *Store) CreateCourse(ctx context.Context, c *models.Course) error {
	if c.ID == "" {
		c.ID = newID()
	}
	query := `
        INSERT INTO courses (id, title, description, level, modules)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		c.ID, c.Title, c.Description, c.Level, pq.StringArray(c.Modules)).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *Store) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+courseCols+` FROM courses WHERE id=$1`, id)
	c, err := scanCourse(row)
	if noRows(err) {
		return nil, nil
	}
	return c, err
}

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+courseCols+` FROM courses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	if e.ID == "" {
		e.ID = newID()
	}
	query := `
        INSERT INTO enrollments (id, course_id, user_id, progress, completed_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		e.ID, e.CourseID, e.UserID, e.Progress, e.CompletedAt).
		Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (s *Store) GetEnrollment(ctx context.Context, id string) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := s.db.GetContext(ctx, e, `SELECT * FROM enrollments WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (s *Store) GetEnrollmentByCourseAndUser(ctx context.Context, courseID, userID string) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := s.db.GetContext(ctx, e, `
        SELECT * FROM enrollments
        WHERE course_id=$1 AND user_id=$2
        ORDER BY created_at DESC LIMIT 1`, courseID, userID)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (s *Store) ListEnrollmentsByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	out := []models.Enrollment{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM enrollments WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	return out, err
}

func (s *Store) UpdateEnrollment(ctx context.Context, e *models.Enrollment) error {
	query := `
        UPDATE enrollments
        SET progress=$1, completed_at=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query, e.Progress, e.CompletedAt, e.ID).
		Scan(&e.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}
