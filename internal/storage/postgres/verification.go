package postgres

import (
	"context"

	"github.com/lib/pq"

	"github.com/jamakers/platform/pkg/models"
)

const verificationCols = `id, manufacturer_id, status, documents, reviewer_notes, created_at, updated_at`

func scanVerification(row rowScanner) (*models.VerificationRequest, error) {
	var vr models.VerificationRequest
	var docs pq.StringArray
	err := row.Scan(&vr.ID, &vr.ManufacturerID, &vr.Status, &docs,
		&vr.ReviewerNotes, &vr.CreatedAt, &vr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	vr.Documents = []string(docs)
	if vr.Documents == nil {
		vr.Documents = []string{}
	}
	return &vr, nil
}

func (s *Store) CreateVerificationRequest(ctx context.Context, vr *models.VerificationRequest) error {
	if vr.ID == "" {
		vr.ID = newID()
	}
	if vr.Status == "" {
		vr.Status = models.VerificationStatusPending
	}
	query := `
        INSERT INTO verification_requests (id, manufacturer_id, status, documents, reviewer_notes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		vr.ID, vr.ManufacturerID, vr.Status, pq.StringArray(vr.Documents), vr.ReviewerNotes).
		Scan(&vr.CreatedAt, &vr.UpdatedAt)
}

func (s *Store) GetVerificationRequest(ctx context.Context, id string) (*models.VerificationRequest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+verificationCols+` FROM verification_requests WHERE id=$1`, id)
	vr, err := scanVerification(row)
	if noRows(err) {
		return nil, nil
	}
	return vr, err
}

func (s *Store) ListVerificationRequests(ctx context.Context, status string) ([]models.VerificationRequest, error) {
	query := `SELECT ` + verificationCols + ` FROM verification_requests`
	var args []any
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.VerificationRequest{}
	for rows.Next() {
		vr, err := scanVerification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *vr)
	}
	return out, rows.Err()
}

func (s *Store) UpdateVerificationRequest(ctx context.Context, vr *models.VerificationRequest) error {
	query := `
        UPDATE verification_requests
        SET status=$1, documents=$2, reviewer_notes=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query,
		vr.Status, pq.StringArray(vr.Documents), vr.ReviewerNotes, vr.ID).
		Scan(&vr.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}
