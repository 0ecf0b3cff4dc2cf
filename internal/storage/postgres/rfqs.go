package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

const rfqCols = `id, brand_id, title, description, category, quantity, budget_cents,
    status, requirements, expires_at, created_at, updated_at`

func scanRfq(row rowScanner) (*models.Rfq, error) {
	var r models.Rfq
	var reqs []byte
	err := row.Scan(&r.ID, &r.BrandID, &r.Title, &r.Description, &r.Category,
		&r.Quantity, &r.BudgetCents, &r.Status, &reqs, &r.ExpiresAt,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(reqs) > 0 {
		if err := json.Unmarshal(reqs, &r.Requirements); err != nil {
			return nil, fmt.Errorf("decode rfq requirements: %w", err)
		}
	}
	return &r, nil
}

func (s *Store) CreateRfq(ctx context.Context, r *models.Rfq) error {
	if r.ID == "" {
		r.ID = newID()
	}
	if r.Status == "" {
		r.Status = models.RfqStatusDraft
	}
	reqs, err := json.Marshal(r.Requirements)
	if err != nil {
		return fmt.Errorf("encode rfq requirements: %w", err)
	}
	query := `
        INSERT INTO rfqs (id, brand_id, title, description, category, quantity, budget_cents, status, requirements, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		r.ID, r.BrandID, r.Title, r.Description, r.Category, r.Quantity,
		r.BudgetCents, r.Status, reqs, r.ExpiresAt).
		Scan(&r.CreatedAt, &r.UpdatedAt)
}

func (s *Store) GetRfq(ctx context.Context, id string) (*models.Rfq, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+rfqCols+` FROM rfqs WHERE id=$1`, id)
	r, err := scanRfq(row)
	if noRows(err) {
		return nil, nil
	}
	if err == nil {
		storage.ApplyRfqExpiry(r)
	}
	return r, err
}

func (s *Store) ListRfqs(ctx context.Context, f storage.RfqFilter) ([]models.Rfq, error) {
	query := `SELECT ` + rfqCols + ` FROM rfqs`
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		query += ` WHERE category = $1`
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Rfq{}
	for rows.Next() {
		r, err := scanRfq(rows)
		if err != nil {
			return nil, err
		}
		// the status filter matches the presented status, so an overdue RFQ
		// never makes the active board
		storage.ApplyRfqExpiry(r)
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) ListRfqsByBrand(ctx context.Context, brandID string) ([]models.Rfq, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+rfqCols+` FROM rfqs WHERE brand_id=$1 ORDER BY created_at DESC`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Rfq{}
	for rows.Next() {
		r, err := scanRfq(rows)
		if err != nil {
			return nil, err
		}
		storage.ApplyRfqExpiry(r)
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateRfq(ctx context.Context, r *models.Rfq) error {
	reqs, err := json.Marshal(r.Requirements)
	if err != nil {
		return fmt.Errorf("encode rfq requirements: %w", err)
	}
	query := `
        UPDATE rfqs
        SET title=$1, description=$2, category=$3, quantity=$4, budget_cents=$5,
            status=$6, requirements=$7, expires_at=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	err = s.db.QueryRowContext(ctx, query,
		r.Title, r.Description, r.Category, r.Quantity, r.BudgetCents,
		r.Status, reqs, r.ExpiresAt, r.ID).
		Scan(&r.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}

func (s *Store) CreateRfqResponse(ctx context.Context, resp *models.RfqResponse) error {
	if resp.ID == "" {
		resp.ID = newID()
	}
	query := `
        INSERT INTO rfq_responses (id, rfq_id, manufacturer_id, price_cents, lead_time_days, notes, is_awarded)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		resp.ID, resp.RfqID, resp.ManufacturerID, resp.PriceCents,
		resp.LeadTimeDays, resp.Notes, resp.IsAwarded).
		Scan(&resp.CreatedAt, &resp.UpdatedAt)
}

func (s *Store) GetRfqResponse(ctx context.Context, id string) (*models.RfqResponse, error) {
	r := &models.RfqResponse{}
	err := s.db.GetContext(ctx, r, `SELECT * FROM rfq_responses WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

func (s *Store) ListResponsesByRfq(ctx context.Context, rfqID string) ([]models.RfqResponse, error) {
	out := []models.RfqResponse{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM rfq_responses WHERE rfq_id=$1 ORDER BY created_at DESC`, rfqID)
	return out, err
}

func (s *Store) ListResponsesByManufacturer(ctx context.Context, manufacturerID string) ([]models.RfqResponse, error) {
	out := []models.RfqResponse{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM rfq_responses WHERE manufacturer_id=$1 ORDER BY created_at DESC`, manufacturerID)
	return out, err
}

func (s *Store) SetRfqResponseAwarded(ctx context.Context, id string, awarded bool) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE rfq_responses SET is_awarded=$1, updated_at=NOW() WHERE id=$2`, awarded, id)
	return err
}
