package postgres

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateLoanProduct(ctx context.Context, lp *models.LoanProduct) error {
	if lp.ID == "" {
		lp.ID = newID()
	}
	query := `
        INSERT INTO loan_products (id, institution_id, name, description, max_amount_cents, rate_percent, term_months)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		lp.ID, lp.InstitutionID, lp.Name, lp.Description,
		lp.MaxAmountCents, lp.RatePercent, lp.TermMonths).
		Scan(&lp.CreatedAt, &lp.UpdatedAt)
}

func (s *Store) GetLoanProduct(ctx context.Context, id string) (*models.LoanProduct, error) {
	lp := &models.LoanProduct{}
	err := s.db.GetContext(ctx, lp, `SELECT * FROM loan_products WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return lp, nil
}

func (s *Store) ListLoanProducts(ctx context.Context) ([]models.LoanProduct, error) {
	out := []models.LoanProduct{}
	err := s.db.SelectContext(ctx, &out, `SELECT * FROM loan_products ORDER BY created_at DESC`)
	return out, err
}

func (s *Store) CreateLoanApplication(ctx context.Context, la *models.LoanApplication) error {
	if la.ID == "" {
		la.ID = newID()
	}
	if la.Status == "" {
		la.Status = models.LoanStatusPending
	}
	query := `
        INSERT INTO loan_applications (id, applicant_user_id, loan_product_id, amount_cents, purpose, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		la.ID, la.ApplicantUserID, la.LoanProductID, la.AmountCents, la.Purpose, la.Status).
		Scan(&la.CreatedAt, &la.UpdatedAt)
}

func (s *Store) GetLoanApplication(ctx context.Context, id string) (*models.LoanApplication, error) {
	la := &models.LoanApplication{}
	err := s.db.GetContext(ctx, la, `SELECT * FROM loan_applications WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return la, nil
}

func (s *Store) ListLoanApplicationsByApplicant(ctx context.Context, userID string) ([]models.LoanApplication, error) {
	out := []models.LoanApplication{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM loan_applications WHERE applicant_user_id=$1 ORDER BY created_at DESC`, userID)
	return out, err
}

func (s *Store) ListLoanApplicationsByInstitution(ctx context.Context, institutionID string) ([]models.LoanApplication, error) {
	out := []models.LoanApplication{}
	query := `
        SELECT la.* FROM loan_applications la
        JOIN loan_products lp ON lp.id = la.loan_product_id
        WHERE lp.institution_id = $1
        ORDER BY la.created_at DESC`
	err := s.db.SelectContext(ctx, &out, query, institutionID)
	return out, err
}

func (s *Store) UpdateLoanApplication(ctx context.Context, la *models.LoanApplication) error {
	query := `
        UPDATE loan_applications
        SET amount_cents=$1, purpose=$2, status=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query,
		la.AmountCents, la.Purpose, la.Status, la.ID).
		Scan(&la.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}
