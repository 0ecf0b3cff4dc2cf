package remote

import (
	"context"
	"sort"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateLoanProduct(ctx context.Context, lp *models.LoanProduct) error {
	if lp.ID == "" {
		lp.ID = newID()
	}
	storage.Touch(&lp.CreatedAt, &lp.UpdatedAt)
	return insertDoc(ctx, s, colLoanProducts, lp.ID, lp)
}

func (s *Store) GetLoanProduct(ctx context.Context, id string) (*models.LoanProduct, error) {
	return getDoc[models.LoanProduct](ctx, s, colLoanProducts, id)
}

func (s *Store) ListLoanProducts(ctx context.Context) ([]models.LoanProduct, error) {
	return queryDocs[models.LoanProduct](ctx, s, colLoanProducts, nil)
}

func (s *Store) CreateLoanApplication(ctx context.Context, la *models.LoanApplication) error {
	if la.ID == "" {
		la.ID = newID()
	}
	if la.Status == "" {
		la.Status = models.LoanStatusPending
	}
	storage.Touch(&la.CreatedAt, &la.UpdatedAt)
	return insertDoc(ctx, s, colLoanApps, la.ID, la)
}

func (s *Store) GetLoanApplication(ctx context.Context, id string) (*models.LoanApplication, error) {
	return getDoc[models.LoanApplication](ctx, s, colLoanApps, id)
}

func (s *Store) ListLoanApplicationsByApplicant(ctx context.Context, userID string) ([]models.LoanApplication, error) {
	return queryDocs[models.LoanApplication](ctx, s, colLoanApps, map[string]string{"applicantUserId": userID})
}

// ListLoanApplicationsByInstitution joins client-side: products first, then
// one application query per product.
func (s *Store) ListLoanApplicationsByInstitution(ctx context.Context, institutionID string) ([]models.LoanApplication, error) {
	products, err := queryDocs[models.LoanProduct](ctx, s, colLoanProducts, map[string]string{"institutionId": institutionID})
	if err != nil {
		return nil, err
	}
	out := []models.LoanApplication{}
	for _, lp := range products {
		apps, err := queryDocs[models.LoanApplication](ctx, s, colLoanApps, map[string]string{"loanProductId": lp.ID})
		if err != nil {
			return nil, err
		}
		out = append(out, apps...)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateLoanApplication(ctx context.Context, la *models.LoanApplication) error {
	existing, err := getDoc[models.LoanApplication](ctx, s, colLoanApps, la.ID)
	if err != nil || existing == nil {
		return err
	}
	la.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &la.UpdatedAt)
	return replaceDoc(ctx, s, colLoanApps, la.ID, la)
}
