package memory

import (
	"context"

	"github.com/jamakers/platform/pkg/models"
)

func (s *Store) CreateLoanProduct(ctx context.Context, lp *models.LoanProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lp.ID == "" {
		lp.ID = newID()
	}
	s.stamp(&lp.CreatedAt, &lp.UpdatedAt)
	s.loanProducts[lp.ID] = *lp
	s.track(lp.ID)
	return nil
}

func (s *Store) GetLoanProduct(ctx context.Context, id string) (*models.LoanProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if lp, ok := s.loanProducts[id]; ok {
		return &lp, nil
	}
	return nil, nil
}

func (s *Store) ListLoanProducts(ctx context.Context) ([]models.LoanProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.LoanProduct{}
	for _, lp := range s.loanProducts {
		out = append(out, lp)
	}
	sortByInsertDesc(s, out, func(lp models.LoanProduct) string { return lp.ID })
	return out, nil
}

func (s *Store) CreateLoanApplication(ctx context.Context, la *models.LoanApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if la.ID == "" {
		la.ID = newID()
	}
	if la.Status == "" {
		la.Status = models.LoanStatusPending
	}
	s.stamp(&la.CreatedAt, &la.UpdatedAt)
	s.loanApplications[la.ID] = *la
	s.track(la.ID)
	return nil
}

func (s *Store) GetLoanApplication(ctx context.Context, id string) (*models.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if la, ok := s.loanApplications[id]; ok {
		return &la, nil
	}
	return nil, nil
}

func (s *Store) ListLoanApplicationsByApplicant(ctx context.Context, userID string) ([]models.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.LoanApplication{}
	for _, la := range s.loanApplications {
		if la.ApplicantUserID == userID {
			out = append(out, la)
		}
	}
	sortByInsertDesc(s, out, func(la models.LoanApplication) string { return la.ID })
	return out, nil
}

func (s *Store) ListLoanApplicationsByInstitution(ctx context.Context, institutionID string) ([]models.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := map[string]bool{}
	for id, lp := range s.loanProducts {
		if lp.InstitutionID == institutionID {
			products[id] = true
		}
	}

	out := []models.LoanApplication{}
	for _, la := range s.loanApplications {
		if products[la.LoanProductID] {
			out = append(out, la)
		}
	}
	sortByInsertDesc(s, out, func(la models.LoanApplication) string { return la.ID })
	return out, nil
}

func (s *Store) UpdateLoanApplication(ctx context.Context, la *models.LoanApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.loanApplications[la.ID]
	if !ok {
		return nil
	}
	la.CreatedAt = cur.CreatedAt
	s.stamp(nil, &la.UpdatedAt)
	s.loanApplications[la.ID] = *la
	return nil
}
