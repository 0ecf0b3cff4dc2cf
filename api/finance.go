package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// FinanceHandler covers loan products and applications.
type FinanceHandler struct {
	store   storage.Store
	schemas *validate.Registry
}

func NewFinanceHandler(store storage.Store, schemas *validate.Registry) *FinanceHandler {
	return &FinanceHandler{store: store, schemas: schemas}
}

func (h *FinanceHandler) ListLoanProducts(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListLoanProducts(r.Context())
	if err != nil {
		writeError(w, "failed to list loan products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *FinanceHandler) CreateLoanProduct(w http.ResponseWriter, r *http.Request) {
	fi, err := h.store.GetInstitutionByUserID(r.Context(), PrincipalFrom(r.Context()).ID)
	if err != nil {
		writeError(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	if fi == nil {
		writeError(w, "institution profile required", http.StatusForbidden)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "loan_product", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var lp models.LoanProduct
	if err := json.Unmarshal(body, &lp); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	lp.ID = ""
	lp.InstitutionID = fi.ID
	if err := h.store.CreateLoanProduct(r.Context(), &lp); err != nil {
		writeError(w, "failed to create loan product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, lp, http.StatusCreated)
}

func (h *FinanceHandler) CreateLoanApplication(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "loan_application", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var la models.LoanApplication
	if err := json.Unmarshal(body, &la); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	lp, err := h.store.GetLoanProduct(r.Context(), la.LoanProductID)
	if err != nil {
		writeError(w, "failed to load loan product", http.StatusInternalServerError)
		return
	}
	if lp == nil {
		writeError(w, "unknown loan product", http.StatusBadRequest)
		return
	}
	if la.AmountCents > lp.MaxAmountCents {
		writeError(w, "amount exceeds loan product maximum", http.StatusBadRequest)
		return
	}

	la.ID = ""
	la.ApplicantUserID = PrincipalFrom(r.Context()).ID
	la.Status = models.LoanStatusPending
	if err := h.store.CreateLoanApplication(r.Context(), &la); err != nil {
		writeError(w, "failed to create loan application", http.StatusInternalServerError)
		return
	}
	writeJSON(w, la, http.StatusCreated)
}

// ListLoanApplications returns the caller's own applications, or the inbound
// queue when the caller is an institution.
func (h *FinanceHandler) ListLoanApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := PrincipalFrom(ctx)

	fi, err := h.store.GetInstitutionByUserID(ctx, principal.ID)
	if err != nil {
		writeError(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	if fi != nil {
		out, err := h.store.ListLoanApplicationsByInstitution(ctx, fi.ID)
		if err != nil {
			writeError(w, "failed to list loan applications", http.StatusInternalServerError)
			return
		}
		writeJSON(w, out, http.StatusOK)
		return
	}

	out, err := h.store.ListLoanApplicationsByApplicant(ctx, principal.ID)
	if err != nil {
		writeError(w, "failed to list loan applications", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *FinanceHandler) GetLoanApplication(w http.ResponseWriter, r *http.Request) {
	la, err := h.store.GetLoanApplication(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load loan application", http.StatusInternalServerError)
		return
	}
	if la == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	principal := PrincipalFrom(r.Context())
	if la.ApplicantUserID != principal.ID && principal.Role != models.RoleAdmin {
		owner, err := h.applicationInstitutionUser(r, la)
		if err != nil {
			writeError(w, "failed to check access", http.StatusInternalServerError)
			return
		}
		if owner != principal.ID {
			writeError(w, "forbidden", http.StatusForbidden)
			return
		}
	}
	writeJSON(w, la, http.StatusOK)
}

func (h *FinanceHandler) applicationInstitutionUser(r *http.Request, la *models.LoanApplication) (string, error) {
	lp, err := h.store.GetLoanProduct(r.Context(), la.LoanProductID)
	if err != nil || lp == nil {
		return "", err
	}
	fi, err := h.store.GetInstitution(r.Context(), lp.InstitutionID)
	if err != nil || fi == nil {
		return "", err
	}
	return fi.UserID, nil
}

// ApplicationDecider resolves the institution user behind an application's
// loan product; only that user (or an admin) may decide it.
func (h *FinanceHandler) ApplicationDecider(r *http.Request) (string, error) {
	la, err := h.store.GetLoanApplication(r.Context(), mux.Vars(r)["id"])
	if err != nil || la == nil {
		return "", err
	}
	return h.applicationInstitutionUser(r, la)
}

func (h *FinanceHandler) DecideLoanApplication(w http.ResponseWriter, r *http.Request) {
	la, err := h.store.GetLoanApplication(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load loan application", http.StatusInternalServerError)
		return
	}
	if la == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	if la.Status != models.LoanStatusPending {
		writeError(w, "application already decided", http.StatusBadRequest)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "loan_decision", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var decision struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &decision); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	la.Status = decision.Status
	if err := h.store.UpdateLoanApplication(r.Context(), la); err != nil {
		writeError(w, "failed to update loan application", http.StatusInternalServerError)
		return
	}
	writeJSON(w, la, http.StatusOK)
}
