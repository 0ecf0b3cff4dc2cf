package api_test

import (
	"net/http"
	"testing"
)

func TestLoanApplicationFlow(t *testing.T) {
	env := newTestEnv(t)
	brand := env.login(t, "team@iriewear.example")
	lender := env.login(t, "sme@caribcredit.example")
	mfg := env.login(t, "ops@bluemountain.example")

	// product catalog is public
	w := env.do(t, http.MethodGet, "/api/finance/loan-products", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list products: status %d", w.Code)
	}
	var products []struct {
		ID             string `json:"id"`
		MaxAmountCents int64  `json:"maxAmountCents"`
	}
	decodeInto(t, w, &products)
	if len(products) < 2 {
		t.Fatalf("expected seeded loan products, got %d", len(products))
	}

	// over-limit applications are rejected up front
	w = env.do(t, http.MethodPost, "/api/finance/loan-applications", brand, map[string]any{
		"loanProductId": "seed-loan-working-capital",
		"amountCents":   250_000_001,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("over-limit: expected 400, got %d body=%s", w.Code, w.Body.String())
	}

	// unknown product is a bad request
	w = env.do(t, http.MethodPost, "/api/finance/loan-applications", brand, map[string]any{
		"loanProductId": "no-such-product",
		"amountCents":   100,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown product: expected 400, got %d", w.Code)
	}

	// a valid application lands pending, attributed to the caller
	w = env.do(t, http.MethodPost, "/api/finance/loan-applications", brand, map[string]any{
		"loanProductId": "seed-loan-working-capital",
		"amountCents":   50_000_000,
		"purpose":       "Fabric for the summer run",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("apply: status %d body=%s", w.Code, w.Body.String())
	}
	var app struct {
		ID              string `json:"id"`
		ApplicantUserID string `json:"applicantUserId"`
		Status          string `json:"status"`
	}
	decodeInto(t, w, &app)
	if app.Status != "pending" || app.ApplicantUserID != "seed-user-irie" {
		t.Fatalf("unexpected application: %+v", app)
	}

	// applicant and lender can read it; an unrelated user cannot
	if w = env.do(t, http.MethodGet, "/api/finance/loan-applications/"+app.ID, brand, nil); w.Code != http.StatusOK {
		t.Fatalf("applicant read: status %d", w.Code)
	}
	if w = env.do(t, http.MethodGet, "/api/finance/loan-applications/"+app.ID, lender, nil); w.Code != http.StatusOK {
		t.Fatalf("lender read: status %d", w.Code)
	}
	if w = env.do(t, http.MethodGet, "/api/finance/loan-applications/"+app.ID, mfg, nil); w.Code != http.StatusForbidden {
		t.Fatalf("unrelated read: expected 403, got %d", w.Code)
	}

	// only the lender (or an admin) decides
	w = env.do(t, http.MethodPut, "/api/admin/loan-applications/"+app.ID, brand, map[string]any{"status": "approved"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("applicant decide: expected 403, got %d", w.Code)
	}
	w = env.do(t, http.MethodPut, "/api/admin/loan-applications/"+app.ID, lender, map[string]any{"status": "approved"})
	if w.Code != http.StatusOK {
		t.Fatalf("decide: status %d body=%s", w.Code, w.Body.String())
	}
	var decided struct {
		Status string `json:"status"`
	}
	decodeInto(t, w, &decided)
	if decided.Status != "approved" {
		t.Fatalf("status = %q, want approved", decided.Status)
	}

	// decisions are final
	w = env.do(t, http.MethodPut, "/api/admin/loan-applications/"+app.ID, lender, map[string]any{"status": "rejected"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("re-decide: expected 400, got %d", w.Code)
	}
}

func TestLoanProductCreateRequiresInstitution(t *testing.T) {
	env := newTestEnv(t)
	brand := env.login(t, "team@iriewear.example")
	lender := env.login(t, "sme@caribcredit.example")

	body := map[string]any{"name": "Bridge Loan", "maxAmountCents": 100_000_000}

	if w := env.do(t, http.MethodPost, "/api/finance/loan-products", brand, body); w.Code != http.StatusForbidden {
		t.Fatalf("brand create product: expected 403, got %d", w.Code)
	}
	w := env.do(t, http.MethodPost, "/api/finance/loan-products", lender, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("lender create product: status %d body=%s", w.Code, w.Body.String())
	}
	var p struct {
		InstitutionID string `json:"institutionId"`
	}
	decodeInto(t, w, &p)
	if p.InstitutionID != "seed-fi-caribcredit" {
		t.Fatalf("product not attributed to lender: %+v", p)
	}
}
