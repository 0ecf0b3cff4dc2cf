package api_test

import (
	"net/http"
	"testing"
)

func TestVerificationQueue(t *testing.T) {
	env := newTestEnv(t)
	mfg := env.login(t, "hello@portroyalfoods.example")
	admin := env.login(t, "admin@jamakers.example")
	brand := env.login(t, "team@iriewear.example")

	// port royal starts unverified
	w := env.do(t, http.MethodGet, "/api/manufacturers/seed-mfg-portroyal", "", nil)
	var m struct {
		Verified bool `json:"verified"`
	}
	decodeInto(t, w, &m)
	if m.Verified {
		t.Fatalf("fixture should start unverified")
	}

	// brands have no manufacturer profile and cannot file requests
	w = env.do(t, http.MethodPost, "/api/verification-requests", brand, map[string]any{})
	if w.Code != http.StatusForbidden {
		t.Fatalf("brand request: expected 403, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/verification-requests", mfg, map[string]any{
		"documents": []string{"/objects/uploads/haccp-cert"},
		"status":    "approved", // ignored; requests always start pending
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create request: status %d body=%s", w.Code, w.Body.String())
	}
	var vr struct {
		ID             string `json:"id"`
		ManufacturerID string `json:"manufacturerId"`
		Status         string `json:"status"`
	}
	decodeInto(t, w, &vr)
	if vr.Status != "pending" || vr.ManufacturerID != "seed-mfg-portroyal" {
		t.Fatalf("unexpected request: %+v", vr)
	}

	// the queue is admin-only
	if w = env.do(t, http.MethodGet, "/api/admin/verification-requests", mfg, nil); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin queue: expected 403, got %d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/api/admin/verification-requests?status=pending", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("queue: status %d", w.Code)
	}
	var queue []struct {
		ID string `json:"id"`
	}
	decodeInto(t, w, &queue)
	if len(queue) != 1 || queue[0].ID != vr.ID {
		t.Fatalf("unexpected queue: %+v", queue)
	}

	// approval flips the manufacturer's verified flag
	if w = env.do(t, http.MethodPut, "/api/admin/verification-requests/"+vr.ID, mfg,
		map[string]any{"status": "approved"}); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin decide: expected 403, got %d", w.Code)
	}
	w = env.do(t, http.MethodPut, "/api/admin/verification-requests/"+vr.ID, admin, map[string]any{
		"status":        "approved",
		"reviewerNotes": "HACCP paperwork checks out.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("decide: status %d body=%s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/api/manufacturers/seed-mfg-portroyal", "", nil)
	decodeInto(t, w, &m)
	if !m.Verified {
		t.Fatalf("manufacturer not marked verified after approval")
	}

	// decided requests are closed
	w = env.do(t, http.MethodPut, "/api/admin/verification-requests/"+vr.ID, admin, map[string]any{"status": "rejected"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("re-decide: expected 400, got %d", w.Code)
	}
}
