package api_test

import (
	"net/http"
	"testing"
)

func TestProjectMilestonesDriveProgress(t *testing.T) {
	env := newTestEnv(t)
	irie := env.login(t, "team@iriewear.example")
	yaad := env.login(t, "orders@yaadspice.example")
	mfg := env.login(t, "ops@bluemountain.example")

	w := env.do(t, http.MethodPost, "/api/projects", irie, map[string]any{
		"name":           "Summer capsule production",
		"manufacturerId": "seed-mfg-bluemountain",
		"status":         "active",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project: status %d body=%s", w.Code, w.Body.String())
	}
	var project struct {
		ID       string `json:"id"`
		Progress int    `json:"progress"`
	}
	decodeInto(t, w, &project)
	if project.Progress != 0 {
		t.Fatalf("new project progress = %d, want 0", project.Progress)
	}

	// the assigned manufacturer can read, an unrelated brand cannot
	if w = env.do(t, http.MethodGet, "/api/projects/"+project.ID, mfg, nil); w.Code != http.StatusOK {
		t.Fatalf("manufacturer view: status %d", w.Code)
	}
	if w = env.do(t, http.MethodGet, "/api/projects/"+project.ID, yaad, nil); w.Code != http.StatusForbidden {
		t.Fatalf("unrelated view: expected 403, got %d", w.Code)
	}
	if w = env.do(t, http.MethodGet, "/api/projects/"+project.ID+"/milestones", yaad, nil); w.Code != http.StatusForbidden {
		t.Fatalf("unrelated milestones: expected 403, got %d", w.Code)
	}

	// two milestones, complete them one at a time
	var first, second struct {
		ID string `json:"id"`
	}
	w = env.do(t, http.MethodPost, "/api/projects/"+project.ID+"/milestones", irie, map[string]any{"name": "Samples approved"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create milestone: status %d body=%s", w.Code, w.Body.String())
	}
	decodeInto(t, w, &first)
	w = env.do(t, http.MethodPost, "/api/projects/"+project.ID+"/milestones", irie, map[string]any{"name": "Bulk cut"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create milestone: status %d", w.Code)
	}
	decodeInto(t, w, &second)

	w = env.do(t, http.MethodPut, "/api/milestones/"+first.ID, irie, map[string]any{
		"name": "Samples approved", "status": "completed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("complete milestone: status %d body=%s", w.Code, w.Body.String())
	}

	var got struct {
		Progress int    `json:"progress"`
		Status   string `json:"status"`
	}
	w = env.do(t, http.MethodGet, "/api/projects/"+project.ID, irie, nil)
	decodeInto(t, w, &got)
	if got.Progress != 50 || got.Status != "in_progress" {
		t.Fatalf("after 1/2 milestones: progress=%d status=%q", got.Progress, got.Status)
	}

	w = env.do(t, http.MethodPut, "/api/milestones/"+second.ID, irie, map[string]any{
		"name": "Bulk cut", "status": "completed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("complete milestone: status %d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/api/projects/"+project.ID, irie, nil)
	decodeInto(t, w, &got)
	if got.Progress != 100 || got.Status != "completed" {
		t.Fatalf("after 2/2 milestones: progress=%d status=%q", got.Progress, got.Status)
	}

	// milestone writes stay with the owning brand
	w = env.do(t, http.MethodPut, "/api/milestones/"+second.ID, mfg, map[string]any{
		"name": "Bulk cut", "status": "pending",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("manufacturer milestone write: expected 403, got %d", w.Code)
	}
}

func TestProjectMaterials(t *testing.T) {
	env := newTestEnv(t)
	irie := env.login(t, "team@iriewear.example")

	w := env.do(t, http.MethodPost, "/api/projects", irie, map[string]any{"name": "Tote run"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project: status %d", w.Code)
	}
	var project struct {
		ID string `json:"id"`
	}
	decodeInto(t, w, &project)

	// unknown material is a bad request, not a 500
	w = env.do(t, http.MethodPost, "/api/projects/"+project.ID+"/materials", irie, map[string]any{
		"rawMaterialId": "no-such-material", "quantity": 5,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown material: expected 400, got %d body=%s", w.Code, w.Body.String())
	}

	// price falls back to the supplier quote when not given
	w = env.do(t, http.MethodPost, "/api/projects/"+project.ID+"/materials", irie, map[string]any{
		"rawMaterialId": "seed-mat-cotton",
		"supplierId":    "seed-sup-kgn-textiles",
		"quantity":      40,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add material: status %d body=%s", w.Code, w.Body.String())
	}
	var pm struct {
		UnitPriceCents int64 `json:"unitPriceCents"`
		TotalCents     int64 `json:"totalCents"`
	}
	decodeInto(t, w, &pm)
	if pm.UnitPriceCents != 120_000 {
		t.Fatalf("unit price not taken from supplier: %d", pm.UnitPriceCents)
	}
	if pm.TotalCents != 40*120_000 {
		t.Fatalf("total = %d, want %d", pm.TotalCents, 40*120_000)
	}
}
