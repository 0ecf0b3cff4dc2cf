package api_test

import (
	"net/http"
	"testing"
)

func TestEnrollmentFlow(t *testing.T) {
	env := newTestEnv(t)
	mfg := env.login(t, "ops@bluemountain.example")
	other := env.login(t, "team@iriewear.example")

	// catalog is public
	w := env.do(t, http.MethodGet, "/api/courses", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list courses: status %d", w.Code)
	}
	var courses []struct {
		ID      string   `json:"id"`
		Modules []string `json:"modules"`
	}
	decodeInto(t, w, &courses)
	if len(courses) < 3 {
		t.Fatalf("expected seeded courses, got %d", len(courses))
	}

	// enrolling twice is idempotent: 201 then 200 with the same record
	w = env.do(t, http.MethodPost, "/api/courses/seed-course-export/enroll", mfg, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("enroll: status %d body=%s", w.Code, w.Body.String())
	}
	var enrollment struct {
		ID       string `json:"id"`
		Progress int    `json:"progress"`
	}
	decodeInto(t, w, &enrollment)

	w = env.do(t, http.MethodPost, "/api/courses/seed-course-export/enroll", mfg, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("re-enroll: status %d", w.Code)
	}
	var again struct {
		ID string `json:"id"`
	}
	decodeInto(t, w, &again)
	if again.ID != enrollment.ID {
		t.Fatalf("re-enroll returned a different record: %q vs %q", again.ID, enrollment.ID)
	}

	// unknown course 404s
	if w = env.do(t, http.MethodPost, "/api/courses/no-such-course/enroll", mfg, nil); w.Code != http.StatusNotFound {
		t.Fatalf("enroll unknown course: expected 404, got %d", w.Code)
	}

	// progress is owner-only
	w = env.do(t, http.MethodPut, "/api/enrollments/"+enrollment.ID+"/progress", other, map[string]any{"progress": 50})
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign progress update: expected 403, got %d", w.Code)
	}

	// out-of-range progress fails validation
	w = env.do(t, http.MethodPut, "/api/enrollments/"+enrollment.ID+"/progress", mfg, map[string]any{"progress": 101})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("progress 101: expected 400, got %d", w.Code)
	}

	// completing stamps completedAt exactly once
	w = env.do(t, http.MethodPut, "/api/enrollments/"+enrollment.ID+"/progress", mfg, map[string]any{"progress": 100})
	if w.Code != http.StatusOK {
		t.Fatalf("complete: status %d body=%s", w.Code, w.Body.String())
	}
	var done struct {
		Progress    int     `json:"progress"`
		CompletedAt *string `json:"completedAt"`
	}
	decodeInto(t, w, &done)
	if done.Progress != 100 || done.CompletedAt == nil {
		t.Fatalf("completion not recorded: %+v", done)
	}
	firstStamp := *done.CompletedAt

	w = env.do(t, http.MethodPut, "/api/enrollments/"+enrollment.ID+"/progress", mfg, map[string]any{"progress": 100})
	if w.Code != http.StatusOK {
		t.Fatalf("idempotent complete: status %d", w.Code)
	}
	decodeInto(t, w, &done)
	if done.CompletedAt == nil || *done.CompletedAt != firstStamp {
		t.Fatalf("completedAt changed on repeat completion")
	}

	// enrollments list is scoped to the caller
	w = env.do(t, http.MethodGet, "/api/enrollments", other, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list enrollments: status %d", w.Code)
	}
	var mine []any
	decodeInto(t, w, &mine)
	if len(mine) != 0 {
		t.Fatalf("expected no enrollments for other user, got %d", len(mine))
	}
}
