package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// CoursesHandler covers the learning module: course catalog and enrollments.
type CoursesHandler struct {
	store   storage.Store
	schemas *validate.Registry
}

func NewCoursesHandler(store storage.Store, schemas *validate.Registry) *CoursesHandler {
	return &CoursesHandler{store: store, schemas: schemas}
}

func (h *CoursesHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListCourses(r.Context())
	if err != nil {
		writeError(w, "failed to list courses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *CoursesHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.GetCourse(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load course", http.StatusInternalServerError)
		return
	}
	if c == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, c, http.StatusOK)
}

// Enroll creates an enrollment, or returns the existing one: enrolling twice
// is not an error.
func (h *CoursesHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := PrincipalFrom(ctx).ID

	course, err := h.store.GetCourse(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load course", http.StatusInternalServerError)
		return
	}
	if course == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	existing, err := h.store.GetEnrollmentByCourseAndUser(ctx, course.ID, userID)
	if err != nil {
		writeError(w, "failed to check enrollment", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeJSON(w, existing, http.StatusOK)
		return
	}

	e := models.Enrollment{CourseID: course.ID, UserID: userID}
	if err := h.store.CreateEnrollment(ctx, &e); err != nil {
		writeError(w, "failed to enroll", http.StatusInternalServerError)
		return
	}
	writeJSON(w, e, http.StatusCreated)
}

func (h *CoursesHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListEnrollmentsByUser(r.Context(), PrincipalFrom(r.Context()).ID)
	if err != nil {
		writeError(w, "failed to list enrollments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

// EnrollmentOwner resolves the enrolled user.
func (h *CoursesHandler) EnrollmentOwner(r *http.Request) (string, error) {
	e, err := h.store.GetEnrollment(r.Context(), mux.Vars(r)["id"])
	if err != nil || e == nil {
		return "", err
	}
	return e.UserID, nil
}

// UpdateProgress moves an enrollment forward; hitting 100 stamps CompletedAt.
func (h *CoursesHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetEnrollment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load enrollment", http.StatusInternalServerError)
		return
	}
	if e == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "enrollment_progress", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		Progress int `json:"progress"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	e.Progress = req.Progress
	if e.Progress == 100 && e.CompletedAt == nil {
		now := time.Now().UTC()
		e.CompletedAt = &now
	}
	if err := h.store.UpdateEnrollment(r.Context(), e); err != nil {
		writeError(w, "failed to update enrollment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, e, http.StatusOK)
}
