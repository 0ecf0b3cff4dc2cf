package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// ReviewsHandler covers manufacturer reviews and certifications.
type ReviewsHandler struct {
	store   storage.Store
	schemas *validate.Registry
}

func NewReviewsHandler(store storage.Store, schemas *validate.Registry) *ReviewsHandler {
	return &ReviewsHandler{store: store, schemas: schemas}
}

func (h *ReviewsHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.GetManufacturer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load manufacturer", http.StatusInternalServerError)
		return
	}
	if m == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "review", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var rv models.Review
	if err := json.Unmarshal(body, &rv); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	rv.ID = ""
	rv.ManufacturerID = m.ID
	rv.AuthorUserID = PrincipalFrom(r.Context()).ID
	if err := h.store.CreateReview(r.Context(), &rv); err != nil {
		writeError(w, "failed to create review", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rv, http.StatusCreated)
}

func (h *ReviewsHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.GetManufacturer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load manufacturer", http.StatusInternalServerError)
		return
	}
	if m == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	out, err := h.store.ListReviewsByManufacturer(r.Context(), m.ID)
	if err != nil {
		writeError(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

// CreateCertification records a certification on the caller's own
// manufacturer profile.
func (h *ReviewsHandler) CreateCertification(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "certification", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var c models.Certification
	if err := json.Unmarshal(body, &c); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	c.ID = ""
	c.ManufacturerID = ManufacturerFrom(r.Context()).ID
	if err := h.store.CreateCertification(r.Context(), &c); err != nil {
		writeError(w, "failed to create certification", http.StatusInternalServerError)
		return
	}
	writeJSON(w, c, http.StatusCreated)
}

func (h *ReviewsHandler) ListCertifications(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.GetManufacturer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load manufacturer", http.StatusInternalServerError)
		return
	}
	if m == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	out, err := h.store.ListCertificationsByManufacturer(r.Context(), m.ID)
	if err != nil {
		writeError(w, "failed to list certifications", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}
