package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// VerificationHandler runs the manufacturer verification queue. Requests come
// from manufacturers; decisions are admin-only.
type VerificationHandler struct {
	store   storage.Store
	schemas *validate.Registry
}

func NewVerificationHandler(store storage.Store, schemas *validate.Registry) *VerificationHandler {
	return &VerificationHandler{store: store, schemas: schemas}
}

func (h *VerificationHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "verification_request", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var vr models.VerificationRequest
	if err := json.Unmarshal(body, &vr); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	vr.ID = ""
	vr.ManufacturerID = ManufacturerFrom(r.Context()).ID
	vr.Status = models.VerificationStatusPending
	vr.ReviewerNotes = ""
	if err := h.store.CreateVerificationRequest(r.Context(), &vr); err != nil {
		writeError(w, "failed to create verification request", http.StatusInternalServerError)
		return
	}
	writeJSON(w, vr, http.StatusCreated)
}

func (h *VerificationHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListVerificationRequests(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, "failed to list verification requests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

// Decide approves or rejects a pending request. Approval flips the verified
// flag on the manufacturer profile.
func (h *VerificationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	vr, err := h.store.GetVerificationRequest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load verification request", http.StatusInternalServerError)
		return
	}
	if vr == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	if vr.Status != models.VerificationStatusPending {
		writeError(w, "request already decided", http.StatusBadRequest)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "verification_decision", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var decision struct {
		Status        string `json:"status"`
		ReviewerNotes string `json:"reviewerNotes"`
	}
	if err := json.Unmarshal(body, &decision); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	vr.Status = decision.Status
	vr.ReviewerNotes = decision.ReviewerNotes
	if err := h.store.UpdateVerificationRequest(r.Context(), vr); err != nil {
		writeError(w, "failed to update verification request", http.StatusInternalServerError)
		return
	}

	if vr.Status == models.VerificationStatusApproved {
		m, err := h.store.GetManufacturer(r.Context(), vr.ManufacturerID)
		if err != nil {
			writeError(w, "failed to load manufacturer", http.StatusInternalServerError)
			return
		}
		if m != nil && !m.Verified {
			m.Verified = true
			if err := h.store.UpdateManufacturer(r.Context(), m); err != nil {
				writeError(w, "failed to mark manufacturer verified", http.StatusInternalServerError)
				return
			}
		}
	}

	writeJSON(w, vr, http.StatusOK)
}
