package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

type RfqsHandler struct {
	store   storage.Store
	schemas *validate.Registry
}

func NewRfqsHandler(store storage.Store, schemas *validate.Registry) *RfqsHandler {
	return &RfqsHandler{store: store, schemas: schemas}
}

func (h *RfqsHandler) CreateRfq(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "rfq", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var rfq models.Rfq
	if err := json.Unmarshal(body, &rfq); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	rfq.ID = ""
	rfq.BrandID = BrandFrom(r.Context()).ID
	if err := h.store.CreateRfq(r.Context(), &rfq); err != nil {
		writeError(w, "failed to create rfq", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rfq, http.StatusCreated)
}

// ListRfqs is the manufacturer-facing board: active RFQs unless a status
// filter says otherwise.
func (h *RfqsHandler) ListRfqs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.RfqFilter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
	}
	if filter.Status == "" {
		filter.Status = models.RfqStatusActive
	}
	out, err := h.store.ListRfqs(r.Context(), filter)
	if err != nil {
		writeError(w, "failed to list rfqs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *RfqsHandler) ListMyRfqs(w http.ResponseWriter, r *http.Request) {
	brand := BrandFrom(r.Context())
	out, err := h.store.ListRfqsByBrand(r.Context(), brand.ID)
	if err != nil {
		writeError(w, "failed to list rfqs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *RfqsHandler) GetRfq(w http.ResponseWriter, r *http.Request) {
	rfq, err := h.store.GetRfq(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load rfq", http.StatusInternalServerError)
		return
	}
	if rfq == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, rfq, http.StatusOK)
}

func (h *RfqsHandler) UpdateRfq(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetRfq(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load rfq", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "rfq", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := *existing
	if err := json.Unmarshal(body, &updated); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated.ID = existing.ID
	updated.BrandID = existing.BrandID
	updated.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateRfq(r.Context(), &updated); err != nil {
		writeError(w, "failed to update rfq", http.StatusInternalServerError)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// RfqOwner resolves the user owning the brand behind an RFQ.
func (h *RfqsHandler) RfqOwner(r *http.Request) (string, error) {
	rfq, err := h.store.GetRfq(r.Context(), mux.Vars(r)["id"])
	if err != nil || rfq == nil {
		return "", err
	}
	brand, err := h.store.GetBrand(r.Context(), rfq.BrandID)
	if err != nil || brand == nil {
		return "", err
	}
	return brand.UserID, nil
}

func (h *RfqsHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	rfq, err := h.store.GetRfq(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load rfq", http.StatusInternalServerError)
		return
	}
	if rfq == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	if rfq.Status != models.RfqStatusActive {
		writeError(w, "rfq is not open for responses", http.StatusBadRequest)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "rfq_response", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var resp models.RfqResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	resp.ID = ""
	resp.RfqID = rfq.ID
	resp.ManufacturerID = ManufacturerFrom(r.Context()).ID
	resp.IsAwarded = false
	if err := h.store.CreateRfqResponse(r.Context(), &resp); err != nil {
		writeError(w, "failed to create response", http.StatusInternalServerError)
		return
	}
	writeJSON(w, resp, http.StatusCreated)
}

func (h *RfqsHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListResponsesByRfq(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to list responses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

// ResponseOwner resolves the brand user behind the RFQ a response answers.
// Awarding is the RFQ owner's call, not the responder's.
func (h *RfqsHandler) ResponseOwner(r *http.Request) (string, error) {
	resp, err := h.store.GetRfqResponse(r.Context(), mux.Vars(r)["id"])
	if err != nil || resp == nil {
		return "", err
	}
	rfq, err := h.store.GetRfq(r.Context(), resp.RfqID)
	if err != nil || rfq == nil {
		return "", err
	}
	brand, err := h.store.GetBrand(r.Context(), rfq.BrandID)
	if err != nil || brand == nil {
		return "", err
	}
	return brand.UserID, nil
}

// AwardResponse flips the award flag; the quote itself stays immutable.
func (h *RfqsHandler) AwardResponse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.SetRfqResponseAwarded(r.Context(), id, true); err != nil {
		writeError(w, "failed to award response", http.StatusInternalServerError)
		return
	}
	resp, err := h.store.GetRfqResponse(r.Context(), id)
	if err != nil {
		writeError(w, "failed to load response", http.StatusInternalServerError)
		return
	}
	if resp == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, resp, http.StatusOK)
}
