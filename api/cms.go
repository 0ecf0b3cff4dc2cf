package api

import (
	"encoding/json"
	"net/http"

	"github.com/jamakers/platform/internal/objectstore"
	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
)

// CmsHandler serves the editable landing page document.
type CmsHandler struct {
	objects *objectstore.Service
	schemas *validate.Registry
}

func NewCmsHandler(objects *objectstore.Service, schemas *validate.Registry) *CmsHandler {
	return &CmsHandler{objects: objects, schemas: schemas}
}

func (h *CmsHandler) GetLanding(w http.ResponseWriter, r *http.Request) {
	doc, err := h.objects.ReadLanding()
	if err != nil {
		writeError(w, "failed to load landing document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, doc, http.StatusOK)
}

func (h *CmsHandler) PutLanding(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "landing", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var doc models.LandingDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.objects.WriteLanding(&doc); err != nil {
		writeError(w, "failed to save landing document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, doc, http.StatusOK)
}
