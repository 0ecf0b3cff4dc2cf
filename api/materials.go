package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/pkg/storage"
)

// MaterialsHandler serves the read-only raw materials catalog.
type MaterialsHandler struct {
	store storage.Store
}

func NewMaterialsHandler(store storage.Store) *MaterialsHandler {
	return &MaterialsHandler{store: store}
}

func (h *MaterialsHandler) ListRawMaterials(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListRawMaterials(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, "failed to list raw materials", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *MaterialsHandler) GetRawMaterial(w http.ResponseWriter, r *http.Request) {
	rm, err := h.store.GetRawMaterial(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load raw material", http.StatusInternalServerError)
		return
	}
	if rm == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, rm, http.StatusOK)
}

func (h *MaterialsHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	rm, err := h.store.GetRawMaterial(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load raw material", http.StatusInternalServerError)
		return
	}
	if rm == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	out, err := h.store.ListSuppliersByMaterial(r.Context(), rm.ID)
	if err != nil {
		writeError(w, "failed to list suppliers", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}
