package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// ProfilesHandler serves the public directories and the per-role profile
// create/update endpoints.
type ProfilesHandler struct {
	store   storage.Store
	schemas *validate.Registry
}

func NewProfilesHandler(store storage.Store, schemas *validate.Registry) *ProfilesHandler {
	return &ProfilesHandler{store: store, schemas: schemas}
}

func (h *ProfilesHandler) ListManufacturers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.ManufacturerFilter{
		Parish:       q.Get("parish"),
		Capability:   q.Get("capability"),
		VerifiedOnly: q.Get("verified") == "true",
	}
	out, err := h.store.ListManufacturers(r.Context(), filter)
	if err != nil {
		writeError(w, "failed to list manufacturers", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *ProfilesHandler) GetManufacturer(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.GetManufacturer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load manufacturer", http.StatusInternalServerError)
		return
	}
	if m == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, m, http.StatusOK)
}

func (h *ProfilesHandler) CreateManufacturer(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "manufacturer", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var m models.Manufacturer
	if err := json.Unmarshal(body, &m); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	m.ID = ""
	m.UserID = PrincipalFrom(r.Context()).ID
	m.Verified = false
	if err := h.store.CreateManufacturer(r.Context(), &m); err != nil {
		writeError(w, "failed to create manufacturer", http.StatusInternalServerError)
		return
	}
	writeJSON(w, m, http.StatusCreated)
}

func (h *ProfilesHandler) UpdateManufacturer(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetManufacturer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load manufacturer", http.StatusInternalServerError)
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
	if err := h.schemas.Check(r.Context(), "manufacturer", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := *existing
	if err := json.Unmarshal(body, &updated); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	// identity and moderation fields are not client-writable
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.Verified = existing.Verified
	updated.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateManufacturer(r.Context(), &updated); err != nil {
		writeError(w, "failed to update manufacturer", http.StatusInternalServerError)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// ManufacturerOwner resolves the user that owns a manufacturer profile.
func (h *ProfilesHandler) ManufacturerOwner(r *http.Request) (string, error) {
	m, err := h.store.GetManufacturer(r.Context(), mux.Vars(r)["id"])
	if err != nil || m == nil {
		return "", err
	}
	return m.UserID, nil
}

func (h *ProfilesHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListBrands(r.Context())
	if err != nil {
		writeError(w, "failed to list brands", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *ProfilesHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.GetBrand(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load brand", http.StatusInternalServerError)
		return
	}
	if b == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, b, http.StatusOK)
}

func (h *ProfilesHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "brand", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var b models.Brand
	if err := json.Unmarshal(body, &b); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	b.ID = ""
	b.UserID = PrincipalFrom(r.Context()).ID
	if err := h.store.CreateBrand(r.Context(), &b); err != nil {
		writeError(w, "failed to create brand", http.StatusInternalServerError)
		return
	}
	writeJSON(w, b, http.StatusCreated)
}

func (h *ProfilesHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetBrand(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load brand", http.StatusInternalServerError)
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
	if err := h.schemas.Check(r.Context(), "brand", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := *existing
	if err := json.Unmarshal(body, &updated); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateBrand(r.Context(), &updated); err != nil {
		writeError(w, "failed to update brand", http.StatusInternalServerError)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// BrandOwner resolves the user that owns a brand profile.
func (h *ProfilesHandler) BrandOwner(r *http.Request) (string, error) {
	b, err := h.store.GetBrand(r.Context(), mux.Vars(r)["id"])
	if err != nil || b == nil {
		return "", err
	}
	return b.UserID, nil
}

func (h *ProfilesHandler) ListDesigners(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListDesigners(r.Context())
	if err != nil {
		writeError(w, "failed to list designers", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *ProfilesHandler) GetDesigner(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.GetDesigner(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load designer", http.StatusInternalServerError)
		return
	}
	if d == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, d, http.StatusOK)
}

func (h *ProfilesHandler) CreateDesigner(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "designer", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var d models.Designer
	if err := json.Unmarshal(body, &d); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	d.ID = ""
	d.UserID = PrincipalFrom(r.Context()).ID
	if err := h.store.CreateDesigner(r.Context(), &d); err != nil {
		writeError(w, "failed to create designer", http.StatusInternalServerError)
		return
	}
	writeJSON(w, d, http.StatusCreated)
}

func (h *ProfilesHandler) UpdateDesigner(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetDesigner(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load designer", http.StatusInternalServerError)
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
	if err := h.schemas.Check(r.Context(), "designer", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := *existing
	if err := json.Unmarshal(body, &updated); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateDesigner(r.Context(), &updated); err != nil {
		writeError(w, "failed to update designer", http.StatusInternalServerError)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// DesignerOwner resolves the user that owns a designer profile.
func (h *ProfilesHandler) DesignerOwner(r *http.Request) (string, error) {
	d, err := h.store.GetDesigner(r.Context(), mux.Vars(r)["id"])
	if err != nil || d == nil {
		return "", err
	}
	return d.UserID, nil
}

func (h *ProfilesHandler) ListCreators(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListCreators(r.Context())
	if err != nil {
		writeError(w, "failed to list creators", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *ProfilesHandler) GetCreator(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.GetCreator(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load creator", http.StatusInternalServerError)
		return
	}
	if c == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, c, http.StatusOK)
}

func (h *ProfilesHandler) CreateCreator(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "creator", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var c models.Creator
	if err := json.Unmarshal(body, &c); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	c.ID = ""
	c.UserID = PrincipalFrom(r.Context()).ID
	if err := h.store.CreateCreator(r.Context(), &c); err != nil {
		writeError(w, "failed to create creator", http.StatusInternalServerError)
		return
	}
	writeJSON(w, c, http.StatusCreated)
}

func (h *ProfilesHandler) UpdateCreator(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetCreator(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load creator", http.StatusInternalServerError)
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
	if err := h.schemas.Check(r.Context(), "creator", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := *existing
	if err := json.Unmarshal(body, &updated); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateCreator(r.Context(), &updated); err != nil {
		writeError(w, "failed to update creator", http.StatusInternalServerError)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// CreatorOwner resolves the user that owns a creator profile.
func (h *ProfilesHandler) CreatorOwner(r *http.Request) (string, error) {
	c, err := h.store.GetCreator(r.Context(), mux.Vars(r)["id"])
	if err != nil || c == nil {
		return "", err
	}
	return c.UserID, nil
}

func (h *ProfilesHandler) ListInstitutions(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListInstitutions(r.Context())
	if err != nil {
		writeError(w, "failed to list institutions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *ProfilesHandler) GetInstitution(w http.ResponseWriter, r *http.Request) {
	fi, err := h.store.GetInstitution(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load institution", http.StatusInternalServerError)
		return
	}
	if fi == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, fi, http.StatusOK)
}

func (h *ProfilesHandler) CreateInstitution(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "institution", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var fi models.FinancialInstitution
	if err := json.Unmarshal(body, &fi); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	fi.ID = ""
	fi.UserID = PrincipalFrom(r.Context()).ID
	if err := h.store.CreateInstitution(r.Context(), &fi); err != nil {
		writeError(w, "failed to create institution", http.StatusInternalServerError)
		return
	}
	writeJSON(w, fi, http.StatusCreated)
}

func (h *ProfilesHandler) UpdateInstitution(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetInstitution(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load institution", http.StatusInternalServerError)
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
	if err := h.schemas.Check(r.Context(), "institution", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := *existing
	if err := json.Unmarshal(body, &updated); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateInstitution(r.Context(), &updated); err != nil {
		writeError(w, "failed to update institution", http.StatusInternalServerError)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// InstitutionOwner resolves the user that owns an institution profile.
func (h *ProfilesHandler) InstitutionOwner(r *http.Request) (string, error) {
	fi, err := h.store.GetInstitution(r.Context(), mux.Vars(r)["id"])
	if err != nil || fi == nil {
		return "", err
	}
	return fi.UserID, nil
}
