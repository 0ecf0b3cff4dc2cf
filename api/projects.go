package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

type ProjectsHandler struct {
	store   storage.Store
	schemas *validate.Registry
}

func NewProjectsHandler(store storage.Store, schemas *validate.Registry) *ProjectsHandler {
	return &ProjectsHandler{store: store, schemas: schemas}
}

func (h *ProjectsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "project", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var p models.Project
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	p.ID = ""
	p.BrandID = BrandFrom(r.Context()).ID
	p.Progress = 0
	if err := h.store.CreateProject(r.Context(), &p); err != nil {
		writeError(w, "failed to create project", http.StatusInternalServerError)
		return
	}
	writeJSON(w, p, http.StatusCreated)
}

// ListProjects returns the caller's projects: a brand sees the ones it runs,
// a manufacturer the ones it was awarded.
func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := PrincipalFrom(ctx)

	if brand, err := h.store.GetBrandByUserID(ctx, principal.ID); err != nil {
		writeError(w, "failed to load profile", http.StatusInternalServerError)
		return
	} else if brand != nil {
		out, err := h.store.ListProjectsByBrand(ctx, brand.ID)
		if err != nil {
			writeError(w, "failed to list projects", http.StatusInternalServerError)
			return
		}
		writeJSON(w, out, http.StatusOK)
		return
	}

	if m, err := h.store.GetManufacturerByUserID(ctx, principal.ID); err != nil {
		writeError(w, "failed to load profile", http.StatusInternalServerError)
		return
	} else if m != nil {
		out, err := h.store.ListProjectsByManufacturer(ctx, m.ID)
		if err != nil {
			writeError(w, "failed to list projects", http.StatusInternalServerError)
			return
		}
		writeJSON(w, out, http.StatusOK)
		return
	}

	writeJSON(w, []models.Project{}, http.StatusOK)
}

// canViewProject admits the owning brand's user, the assigned manufacturer's
// user, and admins.
func (h *ProjectsHandler) canViewProject(r *http.Request, p *models.Project) (bool, error) {
	ctx := r.Context()
	principal := PrincipalFrom(ctx)
	if principal.Role == models.RoleAdmin {
		return true, nil
	}

	brand, err := h.store.GetBrand(ctx, p.BrandID)
	if err != nil {
		return false, err
	}
	if brand != nil && brand.UserID == principal.ID {
		return true, nil
	}

	if p.ManufacturerID != "" {
		m, err := h.store.GetManufacturer(ctx, p.ManufacturerID)
		if err != nil {
			return false, err
		}
		if m != nil && m.UserID == principal.ID {
			return true, nil
		}
	}
	return false, nil
}

func (h *ProjectsHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	p := h.loadViewableProject(w, r)
	if p == nil {
		return
	}
	writeJSON(w, p, http.StatusOK)
}

func (h *ProjectsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load project", http.StatusInternalServerError)
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
	if err := h.schemas.Check(r.Context(), "project", body); err != nil {
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
	updated.Progress = existing.Progress
	updated.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateProject(r.Context(), &updated); err != nil {
		writeError(w, "failed to update project", http.StatusInternalServerError)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// ProjectOwner resolves the brand user behind a project.
func (h *ProjectsHandler) ProjectOwner(r *http.Request) (string, error) {
	p, err := h.store.GetProject(r.Context(), mux.Vars(r)["id"])
	if err != nil || p == nil {
		return "", err
	}
	brand, err := h.store.GetBrand(r.Context(), p.BrandID)
	if err != nil || brand == nil {
		return "", err
	}
	return brand.UserID, nil
}

// MilestoneProjectOwner resolves the brand user behind a milestone's project.
func (h *ProjectsHandler) MilestoneProjectOwner(r *http.Request) (string, error) {
	m, err := h.store.GetMilestone(r.Context(), mux.Vars(r)["id"])
	if err != nil || m == nil {
		return "", err
	}
	p, err := h.store.GetProject(r.Context(), m.ProjectID)
	if err != nil || p == nil {
		return "", err
	}
	brand, err := h.store.GetBrand(r.Context(), p.BrandID)
	if err != nil || brand == nil {
		return "", err
	}
	return brand.UserID, nil
}

// loadViewableProject fetches the project and enforces read access. It writes
// the response on failure and returns nil.
func (h *ProjectsHandler) loadViewableProject(w http.ResponseWriter, r *http.Request) *models.Project {
	p, err := h.store.GetProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load project", http.StatusInternalServerError)
		return nil
	}
	if p == nil {
		writeError(w, "not found", http.StatusNotFound)
		return nil
	}
	allowed, err := h.canViewProject(r, p)
	if err != nil {
		writeError(w, "failed to check access", http.StatusInternalServerError)
		return nil
	}
	if !allowed {
		writeError(w, "forbidden", http.StatusForbidden)
		return nil
	}
	return p
}

func (h *ProjectsHandler) ListMilestones(w http.ResponseWriter, r *http.Request) {
	p := h.loadViewableProject(w, r)
	if p == nil {
		return
	}
	out, err := h.store.ListMilestonesByProject(r.Context(), p.ID)
	if err != nil {
		writeError(w, "failed to list milestones", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *ProjectsHandler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["id"]
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "milestone", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var m models.Milestone
	if err := json.Unmarshal(body, &m); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	m.ID = ""
	m.ProjectID = projectID
	if err := h.store.CreateMilestone(r.Context(), &m); err != nil {
		writeError(w, "failed to create milestone", http.StatusInternalServerError)
		return
	}
	if err := h.recomputeProgress(r, projectID); err != nil {
		writeError(w, "failed to update project progress", http.StatusInternalServerError)
		return
	}
	writeJSON(w, m, http.StatusCreated)
}

func (h *ProjectsHandler) UpdateMilestone(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetMilestone(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "failed to load milestone", http.StatusInternalServerError)
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
	if err := h.schemas.Check(r.Context(), "milestone", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := *existing
	if err := json.Unmarshal(body, &updated); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated.ID = existing.ID
	updated.ProjectID = existing.ProjectID
	updated.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateMilestone(r.Context(), &updated); err != nil {
		writeError(w, "failed to update milestone", http.StatusInternalServerError)
		return
	}
	if err := h.recomputeProgress(r, updated.ProjectID); err != nil {
		writeError(w, "failed to update project progress", http.StatusInternalServerError)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// recomputeProgress sets project progress to the completed/total milestone
// ratio and finishes the project when everything is done.
func (h *ProjectsHandler) recomputeProgress(r *http.Request, projectID string) error {
	ctx := r.Context()
	milestones, err := h.store.ListMilestonesByProject(ctx, projectID)
	if err != nil {
		return err
	}
	p, err := h.store.GetProject(ctx, projectID)
	if err != nil || p == nil {
		return err
	}

	completed := 0
	for _, m := range milestones {
		if m.Status == models.MilestoneStatusCompleted {
			completed++
		}
	}
	if len(milestones) == 0 {
		p.Progress = 0
	} else {
		p.Progress = completed * 100 / len(milestones)
	}
	if p.Progress == 100 && len(milestones) > 0 {
		p.Status = models.ProjectStatusCompleted
	} else if completed > 0 && p.Status != models.ProjectStatusCompleted {
		p.Status = models.ProjectStatusInProgress
	}
	return h.store.UpdateProject(ctx, p)
}

func (h *ProjectsHandler) ListProjectMaterials(w http.ResponseWriter, r *http.Request) {
	p := h.loadViewableProject(w, r)
	if p == nil {
		return
	}
	out, err := h.store.ListProjectMaterials(r.Context(), p.ID)
	if err != nil {
		writeError(w, "failed to list project materials", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *ProjectsHandler) AddProjectMaterial(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["id"]
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "project_material", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var pm models.ProjectMaterial
	if err := json.Unmarshal(body, &pm); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	pm.ID = ""
	pm.ProjectID = projectID
	pm.TotalCents = 0

	rm, err := h.store.GetRawMaterial(r.Context(), pm.RawMaterialID)
	if err != nil {
		writeError(w, "failed to load raw material", http.StatusInternalServerError)
		return
	}
	if rm == nil {
		writeError(w, "unknown raw material", http.StatusBadRequest)
		return
	}

	// price falls back to the chosen supplier's quote
	if pm.UnitPriceCents == 0 && pm.SupplierID != "" {
		suppliers, err := h.store.ListSuppliersByMaterial(r.Context(), pm.RawMaterialID)
		if err != nil {
			writeError(w, "failed to load suppliers", http.StatusInternalServerError)
			return
		}
		for _, sp := range suppliers {
			if sp.ID == pm.SupplierID {
				pm.UnitPriceCents = sp.UnitPriceCents
				break
			}
		}
	}

	if err := h.store.CreateProjectMaterial(r.Context(), &pm); err != nil {
		writeError(w, "failed to add project material", http.StatusInternalServerError)
		return
	}
	writeJSON(w, pm, http.StatusCreated)
}
