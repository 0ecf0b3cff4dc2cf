package api

import (
	"errors"
	"net/http"
	"path"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/objectstore"
)

// ObjectsHandler serves blobs and runs the two-step upload flow.
type ObjectsHandler struct {
	objects *objectstore.Service
}

func NewObjectsHandler(objects *objectstore.Service) *ObjectsHandler {
	return &ObjectsHandler{objects: objects}
}

// GetPublicObject serves from the public search paths; no ACLs apply.
func (h *ObjectsHandler) GetPublicObject(w http.ResponseWriter, r *http.Request) {
	abs, err := h.objects.FindPublic(mux.Vars(r)["path"])
	if err != nil {
		if errors.Is(err, objectstore.ErrObjectNotFound) {
			writeError(w, "not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to read object", http.StatusInternalServerError)
		return
	}
	http.ServeFile(w, r, abs)
}

// GetObject serves from the private root after the sidecar ACL check. The
// principal may be absent: objects without a sidecar are world-readable.
func (h *ObjectsHandler) GetObject(w http.ResponseWriter, r *http.Request) {
	abs, err := h.objects.ResolvePrivate(mux.Vars(r)["path"])
	if err != nil {
		if errors.Is(err, objectstore.ErrObjectNotFound) {
			writeError(w, "not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to read object", http.StatusInternalServerError)
		return
	}

	acl, err := objectstore.ReadACL(abs)
	if err != nil {
		writeError(w, "failed to read object policy", http.StatusInternalServerError)
		return
	}

	var userID string
	if principal := PrincipalFrom(r.Context()); principal != nil {
		userID = principal.ID
	}
	if !objectstore.CanRead(acl, userID) {
		if userID == "" {
			writeError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		writeError(w, "forbidden", http.StatusForbidden)
		return
	}

	http.ServeFile(w, r, abs)
}

type uploadTicket struct {
	ID        string `json:"id"`
	UploadURL string `json:"uploadUrl"`
}

// RequestUpload issues an upload slot. The client PUTs the bytes to the
// returned URL.
func (h *ObjectsHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	id := h.objects.NewUploadID()
	writeJSON(w, uploadTicket{
		ID:        id,
		UploadURL: path.Join("/api/objects/upload", id),
	}, http.StatusOK)
}

type uploadResult struct {
	Path string `json:"path"`
}

const maxUploadBytes = 10 << 20

// CompleteUpload streams the body into the slot. The uploader becomes the
// object's owner; the blob starts private.
func (h *ObjectsHandler) CompleteUpload(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFrom(r.Context())
	rel, err := h.objects.SaveUpload(mux.Vars(r)["id"], principal.ID, http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, objectstore.ErrInvalidUploadID):
			writeError(w, "invalid upload id", http.StatusBadRequest)
		case errors.As(err, &tooBig):
			writeError(w, "upload too large", http.StatusRequestEntityTooLarge)
		default:
			writeError(w, "failed to store upload", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, uploadResult{Path: path.Join("/objects", rel)}, http.StatusCreated)
}
