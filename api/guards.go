package api

import (
	"context"
	"net/http"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// guard wraps a handler with an authorization check.
type guard = func(http.HandlerFunc) http.HandlerFunc

// RequireRole rejects callers whose role is not in the allow list. Admins
// are not implicitly allowed; list them where they belong.
func RequireRole(roles ...string) guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFrom(r.Context())
			if principal == nil {
				writeError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next(w, r)
					return
				}
			}
			writeError(w, "forbidden", http.StatusForbidden)
		}
	}
}

// OwnerResolver maps a request to the user id that owns the target resource.
// An empty id means the resource does not exist.
type OwnerResolver func(r *http.Request) (string, error)

// RequireOwnership admits the owner or an admin. Order matters: a missing
// resource is 404 before any 403, so ids are not probeable.
func RequireOwnership(resolve OwnerResolver) guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFrom(r.Context())
			if principal == nil {
				writeError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			ownerID, err := resolve(r)
			if err != nil {
				writeError(w, "failed to resolve resource", http.StatusInternalServerError)
				return
			}
			if ownerID == "" {
				writeError(w, "not found", http.StatusNotFound)
				return
			}
			if principal.ID != ownerID && principal.Role != models.RoleAdmin {
				writeError(w, "forbidden", http.StatusForbidden)
				return
			}
			next(w, r)
		}
	}
}

// RequireManufacturer loads the caller's manufacturer profile into context.
// 403 when the caller has no manufacturer profile.
func RequireManufacturer(store storage.Store) guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFrom(r.Context())
			if principal == nil {
				writeError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			m, err := store.GetManufacturerByUserID(r.Context(), principal.ID)
			if err != nil {
				writeError(w, "failed to load profile", http.StatusInternalServerError)
				return
			}
			if m == nil {
				writeError(w, "manufacturer profile required", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), ctxManufacturer, m)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireBrand loads the caller's brand profile into context. 403 when the
// caller has no brand profile.
func RequireBrand(store storage.Store) guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFrom(r.Context())
			if principal == nil {
				writeError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			b, err := store.GetBrandByUserID(r.Context(), principal.ID)
			if err != nil {
				writeError(w, "failed to load profile", http.StatusInternalServerError)
				return
			}
			if b == nil {
				writeError(w, "brand profile required", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), ctxBrand, b)
			next(w, r.WithContext(ctx))
		}
	}
}

// ManufacturerFrom returns the profile loaded by RequireManufacturer.
func ManufacturerFrom(ctx context.Context) *models.Manufacturer {
	m, _ := ctx.Value(ctxManufacturer).(*models.Manufacturer)
	return m
}

// BrandFrom returns the profile loaded by RequireBrand.
func BrandFrom(ctx context.Context) *models.Brand {
	b, _ := ctx.Value(ctxBrand).(*models.Brand)
	return b
}
