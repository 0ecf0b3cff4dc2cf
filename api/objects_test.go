package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamakers/platform/internal/objectstore"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestPublicObjects(t *testing.T) {
	env := newTestEnv(t)
	mustWriteFile(t, filepath.Join(env.publicDir, "img", "logo.svg"), "<svg/>")

	w := env.do(t, http.MethodGet, "/public-objects/img/logo.svg", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("public object: status %d", w.Code)
	}
	if w.Body.String() != "<svg/>" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}

	if w = env.do(t, http.MethodGet, "/public-objects/img/missing.svg", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing object: expected 404, got %d", w.Code)
	}

	// traversal out of the root reads as missing
	if w = env.do(t, http.MethodGet, "/public-objects/..%2f..%2fetc%2fpasswd", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("traversal: expected 404, got %d", w.Code)
	}
}

func TestPrivateObjectACL(t *testing.T) {
	env := newTestEnv(t)
	anon := ""
	owner := env.login(t, "ops@bluemountain.example")
	listed := env.login(t, "team@iriewear.example")
	outsider := env.login(t, "orders@yaadspice.example")

	// no sidecar: world readable
	open := filepath.Join(env.privateDir, "docs", "catalog.pdf")
	mustWriteFile(t, open, "catalog")
	if w := env.do(t, http.MethodGet, "/objects/docs/catalog.pdf", anon, nil); w.Code != http.StatusOK {
		t.Fatalf("open object anonymous: status %d", w.Code)
	}

	// private sidecar: owner and allow-list only
	private := filepath.Join(env.privateDir, "docs", "quote.pdf")
	mustWriteFile(t, private, "quote")
	acl := objectstore.ACL{
		Owner:        "seed-user-bluemountain",
		Visibility:   objectstore.VisibilityPrivate,
		AllowedUsers: []string{"seed-user-irie"},
	}
	raw, _ := json.Marshal(acl)
	mustWriteFile(t, private+".acl.json", string(raw))

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"Anonymous", anon, http.StatusUnauthorized},
		{"Owner", owner, http.StatusOK},
		{"AllowListed", listed, http.StatusOK},
		{"Outsider", outsider, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/objects/docs/quote.pdf", tt.token, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d got %d body=%s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestUploadFlow(t *testing.T) {
	env := newTestEnv(t)
	owner := env.login(t, "ops@bluemountain.example")
	outsider := env.login(t, "orders@yaadspice.example")

	// uploads require auth
	if w := env.do(t, http.MethodPost, "/api/objects/upload", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous ticket: expected 401, got %d", w.Code)
	}

	w := env.do(t, http.MethodPost, "/api/objects/upload", owner, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ticket: status %d body=%s", w.Code, w.Body.String())
	}
	var ticket struct {
		ID        string `json:"id"`
		UploadURL string `json:"uploadUrl"`
	}
	decodeInto(t, w, &ticket)
	if ticket.ID == "" || ticket.UploadURL != "/api/objects/upload/"+ticket.ID {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}

	w = env.do(t, http.MethodPut, ticket.UploadURL, owner, []byte("blob bytes"))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: status %d body=%s", w.Code, w.Body.String())
	}
	var result struct {
		Path string `json:"path"`
	}
	decodeInto(t, w, &result)
	if result.Path != "/objects/uploads/"+ticket.ID {
		t.Fatalf("unexpected object path %q", result.Path)
	}

	// the uploaded blob starts private: owner reads, others do not
	if w = env.do(t, http.MethodGet, result.Path, owner, nil); w.Code != http.StatusOK {
		t.Fatalf("owner read: status %d", w.Code)
	}
	if w.Body.String() != "blob bytes" {
		t.Fatalf("unexpected content %q", w.Body.String())
	}
	if w = env.do(t, http.MethodGet, result.Path, outsider, nil); w.Code != http.StatusForbidden {
		t.Fatalf("outsider read: expected 403, got %d", w.Code)
	}
	if w = env.do(t, http.MethodGet, result.Path, "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous read: expected 401, got %d", w.Code)
	}
}

func TestUploadRejections(t *testing.T) {
	env := newTestEnv(t)
	owner := env.login(t, "ops@bluemountain.example")

	// only ids issued by the ticket endpoint are accepted
	w := env.do(t, http.MethodPut, "/api/objects/upload/not-a-real-id", owner, []byte("x"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bogus upload id: expected 400, got %d body=%s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodPost, "/api/objects/upload", owner, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ticket: status %d", w.Code)
	}
	var ticket struct {
		UploadURL string `json:"uploadUrl"`
	}
	decodeInto(t, w, &ticket)

	// bodies over the limit are refused, not stored
	oversized := bytes.Repeat([]byte("a"), 10<<20+1)
	w = env.do(t, http.MethodPut, ticket.UploadURL, owner, oversized)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized upload: expected 413, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCmsLanding(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@jamakers.example")
	brand := env.login(t, "team@iriewear.example")

	// default document before any save
	w := env.do(t, http.MethodGet, "/api/cms/landing", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get landing: status %d", w.Code)
	}
	var doc struct {
		Hero map[string]any `json:"hero"`
	}
	decodeInto(t, w, &doc)
	if doc.Hero["title"] != "JA Makers" {
		t.Fatalf("unexpected default hero: %+v", doc.Hero)
	}

	// writes are admin-only
	body := map[string]any{
		"hero":     map[string]any{"title": "Made in Jamaica"},
		"sections": []map[string]any{{"kind": "featured", "heading": "Verified factories"}},
	}
	if w = env.do(t, http.MethodPut, "/api/cms/landing", brand, body); w.Code != http.StatusForbidden {
		t.Fatalf("brand put landing: expected 403, got %d", w.Code)
	}
	if w = env.do(t, http.MethodPut, "/api/cms/landing", admin, body); w.Code != http.StatusOK {
		t.Fatalf("admin put landing: status %d body=%s", w.Code, w.Body.String())
	}

	// missing hero fails validation
	if w = env.do(t, http.MethodPut, "/api/cms/landing", admin, map[string]any{"sections": []any{}}); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid landing: expected 400, got %d", w.Code)
	}

	// saved version is served afterwards
	w = env.do(t, http.MethodGet, "/api/cms/landing", "", nil)
	decodeInto(t, w, &doc)
	if doc.Hero["title"] != "Made in Jamaica" {
		t.Fatalf("saved landing not served: %+v", doc.Hero)
	}
}
