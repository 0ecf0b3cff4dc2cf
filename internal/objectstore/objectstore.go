// Package objectstore serves blobs from the local filesystem with per-object
// access control. ACLs ride in a sidecar file next to the blob; a blob with
// no sidecar is publicly readable.
package objectstore

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrObjectNotFound reports a missing blob. The HTTP layer maps it to 404;
// any other filesystem error is a 500.
var ErrObjectNotFound = errors.New("object not found")

// ErrInvalidUploadID reports an upload id that was not issued by NewUploadID.
// The HTTP layer maps it to 400.
var ErrInvalidUploadID = errors.New("invalid upload id")

// Service resolves objects against configured directories. Public search
// paths are probed in order; private objects live under a single root.
type Service struct {
	searchPaths []string
	privateDir  string
	logger      *slog.Logger
}

func New(searchPaths []string, privateDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		searchPaths: searchPaths,
		privateDir:  privateDir,
		logger:      logger,
	}
}

// cleanRel normalizes a request path and rejects traversal outside the root.
func cleanRel(rel string) (string, error) {
	rel = strings.TrimPrefix(rel, "/")
	cleaned := filepath.Clean(rel)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid object path %q", rel)
	}
	return cleaned, nil
}

// FindPublic probes the public search paths in order and returns the first
// file that exists.
func (s *Service) FindPublic(rel string) (string, error) {
	cleaned, err := cleanRel(rel)
	if err != nil {
		return "", ErrObjectNotFound
	}
	for _, dir := range s.searchPaths {
		candidate := filepath.Join(dir, cleaned)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", ErrObjectNotFound
}

// ResolvePrivate maps a request path to a file under the private root.
func (s *Service) ResolvePrivate(rel string) (string, error) {
	cleaned, err := cleanRel(rel)
	if err != nil {
		return "", ErrObjectNotFound
	}
	candidate := filepath.Join(s.privateDir, cleaned)
	info, err := os.Stat(candidate)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrObjectNotFound
		}
		return "", err
	}
	if info.IsDir() {
		return "", ErrObjectNotFound
	}
	return candidate, nil
}

// NewUploadID issues the id for a two-step upload. The caller PUTs the body
// to the matching upload path afterwards.
func (s *Service) NewUploadID() string {
	return uuid.NewString()
}

// SaveUpload streams an upload body to <private>/uploads/<id> and returns
// the object path relative to the private root.
func (s *Service) SaveUpload(id string, owner string, r io.Reader) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidUploadID, id, err)
	}
	rel := filepath.Join("uploads", id)
	abs := filepath.Join(s.privateDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("write upload: %w", err)
	}
	acl := &ACL{Owner: owner, Visibility: VisibilityPrivate}
	if err := WriteACL(abs, acl); err != nil {
		return "", err
	}
	s.logger.Info("object uploaded", "path", rel, "owner", owner)
	return rel, nil
}
