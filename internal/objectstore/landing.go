package objectstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jamakers/platform/pkg/models"
)

const landingRel = "cms/landing.json"

// defaultLanding is served until an admin saves a version.
func defaultLanding() *models.LandingDocument {
	return &models.LandingDocument{
		Hero: map[string]any{
			"title":    "JA Makers",
			"subtitle": "Connecting Jamaican manufacturers with the brands that need them",
		},
		Sections: []map[string]any{},
	}
}

// ReadLanding loads the CMS landing document, falling back to the default
// when none has been saved yet.
func (s *Service) ReadLanding() (*models.LandingDocument, error) {
	data, err := os.ReadFile(filepath.Join(s.privateDir, landingRel))
	if err != nil {
		if os.IsNotExist(err) {
			return defaultLanding(), nil
		}
		return nil, fmt.Errorf("read landing document: %w", err)
	}
	var doc models.LandingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse landing document: %w", err)
	}
	return &doc, nil
}

// WriteLanding persists the CMS landing document and stamps UpdatedAt.
func (s *Service) WriteLanding(doc *models.LandingDocument) error {
	doc.UpdatedAt = time.Now().UTC()
	abs := filepath.Join(s.privateDir, landingRel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create cms dir: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal landing document: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("write landing document: %w", err)
	}
	return nil
}
