// Package remote implements storage.Store against a hosted document-store
// service. Collections mirror the Postgres tables; each record travels as the
// JSON form of its model. The service only answers equality queries, so
// derived views (threads, cross-collection joins) are computed client-side.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/jamakers/platform/pkg/storage"
)

// Collection names mirror the Postgres table names.
const (
	colUsers          = "users"
	colManufacturers  = "manufacturers"
	colBrands         = "brands"
	colDesigners      = "designers"
	colCreators       = "creators"
	colInstitutions   = "financial_institutions"
	colRfqs           = "rfqs"
	colRfqResponses   = "rfq_responses"
	colProjects       = "projects"
	colMilestones     = "milestones"
	colRawMaterials   = "raw_materials"
	colSuppliers      = "raw_material_suppliers"
	colProjectMats    = "project_materials"
	colMessages       = "messages"
	colReviews        = "reviews"
	colCertifications = "certifications"
	colVerifications  = "verification_requests"
	colLoanProducts   = "loan_products"
	colLoanApps       = "loan_applications"
	colCourses        = "courses"
	colEnrollments    = "enrollments"
)

// Store implements storage.Store over the document-store HTTP API.
type Store struct {
	client *resty.Client
	logger *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// New builds a store talking to the document service at baseURL.
func New(baseURL string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Store{client: client, logger: logger}
}

func newID() string {
	return uuid.NewString()
}

type queryResult[T any] struct {
	Documents []T `json:"documents"`
}

// getDoc fetches one document by id. A 404 is the contract's (nil, nil).
func getDoc[T any](ctx context.Context, s *Store, collection, id string) (*T, error) {
	var out T
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/collections/%s/documents/%s", collection, id))
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get %s/%s: status %d", collection, id, resp.StatusCode())
	}
	return &out, nil
}

// queryDocs lists documents matching the equality filters, newest first.
func queryDocs[T any](ctx context.Context, s *Store, collection string, filters map[string]string) ([]T, error) {
	var out queryResult[T]
	req := s.client.R().
		SetContext(ctx).
		SetQueryParam("sort", "-createdAt").
		SetResult(&out)
	for k, v := range filters {
		req.SetQueryParam(k, v)
	}
	resp, err := req.Get(fmt.Sprintf("/api/collections/%s/documents", collection))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("query %s: status %d", collection, resp.StatusCode())
	}
	if out.Documents == nil {
		return []T{}, nil
	}
	return out.Documents, nil
}

// insertDoc stores a new document under its client-assigned id.
func insertDoc[T any](ctx context.Context, s *Store, collection, id string, doc *T) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(doc).
		Put(fmt.Sprintf("/api/collections/%s/documents/%s", collection, id))
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", collection, id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("insert %s/%s: status %d", collection, id, resp.StatusCode())
	}
	return nil
}

// replaceDoc overwrites an existing document. A 404 is a silent no-op, same
// as the other backends.
func replaceDoc[T any](ctx context.Context, s *Store, collection, id string, doc *T) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(doc).
		Put(fmt.Sprintf("/api/collections/%s/documents/%s", collection, id))
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	if resp.IsError() {
		return fmt.Errorf("update %s/%s: status %d", collection, id, resp.StatusCode())
	}
	return nil
}
