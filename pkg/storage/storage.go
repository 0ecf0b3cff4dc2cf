package storage

import (
	"context"
	"time"

	"github.com/jamakers/platform/pkg/models"
)

// Storage interfaces for domain entities. These are the public contracts the
// HTTP layer depends on; concrete backends live under internal/storage.
//
// Semantics shared by every backend:
//   - single-record lookups return (nil, nil) when the record is absent;
//     not-found is a value, not an error;
//   - list methods return empty slices, never nil;
//   - create methods assign the id and timestamps; update methods refresh
//     UpdatedAt;
//   - a non-nil error means an unexpected backend failure, which the HTTP
//     layer reports as a 500.

// ManufacturerFilter narrows directory listings. Zero values mean "any".
type ManufacturerFilter struct {
	Parish       string
	Capability   string
	VerifiedOnly bool
}

// RfqFilter narrows RFQ listings. Zero values mean "any".
type RfqFilter struct {
	Status   string
	Category string
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
}

type ManufacturerStore interface {
	CreateManufacturer(ctx context.Context, m *models.Manufacturer) error
	GetManufacturer(ctx context.Context, id string) (*models.Manufacturer, error)
	GetManufacturerByUserID(ctx context.Context, userID string) (*models.Manufacturer, error)
	ListManufacturers(ctx context.Context, f ManufacturerFilter) ([]models.Manufacturer, error)
	UpdateManufacturer(ctx context.Context, m *models.Manufacturer) error
}

type BrandStore interface {
	CreateBrand(ctx context.Context, b *models.Brand) error
	GetBrand(ctx context.Context, id string) (*models.Brand, error)
	GetBrandByUserID(ctx context.Context, userID string) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	UpdateBrand(ctx context.Context, b *models.Brand) error
}

type DesignerStore interface {
	CreateDesigner(ctx context.Context, d *models.Designer) error
	GetDesigner(ctx context.Context, id string) (*models.Designer, error)
	GetDesignerByUserID(ctx context.Context, userID string) (*models.Designer, error)
	ListDesigners(ctx context.Context) ([]models.Designer, error)
	UpdateDesigner(ctx context.Context, d *models.Designer) error
}

type CreatorStore interface {
	CreateCreator(ctx context.Context, c *models.Creator) error
	GetCreator(ctx context.Context, id string) (*models.Creator, error)
	GetCreatorByUserID(ctx context.Context, userID string) (*models.Creator, error)
	ListCreators(ctx context.Context) ([]models.Creator, error)
	UpdateCreator(ctx context.Context, c *models.Creator) error
}

type InstitutionStore interface {
	CreateInstitution(ctx context.Context, fi *models.FinancialInstitution) error
	GetInstitution(ctx context.Context, id string) (*models.FinancialInstitution, error)
	GetInstitutionByUserID(ctx context.Context, userID string) (*models.FinancialInstitution, error)
	ListInstitutions(ctx context.Context) ([]models.FinancialInstitution, error)
	UpdateInstitution(ctx context.Context, fi *models.FinancialInstitution) error
}

type RfqStore interface {
	CreateRfq(ctx context.Context, r *models.Rfq) error
	GetRfq(ctx context.Context, id string) (*models.Rfq, error)
	ListRfqs(ctx context.Context, f RfqFilter) ([]models.Rfq, error)
	ListRfqsByBrand(ctx context.Context, brandID string) ([]models.Rfq, error)
	UpdateRfq(ctx context.Context, r *models.Rfq) error

	CreateRfqResponse(ctx context.Context, resp *models.RfqResponse) error
	GetRfqResponse(ctx context.Context, id string) (*models.RfqResponse, error)
	ListResponsesByRfq(ctx context.Context, rfqID string) ([]models.RfqResponse, error)
	ListResponsesByManufacturer(ctx context.Context, manufacturerID string) ([]models.RfqResponse, error)
	// SetRfqResponseAwarded flips the award flag; responses are otherwise
	// immutable once created.
	SetRfqResponseAwarded(ctx context.Context, id string, awarded bool) error
}

type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjectsByBrand(ctx context.Context, brandID string) ([]models.Project, error)
	ListProjectsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error

	CreateMilestone(ctx context.Context, m *models.Milestone) error
	GetMilestone(ctx context.Context, id string) (*models.Milestone, error)
	ListMilestonesByProject(ctx context.Context, projectID string) ([]models.Milestone, error)
	UpdateMilestone(ctx context.Context, m *models.Milestone) error
}

type MaterialStore interface {
	CreateRawMaterial(ctx context.Context, rm *models.RawMaterial) error
	GetRawMaterial(ctx context.Context, id string) (*models.RawMaterial, error)
	ListRawMaterials(ctx context.Context, category string) ([]models.RawMaterial, error)
	ListSuppliersByMaterial(ctx context.Context, rawMaterialID string) ([]models.RawMaterialSupplier, error)
	CreateSupplier(ctx context.Context, s *models.RawMaterialSupplier) error

	CreateProjectMaterial(ctx context.Context, pm *models.ProjectMaterial) error
	ListProjectMaterials(ctx context.Context, projectID string) ([]models.ProjectMaterial, error)
}

type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	// ListThreads groups a user's messages by counterpart id and returns the
	// latest message plus unread count per counterpart, newest first.
	ListThreads(ctx context.Context, userID string) ([]models.Thread, error)
	ListConversation(ctx context.Context, userID, counterpartID string) ([]models.Message, error)
	MarkConversationRead(ctx context.Context, userID, counterpartID string) error
}

type ReviewStore interface {
	CreateReview(ctx context.Context, r *models.Review) error
	ListReviewsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Review, error)
}

type CertificationStore interface {
	CreateCertification(ctx context.Context, c *models.Certification) error
	ListCertificationsByManufacturer(ctx context.Context, manufacturerID string) ([]models.Certification, error)
}

type VerificationStore interface {
	CreateVerificationRequest(ctx context.Context, vr *models.VerificationRequest) error
	GetVerificationRequest(ctx context.Context, id string) (*models.VerificationRequest, error)
	ListVerificationRequests(ctx context.Context, status string) ([]models.VerificationRequest, error)
	UpdateVerificationRequest(ctx context.Context, vr *models.VerificationRequest) error
}

type FinanceStore interface {
	CreateLoanProduct(ctx context.Context, lp *models.LoanProduct) error
	GetLoanProduct(ctx context.Context, id string) (*models.LoanProduct, error)
	ListLoanProducts(ctx context.Context) ([]models.LoanProduct, error)

	CreateLoanApplication(ctx context.Context, la *models.LoanApplication) error
	GetLoanApplication(ctx context.Context, id string) (*models.LoanApplication, error)
	ListLoanApplicationsByApplicant(ctx context.Context, userID string) ([]models.LoanApplication, error)
	ListLoanApplicationsByInstitution(ctx context.Context, institutionID string) ([]models.LoanApplication, error)
	UpdateLoanApplication(ctx context.Context, la *models.LoanApplication) error
}

type CourseStore interface {
	CreateCourse(ctx context.Context, c *models.Course) error
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)

	CreateEnrollment(ctx context.Context, e *models.Enrollment) error
	GetEnrollment(ctx context.Context, id string) (*models.Enrollment, error)
	GetEnrollmentByCourseAndUser(ctx context.Context, courseID, userID string) (*models.Enrollment, error)
	ListEnrollmentsByUser(ctx context.Context, userID string) ([]models.Enrollment, error)
	UpdateEnrollment(ctx context.Context, e *models.Enrollment) error
}

// Store is the composite contract a backend must satisfy. It is injected
// into the route layer at startup; there is no package-level singleton.
type Store interface {
	UserStore
	ManufacturerStore
	BrandStore
	DesignerStore
	CreatorStore
	InstitutionStore
	RfqStore
	ProjectStore
	MaterialStore
	MessageStore
	ReviewStore
	CertificationStore
	VerificationStore
	FinanceStore
	CourseStore
}

// ApplyRfqExpiry presents an active RFQ past its deadline as expired. Every
// backend calls it on read paths so a record reports the same status no
// matter how it is fetched; the stored status stays active.
func ApplyRfqExpiry(r *models.Rfq) {
	if r.Status == models.RfqStatusActive && r.ExpiresAt != nil && r.ExpiresAt.Before(time.Now()) {
		r.Status = models.RfqStatusExpired
	}
}

// Touch stamps create/update times on a record. Backends call it so the
// timestamp invariant holds regardless of which one is active.
func Touch(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt != nil && createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt != nil {
		*updatedAt = now
	}
}
