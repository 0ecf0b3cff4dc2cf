package models

import "time"

// Domain models for the JA Makers marketplace. Records are plain data keyed
// by opaque string ids; relations are foreign-key style string references.

// User roles.
const (
	RoleBrand        = "brand"
	RoleManufacturer = "manufacturer"
	RoleAdmin        = "admin"
	RoleInstitution  = "financial_institution"
	RoleCreator      = "creator"
	RoleDesigner     = "designer"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Role         string    `json:"role" db:"role"`
	Currency     string    `json:"currency" db:"currency"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Manufacturer is the role profile for users with role "manufacturer",
// linked one-to-one by UserID.
type Manufacturer struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"userId" db:"user_id"`
	CompanyName  string    `json:"companyName" db:"company_name"`
	Parish       string    `json:"parish" db:"parish"`
	Description  string    `json:"description" db:"description"`
	Capabilities []string  `json:"capabilities" db:"-"`
	MinOrderQty  int       `json:"minOrderQty" db:"min_order_qty"`
	LeadTimeDays int       `json:"leadTimeDays" db:"lead_time_days"`
	Verified     bool      `json:"verified" db:"verified"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type Brand struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	CompanyName string    `json:"companyName" db:"company_name"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Website     string    `json:"website" db:"website"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Designer struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"userId" db:"user_id"`
	Specialty    string    `json:"specialty" db:"specialty"`
	PortfolioURL string    `json:"portfolioUrl" db:"portfolio_url"`
	Bio          string    `json:"bio" db:"bio"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type Creator struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Medium    string    `json:"medium" db:"medium"`
	Bio       string    `json:"bio" db:"bio"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type FinancialInstitution struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"userId" db:"user_id"`
	InstitutionName string    `json:"institutionName" db:"institution_name"`
	InstitutionType string    `json:"institutionType" db:"institution_type"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// RFQ lifecycle statuses.
const (
	RfqStatusDraft   = "draft"
	RfqStatusActive  = "active"
	RfqStatusClosed  = "closed"
	RfqStatusExpired = "expired"
)

// RfqRequirements is the free-form requirements block attached to an RFQ.
type RfqRequirements struct {
	Certifications []string `json:"certifications,omitempty"`
	Packaging      string   `json:"packaging,omitempty"`
	Labeling       string   `json:"labeling,omitempty"`
}

type Rfq struct {
	ID           string          `json:"id" db:"id"`
	BrandID      string          `json:"brandId" db:"brand_id"`
	Title        string          `json:"title" db:"title"`
	Description  string          `json:"description" db:"description"`
	Category     string          `json:"category" db:"category"`
	Quantity     int             `json:"quantity" db:"quantity"`
	BudgetCents  int64           `json:"budgetCents" db:"budget_cents"`
	Status       string          `json:"status" db:"status"`
	Requirements RfqRequirements `json:"requirements" db:"-"`
	ExpiresAt    *time.Time      `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// RfqResponse is a manufacturer's quote on an RFQ. Immutable once created
// except for the IsAwarded flag flipped by the owning brand.
type RfqResponse struct {
	ID             string    `json:"id" db:"id"`
	RfqID          string    `json:"rfqId" db:"rfq_id"`
	ManufacturerID string    `json:"manufacturerId" db:"manufacturer_id"`
	PriceCents     int64     `json:"priceCents" db:"price_cents"`
	LeadTimeDays   int       `json:"leadTimeDays" db:"lead_time_days"`
	Notes          string    `json:"notes" db:"notes"`
	IsAwarded      bool      `json:"isAwarded" db:"is_awarded"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Project statuses.
const (
	ProjectStatusDraft      = "draft"
	ProjectStatusActive     = "active"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
)

type Project struct {
	ID             string    `json:"id" db:"id"`
	BrandID        string    `json:"brandId" db:"brand_id"`
	RfqID          string    `json:"rfqId,omitempty" db:"rfq_id"`
	ManufacturerID string    `json:"manufacturerId,omitempty" db:"manufacturer_id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Status         string    `json:"status" db:"status"`
	Progress       int       `json:"progress" db:"progress"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

const (
	MilestoneStatusPending   = "pending"
	MilestoneStatusCompleted = "completed"
)

type Milestone struct {
	ID        string     `json:"id" db:"id"`
	ProjectID string     `json:"projectId" db:"project_id"`
	Name      string     `json:"name" db:"name"`
	Status    string     `json:"status" db:"status"`
	DueDate   *time.Time `json:"dueDate,omitempty" db:"due_date"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

type RawMaterial struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Unit        string    `json:"unit" db:"unit"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type RawMaterialSupplier struct {
	ID             string    `json:"id" db:"id"`
	RawMaterialID  string    `json:"rawMaterialId" db:"raw_material_id"`
	Name           string    `json:"name" db:"name"`
	Parish         string    `json:"parish" db:"parish"`
	UnitPriceCents int64     `json:"unitPriceCents" db:"unit_price_cents"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// ProjectMaterial links a project to a raw material, optionally through a
// supplier. Money amounts are minor currency units (cents).
type ProjectMaterial struct {
	ID             string    `json:"id" db:"id"`
	ProjectID      string    `json:"projectId" db:"project_id"`
	RawMaterialID  string    `json:"rawMaterialId" db:"raw_material_id"`
	SupplierID     string    `json:"supplierId,omitempty" db:"supplier_id"`
	Quantity       int       `json:"quantity" db:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents" db:"unit_price_cents"`
	TotalCents     int64     `json:"totalCents" db:"total_cents"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Message is a direct message between two users. Threads are derived at
// query time by grouping on the counterpart user id.
type Message struct {
	ID          string    `json:"id" db:"id"`
	SenderID    string    `json:"senderId" db:"sender_id"`
	RecipientID string    `json:"recipientId" db:"recipient_id"`
	Body        string    `json:"body" db:"body"`
	Read        bool      `json:"read" db:"read"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Thread is the derived view of a conversation with one counterpart.
type Thread struct {
	CounterpartID string  `json:"counterpartId"`
	LastMessage   Message `json:"lastMessage"`
	UnreadCount   int     `json:"unreadCount"`
}

type Review struct {
	ID             string    `json:"id" db:"id"`
	ManufacturerID string    `json:"manufacturerId" db:"manufacturer_id"`
	AuthorUserID   string    `json:"authorUserId" db:"author_user_id"`
	Rating         int       `json:"rating" db:"rating"`
	Comment        string    `json:"comment" db:"comment"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

type Certification struct {
	ID             string     `json:"id" db:"id"`
	ManufacturerID string     `json:"manufacturerId" db:"manufacturer_id"`
	Name           string     `json:"name" db:"name"`
	Issuer         string     `json:"issuer" db:"issuer"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// Verification request statuses.
const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

type VerificationRequest struct {
	ID             string    `json:"id" db:"id"`
	ManufacturerID string    `json:"manufacturerId" db:"manufacturer_id"`
	Status         string    `json:"status" db:"status"`
	Documents      []string  `json:"documents" db:"-"`
	ReviewerNotes  string    `json:"reviewerNotes" db:"reviewer_notes"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

type LoanProduct struct {
	ID             string    `json:"id" db:"id"`
	InstitutionID  string    `json:"institutionId" db:"institution_id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	MaxAmountCents int64     `json:"maxAmountCents" db:"max_amount_cents"`
	RatePercent    float64   `json:"ratePercent" db:"rate_percent"`
	TermMonths     int       `json:"termMonths" db:"term_months"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusRejected = "rejected"
)

type LoanApplication struct {
	ID              string    `json:"id" db:"id"`
	ApplicantUserID string    `json:"applicantUserId" db:"applicant_user_id"`
	LoanProductID   string    `json:"loanProductId" db:"loan_product_id"`
	AmountCents     int64     `json:"amountCents" db:"amount_cents"`
	Purpose         string    `json:"purpose" db:"purpose"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type Course struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Level       string    `json:"level" db:"level"`
	Modules     []string  `json:"modules" db:"-"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Enrollment struct {
	ID          string     `json:"id" db:"id"`
	CourseID    string     `json:"courseId" db:"course_id"`
	UserID      string     `json:"userId" db:"user_id"`
	Progress    int        `json:"progress" db:"progress"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// LandingDocument is the single editable CMS document for the landing page.
type LandingDocument struct {
	Hero      map[string]any   `json:"hero"`
	Sections  []map[string]any `json:"sections"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
