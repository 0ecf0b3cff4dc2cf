package memory

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// Store is a map-backed implementation of storage.Store. All access goes
// through a single RWMutex, so it is safe for concurrent handlers within one
// process; it is unsuitable for multi-instance deployments. Deterministic
// demo data is seeded at construction.
type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	// insertion order per record id, used to break CreatedAt ties so
	// "most recently created" is well defined.
	seq  uint64
	prio map[string]uint64

	users            map[string]models.User
	manufacturers    map[string]models.Manufacturer
	brands           map[string]models.Brand
	designers        map[string]models.Designer
	creators         map[string]models.Creator
	institutions     map[string]models.FinancialInstitution
	rfqs             map[string]models.Rfq
	rfqResponses     map[string]models.RfqResponse
	projects         map[string]models.Project
	milestones       map[string]models.Milestone
	rawMaterials     map[string]models.RawMaterial
	suppliers        map[string]models.RawMaterialSupplier
	projectMaterials map[string]models.ProjectMaterial
	messages         map[string]models.Message
	reviews          map[string]models.Review
	certifications   map[string]models.Certification
	verifications    map[string]models.VerificationRequest
	loanProducts     map[string]models.LoanProduct
	loanApplications map[string]models.LoanApplication
	courses          map[string]models.Course
	enrollments      map[string]models.Enrollment
}

var _ storage.Store = (*Store)(nil)

func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		logger:           logger,
		prio:             make(map[string]uint64),
		users:            make(map[string]models.User),
		manufacturers:    make(map[string]models.Manufacturer),
		brands:           make(map[string]models.Brand),
		designers:        make(map[string]models.Designer),
		creators:         make(map[string]models.Creator),
		institutions:     make(map[string]models.FinancialInstitution),
		rfqs:             make(map[string]models.Rfq),
		rfqResponses:     make(map[string]models.RfqResponse),
		projects:         make(map[string]models.Project),
		milestones:       make(map[string]models.Milestone),
		rawMaterials:     make(map[string]models.RawMaterial),
		suppliers:        make(map[string]models.RawMaterialSupplier),
		projectMaterials: make(map[string]models.ProjectMaterial),
		messages:         make(map[string]models.Message),
		reviews:          make(map[string]models.Review),
		certifications:   make(map[string]models.Certification),
		verifications:    make(map[string]models.VerificationRequest),
		loanProducts:     make(map[string]models.LoanProduct),
		loanApplications: make(map[string]models.LoanApplication),
		courses:          make(map[string]models.Course),
		enrollments:      make(map[string]models.Enrollment),
	}
	s.seed()
	return s
}

// newID returns a fresh opaque identifier.
func newID() string {
	return uuid.NewString()
}

// track must be called with the write lock held.
func (s *Store) track(id string) {
	s.seq++
	s.prio[id] = s.seq
}

func (s *Store) stamp(createdAt, updatedAt *time.Time) {
	storage.Touch(createdAt, updatedAt)
}

// newer reports whether record a was inserted after record b.
func (s *Store) newer(a, b string) bool {
	return s.prio[a] > s.prio[b]
}

// sortByInsertDesc orders ids newest first. Callers hold at least the read
// lock and pass a closure extracting the id from the element.
func sortByInsertDesc[T any](s *Store, items []T, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return s.newer(id(items[i]), id(items[j]))
	})
}
