package api

import (
	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/config"
	"github.com/jamakers/platform/internal/objectstore"
	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/ollama"
	"github.com/jamakers/platform/pkg/storage"
)

// SetupRoutes assembles the router. The storage backend is injected; nothing
// in this package holds global state beyond the logger.
func SetupRoutes(cfg *config.Config, version, buildTime string, store storage.Store,
	objects *objectstore.Service, chat *ollama.Client, schemas *validate.Registry) *mux.Router {

	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(store, schemas, cfg.SessionSecret, cfg.TokenDuration)
	profilesHandler := NewProfilesHandler(store, schemas)
	rfqsHandler := NewRfqsHandler(store, schemas)
	projectsHandler := NewProjectsHandler(store, schemas)
	materialsHandler := NewMaterialsHandler(store)
	messagesHandler := NewMessagesHandler(store, schemas)
	reviewsHandler := NewReviewsHandler(store, schemas)
	verificationHandler := NewVerificationHandler(store, schemas)
	financeHandler := NewFinanceHandler(store, schemas)
	coursesHandler := NewCoursesHandler(store, schemas)
	cmsHandler := NewCmsHandler(objects, schemas)
	objectsHandler := NewObjectsHandler(objects)
	chatHandler := NewChatHandler(chat, schemas)

	// Open endpoints
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Public directories and catalogs
	r.HandleFunc("/api/manufacturers", profilesHandler.ListManufacturers).Methods("GET")
	r.HandleFunc("/api/manufacturers/{id}", profilesHandler.GetManufacturer).Methods("GET")
	r.HandleFunc("/api/manufacturers/{id}/reviews", reviewsHandler.ListReviews).Methods("GET")
	r.HandleFunc("/api/manufacturers/{id}/certifications", reviewsHandler.ListCertifications).Methods("GET")
	r.HandleFunc("/api/brands", profilesHandler.ListBrands).Methods("GET")
	r.HandleFunc("/api/brands/{id}", profilesHandler.GetBrand).Methods("GET")
	r.HandleFunc("/api/designers", profilesHandler.ListDesigners).Methods("GET")
	r.HandleFunc("/api/designers/{id}", profilesHandler.GetDesigner).Methods("GET")
	r.HandleFunc("/api/creators", profilesHandler.ListCreators).Methods("GET")
	r.HandleFunc("/api/creators/{id}", profilesHandler.GetCreator).Methods("GET")
	r.HandleFunc("/api/institutions", profilesHandler.ListInstitutions).Methods("GET")
	r.HandleFunc("/api/institutions/{id}", profilesHandler.GetInstitution).Methods("GET")
	r.HandleFunc("/api/raw-materials", materialsHandler.ListRawMaterials).Methods("GET")
	r.HandleFunc("/api/raw-materials/{id}", materialsHandler.GetRawMaterial).Methods("GET")
	r.HandleFunc("/api/raw-materials/{id}/suppliers", materialsHandler.ListSuppliers).Methods("GET")
	r.HandleFunc("/api/courses", coursesHandler.ListCourses).Methods("GET")
	r.HandleFunc("/api/courses/{id}", coursesHandler.GetCourse).Methods("GET")
	r.HandleFunc("/api/cms/landing", cmsHandler.GetLanding).Methods("GET")
	r.HandleFunc("/api/finance/loan-products", financeHandler.ListLoanProducts).Methods("GET")

	// Objects: public paths are open, private paths check the sidecar ACL
	// with whatever principal the caller presents.
	r.HandleFunc("/public-objects/{path:.*}", objectsHandler.GetPublicObject).Methods("GET")
	objectsRoute := r.PathPrefix("/objects").Subrouter()
	objectsRoute.Use(OptionalAuthMiddleware(cfg.SessionSecret, store))
	objectsRoute.HandleFunc("/{path:.*}", objectsHandler.GetObject).Methods("GET")

	// Protected API
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(AuthMiddleware(cfg.SessionSecret, store))

	protected.HandleFunc("/auth/user", authHandler.CurrentUser).Methods("GET")

	// Profiles
	protected.HandleFunc("/manufacturers",
		RequireRole(models.RoleManufacturer)(profilesHandler.CreateManufacturer)).Methods("POST")
	protected.HandleFunc("/manufacturers/{id}",
		RequireOwnership(profilesHandler.ManufacturerOwner)(profilesHandler.UpdateManufacturer)).Methods("PUT")
	protected.HandleFunc("/brands",
		RequireRole(models.RoleBrand)(profilesHandler.CreateBrand)).Methods("POST")
	protected.HandleFunc("/brands/{id}",
		RequireOwnership(profilesHandler.BrandOwner)(profilesHandler.UpdateBrand)).Methods("PUT")
	protected.HandleFunc("/designers",
		RequireRole(models.RoleDesigner)(profilesHandler.CreateDesigner)).Methods("POST")
	protected.HandleFunc("/designers/{id}",
		RequireOwnership(profilesHandler.DesignerOwner)(profilesHandler.UpdateDesigner)).Methods("PUT")
	protected.HandleFunc("/creators",
		RequireRole(models.RoleCreator)(profilesHandler.CreateCreator)).Methods("POST")
	protected.HandleFunc("/creators/{id}",
		RequireOwnership(profilesHandler.CreatorOwner)(profilesHandler.UpdateCreator)).Methods("PUT")
	protected.HandleFunc("/institutions",
		RequireRole(models.RoleInstitution)(profilesHandler.CreateInstitution)).Methods("POST")
	protected.HandleFunc("/institutions/{id}",
		RequireOwnership(profilesHandler.InstitutionOwner)(profilesHandler.UpdateInstitution)).Methods("PUT")

	// RFQs and quotes
	protected.HandleFunc("/rfqs",
		RequireBrand(store)(rfqsHandler.CreateRfq)).Methods("POST")
	protected.HandleFunc("/rfqs", rfqsHandler.ListRfqs).Methods("GET")
	protected.HandleFunc("/rfqs/my",
		RequireBrand(store)(rfqsHandler.ListMyRfqs)).Methods("GET")
	protected.HandleFunc("/rfqs/{id}", rfqsHandler.GetRfq).Methods("GET")
	protected.HandleFunc("/rfqs/{id}",
		RequireOwnership(rfqsHandler.RfqOwner)(rfqsHandler.UpdateRfq)).Methods("PUT")
	protected.HandleFunc("/rfqs/{id}/responses",
		RequireManufacturer(store)(rfqsHandler.CreateResponse)).Methods("POST")
	protected.HandleFunc("/rfqs/{id}/responses",
		RequireOwnership(rfqsHandler.RfqOwner)(rfqsHandler.ListResponses)).Methods("GET")
	protected.HandleFunc("/rfq-responses/{id}/award",
		RequireOwnership(rfqsHandler.ResponseOwner)(rfqsHandler.AwardResponse)).Methods("POST")

	// Projects, milestones, materials
	protected.HandleFunc("/projects",
		RequireBrand(store)(projectsHandler.CreateProject)).Methods("POST")
	protected.HandleFunc("/projects", projectsHandler.ListProjects).Methods("GET")
	protected.HandleFunc("/projects/{id}", projectsHandler.GetProject).Methods("GET")
	protected.HandleFunc("/projects/{id}",
		RequireOwnership(projectsHandler.ProjectOwner)(projectsHandler.UpdateProject)).Methods("PUT")
	protected.HandleFunc("/projects/{id}/milestones", projectsHandler.ListMilestones).Methods("GET")
	protected.HandleFunc("/projects/{id}/milestones",
		RequireOwnership(projectsHandler.ProjectOwner)(projectsHandler.CreateMilestone)).Methods("POST")
	protected.HandleFunc("/milestones/{id}",
		RequireOwnership(projectsHandler.MilestoneProjectOwner)(projectsHandler.UpdateMilestone)).Methods("PUT")
	protected.HandleFunc("/projects/{id}/materials", projectsHandler.ListProjectMaterials).Methods("GET")
	protected.HandleFunc("/projects/{id}/materials",
		RequireOwnership(projectsHandler.ProjectOwner)(projectsHandler.AddProjectMaterial)).Methods("POST")

	// Messaging
	protected.HandleFunc("/messages", messagesHandler.SendMessage).Methods("POST")
	protected.HandleFunc("/messages/threads", messagesHandler.ListThreads).Methods("GET")
	protected.HandleFunc("/messages/{userId}", messagesHandler.GetConversation).Methods("GET")

	// Reviews and certifications
	protected.HandleFunc("/manufacturers/{id}/reviews",
		RequireRole(models.RoleBrand, models.RoleDesigner, models.RoleCreator)(reviewsHandler.CreateReview)).Methods("POST")
	protected.HandleFunc("/certifications",
		RequireManufacturer(store)(reviewsHandler.CreateCertification)).Methods("POST")

	// Verification queue
	protected.HandleFunc("/verification-requests",
		RequireManufacturer(store)(verificationHandler.CreateRequest)).Methods("POST")
	protected.HandleFunc("/admin/verification-requests",
		RequireRole(models.RoleAdmin)(verificationHandler.ListRequests)).Methods("GET")
	protected.HandleFunc("/admin/verification-requests/{id}",
		RequireRole(models.RoleAdmin)(verificationHandler.Decide)).Methods("PUT")

	// Financing
	protected.HandleFunc("/finance/loan-products",
		RequireRole(models.RoleInstitution)(financeHandler.CreateLoanProduct)).Methods("POST")
	protected.HandleFunc("/finance/loan-applications",
		RequireRole(models.RoleBrand, models.RoleManufacturer)(financeHandler.CreateLoanApplication)).Methods("POST")
	protected.HandleFunc("/finance/loan-applications", financeHandler.ListLoanApplications).Methods("GET")
	protected.HandleFunc("/finance/loan-applications/{id}", financeHandler.GetLoanApplication).Methods("GET")
	protected.HandleFunc("/admin/loan-applications/{id}",
		RequireOwnership(financeHandler.ApplicationDecider)(financeHandler.DecideLoanApplication)).Methods("PUT")

	// Learning
	protected.HandleFunc("/courses/{id}/enroll", coursesHandler.Enroll).Methods("POST")
	protected.HandleFunc("/enrollments", coursesHandler.ListEnrollments).Methods("GET")
	protected.HandleFunc("/enrollments/{id}/progress",
		RequireOwnership(coursesHandler.EnrollmentOwner)(coursesHandler.UpdateProgress)).Methods("PUT")

	// CMS
	protected.HandleFunc("/cms/landing",
		RequireRole(models.RoleAdmin)(cmsHandler.PutLanding)).Methods("PUT")

	// Objects upload
	protected.HandleFunc("/objects/upload", objectsHandler.RequestUpload).Methods("POST")
	protected.HandleFunc("/objects/upload/{id}", objectsHandler.CompleteUpload).Methods("PUT")

	// Assistant
	protected.HandleFunc("/chat", chatHandler.Chat).Methods("POST")
	protected.HandleFunc("/chat/stream", chatHandler.ChatStream).Methods("POST")

	return r
}
