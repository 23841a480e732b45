package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rodnnnney/consensus25/internal/api/handler"
	"github.com/rodnnnney/consensus25/internal/api/middleware"
	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
	"github.com/rodnnnney/consensus25/internal/core/service"
	"github.com/rodnnnney/consensus25/internal/infrastructure/db/postgres"
	redisstate "github.com/rodnnnney/consensus25/internal/infrastructure/db/redis"
)

// Dependencies are the external collaborators the router wires handlers to.
type Dependencies struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Chain     ports.ChainClient
	Blobs     ports.BlobStore
	JWTSecret string

	OAuthClientID    string
	OAuthRedirectURI string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	roleRepo := postgres.NewRoleRepository(deps.DB)
	employerRepo := postgres.NewEmployerRepository(deps.DB)
	freelancerRepo := postgres.NewFreelancerRepository(deps.DB)
	jobRepo := postgres.NewJobRepository(deps.DB)
	transactionRepo := postgres.NewTransactionRepository(deps.DB)
	invitationRepo := postgres.NewInvitationRepository(deps.DB)
	stateStore := redisstate.NewClientStateStore(deps.Redis)

	// --- Services ---
	identity := service.NewIdentityService(roleRepo, deps.JWTSecret, log)
	snapshots := service.NewSnapshotService(employerRepo, freelancerRepo, invitationRepo, transactionRepo, jobRepo, log)
	sessionStore := service.NewSessionStore()
	jobs := service.NewJobService(jobRepo, freelancerRepo, log)
	keyless := service.NewKeylessService(stateStore, deps.Chain, deps.OAuthClientID, deps.OAuthRedirectURI, log)
	payments := service.NewPaymentService(jobRepo, freelancerRepo, transactionRepo, deps.Chain, keyless, log)
	balances := service.NewBalanceService(deps.Chain, log)
	onboarding := service.NewOnboardingService(roleRepo, employerRepo, freelancerRepo, log)
	profiles := service.NewProfileService(freelancerRepo, deps.Blobs, log)
	invitations := service.NewInvitationService(employerRepo, invitationRepo, log)
	notifications := service.NewNotificationService(transactionRepo, stateStore, log)

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(onboarding, sessionStore)
	snapshotHandler := handler.NewSnapshotHandler(snapshots, sessionStore)
	jobHandler := handler.NewJobHandler(jobs)
	paymentHandler := handler.NewPaymentHandler(payments, balances)
	profileHandler := handler.NewProfileHandler(profiles)
	invitationHandler := handler.NewInvitationHandler(invitations)
	keylessHandler := handler.NewKeylessHandler(keyless)
	notificationHandler := handler.NewNotificationHandler(notifications)

	authMW := middleware.Auth(identity)
	employerOnly := middleware.RequireRole(domain.RoleEmployer)
	freelancerOnly := middleware.RequireRole(domain.RoleFreelancer)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Session routes ---
	auth := e.Group("/auth", authMW)
	auth.GET("/session", sessionHandler.Resolve)
	auth.POST("/onboarding", sessionHandler.Onboard)
	auth.POST("/signout", sessionHandler.SignOut)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMW)

	v1.GET("/snapshot", snapshotHandler.Get)
	v1.POST("/snapshot/refresh", snapshotHandler.Refresh)

	v1.GET("/jobs", jobHandler.List)
	v1.POST("/jobs", jobHandler.Post, freelancerOnly)
	v1.GET("/jobs/:id", jobHandler.Get)

	v1.POST("/payments", paymentHandler.Pay, employerOnly)
	v1.POST("/payments/record", paymentHandler.Record, employerOnly)
	v1.GET("/balances", paymentHandler.Balances)

	v1.GET("/invitations", invitationHandler.List, employerOnly)
	v1.POST("/invitations", invitationHandler.Invite, employerOnly)

	v1.PUT("/profile", profileHandler.Update, freelancerOnly)
	v1.POST("/profile/avatar", profileHandler.UploadAvatar, freelancerOnly)

	v1.GET("/keyless/login-url", keylessHandler.LoginURL)
	v1.POST("/keyless/callback", keylessHandler.Callback)

	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications/checked", notificationHandler.MarkChecked)

	return e
}
