package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accountusecases "finderads/internal/application/account/usecases"
	bannerusecases "finderads/internal/application/banner/usecases"
	billingusecases "finderads/internal/application/billing/usecases"
	"finderads/internal/domain/banner"
	"finderads/internal/infrastructure/auth"
	"finderads/internal/infrastructure/billing"
	"finderads/internal/infrastructure/cache"
	"finderads/internal/infrastructure/config"
	"finderads/internal/infrastructure/repository"
	"finderads/internal/interfaces/http/handlers"
	"finderads/internal/interfaces/http/middleware"
	"finderads/internal/shared/db"
	"finderads/internal/shared/logger"
	"finderads/internal/shared/services/markdown"
)

// Router wires the full HTTP surface: repositories, use cases, handlers and
// middleware.
type Router struct {
	engine             *gin.Engine
	cfg                *config.Config
	authHandler        *handlers.AuthHandler
	accountHandler     *handlers.AccountHandler
	reservationHandler *handlers.ReservationHandler
	bannerHandler      *handlers.BannerHandler
	adminHandler       *handlers.AdminHandler
	webhookHandler     *handlers.WebhookHandler
	authMiddleware     *middleware.AuthMiddleware
	logger             logger.Interface
}

func NewRouter(cfg *config.Config, gdb *gorm.DB, redisClient *redis.Client) *Router {
	log := logger.NewLogger().Named("http")

	accountRepo := repository.NewAccountRepository(gdb, log)
	ledgerRepo := repository.NewLedgerRepository(gdb, log)
	reservationRepo := repository.NewReservationRepository(gdb, log)
	txManager := db.NewTransactionManager(gdb)

	adCache := cache.NewRedisBannerCache(redisClient, log)
	renderer := markdown.NewService()

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	hasher := auth.NewBcryptAPIKeyHasher(cfg.Auth.Password.BcryptCost)
	apiKeyVerifier := auth.NewAPIKeyVerifier(accountRepo, hasher)
	webhookVerifier := billing.NewWebhookVerifier(cfg.Billing.WebhookSecret, cfg.Billing.SignatureTolerance)

	createReservationUC := bannerusecases.NewCreateReservationUseCase(reservationRepo, accountRepo, log)
	getReservationUC := bannerusecases.NewGetReservationUseCase(reservationRepo, accountRepo, log)
	listReservationsUC := bannerusecases.NewListReservationsUseCase(reservationRepo, accountRepo, log)
	updateCreativeUC := bannerusecases.NewUpdateCreativeUseCase(reservationRepo, accountRepo, adCache, log)
	setActiveUC := bannerusecases.NewSetReservationActiveUseCase(reservationRepo, accountRepo, adCache, log)
	bookDatesUC := bannerusecases.NewBookDatesUseCase(
		reservationRepo, accountRepo, ledgerRepo, txManager, adCache, cfg.Booking.MaxBatchDays, log)
	cancelReservationUC := bannerusecases.NewCancelReservationUseCase(
		reservationRepo, accountRepo, ledgerRepo, txManager, adCache, log)
	approveUC := bannerusecases.NewApproveReservationUseCase(reservationRepo, adCache, log)
	rejectUC := bannerusecases.NewRejectReservationUseCase(reservationRepo, log)
	listPositionsUC := bannerusecases.NewListPositionsUseCase()
	getCalendarUC := bannerusecases.NewGetCalendarUseCase(reservationRepo, log)
	resolveBannerUC := bannerusecases.NewResolveActiveBannerUseCase(reservationRepo, adCache, renderer, log)

	registerAccountUC := accountusecases.NewRegisterAccountUseCase(accountRepo, log)
	getAccountUC := accountusecases.NewGetAccountUseCase(accountRepo, log)
	listLedgerUC := accountusecases.NewListLedgerUseCase(accountRepo, ledgerRepo, log)
	adjustCreditsUC := accountusecases.NewAdjustCreditsUseCase(accountRepo, ledgerRepo, txManager, log)
	auditLedgerUC := accountusecases.NewAuditLedgerUseCase(accountRepo, ledgerRepo, log)
	issueAPIKeyUC := accountusecases.NewIssueAPIKeyUseCase(accountRepo, hasher, log)

	handleWebhookUC := billingusecases.NewHandleWebhookUseCase(accountRepo, ledgerRepo, txManager, log)

	registerValidators()

	return &Router{
		engine:      gin.New(),
		cfg:         cfg,
		authHandler: handlers.NewAuthHandler(jwtService, apiKeyVerifier),
		accountHandler: handlers.NewAccountHandler(
			getAccountUC, listLedgerUC, issueAPIKeyUC),
		reservationHandler: handlers.NewReservationHandler(
			createReservationUC, getReservationUC, listReservationsUC,
			updateCreativeUC, setActiveUC, bookDatesUC, cancelReservationUC),
		bannerHandler: handlers.NewBannerHandler(
			listPositionsUC, getCalendarUC, resolveBannerUC),
		adminHandler: handlers.NewAdminHandler(
			listReservationsUC, approveUC, rejectUC,
			registerAccountUC, getAccountUC, listLedgerUC, adjustCreditsUC, auditLedgerUC),
		webhookHandler: handlers.NewWebhookHandler(webhookVerifier, handleWebhookUC),
		authMiddleware: middleware.NewAuthMiddleware(jwtService, apiKeyVerifier, log),
		logger:         log,
	}
}

// SetupRoutes configures middleware and all route groups.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", healthCheck)

	r.setupPublicRoutes()
	r.setupAuthRoutes()
	r.setupAccountRoutes()
	r.setupReservationRoutes()
	r.setupAdminRoutes()
	r.setupWebhookRoutes()
}

// setupPublicRoutes configures the unauthenticated read surface consumed by
// the site frontend.
func (r *Router) setupPublicRoutes() {
	public := r.engine.Group("/api/public")
	{
		public.GET("/positions", r.bannerHandler.ListPositions)
		public.GET("/positions/:position/calendar", r.bannerHandler.GetCalendar)
		public.GET("/ads/:position", r.bannerHandler.ResolveBanner)
	}
}

func (r *Router) setupAuthRoutes() {
	authGroup := r.engine.Group("/api/v1/auth")
	{
		authGroup.POST("/token", r.authHandler.ExchangeToken)
	}
}

func (r *Router) setupAccountRoutes() {
	account := r.engine.Group("/api/v1/account")
	account.Use(r.authMiddleware.RequireAuth())
	{
		account.GET("", r.accountHandler.GetMe)
		account.GET("/ledger", r.accountHandler.ListLedger)
		account.POST("/api-key", r.accountHandler.IssueAPIKey)
	}
}

func (r *Router) setupReservationRoutes() {
	reservations := r.engine.Group("/api/v1/reservations")
	reservations.Use(r.authMiddleware.RequireAuth())
	{
		reservations.POST("", r.reservationHandler.CreateReservation)
		reservations.GET("", r.reservationHandler.ListReservations)
		reservations.GET("/:sid", r.reservationHandler.GetReservation)
		reservations.PUT("/:sid/creative", r.reservationHandler.UpdateCreative)
		reservations.PUT("/:sid/active", r.reservationHandler.SetActive)
		reservations.POST("/:sid/dates", r.reservationHandler.BookDates)
		reservations.DELETE("/:sid", r.reservationHandler.CancelReservation)
	}
}

func (r *Router) setupAdminRoutes() {
	admin := r.engine.Group("/api/v1/admin")
	admin.Use(r.authMiddleware.RequireAuth(), r.authMiddleware.RequireAdmin())
	{
		admin.GET("/reservations", r.adminHandler.ListReservations)
		admin.POST("/reservations/:sid/approve", r.adminHandler.ApproveReservation)
		admin.POST("/reservations/:sid/reject", r.adminHandler.RejectReservation)

		admin.POST("/accounts", r.adminHandler.RegisterAccount)
		admin.GET("/accounts/:sid", r.adminHandler.GetAccount)
		admin.GET("/accounts/:sid/ledger", r.adminHandler.ListAccountLedger)
		admin.POST("/accounts/:sid/credits", r.adminHandler.AdjustCredits)
		admin.GET("/accounts/:sid/audit", r.adminHandler.AuditLedger)
	}
}

func (r *Router) setupWebhookRoutes() {
	r.engine.POST("/webhooks/stripe", r.webhookHandler.HandleStripeWebhook)
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// registerValidators adds the bookingdate rule used by booking request
// bindings.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("bookingdate", func(fl validator.FieldLevel) bool {
			_, err := banner.ParseDate(fl.Field().String())
			return err == nil
		})
	}
}
