package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/config"
	"github.com/BruksfildServices01/expert-scheduler/internal/handlers"
	"github.com/BruksfildServices01/expert-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/expert-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/expert-scheduler/internal/metrics"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/payment"
	ucAppointment "github.com/BruksfildServices01/expert-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/expert-scheduler/internal/usecase/availability"
	ucCatalog "github.com/BruksfildServices01/expert-scheduler/internal/usecase/catalog"
	ucCheckout "github.com/BruksfildServices01/expert-scheduler/internal/usecase/checkout"
	ucDashboard "github.com/BruksfildServices01/expert-scheduler/internal/usecase/dashboard"
)

// Deps are the process-wide collaborators built in main. Every field may be
// left zero; the matching feature then degrades instead of failing.
type Deps struct {
	Logger    *zap.Logger
	Metrics   *metrics.BookingMetrics
	SlotCache *cache.SlotCache
	Video     ucAppointment.MeetingScheduler
	Notify    ucAppointment.Notifier
	Audit     *audit.Dispatcher
	Payments  ucCheckout.Initializer
	Images    ucCatalog.ImageUploader
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	payments := deps.Payments
	if payments == nil {
		payments = payment.NewChain(logger)
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware())
	if cfg.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMin, logger))
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	dashboardRepo := infraRepo.NewDashboardGormRepository(db)

	fx := &ucAppointment.SideEffects{
		Video:   deps.Video,
		Notify:  deps.Notify,
		Audit:   deps.Audit,
		Metrics: deps.Metrics,
		Logger:  logger,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(appointmentRepo, fx),
		ucAppointment.NewCreateMultiAppointments(appointmentRepo, fx),
		ucAppointment.NewGetAppointment(appointmentRepo),
		ucAppointment.NewListAppointments(appointmentRepo),
		ucAppointment.NewUpdateAppointment(appointmentRepo, fx),
		ucAppointment.NewCancelAppointment(appointmentRepo, fx),
		ucAppointment.NewCompleteAppointment(appointmentRepo, fx),
		ucAppointment.NewDeleteAppointment(appointmentRepo, fx),
	)

	availabilityHandler := handlers.NewAvailabilityHandler(
		ucAvailability.NewGetSlots(availabilityRepo, appointmentRepo, deps.SlotCache, deps.Metrics, logger),
		ucAvailability.NewReplaceAvailability(availabilityRepo, appointmentRepo, deps.SlotCache, deps.Audit, logger),
	)

	serviceHandler := handlers.NewServiceHandler(ucCatalog.NewServices(catalogRepo, deps.Images, deps.Audit))
	clientHandler := handlers.NewClientHandler(ucCatalog.NewListClients(catalogRepo))
	reviewHandler := handlers.NewReviewHandler(ucCatalog.NewReviews(catalogRepo))
	dashboardHandler := handlers.NewDashboardHandler(ucDashboard.NewStats(dashboardRepo, catalogRepo))
	paymentHandler := handlers.NewPaymentHandler(
		ucCheckout.NewInitializePayment(appointmentRepo, payments, cfg.PaymentCurrency),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, logger)
	meHandler := handlers.NewMeHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/availability/:expertId", availabilityHandler.Slots)
		api.GET("/experts/:expertId/services", serviceHandler.List)
		api.GET("/experts/:expertId/reviews", reviewHandler.List)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// APPOINTMENTS
			secured.POST("/appointments", appointmentHandler.Create)
			secured.POST("/appointments/multi", appointmentHandler.CreateMulti)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/appointments/client/:clientId", appointmentHandler.ListForClient)
			secured.GET("/appointments/expert/:expertId", appointmentHandler.ListForExpert)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// AVAILABILITY
			secured.PUT("/availability/:expertId", availabilityHandler.Replace)

			// SERVICES
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)
			secured.PUT("/services/:id/image", serviceHandler.UploadImage)

			// EXPERT DATA
			secured.GET("/experts/:expertId/clients", clientHandler.List)
			secured.POST("/experts/:expertId/reviews", reviewHandler.Create)

			// DASHBOARD
			secured.GET("/dashboard/expert/:expertId", dashboardHandler.Expert)
			secured.GET("/dashboard/client/:clientId", dashboardHandler.Client)

			// PAYMENTS
			secured.POST("/payments/initialize", paymentHandler.Initialize)
		}
	}
}
