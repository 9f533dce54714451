package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucReservation "github.com/BruksfildServices01/salon-scheduler/internal/usecase/reservation"
)

// RegisterRoutes monta a API. cache pode ser nil (sem Redis).
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	cache domain.AvailabilityCache,
	logger *zap.Logger,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	clock := timezone.SystemClock{}

	metrics.Register()

	// ======================================================
	// 🧠 USE CASES (RESERVATIONS)
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		auditDispatcher,
		cache,
		clock,
		logger,
	)

	listAvailabilityUC := ucReservation.NewListAvailability(
		reservationRepo,
		cache,
		logger,
	)

	listUserReservationsUC := ucReservation.NewListUserReservations(reservationRepo)
	getUserReservationUC := ucReservation.NewGetUserReservation(reservationRepo)

	listReservationsUC := ucReservation.NewListReservations(reservationRepo)
	getReservationUC := ucReservation.NewGetReservation(reservationRepo)

	deleteReservationUC := ucReservation.NewDeleteReservation(
		reservationRepo,
		auditDispatcher,
		cache,
		logger,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	reservationHandler := handlers.NewReservationHandler(
		reservationRepo,
		createReservationUC,
		listAvailabilityUC,
		listUserReservationsUC,
		getUserReservationUC,
		deleteReservationUC,
		clock,
	)

	adminReservationHandler := handlers.NewAdminReservationHandler(
		listReservationsUC,
		getReservationUC,
	)

	// ======================================================
	// 🩺 OPERACIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET(
			"/shops/:id/availability",
			middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
			reservationHandler.Availability,
		)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		secured.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.POST("/shops/:id/reservations", reservationHandler.Create)
			secured.GET("/me/reservations", reservationHandler.ListMine)
			secured.GET("/me/reservations/:id", reservationHandler.GetMine)
			secured.DELETE("/me/reservations/:id", reservationHandler.DeleteMine)

			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.GET("/reservations", adminReservationHandler.List)
				admin.GET("/reservations/:id", adminReservationHandler.Get)
			}
		}
	}
}
