package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salutech-dev/medbook-api/internal/audit"
	"github.com/salutech-dev/medbook-api/internal/cache"
	"github.com/salutech-dev/medbook-api/internal/config"
	availd "github.com/salutech-dev/medbook-api/internal/domain/availability"
	"github.com/salutech-dev/medbook-api/internal/handlers"
	infraRepo "github.com/salutech-dev/medbook-api/internal/infra/repository"
	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/models"
	ucAppointment "github.com/salutech-dev/medbook-api/internal/usecase/appointment"
	ucAvailability "github.com/salutech-dev/medbook-api/internal/usecase/availability"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	availCache := cache.NewAvailabilityCache(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucAvailability.NewGetAvailability(
		availabilityRepo,
		availd.SystemClock(),
		log,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		getAvailabilityUC,
		auditDispatcher,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		appointmentRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	providerHandler := handlers.NewProviderHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)
	patientHandler := handlers.NewPatientHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(db, availCache)
	blockHandler := handlers.NewBlockHandler(db, auditDispatcher, availCache)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		transitionAppointmentUC,
		listAppointmentsUC,
		availCache,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		getAvailabilityUC,
		createAppointmentUC,
		availCache,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/providers", publicHandler.ListProviders)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register/provider", authHandler.RegisterProvider)
		api.POST("/auth/register/clinic", authHandler.RegisterClinic)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// PROVIDERS
			// ------------------------------
			provider := secured.Group("/me")
			provider.Use(middleware.RequireRole(models.RoleProvider))
			{
				provider.GET("/provider", providerHandler.GetMeProvider)
				provider.PATCH("/provider", providerHandler.UpdateMeProvider)

				provider.GET("/branches", providerHandler.ListBranches)
				provider.POST("/branches", providerHandler.CreateBranch)

				provider.GET("/schedule", scheduleHandler.GetBranchSchedule)
				provider.PUT("/schedule", scheduleHandler.UpdateBranchSchedule)

				provider.GET("/blocked-ranges", blockHandler.ListBlockedRanges)
				provider.POST("/blocked-ranges", blockHandler.CreateBlockedRange)
				provider.DELETE("/blocked-ranges/:id", blockHandler.DeleteBlockedRange)

				provider.GET("/date-blocks", blockHandler.ListMyDateBlocks)
				provider.POST("/date-blocks", blockHandler.CreateDateBlock)

				provider.GET("/patients", patientHandler.List)

				provider.POST("/appointments", appointmentHandler.Create)
				provider.GET("/appointments", appointmentHandler.ListByDate)
				provider.GET("/appointments/month", appointmentHandler.ListByMonth)
				provider.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
				provider.PATCH("/appointments/:id/reject", appointmentHandler.Reject)
				provider.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
				provider.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			}

			// ------------------------------
			// CLINICS
			// ------------------------------
			clinic := secured.Group("/clinic")
			clinic.Use(middleware.RequireRole(models.RoleClinic))
			{
				clinic.GET("", clinicHandler.GetMeClinic)
				clinic.PATCH("", clinicHandler.UpdateMeClinic)

				clinic.GET("/doctors", clinicHandler.ListDoctors)
				clinic.POST("/doctors", clinicHandler.AddDoctor)
				clinic.DELETE("/doctors/:id", clinicHandler.RemoveDoctor)

				clinic.GET("/schedule", scheduleHandler.GetClinicSchedule)
				clinic.PUT("/schedule", scheduleHandler.UpdateClinicSchedule)

				clinic.GET("/date-blocks", blockHandler.ListClinicDateBlocks)
				clinic.PATCH("/date-blocks/:id/approve", blockHandler.ApproveDateBlock)
				clinic.PATCH("/date-blocks/:id/reject", blockHandler.RejectDateBlock)
			}
		}
	}
}
