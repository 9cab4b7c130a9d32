package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/speedyfix/auto-garage/internal/audit"
	"github.com/speedyfix/auto-garage/internal/config"
	"github.com/speedyfix/auto-garage/internal/handlers"
	"github.com/speedyfix/auto-garage/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	r.Use(middleware.CORSMiddleware())

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	authHandler := handlers.NewAuthHandler(db, cfg)
	customerHandler := handlers.NewCustomerHandler(db, auditDispatcher)
	repairTypeHandler := handlers.NewRepairTypeHandler(db, auditDispatcher)
	timeSlotHandler := handlers.NewTimeSlotHandler(db, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(db, auditDispatcher, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC (consumed by the bot)
		// ------------------------------
		api.GET("/customers", customerHandler.List)
		api.GET("/customers/:id", customerHandler.Get)
		api.GET("/customers/licenseplate/:plate", customerHandler.GetByLicensePlate)
		api.POST("/customers", customerHandler.Create)

		api.GET("/repairtypes", repairTypeHandler.List)
		api.GET("/repairtypes/:id", repairTypeHandler.Get)

		api.GET("/timeslots", timeSlotHandler.List)
		api.GET("/timeslots/:id", timeSlotHandler.Get)

		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.POST("/appointments", appointmentHandler.Create)

		// ------------------------------
		// STAFF ONLY
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.PUT("/customers/:id", customerHandler.Update)
			secured.DELETE("/customers/:id", customerHandler.Delete)

			secured.POST("/repairtypes", repairTypeHandler.Create)
			secured.PUT("/repairtypes/:id", repairTypeHandler.Update)
			secured.DELETE("/repairtypes/:id", repairTypeHandler.Delete)

			secured.POST("/timeslots", timeSlotHandler.Create)
			secured.PUT("/timeslots/:id", timeSlotHandler.Update)
			secured.DELETE("/timeslots/:id", timeSlotHandler.Delete)

			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.GET("/appointments/day", appointmentHandler.ListByDay)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
