package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda/internal/audit"
	"github.com/BruksfildServices01/agenda/internal/config"
	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/handlers"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	infraRepo "github.com/BruksfildServices01/agenda/internal/infra/repository"
	"github.com/BruksfildServices01/agenda/internal/middleware"
	"github.com/BruksfildServices01/agenda/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda/internal/usecase/appointment"
	ucClient "github.com/BruksfildServices01/agenda/internal/usecase/client"
	ucReport "github.com/BruksfildServices01/agenda/internal/usecase/report"
	"github.com/BruksfildServices01/agenda/internal/whatsapp"
)

// Deps are the long-lived collaborators built by main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Audit   *audit.Dispatcher
	Limiter middleware.Limiter
	Clock   timezone.Clock
}

// Rules turns the booking settings into domain rules.
func Rules(cfg *config.Config) (domain.Rules, error) {
	window, err := domain.NewWorkingWindow(cfg.WorkdayStart, cfg.WorkdayEnd)
	if err != nil {
		return domain.Rules{}, err
	}
	return domain.Rules{
		Window:       window,
		MaxDaysAhead: cfg.MaxDaysAhead,
		MinGap:       time.Duration(cfg.MinGapMinutes) * time.Minute,
	}, nil
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config

	rules, err := Rules(cfg)
	if err != nil {
		return err
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "route_not_found", "Ruta no encontrada.")
	})

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	clientRepo := infraRepo.NewClientGormRepository(d.DB)
	messages := whatsapp.NewBuilder(cfg.PublicBaseURL)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	appointmentUC := handlers.AppointmentUseCases{
		Create:     ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Clock, rules),
		Update:     ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit, d.Clock, rules),
		Delete:     ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit),
		Get:        ucAppointment.NewGetAppointment(appointmentRepo),
		List:       ucAppointment.NewListAppointments(appointmentRepo),
		Attendance: ucAppointment.NewRecordAttendance(appointmentRepo, d.Audit, d.Clock),
		WhatsApp:   ucAppointment.NewBuildWhatsApp(appointmentRepo, messages),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)

	clientHandler := handlers.NewClientHandler(
		ucClient.NewCreateClient(clientRepo, d.Audit),
		ucClient.NewUpdateClient(clientRepo, d.Audit),
		ucClient.NewGetClient(clientRepo),
		ucClient.NewListClients(clientRepo),
		ucClient.NewDeleteClient(clientRepo, d.Audit, d.Clock),
	)

	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC)

	publicHandler := handlers.NewPublicHandler(
		ucAppointment.NewGetByToken(appointmentRepo),
		ucAppointment.NewRespondByToken(appointmentRepo, d.Audit, d.Clock),
	)

	reportHandler := handlers.NewReportHandler(
		ucReport.NewAttendance(appointmentRepo, d.Clock),
		ucReport.NewDashboard(appointmentRepo, clientRepo, d.Clock),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, timezone.Location(cfg.Timezone))

	// ======================================================
	// 🌍 PÚBLICO
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	confirm := r.Group("/confirm")
	confirm.Use(middleware.RateLimit(d.Limiter))
	{
		confirm.GET("/:token", publicHandler.Show)
		confirm.POST("/:token", publicHandler.Respond)
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", middleware.OptionalAuth(cfg), authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.POST("/appointments/:id/attendance", appointmentHandler.RecordAttendance)
			secured.GET("/appointments/:id/whatsapp", appointmentHandler.WhatsApp)

			secured.GET("/reports/attendance", reportHandler.Attendance)
			secured.GET("/dashboard", reportHandler.Dashboard)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
