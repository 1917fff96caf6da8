package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/auth"
	"github.com/BruksfildServices01/medagenda/internal/config"
	"github.com/BruksfildServices01/medagenda/internal/domain/verification"
	"github.com/BruksfildServices01/medagenda/internal/handlers"
	"github.com/BruksfildServices01/medagenda/internal/infra/mailer"
	infraRepo "github.com/BruksfildServices01/medagenda/internal/infra/repository"
	"github.com/BruksfildServices01/medagenda/internal/infra/storage"
	"github.com/BruksfildServices01/medagenda/internal/middleware"
	"github.com/BruksfildServices01/medagenda/internal/notify"
	"github.com/BruksfildServices01/medagenda/internal/timezone"
	ucAccount "github.com/BruksfildServices01/medagenda/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/medagenda/internal/usecase/appointment"
	ucAttachment "github.com/BruksfildServices01/medagenda/internal/usecase/attachment"
	ucAvailability "github.com/BruksfildServices01/medagenda/internal/usecase/availability"
	ucVerification "github.com/BruksfildServices01/medagenda/internal/usecase/verification"
)

// Deps are the process-level collaborators chosen by main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Blobs  storage.Store
	Codes  verification.Store
	Sender mailer.Sender
}

const notifyQueueSize = 100

// RegisterRoutes wires every use case and route. The returned function stops
// the background workers and must be called once the server has drained.
func RegisterRoutes(r *gin.Engine, d Deps) (shutdown func()) {
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(d.DB)
	attachmentRepo := infraRepo.NewAttachmentGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)
	notifier := notify.NewDispatcher(d.Sender, log, notifyQueueSize)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// ======================================================
	// USE CASES
	// ======================================================
	apptOpts := ucAppointment.Options{
		Location:            loc,
		EnforceAvailability: cfg.EnforceAvailability,
		Log:                 log,
	}

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher, notifier, apptOpts)
	updateStatusUC := ucAppointment.NewUpdateStatus(appointmentRepo, auditDispatcher, notifier, apptOpts)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(updateStatusUC)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, d.Blobs, auditDispatcher, apptOpts)
	freeSlotsUC := ucAppointment.NewFreeSlots(appointmentRepo, apptOpts)

	accounts := ucAccount.NewService(userRepo, issuer, d.Blobs, auditDispatcher, ucAccount.Options{
		CheckEmailDomain: cfg.CheckEmailDomain,
		Location:         loc,
		Log:              log,
	})

	attachments := ucAttachment.NewService(attachmentRepo, d.Blobs, auditDispatcher, ucAttachment.Options{
		MaxBytes: cfg.MaxUploadBytes(),
		Log:      log,
	})

	codes := ucVerification.NewService(userRepo, d.Codes, d.Sender, auditDispatcher, ucVerification.Options{
		Policy: verification.Policy{TTL: cfg.VerificationCodeTTL},
		Log:    log,
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accounts)
	meHandler := handlers.NewMeHandler(accounts)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)
	practitionerHandler := handlers.NewPractitionerHandler(accounts, freeSlotsUC, loc)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		cancelAppointmentUC,
		listAppointmentsUC,
		deleteAppointmentUC,
		loc,
	)
	attachmentHandler := handlers.NewAttachmentHandler(attachments)
	availabilityHandler := handlers.NewAvailabilityHandler(
		ucAvailability.NewCreateWindow(availabilityRepo, auditDispatcher),
		ucAvailability.NewListWindows(availabilityRepo),
		ucAvailability.NewUpdateWindow(availabilityRepo, auditDispatcher),
		ucAvailability.NewDeleteWindow(availabilityRepo, auditDispatcher),
	)
	verificationHandler := handlers.NewVerificationHandler(codes)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/register/", authHandler.Register)
	r.POST("/api/token/", authHandler.Token)
	r.POST("/api/token/refresh/", authHandler.Refresh)
	r.POST("/validar-cpf/", authHandler.ValidateCPF)
	r.POST("/validar-email/", authHandler.ValidateEmail)

	// ------------------------------
	// CODES (rate limited)
	// ------------------------------
	codesGroup := r.Group("/")
	codesGroup.Use(middleware.RateLimit(limiter))
	{
		codesGroup.POST("/enviar-codigo/", verificationHandler.Send)
		codesGroup.POST("/verificar-codigo/", verificationHandler.Verify)
		codesGroup.POST("/resetar-senha/", verificationHandler.ResetPassword)
	}

	// ======================================================
	// SECURED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(issuer))
	{
		secured.GET("/minha-conta/", meHandler.Get)
		secured.PUT("/minha-conta/", meHandler.Update)
		secured.PATCH("/minha-conta/", meHandler.Update)
		secured.POST("/minha-conta/foto/", meHandler.UploadPhoto)
		secured.GET("/minha-conta/foto/", meHandler.Photo)
		secured.GET("/minha-conta/auditoria/", auditLogsHandler.List)

		secured.GET("/medicos/", practitionerHandler.List)
		secured.GET("/medicos/:id/horarios-disponiveis/", practitionerHandler.FreeSlots)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.POST("/agendamentos/", appointmentHandler.Create)
		secured.PATCH("/agendamentos/:id/status/", appointmentHandler.UpdateStatus)
		secured.POST("/agendamentos/:id/cancelar/", appointmentHandler.Cancel)
		secured.DELETE("/agendamentos/:id/deletar/", appointmentHandler.Delete)
		secured.GET("/meus-agendamentos/", appointmentHandler.List)

		// ------------------------------
		// ATTACHMENTS
		// ------------------------------
		secured.POST("/agendamentos/:id/anexos/upload/", attachmentHandler.Upload)
		secured.GET("/agendamentos/:id/anexos/", attachmentHandler.List)
		secured.GET("/agendamentos/anexos/:id/download/", attachmentHandler.Download)
		secured.DELETE("/agendamentos/anexos/:id/deletar/", attachmentHandler.Delete)

		// ------------------------------
		// AVAILABILITY WINDOWS
		// ------------------------------
		secured.POST("/horarios-atendimento/", availabilityHandler.Create)
		secured.GET("/horarios-atendimento/", availabilityHandler.List)
		secured.PUT("/horarios-atendimento/:id/", availabilityHandler.Update)
		secured.PATCH("/horarios-atendimento/:id/", availabilityHandler.Update)
		secured.DELETE("/horarios-atendimento/:id/", availabilityHandler.Delete)
	}

	return func() {
		limiter.Stop()
		notifier.Close()
		auditDispatcher.Close()
	}
}
