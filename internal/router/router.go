package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seniorcare-lead-api/internal/client"
	"seniorcare-lead-api/internal/database"
	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/export"
	"seniorcare-lead-api/internal/handler"
	"seniorcare-lead-api/internal/metrics"
	"seniorcare-lead-api/internal/middleware"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/service"
	"seniorcare-lead-api/internal/tenant"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	GrantTTL       time.Duration
	Metrics        *metrics.Metrics
	// Gatherer backs /metrics. Defaults to the process registry.
	Gatherer      prometheus.Gatherer
	Notifications client.NotificationClient
	// Storage is nil when object storage is not configured.
	Storage client.ObjectStorage
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Notifications == nil {
		cfg.Notifications = client.NewNoOpNotificationClient()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	metricsHandler := gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	health := handler.NewHealthHandler(cfg.DB, cfg.Redis)
	r.GET("/metrics", metricsHandler)
	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/metrics", metricsHandler)
		api.GET("/health", health.Health)
		api.GET("/ready", health.Ready)
	}

	db := cfg.DB
	log := cfg.Logger
	tx := database.NewTxManager(db)

	// Repositories
	refs := repository.NewReferenceRepositories(db)
	related := repository.NewRelatedRepository(db)
	users := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	changeLogRepo := repository.NewChangeLogRepository(db)
	funnelRepo := repository.NewLeadFunnelStageRepository(db)
	temperatureRepo := repository.NewLeadTemperatureRepository(db)
	formRepo := repository.NewAssessmentFormRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)

	exporter := export.NewGridExporter(cfg.Storage, cfg.Metrics, log)

	// Services
	references := service.NewReferenceServices(refs, related, tx, log)
	organizations := service.NewOrganizationService(orgRepo, refs.ReferrerTypes, related, tx, log)
	contacts := service.NewContactService(contactRepo, orgRepo, related, tx, log)
	referrals := service.NewReferralService(referralRepo, refs.ReferrerTypes, orgRepo, contactRepo, related, tx, log)
	leads := service.NewLeadService(service.LeadServiceDeps{
		Leads:        leadRepo,
		Users:        users,
		References:   refs,
		Referrals:    referrals,
		FunnelStages: funnelRepo,
		Temperatures: temperatureRepo,
		Activities:   activityRepo,
		ChangeLogs:   changeLogRepo,
		Related:      related,
		Exporter:     exporter,
		Tx:           tx,
		Metrics:      cfg.Metrics,
		Logger:       log,
	})
	activities := service.NewActivityService(service.ActivityServiceDeps{
		Activities:    activityRepo,
		Leads:         leadRepo,
		Referrals:     referralRepo,
		Organizations: orgRepo,
		Users:         users,
		References:    refs,
		ChangeLogs:    changeLogRepo,
		Notifications: cfg.Notifications,
		Exporter:      exporter,
		Tx:            tx,
		Metrics:       cfg.Metrics,
		Logger:        log,
	})
	historyDeps := service.LeadHistoryDeps{
		Leads:        leadRepo,
		References:   refs,
		FunnelStages: funnelRepo,
		Temperatures: temperatureRepo,
		Activities:   activityRepo,
		ChangeLogs:   changeLogRepo,
		Tx:           tx,
		Metrics:      cfg.Metrics,
		Logger:       log,
	}
	temperatures := service.NewLeadTemperatureService(historyDeps)
	funnelStages := service.NewLeadFunnelStageService(historyDeps)
	forms := service.NewAssessmentFormService(formRepo, related, tx, log)
	assessments := service.NewAssessmentService(service.AssessmentServiceDeps{
		Assessments: assessmentRepo,
		Forms:       formRepo,
		Leads:       leadRepo,
		Users:       users,
		Tx:          tx,
		Metrics:     cfg.Metrics,
		Logger:      log,
	})
	outreaches := service.NewOutreachService(repository.NewOutreachRepository(db), refs.OutreachTypes, orgRepo, contactRepo, users, tx, log)
	webEmails := service.NewWebEmailService(repository.NewWebEmailRepository(db), refs.Facilities, refs.EmailReviewTypes, tx, log)
	changeLogs := service.NewChangeLogService(changeLogRepo)

	grants := tenant.NewGrantResolver(users, cfg.Redis, cfg.GrantTTL, log)

	// ============================================================
	// Authenticated routes
	// ============================================================
	secured := api.Group("")
	secured.Use(middleware.Auth(cfg.JWTSecret, grants))
	{
		handler.RegisterReferences(secured.Group("/reference"), references)

		handler.NewLeadHandler(leads).Register(secured.Group("/leads"))
		handler.NewReferralHandler(referrals).Register(secured.Group("/referrals"))
		handler.NewOrganizationHandler(organizations).Register(secured.Group("/organizations"))
		handler.NewContactHandler(contacts).Register(secured.Group("/contacts"))
		handler.NewActivityHandler(activities).Register(secured.Group("/activities"))

		handler.NewLeadHistoryHandler[domain.LeadTemperature, dto.LeadTemperatureRequest](temperatures).
			Register(secured.Group("/lead-temperatures"))
		handler.NewLeadHistoryHandler[domain.LeadFunnelStage, dto.LeadFunnelStageRequest](funnelStages).
			Register(secured.Group("/lead-funnel-stages"))

		handler.NewAssessmentFormHandler(forms).Register(secured.Group("/assessment-forms"))
		handler.NewAssessmentHandler(assessments).Register(secured.Group("/assessments"))
		handler.NewOutreachHandler(outreaches).Register(secured.Group("/outreaches"))
		handler.NewWebEmailHandler(webEmails).Register(secured.Group("/web-emails"))

		secured.GET("/change-logs", handler.NewChangeLogHandler(changeLogs).Grid)
	}

	return r
}
