package app

import (
	"context"
	"fmt"

	"heyprodata_backend/database"
	"heyprodata_backend/internal/config"
	"heyprodata_backend/internal/email"
	"heyprodata_backend/internal/handlers"
	"heyprodata_backend/internal/logger"
	"heyprodata_backend/internal/middleware"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/routes"
	"heyprodata_backend/internal/services"
	"heyprodata_backend/internal/storage"
	"heyprodata_backend/internal/validator"
	"heyprodata_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	// TranslateError turns driver-level unique violations into
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Schema migrated")

	ginRouter := SetupRouter(cfg, gormDB)

	startWorkers(context.Background(), gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	store, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	serviceContainer := initializeServices(cfg, gormDB, store)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.SetupRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, store storage.Storage) *services.ServiceContainer {
	emailProvider := newEmailProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	gigRepo := repositories.NewGigRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)
	eventRepo := repositories.NewEventRepository(gormDB)
	rsvpRepo := repositories.NewRSVPRepository(gormDB)
	postRepo := repositories.NewPostRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	uploadRepo := repositories.NewUploadRepository(gormDB)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, profileRepo, refreshTokenRepo, emailProvider),
		ProfileService:      services.NewProfileService(profileRepo, userRepo),
		GigService:          services.NewGigService(gigRepo),
		ApplicationService:  services.NewApplicationService(applicationRepo, gigRepo, profileRepo, uploadRepo, notificationRepo),
		EventService:        services.NewEventService(eventRepo),
		RSVPService:         services.NewRSVPService(rsvpRepo, eventRepo, userRepo, profileRepo, notificationRepo, emailProvider),
		FeedService:         services.NewFeedService(postRepo, profileRepo),
		NotificationService: services.NewNotificationService(notificationRepo),
		UploadService:       services.NewUploadService(uploadRepo, store),
		EmailProvider:       emailProvider,
	}
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Info("Email sending disabled, using noop provider")
		return email.NewNoopProvider()
	}

	provider, err := email.NewSMTPProvider(email.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromEmail,
	})
	if err != nil {
		logger.Warn("Invalid SMTP configuration, falling back to noop provider", "error", err)
		return email.NewNoopProvider()
	}
	return provider
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		Health:       handlers.NewHealthHandler(base),
		Auth:         handlers.NewAuthHandler(base, sc.AuthService),
		Profile:      handlers.NewProfileHandler(base, sc.ProfileService),
		Gig:          handlers.NewGigHandler(base, sc.GigService),
		Application:  handlers.NewApplicationHandler(base, sc.ApplicationService),
		Event:        handlers.NewEventHandler(base, sc.EventService),
		RSVP:         handlers.NewRSVPHandler(base, sc.RSVPService),
		Feed:         handlers.NewFeedHandler(base, sc.FeedService),
		Notification: handlers.NewNotificationHandler(base, sc.NotificationService),
		Upload:       handlers.NewUploadHandler(base, sc.UploadService),
	}
}

func initializeGinRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.DBMiddleware(gormDB))

	return r
}

func startWorkers(ctx context.Context, gormDB *gorm.DB) {
	gigWorker := workers.NewGigWorker(repositories.NewGigRepository(gormDB))
	gigWorker.Start(ctx)

	notificationWorker := workers.NewNotificationWorker(repositories.NewNotificationRepository(gormDB))
	notificationWorker.Start(ctx)

	logger.Info("Background workers started")
}
