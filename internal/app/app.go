package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "appointly/docs"

	"appointly/database"
	"appointly/internal/auth"
	"appointly/internal/config"
	"appointly/internal/email"
	"appointly/internal/handlers"
	"appointly/internal/logger"
	"appointly/internal/middleware"
	"appointly/internal/models"
	"appointly/internal/repositories"
	"appointly/internal/routes"
	"appointly/internal/services"
	"appointly/internal/validator"
	"appointly/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application - собранный роутер и то, что нужно закрыть при остановке
type Application struct {
	Router      *gin.Engine
	Services    *services.ServiceContainer
	RateLimiter *middleware.RateLimiter
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg),
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(gormDB); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	if err := database.SeedRoles(gormDB); err != nil {
		logger.Fatal("Failed to seed roles", "error", err)
	}
	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	mailer, err := email.NewProvider(email.Config{
		Provider:     cfg.Email.Provider,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		AMQPURL:      cfg.Email.AMQPURL,
		AMQPExchange: cfg.Email.AMQPExchange,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	defer func() {
		if err := mailer.Close(); err != nil {
			logger.Error("Failed to close email provider", "error", err)
		}
	}()
	logger.Info("Email provider initialized", "provider", mailer.Name())

	application, err := SetupRouter(cfg, gormDB, mailer)
	if err != nil {
		logger.Fatal("Failed to build router", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanup := workers.NewCleanupWorker(
		gormDB,
		repositories.NewSessionRepository(),
		repositories.NewVerificationTokenRepository(),
		cfg.Workers.CleanupInterval,
	)
	cleanup.Start(ctx)
	go application.RateLimiter.RunCleanup(ctx)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server startup error", "error", err)
		}
		stop()
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	cleanup.Wait()
	logger.Info("Server stopped")
}

// SetupRouter собирает сервисы, хэндлеры и middleware поверх готового подключения к БД
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, mailer email.Provider) (*Application, error) {
	// неизвестные поля в JSON-теле запроса - 400
	binding.EnableDecoderDisallowUnknownFields = true
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		// Validate() пропускает пустой секрет только в development
		secret = uuid.NewString()
		logger.Warn("JWT_SECRET is not set, using a random secret; tokens will not survive a restart")
	}

	serviceContainer := services.NewServiceContainer(services.Dependencies{
		Tokens:      auth.NewTokenManager(secret, cfg.JWT.TTL),
		Mailer:      mailer,
		Templates:   templates,
		FrontendURL: cfg.FrontendURL(),
	})
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	ginRouter, err := initializeGinRouter(cfg, gormDB)
	if err != nil {
		return nil, err
	}
	routes.RegisterRoutes(ginRouter, appHandlers, routes.Options{
		Authenticator: serviceContainer.AuthService,
		RateLimiter:   rateLimiter,
		EnableSwagger: true,
	})

	return &Application{
		Router:      ginRouter,
		Services:    serviceContainer,
		RateLimiter: rateLimiter,
	}, nil
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	router := gin.New()

	// ClientIP() используется rate limiter'ом, заголовкам клиента не доверяем
	var trusted []string
	if len(cfg.Server.TrustedProxies) > 0 {
		trusted = cfg.Server.TrustedProxies
	}
	if err := router.SetTrustedProxies(trusted); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router, nil
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

// seedFirstAdmin создаёт администратора из FIRST_ADMIN_EMAIL/FIRST_ADMIN_PASSWORD,
// если такого пользователя ещё нет
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.TrimSpace(cfg.FirstAdminEmail)
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	userRepo := repositories.NewUserRepository()
	roleRepo := repositories.NewRoleRepository()

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	exists, err := userRepo.ExistsByEmail(tx, adminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if exists {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	role, err := roleRepo.FindByName(tx, models.RoleNameAdmin)
	if err != nil {
		return fmt.Errorf("failed to load admin role: %w", err)
	}

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := "Administrator"
	now := time.Now()
	newAdmin := &models.User{
		Name:          &name,
		Email:         adminEmail,
		EmailVerified: &now,
		Password:      &hashedPassword,
		RoleID:        &role.ID,
	}
	if err := userRepo.Create(tx, newAdmin); err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
