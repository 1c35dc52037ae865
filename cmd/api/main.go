package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vreblog/public_api/internal/cache"
	"github.com/vreblog/public_api/internal/config"
	"github.com/vreblog/public_api/internal/database"
	"github.com/vreblog/public_api/internal/handler"
	"github.com/vreblog/public_api/internal/middleware"
	"github.com/vreblog/public_api/internal/repository"
	"github.com/vreblog/public_api/internal/service"
	"github.com/vreblog/public_api/internal/utils"
)

// main is the application entrypoint for the VreBlog public API gateway.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting vreblog public api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	categoryCache := cache.NewCategoryCache(redisClient, cfg.API.CategoryCacheTTL)

	// 4. Initialize repositories
	keyRepo := repository.NewAPIKeyRepository(db)
	logRepo := repository.NewRequestLogRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	// 5. Initialize services
	authSvc := service.NewAuthService(keyRepo)
	quotaSvc := service.NewQuotaService(keyRepo)
	keySvc := service.NewKeyService(keyRepo, logRepo, cfg.API.DefaultDailyLimit)
	adminAuthSvc := service.NewAdminAuthService(adminRepo)

	// 5a. Bootstrap the first admin account if configured and absent
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := adminRepo.GetByEmail(cfg.AdminEmail); err == sql.ErrNoRows {
			if err := adminAuthSvc.CreateAdmin(cfg.AdminEmail, cfg.AdminPassword, "Administrator"); err != nil {
				log.Error().Err(err).Msg("admin bootstrap failed")
			} else {
				log.Info().Str("email", cfg.AdminEmail).Msg("admin account bootstrapped")
			}
		}
	}

	// 6. Initialize handlers
	handlers := &Handlers{
		Gateway: handler.NewGatewayHandler(articleRepo, categoryRepo, categoryCache),
		Health:  handler.NewHealthHandler(db, redisClient),
		Auth:    handler.NewAuthHandler(adminAuthSvc),
		APIKey:  handler.NewAPIKeyHandler(keySvc),
	}

	// 7. Initialize middleware
	apiKeyMw := middleware.NewAPIKeyMiddleware(authSvc, quotaSvc)
	auditMw := middleware.NewAuditMiddleware(logRepo)
	jwtMw := middleware.NewJWTMiddleware()

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, apiKeyMw, auditMw, jwtMw)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Gateway *handler.GatewayHandler
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	APIKey  *handler.APIKeyHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, apiKeyMw *middleware.APIKeyMiddleware, auditMw *middleware.AuditMiddleware, jwtMw *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public read-only API. Middleware order matters: authentication first
	// (failures there are never audited), then audit so that quota refusals
	// and resource errors still produce a log row, then the quota charge.
	api := router.Group("/api")
	api.Use(apiKeyMw.Authenticate(), auditMw.Handle(), apiKeyMw.Charge())
	api.Any("/*path", handlers.Gateway.Handle)

	// Admin console routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.Use(jwtMw.Handle())
	{
		admin.GET("/keys", handlers.APIKey.ListKeys)
		admin.POST("/keys", handlers.APIKey.CreateKey)
		admin.PUT("/keys/:id", handlers.APIKey.UpdateKey)
		admin.DELETE("/keys/:id", handlers.APIKey.DeleteKey)
		admin.GET("/keys/:id/logs", handlers.APIKey.KeyLogs)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
