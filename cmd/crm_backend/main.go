package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/cnkcrm/crm_backend/internal/adapters/ai"
	"github.com/cnkcrm/crm_backend/internal/core/services"
	"github.com/cnkcrm/crm_backend/internal/erp/feed"
	"github.com/cnkcrm/crm_backend/internal/handlers"
	"github.com/cnkcrm/crm_backend/internal/middleware"
	"github.com/cnkcrm/crm_backend/internal/platform/config"
	"github.com/cnkcrm/crm_backend/internal/repositories/database/pgsql"
	"github.com/cnkcrm/crm_backend/internal/utils"
	"github.com/cnkcrm/crm_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title CRM Backend API
// @version 1.0
// @description Customer, offer and reconciliation backend synced against an ERP ledger feed.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, analytics)
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.Default(),
		middleware.UserIdentityMiddleware(),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Rate limiter for the sync endpoints
	syncRate, err := limiter.NewRateFromFormatted(cfg.SyncRateLimit)
	if err != nil {
		logger.Error("Invalid SYNC_RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}
	syncLimiter := limiter.New(memory.NewStore(), syncRate)

	// Wire the service container: repositories, the ledger feed client and
	// the external analysis adapter.
	repos := pgsql.NewRepositoryProvider(dbPool)
	feedClient := feed.NewClient(feed.NewSource(cfg.ErpFeedPath), feed.DefaultConfig(), logger)
	analyzer := ai.NewClient(cfg.AIServiceURL, cfg.AIServiceToken)
	container := services.NewServiceContainer(cfg, repos, feedClient, analyzer)

	handlers.RegisterRoutes(r, cfg, container, syncLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending migrations from the migrations directory
// using a short-lived database/sql connection on the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
