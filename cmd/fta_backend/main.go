package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/FleetScanHQ/fuel_tax_app/internal/adapters/storage/supabase"
	"github.com/FleetScanHQ/fuel_tax_app/internal/adapters/vision/anthropic"
	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
	"github.com/FleetScanHQ/fuel_tax_app/internal/core/services"
	"github.com/FleetScanHQ/fuel_tax_app/internal/handlers"
	"github.com/FleetScanHQ/fuel_tax_app/internal/middleware"
	"github.com/FleetScanHQ/fuel_tax_app/internal/platform/config"
	"github.com/FleetScanHQ/fuel_tax_app/internal/platform/validation"
	"github.com/FleetScanHQ/fuel_tax_app/internal/repositories/database/pgsql"
	"github.com/FleetScanHQ/fuel_tax_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	validation.RegisterCustomValidators()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the browser client)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// External adapters. Either may be absent in a partial deployment;
	// the scan pipeline rejects requests for the missing piece and the
	// health endpoint reports it as skipped.
	var (
		extractor    portssvc.ReceiptExtractor
		imageStore   portssvc.ReceiptImageStore
		visionProbe  handlers.VisionProbe
		storageProbe handlers.StorageProbe
	)
	if cfg.AnthropicAPIKey != "" {
		visionClient := anthropic.NewClient(anthropic.Config{
			APIKey:  cfg.AnthropicAPIKey,
			BaseURL: cfg.AnthropicBaseURL,
			Model:   cfg.AnthropicModel,
			Timeout: cfg.VisionTimeout,
		}, logger)
		extractor = visionClient
		visionProbe = visionClient
	}
	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		storageClient := supabase.NewClient(supabase.Config{
			ProjectURL: cfg.SupabaseURL,
			APIKey:     cfg.SupabaseAnonKey,
			Bucket:     cfg.StorageBucket,
		}, logger)
		imageStore = storageClient
		storageProbe = storageClient
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, extractor, imageStore)

	healthHandler := handlers.NewHealthHandler(repos.FuelLogRepo, storageProbe, visionProbe)

	extractLimiter := newExtractLimiter(cfg.ExtractRateLimit, logger)

	handlers.RegisterRoutes(r, serviceContainer, healthHandler, extractLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// newExtractLimiter builds the per-IP limiter for the extraction
// endpoint. A bad format disables limiting rather than failing startup.
func newExtractLimiter(format string, logger *slog.Logger) *limiter.Limiter {
	if format == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		logger.Warn("Invalid EXTRACT_RATE_LIMIT, extraction endpoint will not be rate limited",
			slog.String("value", format), slog.String("error", err.Error()))
		return nil
	}
	return limiter.New(memory.NewStore(), rate)
}
