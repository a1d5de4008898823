package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mresults/fxconvert/internal/clients/fixer"
	"github.com/mresults/fxconvert/internal/clients/refdata"
	portsrepo "github.com/mresults/fxconvert/internal/core/ports/repositories"
	"github.com/mresults/fxconvert/internal/core/services"
	"github.com/mresults/fxconvert/internal/handlers"
	"github.com/mresults/fxconvert/internal/middleware"
	"github.com/mresults/fxconvert/internal/platform/config"
	"github.com/mresults/fxconvert/internal/repositories/database/pgsql"
	redisrepo "github.com/mresults/fxconvert/internal/repositories/kv/redis"
	"github.com/mresults/fxconvert/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
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

	ctx := context.Background()

	// Initialize database connection pool (options store)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		os.Exit(1)
	}

	// Redis backs the visitor session store and the API rate limiter
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Redis connection established.")

	repos := portsrepo.RepositoryProvider{
		OptionRepo:  pgsql.NewOptionRepository(dbPool),
		SessionRepo: redisrepo.NewSessionRepository(redisClient),
	}

	rateSource := fixer.NewClient(cfg.RateServiceURL, cfg.FetchTimeout)
	metaSource := refdata.NewClient(cfg.CurrencyMetaURL, cfg.FetchTimeout)

	// Seed and load operator settings from the options store
	settingsSvc := services.NewSettingsService(repos.OptionRepo)
	if err := settingsSvc.EnsureDefaults(ctx); err != nil {
		logger.Error("Failed to seed default settings", slog.String("error", err.Error()))
		os.Exit(1)
	}
	settings, err := settingsSvc.Load(ctx)
	if err != nil {
		logger.Error("Failed to load settings", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Settings loaded",
		slog.String("base_currency", settings.BaseCurrency),
		slog.String("default_currency", settings.DefaultCurrency),
		slog.Int("allowed_currencies", len(settings.AllowedCurrencies)))

	container := services.NewServiceContainer(settings, repos, rateSource, metaSource)

	// Rate limit the public API to protect the upstream rate-service quota
	rate, err := limiter.NewRateFromFormatted(cfg.APIRateLimit)
	if err != nil {
		logger.Error("Invalid API_RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}
	limiterStore, err := sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{
		Prefix: "fxconvert:ratelimit",
	})
	if err != nil {
		logger.Error("Failed to create rate limit store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	limiterInstance := limiter.New(limiterStore, rate)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for storefront JS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, container, repos.SessionRepo, middleware.RateLimit(limiterInstance))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending schema migrations for the options store.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

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
