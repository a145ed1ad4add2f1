package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portsrepo "github.com/pranavkm07/finance_plan_app/internal/core/ports/repositories"
	"github.com/pranavkm07/finance_plan_app/internal/handlers"
	"github.com/pranavkm07/finance_plan_app/internal/middleware"
	"github.com/pranavkm07/finance_plan_app/internal/planstate"
	"github.com/pranavkm07/finance_plan_app/internal/platform/config"
	"github.com/pranavkm07/finance_plan_app/internal/repositories/database/pgsql"
	filerepo "github.com/pranavkm07/finance_plan_app/internal/repositories/file"
	"github.com/pranavkm07/finance_plan_app/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo, cleanup, err := buildPlanRepository(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize plan storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	store, err := planstate.New(repo,
		planstate.WithLogger(logger),
		planstate.WithAutoSaveDebounce(cfg.AutoSaveDebounce),
	)
	if err != nil {
		logger.Error("Failed to construct plan store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store.Start(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, store)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}

	// Stop the auto-save watcher, then flush anything still dirty.
	store.Close()
	if store.State().HasUnsavedChanges {
		if err := store.SavePlan(shutdownCtx); err != nil {
			logger.Error("Final plan save failed", slog.String("error", err.Error()))
		}
	}
}

// buildPlanRepository selects the storage backend from config. For pgsql it
// also runs the schema migrations the way the rest of the stack expects.
func buildPlanRepository(cfg *config.Config, logger *slog.Logger) (portsrepo.PlanRepository, func(), error) {
	if cfg.StorageBackend == config.StorageFile {
		repo, err := filerepo.NewPlanRepository(cfg.PlanFilePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using file plan storage", slog.String("path", cfg.PlanFilePath))
		return repo, func() {}, nil
	}

	pool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return pgsql.NewPgxPlanRepository(pool), pool.Close, nil
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a standard sql.DB connection for migrations, using the pgx stdlib
	// driver to stay compatible with the main pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
