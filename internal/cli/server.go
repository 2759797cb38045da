package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ppif-diagnostic/internal/app"
	"ppif-diagnostic/internal/config"
	"ppif-diagnostic/internal/infra/memory"
	pgstore "ppif-diagnostic/internal/infra/postgres"
	rediscache "ppif-diagnostic/internal/infra/redis"
	"ppif-diagnostic/internal/seed"
	transport "ppif-diagnostic/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the diagnostic server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	summaryTTL := config.TTLDuration(cfg.Summary.TTL, 5*time.Minute)

	// Without Postgres the built-in catalog serves; without Redis, caches
	// stay in-process. Both fallbacks keep local development dependency-free.
	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(seed.Catalog())
	var store app.Store = memory.NewStore()
	if pool != nil {
		pgLoader := pgstore.NewCatalogLoader(pool)
		if err := pgLoader.SeedCatalog(ctx, seed.Catalog()); err != nil {
			return err
		}
		loader = pgLoader
		store = pgstore.NewStore(pool)
	}

	var catalogRepo app.CatalogRepository
	var summaryCache app.SummaryCache
	if redisClient != nil {
		catalogRepo = rediscache.NewCatalogCache(redisClient, loader, catalogTTL)
		summaryCache = rediscache.NewSummaryCache(redisClient, summaryTTL)
	} else {
		catalogRepo = memory.NewCatalogRepository(loader, catalogTTL)
		summaryCache = memory.NewSummaryCache(summaryTTL)
	}

	hub := app.NewHub()
	service := app.NewAssessmentService(store, catalogRepo, hub,
		app.WithSummaryCache(summaryCache))

	var opts []transport.Option
	if cfg.Server.APIKey != "" {
		opts = append(opts, transport.WithAPIKey(cfg.Server.APIKey))
	}
	srv := transport.NewServer(service, hub, logger, opts...)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting diagnostic service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
