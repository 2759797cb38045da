package cli

import (
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ppif-diagnostic/internal/config"
	pgstore "ppif-diagnostic/internal/infra/postgres"
	rediscache "ppif-diagnostic/internal/infra/redis"
	"ppif-diagnostic/internal/seed"
)

// NewSeedCmd loads the built-in question catalog into Postgres and drops any
// cached copy so the next read serves the fresh rows.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the question catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}

			ctx := cmd.Context()
			if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
				return err
			}

			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			catalog := seed.Catalog()
			if err := pgstore.NewCatalogLoader(pool).SeedCatalog(ctx, catalog); err != nil {
				return err
			}
			logger.Info("catalog seeded", zap.Int("questions", len(catalog.Questions)))

			if cfg.Redis.Addr != "" {
				client := redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				cache := rediscache.NewCatalogCache(client, pgstore.NewCatalogLoader(pool), 0)
				if err := cache.Invalidate(ctx); err != nil {
					logger.Warn("catalog cache invalidation failed", zap.Error(err))
				}
			}
			return nil
		},
	}
}
