package fx

import (
	"context"
	"fmt"

	"arcade-leaderboard/internal/config"
	"arcade-leaderboard/internal/database"
	"arcade-leaderboard/internal/logger"
	"arcade-leaderboard/internal/metrics"
	"arcade-leaderboard/internal/repository"
	"arcade-leaderboard/internal/server"
	"arcade-leaderboard/internal/service"
	"arcade-leaderboard/internal/store"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvideStore builds the configured backend and ties its Load and Close to the app lifecycle.
// A store that fails to load aborts startup.
func ProvideStore(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (store.ScoreStore, error) {
	var st store.ScoreStore
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		sqlDB, err := database.Open(cfg.DBPath, logger)
		if err != nil {
			return nil, err
		}
		st = store.NewSQLStore(repository.NewEntryRepository(sqlDB, logger), logger)
	case config.StoreDriverJSON:
		st = store.NewFileStore(cfg.DataPath, logger)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := st.Load(ctx); err != nil {
				return fmt.Errorf("failed to load score store: %w", err)
			}
			logger.Info().Str("driver", cfg.StoreDriver).Int("entries", len(st.Snapshot())).Msg("score store loaded")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := st.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing score store")
				return err
			}
			return nil
		},
	})
	return st, nil
}

var Module = fx.Options(
	config.Module,
	logger.Module,
	fx.Provide(metrics.New),
	// storage
	fx.Provide(ProvideStore),
	// svc
	fx.Provide(service.NewLeaderboardService),
	// server
	fx.Provide(server.NewServer),
	fx.Invoke(func(cfg *config.Config, logger zerolog.Logger) { cfg.Log(logger) }),
)
