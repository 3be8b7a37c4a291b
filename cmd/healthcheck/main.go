// Command healthcheck probes a running leaderboard server and exits non-zero when it is unhealthy.
// It is meant for container HEALTHCHECK directives.
package main

import (
	"context"
	"fmt"
	"os"

	"arcade-leaderboard/internal/api"
	"arcade-leaderboard/internal/config"
	"arcade-leaderboard/internal/constants"
	"arcade-leaderboard/internal/logger"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	target := os.Getenv("HEALTHCHECK_URL")
	if target == "" {
		target = fmt.Sprintf("http://127.0.0.1:%s", cfg.ServerPort)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ProbeTimeout)
	defer cancel()

	if err := probe(ctx, api.NewClient(target), log); err != nil {
		log.Error().Err(err).Str("target", target).Msg("healthcheck failed")
		os.Exit(1)
	}
	log.Info().Str("target", target).Msg("healthcheck passed")
}

func probe(ctx context.Context, client *api.Client, log zerolog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		h, err := client.Health(ctx)
		if err != nil {
			return fmt.Errorf("health: %w", err)
		}
		log.Debug().Float64("uptime", h.Uptime).Msg("health probe ok")
		return nil
	})

	g.Go(func() error {
		entries, err := client.Top(ctx, "", 1)
		if err != nil {
			return fmt.Errorf("leaderboard: %w", err)
		}
		log.Debug().Int("entries", len(entries)).Msg("leaderboard probe ok")
		return nil
	})

	return g.Wait()
}
