package server

import (
	"net/http"
	"time"

	"arcade-leaderboard/internal/config"
	"arcade-leaderboard/internal/constants"
	"arcade-leaderboard/internal/metrics"
	"arcade-leaderboard/internal/middleware"
	"arcade-leaderboard/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// DevOrigin is always allowed so the local frontend works next to a deployed one.
const DevOrigin = "http://localhost:3000"

type Server struct {
	cfg     *config.Config
	svc     *service.LeaderboardService
	metrics *metrics.Metrics
	logger  zerolog.Logger
	limiter *middleware.IPRateLimiter

	started time.Time
	now     func() time.Time
}

func NewServer(cfg *config.Config, svc *service.LeaderboardService, m *metrics.Metrics, logger zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		svc:     svc,
		metrics: m,
		logger:  logger,
		limiter: middleware.NewIPRateLimiter(cfg.SubmitRateLimit, cfg.SubmitRateWindow),
		started: time.Now(),
		now:     time.Now,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(s.logger))
	if s.cfg.MetricsEnabled {
		r.Use(middleware.Metrics(s.metrics))
	}
	r.Use(middleware.Recover(s.internalError))
	r.Use(chimw.Timeout(constants.RequestTimeout))
	r.Use(s.cors().Handler)

	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.notFound)

	limited := middleware.RateLimit(s.limiter, s.rateLimited)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/health/detailed", s.healthDetailed)

		r.Get("/leaderboard", s.listScores)
		r.With(limited).Post("/leaderboard", s.submitScore)
	})

	s.mountRPC(r)

	if s.cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	return r
}

func (s *Server) cors() *cors.Cors {
	origins := []string{DevOrigin}
	if s.cfg.AllowedOrigin != "" && s.cfg.AllowedOrigin != DevOrigin {
		origins = append(origins, s.cfg.AllowedOrigin)
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{
			"Content-Type",
			"Accept-Language",
			middleware.RequestIDHeader,
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
		},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
}
