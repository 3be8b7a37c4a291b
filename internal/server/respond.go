package server

import (
	"encoding/json"
	"net/http"
	"time"

	"arcade-leaderboard/internal/i18n"
	"arcade-leaderboard/internal/middleware"

	"github.com/rs/zerolog"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeRateLimit  = "RATE_LIMIT"
	CodeInternal   = "INTERNAL_SERVER_ERROR"
)

type SuccessEnvelope struct {
	Data      any       `json:"data"`
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorEnvelope struct {
	Message   string              `json:"message"`
	Code      string              `json:"code"`
	Status    int                 `json:"status"`
	Details   map[string][]string `json:"details,omitempty"`
	Debug     string              `json:"debug,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeSuccess(w http.ResponseWriter, r *http.Request, status int, msgKey string, data any) {
	writeJSON(w, r, status, SuccessEnvelope{
		Data:      data,
		Message:   i18n.PrinterFor(r).Sprintf(msgKey),
		Status:    status,
		Timestamp: s.now().UTC(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, msgKey string, details map[string][]string) {
	writeJSON(w, r, status, ErrorEnvelope{
		Message:   i18n.PrinterFor(r).Sprintf(msgKey),
		Code:      code,
		Status:    status,
		Details:   details,
		Timestamp: s.now().UTC(),
	})
}

// internalError logs err and answers 500. The error text reaches the client only in development.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")

	env := ErrorEnvelope{
		Message:   i18n.PrinterFor(r).Sprintf(i18n.MsgInternal),
		Code:      CodeInternal,
		Status:    http.StatusInternalServerError,
		Timestamp: s.now().UTC(),
	}
	if s.cfg.IsDevelopment() {
		env.Debug = err.Error()
	}
	writeJSON(w, r, http.StatusInternalServerError, env)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, CodeNotFound, i18n.MsgRouteNotFound, nil)
}

func (s *Server) rateLimited(w http.ResponseWriter, r *http.Request) {
	s.metrics.RateLimited.Inc()
	zerolog.Ctx(r.Context()).Warn().Str("client_ip", middleware.ClientIP(r)).Msg("submission rate limited")
	s.writeError(w, r, http.StatusTooManyRequests, CodeRateLimit, i18n.MsgRateLimited, nil)
}
