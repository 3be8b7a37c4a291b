package server

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"arcade-leaderboard/internal/constants"
	"arcade-leaderboard/internal/domain"
	"arcade-leaderboard/internal/i18n"
	"arcade-leaderboard/internal/metrics"
	"arcade-leaderboard/internal/service"

	"github.com/rs/zerolog"
)

// submitRequest keeps raw JSON values so a wrong type surfaces as a field error, not a decode error.
type submitRequest struct {
	Nickname any `json:"nickname"`
	Game     any `json:"game"`
	Score    any `json:"score"`
}

func (req submitRequest) input() domain.SubmitInput {
	var in domain.SubmitInput
	if v, ok := req.Nickname.(string); ok {
		in.Nickname = &v
	}
	if v, ok := req.Game.(string); ok {
		in.Game = &v
	}
	if n, ok := req.Score.(json.Number); ok {
		// Float64 reports overflow as ±Inf with an error; keep the infinity so validation rejects it.
		if f, err := n.Float64(); err == nil || math.IsInf(f, 0) {
			in.Score = &f
		}
	}
	return in
}

func (s *Server) listScores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := s.svc.Query(r.Context(), q.Get("game"), service.ParseLimit(q.Get("limit")))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	s.writeSuccess(w, r, http.StatusOK, i18n.MsgLeaderboardFetched, entries)
}

func (s *Server) submitScore(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	// an empty body is an empty object, so every field reports as required
	var req submitRequest
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Debug().Err(err).Msg("rejected malformed body")
		s.metrics.ObserveSubmission(metrics.ResultRejected)
		s.writeError(w, r, http.StatusBadRequest, CodeValidation, i18n.MsgInvalidBody, nil)
		return
	}

	entry, err := s.svc.Submit(r.Context(), req.input())
	if err != nil {
		if verr, ok := domain.IsValidation(err); ok {
			s.metrics.ObserveSubmission(metrics.ResultRejected)
			s.writeError(w, r, http.StatusBadRequest, CodeValidation, i18n.MsgInvalidInput, translateFields(r, verr))
			return
		}
		s.metrics.ObserveSubmission(metrics.ResultFailed)
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			logger.Warn().Err(err).Msg("unexpected submit error")
		}
		s.internalError(w, r, err)
		return
	}

	s.metrics.ObserveSubmission(metrics.ResultAccepted)
	s.metrics.Entries.Set(float64(s.svc.Count()))

	logSubmitted(logger, entry)
	s.writeSuccess(w, r, http.StatusCreated, i18n.MsgScoreSubmitted, entry)
}

func translateFields(r *http.Request, verr *domain.ValidationError) map[string][]string {
	p := i18n.PrinterFor(r)
	out := make(map[string][]string, len(verr.Fields))
	for field, keys := range verr.Fields {
		out[field] = i18n.Translate(p, keys)
	}
	return out
}

func logSubmitted(logger *zerolog.Logger, entry domain.Entry) {
	logger.Info().
		Str("entry_id", entry.ID).
		Str("game", string(entry.Game)).
		Int("score", entry.Score).
		Msg("score submitted")
}
