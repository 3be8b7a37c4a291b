package service

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"arcade-leaderboard/internal/constants"
	"arcade-leaderboard/internal/domain"
	"arcade-leaderboard/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type LeaderboardService struct {
	store  store.ScoreStore
	logger zerolog.Logger

	Clock func() time.Time
	NewID func() string
}

func NewLeaderboardService(st store.ScoreStore, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		store:  st,
		logger: logger,
		Clock:  time.Now,
		NewID:  uuid.NewString,
	}
}

// Submit validates the input, stamps identity and time, and appends the entry.
// It returns a *domain.ValidationError listing every failing field, or an error
// wrapping domain.ErrStorageUnavailable.
func (s *LeaderboardService) Submit(ctx context.Context, in domain.SubmitInput) (domain.Entry, error) {
	v, err := validate(in)
	if err != nil {
		s.logger.Debug().Err(err).Msg("submission rejected")
		return domain.Entry{}, err
	}

	entry := domain.Entry{
		ID:        s.NewID(),
		Nickname:  v.nickname,
		Score:     v.score,
		Game:      v.game,
		Timestamp: s.Clock().UTC(),
	}

	if err := s.store.Append(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("failed to store entry")
		return domain.Entry{}, err
	}

	return entry, nil
}

// Query returns up to limit entries ranked by score, highest first. Equal scores keep submission
// order. An empty game matches every game; an unknown game matches nothing.
func (s *LeaderboardService) Query(ctx context.Context, game string, limit int) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit = ClampLimit(limit)
	entries := s.store.Snapshot()

	if game != "" {
		g := domain.GameID(game)
		entries = slices.DeleteFunc(entries, func(e domain.Entry) bool { return e.Game != g })
	}

	slices.SortStableFunc(entries, func(a, b domain.Entry) int {
		return b.Score - a.Score
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	s.logger.Debug().Str("game", game).Int("limit", limit).Int("returned", len(entries)).Msg("leaderboard queried")
	return entries, nil
}

// Count reports how many entries the store holds.
func (s *LeaderboardService) Count() int {
	return len(s.store.Snapshot())
}

func ClampLimit(limit int) int {
	return max(constants.MinQueryLimit, min(limit, constants.MaxQueryLimit))
}

// ParseLimit turns a raw limit parameter into a clamped limit. Empty or non-numeric input yields
// the default; fractions are truncated toward zero.
func ParseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.DefaultQueryLimit
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return ClampLimit(n)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return constants.DefaultQueryLimit
	}
	if math.IsInf(f, 1) || f > constants.MaxQueryLimit {
		return constants.MaxQueryLimit
	}
	if math.IsInf(f, -1) || f < constants.MinQueryLimit {
		return constants.MinQueryLimit
	}
	return ClampLimit(int(f))
}
