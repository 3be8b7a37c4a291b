package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"arcade-leaderboard/internal/constants"
	"arcade-leaderboard/internal/domain"
	"arcade-leaderboard/internal/store"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newFileBackedService(t *testing.T, path string) *LeaderboardService {
	t.Helper()
	st := store.NewFileStore(path, zerolog.Nop())
	require.NoError(t, st.Load(context.Background()))
	return NewLeaderboardService(st, zerolog.Nop())
}

func submit(t *testing.T, svc *LeaderboardService, nickname, game string, score float64) domain.Entry {
	t.Helper()
	e, err := svc.Submit(context.Background(), domain.NewSubmitInput(nickname, game, score))
	require.NoError(t, err)
	return e
}

func TestSubmitValidRoundTrip(t *testing.T) {
	svc := newFileBackedService(t, filepath.Join(t.TempDir(), "lb.json"))
	faker := gofakeit.New(42)
	games := []string{"star", "memory", "jump"}
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		nickname := faker.LetterN(uint(faker.Number(constants.NicknameMinLen, constants.NicknameMaxLen)))
		game := faker.RandomString(games)
		score := faker.Number(0, constants.MaxScore)
		start := time.Now()

		e, err := svc.Submit(context.Background(), domain.NewSubmitInput(nickname, game, float64(score)))
		require.NoError(t, err, "nickname=%q game=%q score=%d", nickname, game, score)

		assert.Equal(t, nickname, e.Nickname)
		assert.Equal(t, domain.GameID(game), e.Game)
		assert.Equal(t, score, e.Score)
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		assert.False(t, e.Timestamp.Before(start), "timestamp before call start")
		assert.Equal(t, time.UTC, e.Timestamp.Location())
		seen[e.ID] = true
	}

	assert.Equal(t, 50, svc.Count())
}

func TestSubmitRejectsWithoutStoring(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.SubmitInput
		field string
	}{
		{name: "short nickname", in: domain.NewSubmitInput("A", "star", 10), field: "nickname"},
		{name: "long nickname", in: domain.NewSubmitInput("abcdefghijklmnop", "star", 10), field: "nickname"},
		{name: "symbol nickname", in: domain.NewSubmitInput("al!ce", "star", 10), field: "nickname"},
		{name: "score over max", in: domain.NewSubmitInput("가나다", "memory", 1000000), field: "score"},
		{name: "negative score", in: domain.NewSubmitInput("Alice", "jump", -3), field: "score"},
		{name: "fractional score", in: domain.NewSubmitInput("Alice", "jump", 3.14), field: "score"},
		{name: "unknown game", in: domain.NewSubmitInput("Alice", "tetris", 3), field: "game"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &FakeScoreStore{}
			svc := NewLeaderboardService(fake, zerolog.Nop())

			_, err := svc.Submit(context.Background(), tt.in)

			ve, ok := domain.IsValidation(err)
			require.True(t, ok)
			assert.Contains(t, ve.Fields, tt.field)
			assert.Empty(t, fake.Snapshot())
		})
	}
}

func TestSubmitStorageFailure(t *testing.T) {
	fake := &FakeScoreStore{
		AppendFunc: func(ctx context.Context, entry domain.Entry) error {
			return fmt.Errorf("%w: disk full", domain.ErrStorageUnavailable)
		},
	}
	svc := NewLeaderboardService(fake, zerolog.Nop())

	_, err := svc.Submit(context.Background(), domain.NewSubmitInput("Alice", "star", 1))

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	_, isValidation := domain.IsValidation(err)
	assert.False(t, isValidation)
}

func TestSubmitUsesClockAndIDGenerator(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("KST", 9*60*60))
	svc := NewLeaderboardService(&FakeScoreStore{}, zerolog.Nop())
	svc.Clock = func() time.Time { return fixed }
	svc.NewID = func() string { return "entry-1" }

	e := submit(t, svc, "Alice", "star", 7)

	assert.Equal(t, "entry-1", e.ID)
	assert.True(t, fixed.Equal(e.Timestamp))
	assert.Equal(t, time.UTC, e.Timestamp.Location())
}

func TestQueryScenarioA(t *testing.T) {
	svc := newFileBackedService(t, filepath.Join(t.TempDir(), "lb.json"))

	alice := submit(t, svc, "Alice", "star", 100)
	assert.Equal(t, 100, alice.Score)
	submit(t, svc, "Bob", "star", 200)
	submit(t, svc, "Carol", "memory", 999)

	got, err := svc.Query(context.Background(), "star", 10)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0].Nickname)
	assert.Equal(t, 200, got[0].Score)
	assert.Equal(t, "Alice", got[1].Nickname)
	assert.Equal(t, 100, got[1].Score)
}

func TestQueryRankingProperty(t *testing.T) {
	svc := NewLeaderboardService(&FakeScoreStore{}, zerolog.Nop())
	faker := gofakeit.New(7)
	games := []string{"star", "memory", "jump"}
	counts := map[string]int{}

	for i := 0; i < 120; i++ {
		game := faker.RandomString(games)
		counts[game]++
		submit(t, svc, fmt.Sprintf("p%d", i), game, float64(faker.Number(0, 500)))
	}

	for _, game := range games {
		for _, limit := range []int{1, 5, 10, 50} {
			got, err := svc.Query(context.Background(), game, limit)
			require.NoError(t, err)

			assert.Len(t, got, min(limit, counts[game]))
			for i, e := range got {
				assert.Equal(t, domain.GameID(game), e.Game)
				if i > 0 {
					assert.GreaterOrEqual(t, got[i-1].Score, e.Score)
				}
			}
		}
	}
}

func TestQueryTiesKeepSubmissionOrder(t *testing.T) {
	svc := NewLeaderboardService(&FakeScoreStore{}, zerolog.Nop())
	submit(t, svc, "first", "jump", 50)
	submit(t, svc, "second", "jump", 80)
	submit(t, svc, "third", "jump", 50)
	submit(t, svc, "fourth", "jump", 50)

	got, err := svc.Query(context.Background(), "jump", 10)
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, e := range got {
		names[i] = e.Nickname
	}
	assert.Equal(t, []string{"second", "first", "third", "fourth"}, names)
}

func TestQueryFilters(t *testing.T) {
	svc := NewLeaderboardService(&FakeScoreStore{}, zerolog.Nop())
	submit(t, svc, "Alice", "star", 1)
	submit(t, svc, "Bob", "memory", 2)
	submit(t, svc, "Carol", "jump", 3)

	all, err := svc.Query(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Carol", all[0].Nickname)

	unknown, err := svc.Query(context.Background(), "chess", 10)
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestQueryClampsLimit(t *testing.T) {
	svc := NewLeaderboardService(&FakeScoreStore{}, zerolog.Nop())
	for i := 0; i < 60; i++ {
		submit(t, svc, fmt.Sprintf("p%02d", i), "star", float64(i))
	}

	zero, err := svc.Query(context.Background(), "star", 0)
	require.NoError(t, err)
	one, err := svc.Query(context.Background(), "star", 1)
	require.NoError(t, err)
	assert.Equal(t, one, zero)
	assert.Len(t, zero, 1)

	huge, err := svc.Query(context.Background(), "star", 1000)
	require.NoError(t, err)
	fifty, err := svc.Query(context.Background(), "star", 50)
	require.NoError(t, err)
	assert.Equal(t, fifty, huge)
	assert.Len(t, huge, 50)
}

func TestQueryIsIdempotentAndReadOnly(t *testing.T) {
	fake := &FakeScoreStore{}
	svc := NewLeaderboardService(fake, zerolog.Nop())
	submit(t, svc, "Alice", "star", 10)
	submit(t, svc, "Bob", "star", 30)
	submit(t, svc, "Carol", "star", 20)
	before := fake.Snapshot()

	first, err := svc.Query(context.Background(), "star", 2)
	require.NoError(t, err)
	second, err := svc.Query(context.Background(), "star", 2)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("query results differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, fake.Snapshot()); diff != "" {
		t.Fatalf("store changed by query (-before +after):\n%s", diff)
	}
}

func TestQueryCanceledContext(t *testing.T) {
	svc := NewLeaderboardService(&FakeScoreStore{}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Query(ctx, "", 10)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPersistenceAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lb.json")
	svc := newFileBackedService(t, path)
	submitted := submit(t, svc, "Alice", "memory", 4242)

	restarted := newFileBackedService(t, path)
	got, err := restarted.Query(context.Background(), "memory", 10)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, submitted.ID, got[0].ID)
	assert.Equal(t, submitted.Nickname, got[0].Nickname)
	assert.Equal(t, submitted.Score, got[0].Score)
	assert.True(t, submitted.Timestamp.Equal(got[0].Timestamp))
}

func TestConcurrentSubmitsAllPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lb.json")
	svc := newFileBackedService(t, path)

	const n = 40
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := svc.Submit(context.Background(), domain.NewSubmitInput(fmt.Sprintf("racer%d", i), "jump", float64(i)))
			return err
		})
	}
	require.NoError(t, g.Wait())

	restarted := newFileBackedService(t, path)
	assert.Equal(t, n, restarted.Count())
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 10},
		{"  ", 10},
		{"abc", 10},
		{"NaN", 10},
		{"0", 1},
		{"-7", 1},
		{"1", 1},
		{"25", 25},
		{"50", 50},
		{"1000", 50},
		{"99999999999999999999", 50},
		{"5.9", 5},
		{"0.5", 1},
		{"1e3", 50},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLimit(tt.raw))
		})
	}
}
