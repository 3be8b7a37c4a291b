package service

import (
	"context"
	"sync"

	"arcade-leaderboard/internal/domain"
)

// FakeScoreStore is an in-memory store whose Append can be overridden.
type FakeScoreStore struct {
	AppendFunc func(ctx context.Context, entry domain.Entry) error

	mu      sync.Mutex
	entries []domain.Entry
}

func (f *FakeScoreStore) Load(ctx context.Context) error { return nil }

func (f *FakeScoreStore) Append(ctx context.Context, entry domain.Entry) error {
	if f.AppendFunc != nil {
		if err := f.AppendFunc(ctx, entry); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *FakeScoreStore) Snapshot() []domain.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *FakeScoreStore) Close() error { return nil }
