package store

import (
	"context"
	"fmt"
	"sync"

	"arcade-leaderboard/internal/domain"

	"github.com/rs/zerolog"
)

// EntryRepository is the row-level access SQLStore needs. repository.EntryRepository satisfies it.
type EntryRepository interface {
	Insert(ctx context.Context, entry domain.Entry) error
	List(ctx context.Context) ([]domain.Entry, error)
	Close() error
}

// SQLStore writes each entry through to a database table and serves reads from memory.
type SQLStore struct {
	repo   EntryRepository
	logger zerolog.Logger

	mu      sync.RWMutex
	loaded  bool
	entries []domain.Entry
}

func NewSQLStore(repo EntryRepository, logger zerolog.Logger) *SQLStore {
	return &SQLStore{
		repo:   repo,
		logger: logger.With().Str("store", "sqlite").Logger(),
	}
}

func (s *SQLStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *SQLStore) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list entries")
		return fmt.Errorf("%w: list entries: %v", domain.ErrStorageUnavailable, err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}

	s.entries = entries
	s.loaded = true
	s.logger.Info().Int("entries", len(entries)).Msg("leaderboard loaded")
	return nil
}

func (s *SQLStore) Append(ctx context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("failed to insert entry")
		return fmt.Errorf("%w: insert entry: %v", domain.ErrStorageUnavailable, err)
	}

	s.entries = append(s.entries, entry)
	return nil
}

func (s *SQLStore) Snapshot() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

func (s *SQLStore) Close() error {
	return s.repo.Close()
}
