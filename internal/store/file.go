package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"arcade-leaderboard/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// FileStore keeps the leaderboard in a single JSON document and rewrites it on every append.
type FileStore struct {
	path   string
	logger zerolog.Logger

	mu      sync.RWMutex
	loaded  bool
	entries []domain.Entry
}

func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("store", "json").Str("path", path).Logger(),
	}
}

func (s *FileStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) loadLocked() error {
	if s.loaded {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info().Msg("no leaderboard file yet, starting empty")
		s.entries = []domain.Entry{}
		s.loaded = true
		return nil
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read leaderboard file")
		return fmt.Errorf("%w: read %s: %v", domain.ErrStorageUnavailable, s.path, err)
	}

	entries := []domain.Entry{}
	if len(bytes.TrimSpace(raw)) > 0 {
		var data domain.LeaderboardData
		if err := json.Unmarshal(raw, &data); err != nil {
			s.logger.Error().Err(err).Msg("leaderboard file is malformed")
			return fmt.Errorf("%w: decode %s: %v", domain.ErrStorageUnavailable, s.path, err)
		}
		if data.Entries != nil {
			entries = data.Entries
		}
	}

	s.entries = entries
	s.loaded = true
	s.logger.Info().Int("entries", len(entries)).Msg("leaderboard loaded")
	return nil
}

func (s *FileStore) Append(ctx context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}

	next := append(cloneEntries(s.entries), entry)
	if err := s.persist(next); err != nil {
		s.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("failed to persist leaderboard")
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	s.entries = next
	s.logger.Debug().Str("entry_id", entry.ID).Int("entries", len(next)).Msg("entry appended")
	return nil
}

func (s *FileStore) Snapshot() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

func (s *FileStore) Close() error {
	return nil
}

// persist writes to a sibling temp file and renames it over the target, so readers and crashes
// see either the old or the new document.
func (s *FileStore) persist(entries []domain.Entry) error {
	raw, err := json.MarshalIndent(domain.LeaderboardData{Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	suffix, err := gonanoid.New(12)
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), suffix))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpPath)

	if _, err := f.Write(raw); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace leaderboard file: %w", err)
	}
	return nil
}
