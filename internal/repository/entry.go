package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"arcade-leaderboard/internal/constants"
	"arcade-leaderboard/internal/domain"

	"github.com/rs/zerolog"
)

const (
	insertEntrySQL = `INSERT INTO entries (id, nickname, game, score, created_at) VALUES (?, ?, ?, ?, ?)`
	listEntriesSQL = `SELECT id, nickname, game, score, created_at FROM entries ORDER BY seq ASC`
)

type EntryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewEntryRepository(sqlDB *sql.DB, logger zerolog.Logger) *EntryRepository {
	return &EntryRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *EntryRepository) Insert(ctx context.Context, entry domain.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, insertEntrySQL,
		entry.ID,
		entry.Nickname,
		string(entry.Game),
		int64(entry.Score),
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("failed to insert entry")
		return fmt.Errorf("failed to insert entry %s: %w", entry.ID, err)
	}
	return nil
}

func (r *EntryRepository) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, listEntriesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var (
			e         domain.Entry
			game      string
			score     int64
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Nickname, &game, &score, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at of %s: %w", e.ID, err)
		}
		e.Game = domain.GameID(game)
		e.Score = int(score)
		e.Timestamp = ts
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	r.logger.Debug().Int("count", len(entries)).Msg("entries listed")
	return entries, nil
}

func (r *EntryRepository) Close() error {
	return r.db.Close()
}
