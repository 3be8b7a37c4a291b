// Package store holds the durable, append-only collection of leaderboard entries.
//
// Every implementation keeps the full collection resident in memory after Load, so Snapshot never
// touches the backing medium. Appends are serialized against each other and against snapshots.
// Nothing coordinates separate processes writing the same backing file or database.
package store

import (
	"context"

	"arcade-leaderboard/internal/domain"
)

type ScoreStore interface {
	// Load reads the backing data once per process. Later calls are no-ops.
	Load(ctx context.Context) error
	// Append persists entry before returning. On error the collection is unchanged.
	Append(ctx context.Context, entry domain.Entry) error
	// Snapshot returns a copy of all entries in insertion order.
	Snapshot() []domain.Entry
	Close() error
}

func cloneEntries(entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	copy(out, entries)
	return out
}
