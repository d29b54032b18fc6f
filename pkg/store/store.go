// Package store persists dump records into per-round MongoDB collections.
package store

import (
	"context"
	"errors"

	"github.com/tombiddulph/BushtarionScraper/pkg/dump"
)

// ErrDuplicateTick signals that the round's world partition already holds
// a record for the tick. The world write is an insert, not an upsert, so
// two racing runs cannot both record the same tick.
var ErrDuplicateTick = errors.New("world tick already ingested")

// Store is the partitioned document store the pipeline writes into.
type Store interface {
	// EnsurePartitions creates the round's three collections if absent.
	// Safe to call on every run.
	EnsurePartitions(ctx context.Context, round int) error

	// HasWorldTick reports whether the round's world partition already
	// contains the given tick. A missing partition reads as false.
	HasWorldTick(ctx context.Context, round, tick int) (bool, error)

	// InsertWorld records the world state for its tick. Returns
	// ErrDuplicateTick if the tick is already present.
	InsertWorld(ctx context.Context, w *dump.World) error

	// UpsertPlayer replaces the player's record in the round's players
	// partition, keyed by player id.
	UpsertPlayer(ctx context.Context, round int, p *dump.Player) error

	// UpsertAlliance replaces the alliance's record in the round's
	// alliances partition, keyed by alliance name.
	UpsertAlliance(ctx context.Context, round int, a *dump.Alliance) error

	// Ping verifies store connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying client.
	Close(ctx context.Context) error
}
