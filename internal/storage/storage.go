// Package storage persists the record store as a monolithic snapshot.
//
// Every mutating operation saves the full collection under one fixed
// key; startup loads it back, or starts empty when nothing was saved
// yet. There is no partial or incremental persistence.
package storage

import (
	"context"

	"outlay/internal/core"
)

// SnapshotKey is the single key the whole collection lives under.
const SnapshotKey = "expenses"

// SnapshotStore is the durable collaborator for the ledger.
type SnapshotStore interface {
	// Load returns the last saved collection, or an empty one when no
	// snapshot exists yet.
	Load(ctx context.Context) ([]core.Record, error)

	// Save overwrites the snapshot with the full current collection.
	Save(ctx context.Context, records []core.Record) error

	// Close releases any underlying resources.
	Close() error
}
