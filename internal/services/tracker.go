// Package services orchestrates store mutations with snapshot
// persistence and change-event publishing.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/log"
	"outlay/internal/storage"
	"outlay/internal/store"
	"outlay/internal/transfer"
)

// EventPublisher publishes store change messages. The AMQP client
// satisfies it; a nil publisher disables events.
type EventPublisher interface {
	PublishChange(ctx context.Context, msg *amqp.ChangeMessage) error
	Close() error
}

// Tracker owns the mutation path: every store mutation saves the full
// snapshot before it is considered done, and failed saves roll the
// in-memory change back so no failure leaves partial state.
type Tracker struct {
	ledger *store.Ledger
	snaps  storage.SnapshotStore
	events EventPublisher
}

func NewTracker(ledger *store.Ledger, snaps storage.SnapshotStore, events EventPublisher) *Tracker {
	return &Tracker{
		ledger: ledger,
		snaps:  snaps,
		events: events,
	}
}

// LoadFromSnapshot seeds the ledger from the persisted snapshot at
// startup. A missing snapshot yields an empty store.
func (t *Tracker) LoadFromSnapshot(ctx context.Context) error {
	records, err := t.snaps.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	t.ledger.ReplaceAll(records)
	slog.InfoContext(ctx, "Snapshot loaded", log.FieldRecordCount, len(records))
	return nil
}

// AddRecord validates and stores a new record, persisting the snapshot.
func (t *Tracker) AddRecord(ctx context.Context, r core.Record) (core.Record, error) {
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}

	prev := t.ledger.All()
	stored := t.ledger.Add(r)
	if err := t.save(ctx, prev); err != nil {
		return core.Record{}, err
	}

	slog.InfoContext(ctx, "Record created",
		log.FieldRecordID, stored.ID,
		log.FieldDescription, stored.Description,
		log.FieldAmount, stored.Amount,
		log.FieldCategory, stored.Category,
		log.FieldOperation, log.OpCreate)

	t.publish(ctx, amqp.OpRecordCreated, stored.ID)
	return stored, nil
}

// UpdateRecord replaces the fields of an existing record, preserving its
// id. An unknown id is a benign no-op and reports found=false.
func (t *Tracker) UpdateRecord(ctx context.Context, id int64, fields core.Record) (bool, error) {
	if err := fields.Validate(); err != nil {
		return false, err
	}

	prev := t.ledger.All()
	if !t.ledger.Update(id, fields) {
		slog.WarnContext(ctx, "Update for unknown record id ignored",
			log.FieldRecordID, id, log.FieldOperation, log.OpUpdate)
		return false, nil
	}
	if err := t.save(ctx, prev); err != nil {
		return false, err
	}

	slog.InfoContext(ctx, "Record updated", log.FieldRecordID, id, log.FieldOperation, log.OpUpdate)
	t.publish(ctx, amqp.OpRecordUpdated, id)
	return true, nil
}

// RemoveRecord deletes a record. An unknown id is a benign no-op.
func (t *Tracker) RemoveRecord(ctx context.Context, id int64) (bool, error) {
	prev := t.ledger.All()
	if !t.ledger.Remove(id) {
		slog.WarnContext(ctx, "Delete for unknown record id ignored",
			log.FieldRecordID, id, log.FieldOperation, log.OpDelete)
		return false, nil
	}
	if err := t.save(ctx, prev); err != nil {
		return false, err
	}

	slog.InfoContext(ctx, "Record deleted", log.FieldRecordID, id, log.FieldOperation, log.OpDelete)
	t.publish(ctx, amqp.OpRecordDeleted, id)
	return true, nil
}

// Import validates an external payload and atomically replaces the
// whole store with it. A failed validation or save never partially
// replaces anything.
func (t *Tracker) Import(ctx context.Context, payload []byte) (int, error) {
	records, err := transfer.Decode(payload)
	if err != nil {
		return 0, err
	}

	prev := t.ledger.All()
	t.ledger.ReplaceAll(records)
	if err := t.save(ctx, prev); err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "Store replaced by import",
		log.FieldRecordCount, len(records), log.FieldOperation, log.OpImport)
	t.publish(ctx, amqp.OpStoreImported, 0)
	return len(records), nil
}

// Export serializes the full unfiltered store in the import shape.
func (t *Tracker) Export(ctx context.Context) ([]byte, error) {
	payload, err := transfer.Encode(t.ledger.All())
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Store exported",
		log.FieldRecordCount, t.ledger.Len(), log.FieldOperation, log.OpExport)
	return payload, nil
}

// Reset clears the store wholesale.
func (t *Tracker) Reset(ctx context.Context) error {
	prev := t.ledger.All()
	t.ledger.ReplaceAll(nil)
	if err := t.save(ctx, prev); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Store reset", log.FieldOperation, log.OpReset)
	t.publish(ctx, amqp.OpStoreReset, 0)
	return nil
}

// Records returns the full current collection.
func (t *Tracker) Records() []core.Record {
	return t.ledger.All()
}

// Version mirrors the ledger's mutation counter, for view caches.
func (t *Tracker) Version() uint64 {
	return t.ledger.Version()
}

// Close releases the snapshot store and event publisher.
func (t *Tracker) Close() error {
	var errs []error

	if t.snaps != nil {
		if err := t.snaps.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if t.events != nil {
		if err := t.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close tracker: %v", errs)
	}
	return nil
}

// save persists the full collection; on failure the mutation is rolled
// back so the store stays at its pre-mutation state.
func (t *Tracker) save(ctx context.Context, prev []core.Record) error {
	if err := t.snaps.Save(ctx, t.ledger.All()); err != nil {
		t.ledger.ReplaceAll(prev)
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// publish emits a change event. Publishing is best effort: the local
// mutation already succeeded, so failures are logged and swallowed.
func (t *Tracker) publish(ctx context.Context, op string, recordID int64) {
	if t.events == nil {
		return
	}
	msg := amqp.NewChangeMessage(op, recordID, t.ledger.Len())
	if err := t.events.PublishChange(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			log.FieldError, err, log.FieldOperation, op, log.FieldRecordID, recordID)
	}
}
