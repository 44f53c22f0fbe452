// Package worker contains the journal worker, which consumes change
// messages and appends them to a durable audit log.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"outlay/internal/amqp"
	"outlay/internal/log"
)

// journalEntry is one line of the journal file.
type journalEntry struct {
	Op          string    `json:"op"`
	RecordID    int64     `json:"record_id,omitempty"`
	RecordCount int       `json:"record_count"`
	Timestamp   time.Time `json:"timestamp"`
	ReceivedAt  time.Time `json:"received_at"`
}

// JournalWorker appends every store change to an append-only JSONL
// file, giving an audit trail that survives store resets and imports.
type JournalWorker struct {
	mu   sync.Mutex
	path string
	file *os.File

	// now is the receive clock; tests pin it.
	now func() time.Time
}

// NewJournalWorker opens (or creates) the journal at path.
func NewJournalWorker(path string) (*JournalWorker, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal file: %w", err)
	}
	return &JournalWorker{path: path, file: f, now: time.Now}, nil
}

// HandleChange appends one change message to the journal. Lines are
// written whole and synced, so a crash never leaves a torn entry
// unacknowledged to the broker.
func (w *JournalWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	entry := journalEntry{
		Op:          msg.Op,
		RecordID:    msg.RecordID,
		RecordCount: msg.RecordCount,
		Timestamp:   msg.Timestamp,
		ReceivedAt:  w.now(),
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.Write(line); err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("sync journal: %w", err)
	}

	slog.InfoContext(ctx, "Journaled change",
		log.FieldOperation, msg.Op,
		log.FieldRecordID, msg.RecordID,
		log.FieldRecordCount, msg.RecordCount)

	return nil
}

// Close flushes and closes the journal file.
func (w *JournalWorker) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
