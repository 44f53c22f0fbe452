package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"outlay/internal/amqp"
)

func TestJournalAppendsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "changes.jsonl")
	w, err := NewJournalWorker(path)
	if err != nil {
		t.Fatalf("NewJournalWorker: %v", err)
	}
	defer w.Close()

	received := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return received }

	msgs := []*amqp.ChangeMessage{
		amqp.NewChangeMessage(amqp.OpRecordCreated, 42, 1),
		amqp.NewChangeMessage(amqp.OpRecordDeleted, 42, 0),
		amqp.NewChangeMessage(amqp.OpStoreReset, 0, 0),
	}
	for _, m := range msgs {
		if err := w.HandleChange(context.Background(), m); err != nil {
			t.Fatalf("HandleChange(%s): %v", m.Op, err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer f.Close()

	var entries []journalEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e journalEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line %d not valid JSON: %v", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan journal: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Op != amqp.OpRecordCreated || entries[0].RecordID != 42 {
		t.Fatalf("first entry=%+v", entries[0])
	}
	if entries[2].Op != amqp.OpStoreReset || entries[2].RecordID != 0 {
		t.Fatalf("last entry=%+v", entries[2])
	}
	for i, e := range entries {
		if !e.ReceivedAt.Equal(received) {
			t.Fatalf("entry %d received_at=%v, want %v", i, e.ReceivedAt, received)
		}
	}
}

func TestJournalReopenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changes.jsonl")

	w, err := NewJournalWorker(path)
	if err != nil {
		t.Fatalf("NewJournalWorker: %v", err)
	}
	if err := w.HandleChange(context.Background(), amqp.NewChangeMessage(amqp.OpRecordCreated, 1, 1)); err != nil {
		t.Fatalf("HandleChange: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	w, err = NewJournalWorker(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer w.Close()
	if err := w.HandleChange(context.Background(), amqp.NewChangeMessage(amqp.OpRecordUpdated, 1, 1)); err != nil {
		t.Fatalf("HandleChange after reopen: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Fatalf("expected 2 journal lines after reopen, got %d", lines)
	}
}
