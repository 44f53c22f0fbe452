package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"outlay/internal/core"
)

func snapshotRecords() []core.Record {
	return []core.Record{
		{ID: 1, Description: "groceries", Amount: 100, Category: core.CategoryFood, Date: core.NewDate(2024, 1, 5)},
		{ID: 2, Description: "train", Amount: 50, Category: core.CategoryTravel, Date: core.NewDate(2024, 2, 10)},
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "expenses.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	records, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("missing snapshot must load empty, got %d records", len(records))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	ctx := context.Background()
	want := snapshotRecords()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Amount != want[i].Amount ||
			got[i].Description != want[i].Description {
			t.Fatalf("record %d changed: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	ctx := context.Background()
	if err := s.Save(ctx, snapshotRecords()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("save must overwrite wholesale, got %d records", len(got))
	}
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := s.Load(context.Background()); err == nil {
		t.Fatalf("corrupt snapshot must error, not silently reset")
	}
}
