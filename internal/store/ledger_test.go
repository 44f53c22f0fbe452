package store

import (
	"testing"

	"outlay/internal/core"
)

func testRecord(desc string) core.Record {
	return core.Record{
		Description: desc,
		Amount:      10,
		Category:    core.CategoryFood,
		Date:        core.NewDate(2024, 1, 5),
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	l := New(NewSequenceIDSource(1))
	seen := map[int64]struct{}{}
	for i := 0; i < 100; i++ {
		r := l.Add(testRecord("r"))
		if r.ID == 0 {
			t.Fatalf("add %d: id not assigned", i)
		}
		if _, dup := seen[r.ID]; dup {
			t.Fatalf("add %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
}

// stuckIDSource always returns the same id, forcing collisions.
type stuckIDSource struct{}

func (stuckIDSource) Next() int64 { return 42 }

func TestAddBumpsCollidingIDs(t *testing.T) {
	l := New(stuckIDSource{})
	a := l.Add(testRecord("a"))
	b := l.Add(testRecord("b"))
	c := l.Add(testRecord("c"))
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Fatalf("colliding source produced duplicate ids: %d %d %d", a.ID, b.ID, c.ID)
	}
}

func TestUpdateKnownID(t *testing.T) {
	l := New(NewSequenceIDSource(1))
	r := l.Add(testRecord("old"))

	changed := testRecord("new")
	changed.Amount = 99
	if !l.Update(r.ID, changed) {
		t.Fatalf("update of known id reported not found")
	}

	all := l.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	if all[0].ID != r.ID {
		t.Fatalf("update must preserve id: got %d want %d", all[0].ID, r.ID)
	}
	if all[0].Description != "new" || all[0].Amount != 99 {
		t.Fatalf("fields not replaced: %+v", all[0])
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	l := New(NewSequenceIDSource(1))
	r := l.Add(testRecord("keep"))

	if l.Update(9999, testRecord("ignored")) {
		t.Fatalf("update of unknown id reported found")
	}

	all := l.All()
	if len(all) != 1 || all[0].ID != r.ID || all[0].Description != "keep" {
		t.Fatalf("store changed by no-op update: %+v", all)
	}
}

func TestRemove(t *testing.T) {
	l := New(NewSequenceIDSource(1))
	a := l.Add(testRecord("a"))
	b := l.Add(testRecord("b"))

	if !l.Remove(a.ID) {
		t.Fatalf("remove of known id reported not found")
	}
	if l.Remove(a.ID) {
		t.Fatalf("second remove must be a no-op")
	}

	all := l.All()
	if len(all) != 1 || all[0].ID != b.ID {
		t.Fatalf("unexpected contents after remove: %+v", all)
	}
}

func TestReplaceAll(t *testing.T) {
	l := New(NewSequenceIDSource(1))
	l.Add(testRecord("gone"))

	next := []core.Record{
		{ID: 7, Description: "x", Amount: 1, Category: "c", Date: core.NewDate(2024, 1, 1)},
		{ID: 8, Description: "y", Amount: 2, Category: "c", Date: core.NewDate(2024, 1, 2)},
	}
	l.ReplaceAll(next)

	all := l.All()
	if len(all) != 2 || all[0].ID != 7 || all[1].ID != 8 {
		t.Fatalf("unexpected contents after replace: %+v", all)
	}

	l.ReplaceAll(nil)
	if l.Len() != 0 {
		t.Fatalf("replace with empty set must clear the store")
	}
}

func TestReplaceAllReassignsBadIDs(t *testing.T) {
	l := New(NewSequenceIDSource(1))
	l.ReplaceAll([]core.Record{
		{ID: 0, Description: "no id", Amount: 1, Category: "c", Date: core.NewDate(2024, 1, 1)},
		{ID: 5, Description: "ok", Amount: 1, Category: "c", Date: core.NewDate(2024, 1, 1)},
		{ID: 5, Description: "dup", Amount: 1, Category: "c", Date: core.NewDate(2024, 1, 1)},
	})

	seen := map[int64]struct{}{}
	for _, r := range l.All() {
		if r.ID == 0 {
			t.Fatalf("zero id survived import")
		}
		if _, dup := seen[r.ID]; dup {
			t.Fatalf("duplicate id %d survived import", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	l := New(NewSequenceIDSource(1))
	l.Add(testRecord("a"))

	view := l.All()
	view[0].Description = "mutated"

	if l.All()[0].Description != "a" {
		t.Fatalf("All must return a defensive copy")
	}
}

func TestVersionAdvancesOnMutation(t *testing.T) {
	l := New(NewSequenceIDSource(1))
	v0 := l.Version()
	r := l.Add(testRecord("a"))
	if l.Version() == v0 {
		t.Fatalf("version must advance on add")
	}
	v1 := l.Version()
	l.Remove(r.ID)
	if l.Version() == v1 {
		t.Fatalf("version must advance on remove")
	}
}
