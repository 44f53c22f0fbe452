// Package store holds the canonical in-memory record collection.
//
// The ledger is the single owner of all expense records during a
// session. Derived views (filtering, pagination, aggregation) always
// recompute from All(); nothing outside this package keeps an
// authoritative copy across mutations.
package store

import (
	"sync"

	"outlay/internal/core"
)

// Ledger is the record store. Insertion order of the backing slice
// carries no meaning; consumers sort explicitly.
type Ledger struct {
	mu      sync.Mutex
	records []core.Record
	ids     IDSource
	version uint64
}

// New creates an empty ledger using the given id source.
func New(ids IDSource) *Ledger {
	if ids == nil {
		ids = ClockIDSource{}
	}
	return &Ledger{ids: ids}
}

// Add assigns a fresh unique id to the record and appends it, returning
// the stored record. A colliding candidate id is bumped past the current
// maximum so ids stay pairwise distinct under any Add sequence.
func (l *Ledger) Add(r core.Record) core.Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	r.ID = l.uniqueIDLocked(l.ids.Next())
	l.records = append(l.records, r)
	l.version++
	return r
}

// Update replaces all fields of the record with the given id, preserving
// the id. Unknown ids are a silent no-op; the bool is for logging only.
func (l *Ledger) Update(id int64, fields core.Record) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			fields.ID = id
			l.records[i] = fields
			l.version++
			return true
		}
	}
	return false
}

// Remove deletes the record with the given id. Unknown ids are a silent
// no-op, tolerating stale references such as double-click races.
func (l *Ledger) Remove(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			l.version++
			return true
		}
	}
	return false
}

// ReplaceAll swaps the entire store contents in one step. Imported
// records with missing or duplicate ids are reassigned so the id-unique
// invariant holds immediately after the swap.
func (l *Ledger) ReplaceAll(records []core.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := append([]core.Record(nil), records...)
	seen := make(map[int64]struct{}, len(next))
	var max int64
	for _, r := range next {
		if r.ID > max {
			max = r.ID
		}
	}
	for i := range next {
		id := next[i].ID
		if _, dup := seen[id]; id == 0 || dup {
			max++
			id = max
			next[i].ID = id
		}
		seen[id] = struct{}{}
	}

	l.records = next
	l.version++
}

// All returns a copy of the full current collection.
func (l *Ledger) All() []core.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Record(nil), l.records...)
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Version increments on every mutation. Derived-view caches key on it;
// correctness never depends on it.
func (l *Ledger) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

func (l *Ledger) uniqueIDLocked(candidate int64) int64 {
	var max int64
	taken := false
	for _, r := range l.records {
		if r.ID > max {
			max = r.ID
		}
		if r.ID == candidate {
			taken = true
		}
	}
	if candidate <= 0 || taken {
		return max + 1
	}
	return candidate
}
