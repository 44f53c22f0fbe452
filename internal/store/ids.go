package store

import (
	"sync/atomic"
	"time"
)

// IDSource hands out candidate record ids. The ledger still guards
// uniqueness itself, so a source only needs to be collision-unlikely.
type IDSource interface {
	Next() int64
}

// ClockIDSource issues ids from the wall clock in milliseconds, matching
// the snapshot format produced by earlier versions of the tracker.
type ClockIDSource struct{}

func (ClockIDSource) Next() int64 {
	return time.Now().UnixMilli()
}

// SequenceIDSource issues deterministic incrementing ids, for tests.
type SequenceIDSource struct {
	n atomic.Int64
}

// NewSequenceIDSource starts a sequence at start.
func NewSequenceIDSource(start int64) *SequenceIDSource {
	s := &SequenceIDSource{}
	s.n.Store(start - 1)
	return s
}

func (s *SequenceIDSource) Next() int64 {
	return s.n.Add(1)
}
