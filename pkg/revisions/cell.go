package revisions

import (
	"context"
	"sync"
)

// Cell is a versioned variable. Every revision observes its own value: reads
// walk the ambient revision's segment chain to the nearest recorded write,
// and writes stay private to the writing revision until it is joined.
//
// The version map is sparse; it only holds entries for segments in which the
// cell was actually written. Entries are erased as those segments release or
// collapse, so a cell does not accumulate garbage across many joins.
type Cell[T any] struct {
	mu       sync.RWMutex
	versions map[int64]T
}

// NewCell creates a cell and records initial under the ambient revision of
// ctx. Pass the zero value for a cell without a meaningful starting state.
func NewCell[T any](ctx context.Context, initial T) *Cell[T] {
	c := &Cell[T]{versions: make(map[int64]T)}
	c.set(FromContext(ctx), initial)
	return c
}

// Get returns the value visible to the ambient revision: the entry recorded
// by the nearest segment on the current→parent chain that wrote this cell.
// It returns ErrNoVisibleValue if the chain holds no entry at all.
func (c *Cell[T]) Get(ctx context.Context) (T, error) {
	return c.get(FromContext(ctx))
}

// Set records value under the ambient revision's current segment.
func (c *Cell[T]) Set(ctx context.Context, value T) {
	c.set(FromContext(ctx), value)
}

func (c *Cell[T]) get(r *Revision) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for s := r.current; s != nil; s = s.parent {
		if v, ok := c.versions[s.version]; ok {
			return v, nil
		}
	}
	var zero T
	return zero, ErrNoVisibleValue
}

func (c *Cell[T]) set(r *Revision, value T) {
	c.mu.Lock()
	c.storeLocked(r.current, value)
	c.mu.Unlock()
}

// storeLocked records value under s, registering the cell in s's write set
// on the first write. The caller holds c.mu.
func (c *Cell[T]) storeLocked(s *segment, value T) {
	if _, ok := c.versions[s.version]; !ok {
		s.registerWrite(c)
	}
	c.versions[s.version] = value
}

// release erases the entry recorded under the releasing segment.
func (c *Cell[T]) release(s *segment) {
	c.mu.Lock()
	delete(c.versions, s.version)
	c.mu.Unlock()
	counters.entriesErased.Inc()
}

// collapse handles a parent segment that is about to be spliced out of the
// chain above main's current segment. If main's current segment has no entry
// of its own, the parent's value is carried forward first so reads from main
// keep resolving to the same value; the parent's entry is erased either way.
func (c *Cell[T]) collapse(main *Revision, parent *segment) {
	c.mu.Lock()
	if _, ok := c.versions[main.current.version]; !ok {
		c.storeLocked(main.current, c.versions[parent.version])
	}
	delete(c.versions, parent.version)
	c.mu.Unlock()
	counters.entriesErased.Inc()
}

// merge applies the joined branch's write to this cell, but only when join
// is the newest segment on the branch that wrote it. The guard makes the
// join's traversal order irrelevant: per cell, exactly one segment on the
// branch passes it, so the branch's last write wins.
func (c *Cell[T]) merge(main, joinee *Revision, join *segment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := joinee.current
	for s != nil {
		if _, ok := c.versions[s.version]; ok {
			break
		}
		s = s.parent
	}
	if s == join {
		c.storeLocked(main.current, c.versions[join.version])
		counters.mergesApplied.Inc()
	}
}
