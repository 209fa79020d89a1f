package revisions

import (
	"sync"

	"go.uber.org/atomic"
)

// versionCounter issues process-wide unique segment versions. Versions are
// strictly increasing; they are used as map keys, never compared for order.
var versionCounter atomic.Int64

// cellHandle is the capability set a segment needs from a cell. Segments are
// oblivious to element types; they drive release, collapse and merge through
// this interface.
type cellHandle interface {
	release(s *segment)
	collapse(main *Revision, parent *segment)
	merge(main, joinee *Revision, join *segment)
}

// segment is a node in the version DAG. It records which cells were written
// while it was the current segment of some revision. A segment is referenced
// once per child segment naming it as parent, once per revision naming it as
// current and once per revision naming it as root.
type segment struct {
	parent  *segment
	version int64
	refs    atomic.Int32

	mu      sync.Mutex
	written map[cellHandle]struct{}
}

func newSegment(parent *segment) *segment {
	s := &segment{
		parent:  parent,
		version: versionCounter.Inc(),
		written: make(map[cellHandle]struct{}),
	}
	s.refs.Store(1)
	if parent != nil {
		parent.retain()
	}
	counters.segmentsCreated.Inc()
	return s
}

func (s *segment) retain() {
	s.refs.Inc()
}

// release drops one reference. At zero the segment erases its entry from
// every cell it wrote, then cascades to its parent.
func (s *segment) release() {
	n := s.refs.Dec()
	if n < 0 {
		panic("revisions: segment refcount went negative")
	}
	if n > 0 {
		return
	}
	for _, c := range s.writtenCells() {
		c.release(s)
	}
	counters.segmentsFreed.Inc()
	logger.Debug().Int64("version", s.version).Msg("segment released")
	if s.parent != nil {
		s.parent.release()
	}
}

// registerWrite records that c now holds an entry keyed by this segment's
// version. The write set is a set: a cell registers once per segment.
func (s *segment) registerWrite(c cellHandle) {
	s.mu.Lock()
	s.written[c] = struct{}{}
	s.mu.Unlock()
}

// writtenCells snapshots the write set so callers can invoke cell hooks
// without holding the segment lock. Hook order is unspecified.
func (s *segment) writtenCells() []cellHandle {
	s.mu.Lock()
	cells := make([]cellHandle, 0, len(s.written))
	for c := range s.written {
		cells = append(cells, c)
	}
	s.mu.Unlock()
	return cells
}

// collapse compresses the chain above main's current segment after a join.
// Parents that are exclusively owned and are not main's root are spliced out
// once their cell entries have been migrated forward or discarded. Collapse
// is an optimization: reads observe the same values with or without it.
func (s *segment) collapse(main *Revision) {
	for s.parent != nil && s.parent != main.root && s.parent.refs.Load() == 1 {
		p := s.parent
		for _, c := range p.writtenCells() {
			c.collapse(main, p)
		}
		// p's reference on its own parent transfers to s with the splice;
		// p itself is unreachable afterwards and left to the collector.
		s.parent = p.parent
		counters.collapses.Inc()
		counters.segmentsFreed.Inc()
		logger.Debug().Int64("version", p.version).Msg("segment collapsed")
	}
}
