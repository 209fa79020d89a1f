// Package revisions implements concurrent revisions: fork/join parallelism
// over shared versioned cells with deterministic merging. A forked task runs
// against what behaves like a private copy of every cell; on join its writes
// overwrite the joiner's values, last-writer-wins within the joined branch.
package revisions

import (
	"context"
	"fmt"
	"sync"

	"github.com/ryohji/concurrent-revisions/internal/libs/obs"
)

var logger = obs.Logger("revisions")

// Action is a computation executed in its own revision. Inputs and outputs
// travel through cells captured by the closure; the context carries the
// revision the action runs in.
type Action func(ctx context.Context) error

// Revision is a logical branch of execution. All reads and writes performed
// by the task executing a revision go through its current segment; root
// marks the segment that was current in the parent at the instant of fork.
//
// A revision is owned by a single task. Fork and cell operations on the same
// revision must not be issued from two tasks at once.
type Revision struct {
	root    *segment
	current *segment

	// done is closed when the forked action returns; nil for root revisions.
	// err holds the action's outcome and is published before done closes.
	done chan struct{}
	err  error

	mu     sync.Mutex
	closed bool
}

// newRootRevision builds a revision on a fresh parentless segment. The root
// segment's initial reference is its role as the revision's root; the
// current segment's is its role as the revision's current.
func newRootRevision() *Revision {
	root := newSegment(nil)
	return &Revision{root: root, current: newSegment(root)}
}

// NewRoot creates an independent root revision for a task that is not itself
// a forked branch, such as a worker goroutine driving its own fork/join
// workload. Close it when done to release its segments.
func NewRoot() *Revision {
	return newRootRevision()
}

// Close releases a root revision's segments. The revision must not be used
// afterwards. Forked revisions are finished with Join, not Close.
func (r *Revision) Close() error {
	if r.done != nil {
		return ErrNotRoot
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.current.release()
	r.root.release()
	return nil
}

// Fork starts action on a new task in a revision branched off the ambient
// revision of ctx. The child observes every value visible at the fork point
// and none of the parent's later writes; the parent continues immediately.
func Fork(ctx context.Context, action Action) *Revision {
	return FromContext(ctx).fork(ctx, action)
}

func (p *Revision) fork(ctx context.Context, action Action) *Revision {
	c := p.current
	r := &Revision{
		root:    c,
		current: newSegment(c),
		done:    make(chan struct{}),
	}
	c.retain() // r now counts c as its root

	// Both fresh segments already reference c as their parent, so replacing
	// p's current cannot drop c to zero here. Keep this ordering.
	next := newSegment(c)
	c.release()
	p.current = next

	counters.forks.Inc()
	logger.Debug().
		Int64("at", c.version).
		Int64("child", r.current.version).
		Int64("parent_next", next.version).
		Msg("fork")

	go r.run(ctx, action)
	return r
}

// run executes the forked action with r installed as the ambient revision of
// the task. Panics are recovered and recorded so Join can surface them.
func (r *Revision) run(ctx context.Context, action Action) {
	defer close(r.done)
	defer func() {
		if p := recover(); p != nil {
			r.err = fmt.Errorf("revisions: action panicked: %v", p)
		}
	}()
	r.err = action(WithRevision(ctx, r))
}

// Join waits for r's task, merges the branch's surviving writes into the
// ambient revision of ctx and collapses the chain above it. It returns the
// action's error, if any; merging happens regardless, since a failed
// action's completed writes are still well-formed.
//
// There is no cancellation: Join waits for the branch indefinitely. A
// revision may be joined at most once, and only revisions produced by Fork
// are joinable.
func Join(ctx context.Context, r *Revision) error {
	return FromContext(ctx).join(r)
}

func (main *Revision) join(r *Revision) error {
	if r.done == nil {
		return ErrNotJoinable
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrAlreadyJoined
	}
	r.closed = true
	r.mu.Unlock()

	<-r.done

	for s := r.current; s != r.root; s = s.parent {
		for _, c := range s.writtenCells() {
			c.merge(main, r, s)
		}
	}
	r.current.release()
	r.root.release()
	main.current.collapse(main)

	counters.joins.Inc()
	logger.Debug().
		Int64("joined", r.current.version).
		Int64("into", main.current.version).
		Msg("join")
	return r.err
}
