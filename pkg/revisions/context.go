package revisions

import (
	"context"
	"sync"
)

// ctxKey is the context key under which a task's ambient revision travels.
type ctxKey struct{}

var (
	mainOnce sync.Once
	mainRev  *Revision
)

// Main returns the process main revision, creating it on first use. It backs
// any context that carries no revision of its own and is intentionally
// pinned for the lifetime of the process; it is never closed.
func Main() *Revision {
	mainOnce.Do(func() {
		mainRev = newRootRevision()
		logger.Debug().Int64("current", mainRev.current.version).Msg("main revision created")
	})
	return mainRev
}

// WithRevision returns a context whose ambient revision is r. Fork uses this
// to hand the child revision to the spawned task before the action runs;
// tasks driving their own workload pair it with NewRoot.
func WithRevision(ctx context.Context, r *Revision) context.Context {
	return context.WithValue(ctx, ctxKey{}, r)
}

// FromContext returns the ambient revision of ctx, falling back to the
// process main revision when ctx carries none.
func FromContext(ctx context.Context) *Revision {
	if r, ok := ctx.Value(ctxKey{}).(*Revision); ok {
		return r
	}
	return Main()
}
