package revisions

import (
	"context"
	"testing"
)

func TestSegmentVersionsStrictlyIncrease(t *testing.T) {
	a := newSegment(nil)
	b := newSegment(a)
	c := newSegment(b)

	if !(a.version < b.version && b.version < c.version) {
		t.Errorf("expected increasing versions, got %d, %d, %d",
			a.version, b.version, c.version)
	}

	c.release() // frees c only; b and a keep their own creation references
}

func TestReleaseCascadeErasesCellEntries(t *testing.T) {
	root := NewRoot()
	ctx := WithRevision(context.Background(), root)

	c := NewCell(ctx, 1)

	c.mu.RLock()
	entries := len(c.versions)
	c.mu.RUnlock()
	if entries != 1 {
		t.Fatalf("expected 1 entry before close, got %d", entries)
	}

	if err := root.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	c.mu.RLock()
	entries = len(c.versions)
	c.mu.RUnlock()
	if entries != 0 {
		t.Errorf("expected entries erased by release cascade, got %d", entries)
	}
}

func TestReleaseBelowZeroPanics(t *testing.T) {
	s := newSegment(nil)
	s.release()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on negative refcount")
		}
	}()
	s.release()
}

// chainLength counts segments from s up to stop, exclusive.
func chainLength(s, stop *segment) int {
	n := 0
	for ; s != nil && s != stop; s = s.parent {
		n++
	}
	return n
}

func TestCollapseKeepsChainShort(t *testing.T) {
	root := NewRoot()
	t.Cleanup(func() { _ = root.Close() })
	ctx := WithRevision(context.Background(), root)

	x := NewCell(ctx, 0)

	// Without collapse each fork/join cycle would grow the chain by one
	// exhausted fork-point segment.
	for i := 0; i < 10; i++ {
		r := Fork(ctx, func(ctx context.Context) error {
			x.Set(ctx, i)
			return nil
		})
		if err := Join(ctx, r); err != nil {
			t.Fatalf("Join() failed on iteration %d: %v", i, err)
		}

		if n := chainLength(root.current, root.root); n != 1 {
			t.Fatalf("iteration %d: expected chain length 1 after collapse, got %d", i, n)
		}
		if v, _ := x.Get(ctx); v != i {
			t.Fatalf("iteration %d: expected x=%d, got %d", i, i, v)
		}
	}
}

func TestCollapseMigratesValuesForward(t *testing.T) {
	root := NewRoot()
	t.Cleanup(func() { _ = root.Close() })
	ctx := WithRevision(context.Background(), root)

	// x is written only before the fork point; the collapse after the join
	// must carry its value into the surviving segment.
	x := NewCell(ctx, 0)
	x.Set(ctx, 11)

	r := Fork(ctx, func(context.Context) error { return nil })
	if err := Join(ctx, r); err != nil {
		t.Fatalf("Join() failed: %v", err)
	}

	if v, err := x.Get(ctx); err != nil || v != 11 {
		t.Errorf("expected x=11 after collapse, got %d (err %v)", v, err)
	}

	// The migrated entry must live in the current segment now: reading
	// through a fresh fork still works after further collapses.
	r = Fork(ctx, func(context.Context) error { return nil })
	if err := Join(ctx, r); err != nil {
		t.Fatalf("second Join() failed: %v", err)
	}
	if v, _ := x.Get(ctx); v != 11 {
		t.Errorf("expected x=11 after second collapse, got %d", v)
	}
}

func TestCollapseStopsAtSharedSegment(t *testing.T) {
	root := NewRoot()
	t.Cleanup(func() { _ = root.Close() })
	ctx := WithRevision(context.Background(), root)

	x := NewCell(ctx, 0)

	// Hold one branch open across another branch's join: the shared fork
	// point is not exclusively owned, so the join's collapse must not
	// splice past it.
	release := make(chan struct{})
	long := Fork(ctx, func(ctx context.Context) error {
		<-release
		v, err := x.Get(ctx)
		if err != nil {
			return err
		}
		if v != 0 {
			t.Errorf("long branch observed %d, expected pre-fork 0", v)
		}
		return nil
	})

	short := Fork(ctx, func(ctx context.Context) error {
		x.Set(ctx, 1)
		return nil
	})
	if err := Join(ctx, short); err != nil {
		t.Fatalf("Join(short) failed: %v", err)
	}
	if v, _ := x.Get(ctx); v != 1 {
		t.Errorf("expected x=1 after short join, got %d", v)
	}

	close(release)
	if err := Join(ctx, long); err != nil {
		t.Fatalf("Join(long) failed: %v", err)
	}
}
