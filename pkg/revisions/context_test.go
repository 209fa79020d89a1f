package revisions

import (
	"context"
	"testing"
)

func TestFromContextFallsBackToMain(t *testing.T) {
	ctx := context.Background()

	r := FromContext(ctx)
	if r != Main() {
		t.Error("expected fallback to the process main revision")
	}
	if FromContext(ctx) != r {
		t.Error("expected the same main revision on every lookup")
	}
}

func TestWithRevisionInstallsAmbientRevision(t *testing.T) {
	root := NewRoot()
	t.Cleanup(func() { _ = root.Close() })

	ctx := WithRevision(context.Background(), root)
	if FromContext(ctx) != root {
		t.Error("expected the installed revision")
	}
}

func TestForkHandsChildRevisionToAction(t *testing.T) {
	ctx := newTestRoot(t)

	seen := make(chan *Revision, 1)
	r := Fork(ctx, func(ctx context.Context) error {
		seen <- FromContext(ctx)
		return nil
	})
	if err := Join(ctx, r); err != nil {
		t.Fatalf("Join() failed: %v", err)
	}

	if got := <-seen; got != r {
		t.Error("action should run with the forked revision as its ambient revision")
	}
}

func TestRootCloseLeavesNoLiveSegments(t *testing.T) {
	before := ReadStats()

	root := NewRoot()
	ctx := WithRevision(context.Background(), root)

	x := NewCell(ctx, 0)
	for i := 0; i < 5; i++ {
		r := Fork(ctx, func(ctx context.Context) error {
			x.Set(ctx, i)
			return nil
		})
		if err := Join(ctx, r); err != nil {
			t.Fatalf("Join() failed: %v", err)
		}
	}
	if err := root.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	delta := ReadStats().Sub(before)
	if live := delta.LiveSegments(); live != 0 {
		t.Errorf("expected no live segments after close, got %d", live)
	}
	if delta.Forks != 5 || delta.Joins != 5 {
		t.Errorf("expected 5 forks and joins, got %d and %d", delta.Forks, delta.Joins)
	}
}
