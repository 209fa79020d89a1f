// Package scenario provides named fork/join workloads over versioned cells,
// used by the CLI demo driver and the inspect server's run endpoint.
package scenario

import (
	"context"
	"fmt"
	"sort"

	"github.com/ryohji/concurrent-revisions/pkg/revisions"
)

// Result describes one scenario execution: the final cell values as seen by
// the driving revision, and the runtime counter deltas the run produced.
type Result struct {
	Name  string          `json:"name"`
	Cells map[string]int  `json:"cells"`
	Stats revisions.Stats `json:"stats"`
}

type scenarioFunc func(ctx context.Context) (map[string]int, error)

var scenarios = map[string]scenarioFunc{
	"mutual":     mutual,
	"lastwriter": lastWriter,
	"override":   override,
	"untouched":  untouched,
	"nested":     nested,
	"readonly":   readOnly,
}

// Names returns the available scenario names, sorted.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named scenario under the ambient revision of ctx. Each
// scenario checks its own postconditions and fails on any mismatch.
func Run(ctx context.Context, name string) (*Result, error) {
	fn, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", name)
	}

	before := revisions.ReadStats()
	cells, err := fn(ctx)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}

	return &Result{
		Name:  name,
		Cells: cells,
		Stats: revisions.ReadStats().Sub(before),
	}, nil
}

// expect reads a cell and fails unless it holds want.
func expect(ctx context.Context, c *revisions.Cell[int], name string, want int) (int, error) {
	got, err := c.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	if got != want {
		return 0, fmt.Errorf("%s: expected %d, got %d", name, want, got)
	}
	return got, nil
}

// mutual is the classic demonstration: each side writes its own cell only if
// the opposing cell still holds the pre-fork value. Under shared memory at
// most one write could survive; under revisions both do, because each branch
// keeps reading the fork-point snapshot.
func mutual(ctx context.Context) (map[string]int, error) {
	x := revisions.NewCell(ctx, 0)
	y := revisions.NewCell(ctx, 0)

	r := revisions.Fork(ctx, func(ctx context.Context) error {
		v, err := x.Get(ctx)
		if err != nil {
			return err
		}
		if v == 0 {
			y.Set(ctx, 1)
		}
		return nil
	})

	v, err := y.Get(ctx)
	if err != nil {
		return nil, err
	}
	if v == 0 {
		x.Set(ctx, 1)
	}

	if err := revisions.Join(ctx, r); err != nil {
		return nil, err
	}

	xv, err := expect(ctx, x, "x", 1)
	if err != nil {
		return nil, err
	}
	yv, err := expect(ctx, y, "y", 1)
	if err != nil {
		return nil, err
	}
	return map[string]int{"x": xv, "y": yv}, nil
}

// lastWriter shows last-writer-wins within a branch: of two writes in the
// forked branch, only the newer one survives the join.
func lastWriter(ctx context.Context) (map[string]int, error) {
	x := revisions.NewCell(ctx, 0)

	r := revisions.Fork(ctx, func(ctx context.Context) error {
		x.Set(ctx, 1)
		x.Set(ctx, 2)
		return nil
	})
	if err := revisions.Join(ctx, r); err != nil {
		return nil, err
	}

	xv, err := expect(ctx, x, "x", 2)
	if err != nil {
		return nil, err
	}
	return map[string]int{"x": xv}, nil
}

// override shows the joined branch overriding the joiner: when both sides
// wrote the same cell, the branch's value wins.
func override(ctx context.Context) (map[string]int, error) {
	x := revisions.NewCell(ctx, 0)

	r := revisions.Fork(ctx, func(ctx context.Context) error {
		x.Set(ctx, 7)
		return nil
	})
	x.Set(ctx, 3)
	if err := revisions.Join(ctx, r); err != nil {
		return nil, err
	}

	xv, err := expect(ctx, x, "x", 7)
	if err != nil {
		return nil, err
	}
	return map[string]int{"x": xv}, nil
}

// untouched shows that a join leaves cells alone that the branch never
// wrote: the joiner's own writes to them persist.
func untouched(ctx context.Context) (map[string]int, error) {
	x := revisions.NewCell(ctx, 5)
	y := revisions.NewCell(ctx, 9)

	r := revisions.Fork(ctx, func(ctx context.Context) error {
		y.Set(ctx, 1)
		return nil
	})
	x.Set(ctx, 6)
	if err := revisions.Join(ctx, r); err != nil {
		return nil, err
	}

	xv, err := expect(ctx, x, "x", 6)
	if err != nil {
		return nil, err
	}
	yv, err := expect(ctx, y, "y", 1)
	if err != nil {
		return nil, err
	}
	return map[string]int{"x": xv, "y": yv}, nil
}

// nested forks a branch that itself forks and joins a grandchild; the
// grandchild's write surfaces through both joins.
func nested(ctx context.Context) (map[string]int, error) {
	x := revisions.NewCell(ctx, 0)

	r1 := revisions.Fork(ctx, func(ctx context.Context) error {
		r2 := revisions.Fork(ctx, func(ctx context.Context) error {
			x.Set(ctx, 42)
			return nil
		})
		return revisions.Join(ctx, r2)
	})
	if err := revisions.Join(ctx, r1); err != nil {
		return nil, err
	}

	xv, err := expect(ctx, x, "x", 42)
	if err != nil {
		return nil, err
	}
	return map[string]int{"x": xv}, nil
}

// readOnly shows isolation on the read side: the branch observes the
// pre-fork value even while the joiner overwrites the cell, and the join
// leaves x, which the branch only read, at the joiner's value.
func readOnly(ctx context.Context) (map[string]int, error) {
	x := revisions.NewCell(ctx, 0)
	observed := revisions.NewCell(ctx, -1)

	r := revisions.Fork(ctx, func(ctx context.Context) error {
		v, err := x.Get(ctx)
		if err != nil {
			return err
		}
		observed.Set(ctx, v)
		return nil
	})
	x.Set(ctx, 99)
	if err := revisions.Join(ctx, r); err != nil {
		return nil, err
	}

	xv, err := expect(ctx, x, "x", 99)
	if err != nil {
		return nil, err
	}
	ov, err := expect(ctx, observed, "observed", 0)
	if err != nil {
		return nil, err
	}
	return map[string]int{"x": xv, "observed": ov}, nil
}
