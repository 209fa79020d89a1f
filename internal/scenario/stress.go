package scenario

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ryohji/concurrent-revisions/pkg/revisions"
)

// Stress runs every scenario iters times on each of workers concurrent
// tasks. Each worker drives its own root revision, so the workloads are
// fully independent; the returned stats describe the whole run. After all
// roots are closed the run must not have leaked segments.
func Stress(ctx context.Context, workers, iters int) (revisions.Stats, error) {
	before := revisions.ReadStats()

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			root := revisions.NewRoot()
			defer func() { _ = root.Close() }()

			wctx := revisions.WithRevision(ctx, root)
			for i := 0; i < iters; i++ {
				for _, name := range Names() {
					if _, err := Run(wctx, name); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return revisions.Stats{}, err
	}

	delta := revisions.ReadStats().Sub(before)
	if live := delta.LiveSegments(); live != 0 {
		return delta, fmt.Errorf("stress leaked %d segments", live)
	}
	return delta, nil
}
