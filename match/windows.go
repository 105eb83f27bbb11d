package match

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// walkWindows drives a scanner over every window size from the longest
// possible down to minLen, feeding each equal pair through the running
// overlap filter.
//
// Longest first means a window is only ever blocked by a longer (or equally
// long, earlier discovered) match, so the running output already follows the
// resolver's policy and covered regions can be skipped by shorter windows.
func walkWindows(ctx context.Context, scanner windowScanner, a, b []rune, minLen, workers int, logger *slog.Logger) ([]Match, error) {
	occ := newOccupancy(len(a), len(b))
	maxLen := min(len(a), len(b))

	if workers <= 1 {
		for w := maxLen; w >= minLen; w-- {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			before := len(occ.accepted)
			scanner.scanWindow(a, b, w, occ.snapshot(), func(posA, posB int) bool {
				return occ.tryAccept(a, posA, posB, w)
			})
			logWindow(logger, w, len(occ.accepted)-before)
		}
		return occ.accepted, nil
	}

	// Parallel: scan a batch of window sizes against the same snapshot, then
	// merge the batch longest first. The merge applies the exact filter the
	// sequential walk applies, so both produce the same output.
	for hi := maxLen; hi >= minLen; hi -= workers {
		lo := max(minLen, hi-workers+1)
		cov := occ.snapshot()
		batch := make([][][2]int, hi-lo+1)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for w := hi; w >= lo; w-- {
			w := w // per-iteration copy; go directive is below 1.22
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				var pairs [][2]int
				scanner.scanWindow(a, b, w, cov, func(posA, posB int) bool {
					pairs = append(pairs, [2]int{posA, posB})
					return false
				})
				batch[hi-w] = pairs
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for i, pairs := range batch {
			w := hi - i
			before := len(occ.accepted)
			for _, p := range pairs {
				occ.tryAccept(a, p[0], p[1], w)
			}
			logWindow(logger, w, len(occ.accepted)-before)
		}
	}
	return occ.accepted, nil
}

func logWindow(logger *slog.Logger, w, accepted int) {
	if accepted > 0 {
		logger.Debug("window accepted matches", "window", w, "accepted", accepted)
	}
}
