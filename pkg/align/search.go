package align

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Trial is the outcome of aligning with one path as primary.
type Trial struct {
	Primary    int
	Duplicates int
	Profile    Profile
}

// SearchMinimizingReplications builds one profile per input, each with a
// different primary, and returns the trial with the fewest duplicate
// entries. Ties go to the lowest primary index. At most workers trials run
// at once; workers <= 0 means GOMAXPROCS.
//
// Every trial reads the shared inputs and writes only its own profile. The
// minimum is taken after all trials finish. An empty input list yields a
// trial with Primary -1 and no profile.
func SearchMinimizingReplications(ctx context.Context, inputs []Input, workers int) (Trial, error) {
	if len(inputs) == 0 {
		return Trial{Primary: -1}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trials := make([]Trial, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := GenerateProfile(inputs, i)
			trials[i] = Trial{Primary: i, Duplicates: p.Duplicates(), Profile: p}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Trial{Primary: -1}, err
	}

	best := trials[0]
	for _, t := range trials[1:] {
		if t.Duplicates < best.Duplicates {
			best = t
		}
	}
	return best, nil
}
