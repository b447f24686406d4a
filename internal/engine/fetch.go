package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/mistinfo/internal/client"
	"github.com/dm/mistinfo/internal/model"
)

// Progress reports the outcome of one resource fetch.
type Progress struct {
	Kind    model.ResourceKind
	Err     error
	Elapsed time.Duration
}

// Options controls how FetchAll schedules the per-kind requests.
type Options struct {
	// Sequential fetches kinds one after another in canonical order instead
	// of issuing all requests concurrently.
	Sequential bool
	// Progress, if set, is called once per settled fetch. With the concurrent
	// strategy it is called from multiple goroutines.
	Progress func(Progress)
}

// FetchError tags an aggregation failure with the kind that caused it.
type FetchError struct {
	Kind model.ResourceKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FetchAll retrieves every resource kind from c and returns a complete
// snapshot. The first failure aborts the aggregation: FetchAll then returns
// a nil snapshot and a *FetchError, never a partially filled one.
func FetchAll(ctx context.Context, c client.MistClient, opts Options) (*model.Snapshot, error) {
	kinds := model.AllKinds()
	results := make([]model.Value, len(kinds))

	var err error
	if opts.Sequential {
		err = fetchSequential(ctx, c, kinds, results, opts.Progress)
	} else {
		err = fetchConcurrent(ctx, c, kinds, results, opts.Progress)
	}
	if err != nil {
		return nil, err
	}

	snap := model.NewSnapshot()
	for i, k := range kinds {
		if err := snap.Set(k, results[i]); err != nil {
			return nil, fmt.Errorf("FetchAll: %w", err)
		}
	}
	snap.FetchedAt = time.Now()
	return snap, nil
}

func fetchSequential(ctx context.Context, c client.MistClient, kinds []model.ResourceKind, results []model.Value, progress func(Progress)) error {
	for i, k := range kinds {
		v, err := fetchOne(ctx, c, k, progress)
		if err != nil {
			return err
		}
		results[i] = v
	}
	return nil
}

// fetchConcurrent issues one request per kind through an errgroup. Each
// goroutine owns its slot in results, so no locking is needed. The group
// context is cancelled on the first failure; siblings still in flight end
// early or finish and are discarded.
func fetchConcurrent(ctx context.Context, c client.MistClient, kinds []model.ResourceKind, results []model.Value, progress func(Progress)) error {
	g, gctx := errgroup.WithContext(ctx)

	for i, k := range kinds {
		i, k := i, k
		g.Go(func() error {
			v, err := fetchOne(gctx, c, k, progress)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	return g.Wait()
}

func fetchOne(ctx context.Context, c client.MistClient, k model.ResourceKind, progress func(Progress)) (model.Value, error) {
	start := time.Now()
	v, err := c.GetResource(ctx, k)
	if err != nil {
		err = &FetchError{Kind: k, Err: err}
	}
	if progress != nil {
		progress(Progress{Kind: k, Err: err, Elapsed: time.Since(start)})
	}
	return v, err
}
