package convert

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/izvod-dev/izvod/internal/model"
)

// BatchItem is the per-file outcome of a batch run. Exactly one of Result
// and Err is meaningful.
type BatchItem struct {
	File   string
	Result Result
	Err    error
}

// Batch converts statements in parallel over a shared read-only
// specification collection. Each statement succeeds or fails independently;
// items come back in input order. Cancelling the context abandons
// conversions that have not started, while those in flight run to
// completion.
func (c *Converter) Batch(ctx context.Context, docs []Document, specs []model.Specification, workers int) (string, []BatchItem) {
	if workers < 1 {
		workers = 1
	}

	runID := uuid.NewString()
	items := make([]BatchItem, len(docs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i] = BatchItem{File: doc.Name, Err: err}
				return nil
			}
			res, err := c.Convert(ctx, doc, specs)
			items[i] = BatchItem{File: doc.Name, Result: res, Err: err}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines never return errors
	return runID, items
}
