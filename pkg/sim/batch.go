package sim

import (
	"context"
	"runtime"

	"github.com/citelab/cvet/pkg/trust"
	"golang.org/x/sync/errgroup"
)

// Outcome is the batch-scoring result for a single citation.
// Err is set for records that failed validation; its siblings are
// unaffected.
type Outcome struct {
	Citation *trust.Citation `json:"citation" yaml:"citation"`
	Score    float64         `json:"score" yaml:"score"`
	Accepted bool            `json:"accepted" yaml:"accepted"`
	Err      string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// ScoreAll scores the given citations concurrently with at most
// workers goroutines. The engine is stateless so concurrent use is
// safe, and results keep input order. workers <= 0 uses NumCPU.
func ScoreAll(ctx context.Context, citations []*trust.Citation, threshold float64, workers int) ([]*Outcome, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if threshold == 0 {
		threshold = trust.DefaultThreshold
	}

	engine := trust.NewEngine()
	policy := trust.Policy{Threshold: threshold}
	outcomes := make([]*Outcome, len(citations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range citations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		g.Go(func() error {
			o := &Outcome{Citation: c}
			score, err := engine.Score(*c)
			if err != nil {
				o.Err = err.Error()
			} else {
				o.Score = round2(score)
				o.Accepted = policy.Decide(o.Score)
			}
			outcomes[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}
