// Package sim runs reproducible scoring episodes: a seeded sampler
// supplies citation records, the trust engine scores each one, and
// the policy turns scores into accept/reject decisions.
package sim

import (
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/citelab/cvet/pkg/trust"
)

// EpisodesDefault is the number of episodes run when unset.
const EpisodesDefault = 100

// Sampler supplies one citation per episode. Implementations must be
// deterministic with respect to the provided random source.
type Sampler interface {
	Sample(r *rand.Rand) (*trust.Citation, error)
}

// Options configure a simulation run. The seed makes record
// selection reproducible; the engine itself has no randomness.
type Options struct {
	Episodes  int     `json:"episodes" yaml:"episodes"`
	Seed      int64   `json:"seed" yaml:"seed"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// Episode is one (record, score, decision) tuple.
type Episode struct {
	Episode  int     `json:"episode" yaml:"episode"`
	URL      string  `json:"url,omitempty" yaml:"url,omitempty"`
	Domain   string  `json:"domain" yaml:"domain"`
	Category string  `json:"category" yaml:"category"`
	AgeDays  int     `json:"age_days" yaml:"ageDays"`
	Score    float64 `json:"score" yaml:"score"`
	Accepted bool    `json:"accepted" yaml:"accepted"`
}

// Result holds a completed run.
type Result struct {
	Seed      int64      `json:"seed" yaml:"seed"`
	Threshold float64    `json:"threshold" yaml:"threshold"`
	Episodes  []*Episode `json:"episodes" yaml:"episodes"`
	Accepted  int        `json:"accepted" yaml:"accepted"`
	Rejected  int        `json:"rejected" yaml:"rejected"`
	Errors    int        `json:"errors" yaml:"errors"`
	AvgScore  float64    `json:"avg_score" yaml:"avgScore"`
	MinScore  float64    `json:"min_score" yaml:"minScore"`
	MaxScore  float64    `json:"max_score" yaml:"maxScore"`
	Duration  string     `json:"duration" yaml:"duration"`
}

// Run executes opts.Episodes scoring episodes. A record that fails
// validation is logged and counted but never aborts the run; every
// other record is still evaluated.
func Run(src Sampler, opts Options) (*Result, error) {
	if src == nil {
		return nil, errors.New("sampler is required")
	}
	if opts.Episodes <= 0 {
		opts.Episodes = EpisodesDefault
	}
	if opts.Threshold == 0 {
		opts.Threshold = trust.DefaultThreshold
	}

	engine := trust.NewEngine()
	policy := trust.Policy{Threshold: opts.Threshold}
	rnd := rand.New(rand.NewSource(opts.Seed))

	start := time.Now()
	res := &Result{
		Seed:      opts.Seed,
		Threshold: opts.Threshold,
		Episodes:  make([]*Episode, 0, opts.Episodes),
		MinScore:  trust.BaseScore,
	}

	var total float64

	for i := 1; i <= opts.Episodes; i++ {
		c, err := src.Sample(rnd)
		if err != nil {
			return nil, err
		}

		score, err := engine.Score(*c)
		if err != nil {
			slog.Warn("skipping unscorable citation", "episode", i, "domain", c.Domain, "error", err)
			res.Errors++
			continue
		}

		score = round2(score)
		accepted := policy.Decide(score)

		res.Episodes = append(res.Episodes, &Episode{
			Episode:  i,
			URL:      c.URL,
			Domain:   c.Domain,
			Category: c.Category,
			AgeDays:  c.AgeDays,
			Score:    score,
			Accepted: accepted,
		})

		if accepted {
			res.Accepted++
		} else {
			res.Rejected++
		}

		total += score
		if score < res.MinScore {
			res.MinScore = score
		}
		if score > res.MaxScore {
			res.MaxScore = score
		}
	}

	if n := len(res.Episodes); n > 0 {
		res.AvgScore = round2(total / float64(n))
	} else {
		res.MinScore = 0
	}
	res.Duration = time.Since(start).String()

	slog.Info("simulation complete",
		"episodes", len(res.Episodes),
		"accepted", res.Accepted,
		"rejected", res.Rejected,
		"errors", res.Errors,
		"avg_score", res.AvgScore,
	)

	return res, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
