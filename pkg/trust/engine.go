// Package trust implements the deterministic citation trust scoring
// model: an ordered penalty rule table evaluated against a base score
// of 100, and the threshold policy that turns scores into decisions.
package trust

import (
	"fmt"
	"log/slog"
)

// ModelVersion is the current scoring model version.
const ModelVersion = "1.0.0"

// Engine scores citations against an ordered rule table. The engine
// holds no mutable state, so a single instance is safe for concurrent
// use across goroutines.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine backed by the default rule table.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// NewEngineWithRules returns an engine with a custom rule table,
// evaluated in the given order.
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Score computes the trust score in [0, 100] for a citation.
// Identical input always yields identical output. The only error
// condition is a precondition violation (ErrInvalidCitation); a
// well-formed citation never fails, however low it scores.
func (e *Engine) Score(c Citation) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	n := c.normalized()
	score := BaseScore
	matched := make(map[string]bool, 1)

	for _, r := range e.rules {
		if r.Group != "" && matched[r.Group] {
			continue
		}
		if !r.Match(n) {
			continue
		}
		if r.Group != "" {
			matched[r.Group] = true
		}

		p := r.Penalty(n)
		score -= p
		slog.Debug(fmt.Sprintf("rule %s: -%.2f (total=%.2f)", r.Name, p, score))
	}

	// Only penalties are subtracted from the base, so the floor is
	// the sole clamp needed.
	if score < 0 {
		score = 0
	}

	return score, nil
}
