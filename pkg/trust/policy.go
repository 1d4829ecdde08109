package trust

// DefaultThreshold is the acceptance cutoff used when the caller
// does not configure one.
const DefaultThreshold = 60.0

// Policy decides whether a scored citation is accepted. The zero
// value is not useful; construct with NewPolicy or set Threshold.
type Policy struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// NewPolicy returns a policy with the default acceptance threshold.
func NewPolicy() Policy {
	return Policy{Threshold: DefaultThreshold}
}

// Decide accepts iff score >= threshold. A score exactly at the
// threshold is accepted.
func (p Policy) Decide(score float64) bool {
	return score >= p.Threshold
}
