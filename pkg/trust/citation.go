package trust

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCitation marks a precondition violation: the record never
// reaches rule evaluation. Callers can test for it with errors.Is.
var ErrInvalidCitation = errors.New("invalid citation")

// Citation is one source record subject to trust evaluation.
type Citation struct {
	Category         string `json:"category" yaml:"category"`
	URL              string `json:"url,omitempty" yaml:"url,omitempty"`
	Domain           string `json:"domain" yaml:"domain"`
	AgeDays          int    `json:"age_days" yaml:"ageDays"`
	TrustDescription string `json:"trust_description" yaml:"trustDescription"`
}

// Validate checks the scoring preconditions. A citation with an empty
// description is still scorable (it simply draws no content penalty),
// but domain and category are required and age cannot be negative.
func (c Citation) Validate() error {
	if strings.TrimSpace(c.Domain) == "" {
		return fmt.Errorf("%w: domain is required", ErrInvalidCitation)
	}
	if strings.TrimSpace(c.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidCitation)
	}
	if c.AgeDays < 0 {
		return fmt.Errorf("%w: age_days cannot be negative (%d)", ErrInvalidCitation, c.AgeDays)
	}
	return nil
}

// normalized returns a copy with the fields used in substring checks
// lowercased, so rule predicates never depend on input casing.
func (c Citation) normalized() Citation {
	c.Category = strings.ToLower(c.Category)
	c.Domain = strings.ToLower(strings.TrimSpace(c.Domain))
	c.TrustDescription = strings.ToLower(c.TrustDescription)
	return c
}
