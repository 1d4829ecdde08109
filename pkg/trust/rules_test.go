package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRule(t *testing.T, name string) Rule {
	t.Helper()
	for _, r := range DefaultRules() {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("rule %s not in default table", name)
	return Rule{}
}

func TestDefaultRules_Order(t *testing.T) {
	var names []string
	for _, r := range DefaultRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"age",
		"suspicious_keyword",
		"trusted_tld",
		"commercial_domain",
		"domain_denylist",
		"content_bias",
		"content_conspiracy",
	}, names)
}

func TestDefaultRules_DomainGroupMembers(t *testing.T) {
	grouped := 0
	for _, r := range DefaultRules() {
		if r.Group == groupDomain {
			grouped++
		}
	}
	// keyword, trusted TLD exemption, commercial
	assert.Equal(t, 3, grouped)
}

func TestAgeRule_Penalty(t *testing.T) {
	r := findRule(t, "age")
	c := Citation{AgeDays: 365}
	require.True(t, r.Match(c))
	assert.InDelta(t, 3.65, r.Penalty(c), 0.0001)

	assert.False(t, r.Match(Citation{AgeDays: 0}))
}

func TestSuspiciousKeywordRule(t *testing.T) {
	r := findRule(t, "suspicious_keyword")
	for _, d := range []string{
		"clickbait-news.com", "unknownsource.net", "exposedaily.co", "globalintel.site",
	} {
		assert.True(t, r.Match(Citation{Domain: d}), d)
	}
	assert.False(t, r.Match(Citation{Domain: "example.org"}))
	assert.InDelta(t, 20.0, r.Penalty(Citation{}), 0.0001)
}

func TestTrustedTLDRule(t *testing.T) {
	r := findRule(t, "trusted_tld")
	for _, d := range []string{"harvard.edu", "cdc.gov", "who.int", "wikipedia.org"} {
		assert.True(t, r.Match(Citation{Domain: d}), d)
	}
	assert.False(t, r.Match(Citation{Domain: "example.com"}))
	assert.Zero(t, r.Penalty(Citation{}))
}

func TestCommercialDomainRule(t *testing.T) {
	r := findRule(t, "commercial_domain")
	assert.True(t, r.Match(Citation{Domain: "example.com", Category: "news outlet"}))
	assert.False(t, r.Match(Citation{Domain: "example.com", Category: "academic research"}))
	assert.False(t, r.Match(Citation{Domain: "example.net", Category: "news outlet"}))
}

func TestDenylistRule_ExactMatchOnly(t *testing.T) {
	r := findRule(t, "domain_denylist")
	assert.True(t, r.Match(Citation{Domain: "freedomvaccine.org"}))
	// substring of a denylisted host is not a match
	assert.False(t, r.Match(Citation{Domain: "sub.freedomvaccine.org"}))
	assert.InDelta(t, 25.0, r.Penalty(Citation{}), 0.0001)
}

func TestContentRules(t *testing.T) {
	bias := findRule(t, "content_bias")
	assert.True(t, bias.Match(Citation{TrustDescription: "somewhat biased"}))
	assert.True(t, bias.Match(Citation{TrustDescription: "satirical site"}))
	assert.False(t, bias.Match(Citation{TrustDescription: "reliable"}))

	consp := findRule(t, "content_conspiracy")
	assert.True(t, consp.Match(Citation{TrustDescription: "mind control claims"}))
	assert.True(t, consp.Match(Citation{TrustDescription: "pushed by global elites"}))
	assert.False(t, consp.Match(Citation{TrustDescription: "peer reviewed"}))
}
