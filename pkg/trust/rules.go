package trust

import "strings"

const (
	// BaseScore is the starting total before any penalty is applied.
	// Only subtraction occurs, so it is also the natural ceiling.
	BaseScore = 100.0

	agePenaltyRate    = 0.01
	keywordPenalty    = 20.0
	denylistPenalty   = 25.0
	commercialPenalty = 5.0
	biasPenalty       = 15.0
	conspiracyPenalty = 30.0
)

// Rule groups. Rules sharing a non-empty group are alternatives:
// the first match wins and the rest of the group is skipped.
const (
	groupDomain = "domain"
)

var (
	// suspiciousDomainKeywords flag questionable hosts by substring.
	suspiciousDomainKeywords = []string{
		"clickbait", "unknown", "truth", "expose", "secrets", "alert", "intel",
	}

	// domainDenylist lists known-bad hosts, matched exactly.
	domainDenylist = []string{
		"worldtruth.biz",
		"naturalhealthexpose.club",
		"healthsecrets.info",
		"medalertblog.xyz",
		"govfalseclaims.net",
		"uncoverthenews.click",
		"truthtimes.today",
		"breaking-health-news.co",
		"freedomvaccine.org",
		"globalintel.site",
	}

	trustedTLDs = []string{".edu", ".gov", ".int", ".org"}

	biasKeywords = []string{"biased", "satirical"}

	conspiracyKeywords = []string{
		"chemtrail", "microchip", "deep state", "global elite", "hoax",
		"banned by big pharma", "government doesn't want", "mind control",
	}
)

// Rule pairs a predicate over a citation with a score deduction.
// Match and Penalty receive a citation whose string fields are
// already lowercased.
type Rule struct {
	Name    string
	Group   string
	Match   func(c Citation) bool
	Penalty func(c Citation) float64
}

func flat(penalty float64) func(Citation) float64 {
	return func(Citation) float64 { return penalty }
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// DefaultRules returns the rule table in evaluation order.
//
// The domain group models the reference precedence: a suspicious
// keyword suppresses the commercial penalty, and trusted TLDs are
// exempt from it via a zero-penalty rule placed ahead of it. The
// denylist is deliberately outside the group so a denylisted host
// still pays its domain-group penalty on top.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "age",
			Match:   func(c Citation) bool { return c.AgeDays > 0 },
			Penalty: func(c Citation) float64 { return agePenaltyRate * float64(c.AgeDays) },
		},
		{
			Name:    "suspicious_keyword",
			Group:   groupDomain,
			Match:   func(c Citation) bool { return containsAny(c.Domain, suspiciousDomainKeywords) },
			Penalty: flat(keywordPenalty),
		},
		{
			Name:    "trusted_tld",
			Group:   groupDomain,
			Match:   func(c Citation) bool { return hasAnySuffix(c.Domain, trustedTLDs) },
			Penalty: flat(0),
		},
		{
			Name:  "commercial_domain",
			Group: groupDomain,
			Match: func(c Citation) bool {
				return strings.HasSuffix(c.Domain, ".com") && !strings.Contains(c.Category, "academic")
			},
			Penalty: flat(commercialPenalty),
		},
		{
			Name: "domain_denylist",
			Match: func(c Citation) bool {
				for _, d := range domainDenylist {
					if c.Domain == d {
						return true
					}
				}
				return false
			},
			Penalty: flat(denylistPenalty),
		},
		{
			Name:    "content_bias",
			Match:   func(c Citation) bool { return containsAny(c.TrustDescription, biasKeywords) },
			Penalty: flat(biasPenalty),
		},
		{
			Name:    "content_conspiracy",
			Match:   func(c Citation) bool { return containsAny(c.TrustDescription, conspiracyKeywords) },
			Penalty: flat(conspiracyPenalty),
		},
	}
}
