package feature

import (
	"regexp"

	"github.com/pkarpov/linkguard/internal/model"
)

// structural signatures tested against the raw URL. The set is fixed; each
// match contributes its score to the pattern total.
type signature struct {
	id          string
	score       int
	description string
	re          *regexp.Regexp
}

var signatures = []signature{
	{
		id:          "fake_login_risky_tld",
		score:       10,
		description: "login page hosted on a risky TLD",
		re:          regexp.MustCompile(`(?i)(login|signin|sign-in|verify|secure|account)[^/]*\.(tk|ml|ga|cf|gq|xyz|top|buzz|click)(/|$|\?)`),
	},
	{
		id:          "ip_host_auth_keyword",
		score:       15,
		description: "raw IP host serving an authentication keyword",
		re:          regexp.MustCompile(`(?i)^[a-z]+://\d{1,3}(\.\d{1,3}){3}(:\d+)?/.*(login|signin|auth|password|bank|verify)`),
	},
	{
		id:          "brand_on_risky_tld",
		score:       12,
		description: "brand name combined with a risky TLD",
		re:          regexp.MustCompile(`(?i)(paypal|amazon|google|microsoft|apple|netflix|facebook|chase)[^/]*\.(tk|ml|ga|cf|gq|xyz|top|buzz|click)(/|$|\?)`),
	},
	{
		id:          "multi_subdomain_brand",
		score:       8,
		description: "brand buried under stacked subdomains",
		re:          regexp.MustCompile(`(?i)^[a-z]+://[a-z0-9-]*(paypal|amazon|google|microsoft|apple|netflix|facebook|chase)[a-z0-9-]*\.([a-z0-9-]+\.){2,}[a-z0-9-]+`),
	},
	{
		id:          "data_collection_page",
		score:       6,
		description: "page path asks for personal or card data",
		re:          regexp.MustCompile(`(?i)(card[-_]?(number|details|info)|cvv|ssn|social[-_]?security|personal[-_]?info)`),
	},
}

// MatchPatterns tests the raw URL against every structural signature and
// returns the matches in table order.
func MatchPatterns(raw string) []model.PatternMatch {
	var matches []model.PatternMatch
	for _, sig := range signatures {
		if sig.re.MatchString(raw) {
			matches = append(matches, model.PatternMatch{
				PatternID:   sig.id,
				Score:       sig.score,
				Description: sig.description,
			})
		}
	}
	return matches
}

// PatternScore sums the scores of all matched signatures.
func PatternScore(matches []model.PatternMatch) int {
	total := 0
	for _, m := range matches {
		total += m.Score
	}
	return total
}
