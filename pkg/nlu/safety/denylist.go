// Package safety screens utterances against a fixed denylist and supplies
// the remediation lines returned when a turn is terminated as inappropriate.
// The check is independent of the intent tiers and overrides every one of
// them; only the reference tier is evaluated before it so a short innocuous
// reply ("that one") can never be vetoed.
package safety

import (
	"regexp"
	"strings"
)

// Categories of unsafe content. Each maps to a fixed remediation message.
const (
	CategoryVulgar           = "vulgar"
	CategoryReligiousExtreme = "religious_extreme"
	CategoryHarmful          = "harmful"
	CategorySpam             = "spam"
)

// denylist maps category to the word-boundary-matched terms that trigger it.
// Membership is hand-tuned configuration.
var denylist = map[string][]string{
	CategoryVulgar: {
		"fuck", "fucking", "shit", "bitch", "asshole", "bastard",
	},
	CategoryReligiousExtreme: {
		"jihad", "crusade against", "infidel", "kafir", "heathen",
	},
	CategoryHarmful: {
		"smuggle", "drugs across", "weapons", "bomb", "kill someone",
		"human trafficking",
	},
	CategorySpam: {
		"buy now", "click here", "limited offer", "earn money fast",
		"work from home scheme",
	},
}

var categoryOrder = []string{
	CategoryVulgar, CategoryReligiousExtreme, CategoryHarmful, CategorySpam,
}

var termPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, terms := range denylist {
		for _, term := range terms {
			termPatterns[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		}
	}
}

// Screen returns every denylist category the text trips. An empty slice
// means the text is safe.
func Screen(text string) []string {
	lower := strings.ToLower(text)
	var issues []string
	for _, category := range categoryOrder {
		for _, term := range denylist[category] {
			if termPatterns[term].MatchString(lower) {
				issues = append(issues, category)
				break
			}
		}
	}
	return issues
}
