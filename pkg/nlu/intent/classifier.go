// Package intent classifies utterances into task-level intents. The local
// classifier is a fixed, ordered list of predicate rules evaluated first
// match wins; the remote classifier escalates to an LLM provider with a
// strict timeout and structured-output parsing.
package intent

import (
	"strings"

	"ai-travelmate-be/pkg/nlu"
	"ai-travelmate-be/pkg/nlu/extract"
)

// Tier names reported with each match.
const (
	TierReference = "reference"
	TierBoundary  = "conversation_boundary"
	TierCategory  = "category_query"
	TierFilter    = "filter_only"
	TierSearch    = "search"
	TierInfo      = "general_info"
	TierFallback  = "fallback"
)

// Match is the outcome of local classification.
type Match struct {
	Intent     nlu.Intent
	Confidence float64
	Tier       string
}

// Input carries everything one rule may inspect.
type Input struct {
	Text             string // lowercased, trimmed
	Entities         extract.EntityBag
	HasActiveResults bool
}

type rule struct {
	tier string
	eval func(Input) *Match
}

// Classifier evaluates its rules in declaration order and returns the first
// match. The rule list never backtracks; a tier that half-applies simply
// declines and lets the next tier try.
type Classifier struct {
	rules []rule
}

func NewClassifier() *Classifier {
	return &Classifier{rules: []rule{
		{tier: TierReference, eval: matchReference},
		{tier: TierBoundary, eval: matchBoundary},
		{tier: TierCategory, eval: matchCategory},
		{tier: TierFilter, eval: matchFilter},
		{tier: TierSearch, eval: matchSearch},
		{tier: TierInfo, eval: matchInfo},
	}}
}

// Classify runs the tier list over one utterance.
func (c *Classifier) Classify(text string, entities extract.EntityBag, hasActiveResults bool) Match {
	in := Input{
		Text:             strings.ToLower(strings.TrimSpace(text)),
		Entities:         entities,
		HasActiveResults: hasActiveResults,
	}
	for _, r := range c.rules {
		if m := r.eval(in); m != nil {
			return *m
		}
	}
	return Match{Intent: nlu.IntentGeneral, Confidence: 0.6, Tier: TierFallback}
}

// IsReference reports whether the text matches a tier-1 reference pattern.
// Exposed for the orchestrator's short-circuit step.
func IsReference(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	return ordinalRe.MatchString(lower) || pronounRe.MatchString(lower)
}

// DetectCategory reports the destination-aspect intent the text asks about,
// if any. Exposed for the orchestrator's location short-circuit, which pairs
// a category phrase with a named or recently discussed destination.
func DetectCategory(text string) (nlu.Intent, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, category := range categoryOrder {
		for _, phrase := range categoryPhrases[category] {
			if strings.Contains(lower, phrase) {
				return categoryIntent(category), true
			}
		}
	}
	return "", false
}

func matchReference(in Input) *Match {
	if !in.HasActiveResults {
		return nil
	}
	if ordinalRe.MatchString(in.Text) || pronounRe.MatchString(in.Text) {
		return &Match{Intent: nlu.IntentReference, Confidence: 0.95, Tier: TierReference}
	}
	return nil
}

func matchBoundary(in Input) *Match {
	for _, p := range greetingPrefixes {
		if in.Text == p || strings.HasPrefix(in.Text, p+" ") || strings.HasPrefix(in.Text, p+",") || strings.HasPrefix(in.Text, p+"!") {
			return &Match{Intent: nlu.IntentGreeting, Confidence: 0.95, Tier: TierBoundary}
		}
	}
	for _, p := range farewellPhrases {
		if strings.Contains(in.Text, p) {
			return &Match{Intent: nlu.IntentFarewell, Confidence: 0.9, Tier: TierBoundary}
		}
	}
	return nil
}

func matchCategory(in Input) *Match {
	for _, category := range categoryOrder {
		for _, phrase := range categoryPhrases[category] {
			if strings.Contains(in.Text, phrase) {
				return &Match{Intent: categoryIntent(category), Confidence: 0.9, Tier: TierCategory}
			}
		}
	}
	return nil
}

func categoryIntent(category string) nlu.Intent {
	switch category {
	case "attractions":
		return nlu.IntentAttractions
	case "restaurants":
		return nlu.IntentRestaurants
	case "accommodations":
		return nlu.IntentAccommodations
	case "weather":
		return nlu.IntentWeather
	case "safety":
		return nlu.IntentSafety
	}
	return nlu.IntentGeneral
}

// matchFilter classifies narrowing statements: a duration or budget stated
// without a search verb refines the active results instead of opening a new
// search.
func matchFilter(in Input) *Match {
	if extract.HasSearchVerb(in.Text) {
		return nil
	}
	if in.Entities.DurationDays > 0 {
		return &Match{Intent: nlu.IntentDuration, Confidence: 0.85, Tier: TierFilter}
	}
	if in.Entities.Budget != nil {
		return &Match{Intent: nlu.IntentBudget, Confidence: 0.85, Tier: TierFilter}
	}
	return nil
}

func matchSearch(in Input) *Match {
	hasTopic := len(in.Entities.Activities) > 0 || len(in.Entities.Locations) > 0 ||
		extract.HasSearchObject(in.Text)

	if extract.HasSearchVerb(in.Text) && hasTopic {
		if hasAny(in.Text, recommendationPhrases) {
			return &Match{Intent: nlu.IntentRecommendation, Confidence: 0.85, Tier: TierSearch}
		}
		return &Match{Intent: nlu.IntentSearch, Confidence: 0.85, Tier: TierSearch}
	}
	if hasAny(in.Text, recommendationPhrases) {
		return &Match{Intent: nlu.IntentRecommendation, Confidence: 0.85, Tier: TierSearch}
	}
	return nil
}

func matchInfo(in Input) *Match {
	if hasAny(in.Text, moreInfoPhrases) {
		return &Match{Intent: nlu.IntentMoreInfo, Confidence: 0.85, Tier: TierInfo}
	}
	if hasAny(in.Text, tripPlanningPhrases) {
		return &Match{Intent: nlu.IntentTripPlanning, Confidence: 0.85, Tier: TierInfo}
	}
	if hasAny(in.Text, bookmarkPhrases) {
		return &Match{Intent: nlu.IntentBookmark, Confidence: 0.85, Tier: TierInfo}
	}
	return nil
}

func hasAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
