// Package nlu holds the shared vocabulary of the language-understanding
// pipeline: intent names, decision sources, and the classification result
// exchanged between the engine and its callers.
package nlu

import "ai-travelmate-be/pkg/nlu/extract"

// Intent is the task-level classification of an utterance.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentFarewell       Intent = "farewell"
	IntentSearch         Intent = "search"
	IntentRecommendation Intent = "recommendation"
	IntentBudget         Intent = "budget"
	IntentDuration       Intent = "duration"
	IntentReference      Intent = "reference"
	IntentAttractions    Intent = "attractions"
	IntentRestaurants    Intent = "restaurants"
	IntentAccommodations Intent = "accommodations"
	IntentWeather        Intent = "weather"
	IntentSafety         Intent = "safety"
	IntentMoreInfo       Intent = "more_info"
	IntentTripPlanning   Intent = "trip_planning"
	IntentBookmark       Intent = "bookmark"
	IntentGeneral        Intent = "general"
	IntentInappropriate  Intent = "inappropriate"
)

// Valid reports whether the intent is one the pipeline can produce. Used to
// sanity-check answers coming back from the external classifier.
func (i Intent) Valid() bool {
	switch i {
	case IntentGreeting, IntentFarewell, IntentSearch, IntentRecommendation,
		IntentBudget, IntentDuration, IntentReference, IntentAttractions,
		IntentRestaurants, IntentAccommodations, IntentWeather, IntentSafety,
		IntentMoreInfo, IntentTripPlanning, IntentBookmark, IntentGeneral,
		IntentInappropriate:
		return true
	}
	return false
}

// Source identifies which pipeline stage produced a classification.
type Source string

const (
	SourceCache     Source = "cache"
	SourceReference Source = "reference"
	SourceLocation  Source = "location"
	SourceLearned   Source = "learned"
	SourceExternal  Source = "external"
	SourceFallback  Source = "fallback"
)

// Result is the outcome of classifying one utterance.
type Result struct {
	Message      string            `json:"message"`
	Entities     extract.EntityBag `json:"entities"`
	Intent       Intent            `json:"intent"`
	Confidence   float64           `json:"confidence"`
	IsSafe       bool              `json:"is_safe"`
	SafetyIssues []string          `json:"safety_issues,omitempty"`
	Source       Source            `json:"source"`
}
