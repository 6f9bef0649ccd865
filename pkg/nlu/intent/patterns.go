package intent

import "regexp"

// Tier 1: reference phrasings aimed at an already shown result list or the
// last discussed destination.
var (
	ordinalRe = regexp.MustCompile(`\b(?:first|1st|second|2nd|third|3rd|last)\s*(?:one|option|destination|place)?\b`)
	pronounRe = regexp.MustCompile(`\b(?:tell me (?:more )?about (?:it|that)|that one|this one|which one|any of (?:these|those|them))\b`)
)

// Tier 2: conversation boundaries. Greetings must anchor at the start of the
// utterance; farewells may appear anywhere.
var greetingPrefixes = []string{
	"hi", "hello", "hey", "namaste", "good morning", "good afternoon",
	"good evening", "greetings",
}

var farewellPhrases = []string{
	"bye", "goodbye", "see you", "thanks", "thank you", "that's all",
}

// Tier 3: destination-specific category queries.
var categoryPhrases = map[string][]string{
	"attractions": {
		"attractions", "things to do", "places to visit", "sightseeing",
		"what to see", "tourist spots",
	},
	"restaurants": {
		"restaurants", "where to eat", "places to eat", "food places",
		"local food", "cafes",
	},
	"accommodations": {
		"hotels", "where to stay", "accommodation", "accommodations",
		"resorts", "hostels", "homestay",
	},
	"weather": {
		"weather", "temperature", "climate", "rainfall", "forecast",
	},
	"safety": {
		"is it safe", "safety", "crime", "how safe", "dangerous",
	},
}

// categoryOrder fixes evaluation order inside tier 3.
var categoryOrder = []string{"attractions", "restaurants", "accommodations", "weather", "safety"}

// Tier 5/6: phrase sets.
var recommendationPhrases = []string{"recommend", "suggest", "recommendation", "suggestion"}

var moreInfoPhrases = []string{
	"tell me about", "more about", "what about", "details about",
	"information about", "know more",
}

var tripPlanningPhrases = []string{
	"plan", "itinerary", "trip plan", "schedule", "day wise", "day-wise",
}

var bookmarkPhrases = []string{
	"bookmark", "save this", "save it", "add to favorites", "shortlist",
	"wishlist",
}
