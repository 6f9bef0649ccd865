package extract

// Known destination names. Lookup is case-insensitive and longest match
// wins, so multi-word names shadow their parts.
var defaultLocations = []string{
	"goa", "manali", "shimla", "kerala", "jaipur", "udaipur", "ladakh",
	"kashmir", "delhi", "mumbai", "rishikesh", "varanasi", "darjeeling",
	"ooty", "coorg", "hampi",
}

// Activity tag families keyed by canonical tag.
var activityKeywords = map[string][]string{
	"beach":      {"beach", "beaches", "coastal", "sea", "seaside", "ocean", "island"},
	"mountain":   {"mountain", "mountains", "hill", "hills", "himalayan", "valley", "peak"},
	"adventure":  {"adventure", "trekking", "trek", "hiking", "rafting", "paragliding", "camping"},
	"spiritual":  {"spiritual", "temple", "temples", "pilgrimage", "ashram", "meditation", "religious"},
	"cultural":   {"cultural", "culture", "heritage", "historical", "history", "fort", "palace", "monument"},
	"wildlife":   {"wildlife", "safari", "jungle", "forest", "sanctuary", "tiger", "elephant"},
	"relaxation": {"relaxation", "relax", "peaceful", "calm", "quiet", "spa", "wellness"},
	"food":       {"food", "cuisine", "culinary", "street food", "restaurants"},
	"waterfall":  {"waterfall", "waterfalls", "falls"},
	"lake":       {"lake", "lakes", "backwaters", "houseboat"},
}

// activityTagOrder fixes iteration order where ties must break the same way
// on every call.
var activityTagOrder = []string{
	"beach", "mountain", "adventure", "spiritual", "cultural",
	"wildlife", "relaxation", "food", "waterfall", "lake",
}

// Budget vocabulary mapped to fixed ranges (rupees).
var budgetKeywords = map[string][2]int{
	"cheap":      {0, 20000},
	"budget":     {0, 25000},
	"affordable": {20000, 50000},
	"expensive":  {50000, 100000},
	"luxury":     {100000, 250000},
}

var budgetKeywordOrder = []string{"cheap", "budget", "affordable", "expensive", "luxury"}

// Qualifier words deciding the budget bound type.
var (
	maxQualifiers = []string{"under", "below", "within", "up to", "max", "maximum", "less than", "at most"}
	minQualifiers = []string{"above", "over", "at least", "min", "minimum", "more than"}
)

// Verbs that make an utterance an explicit search request.
var searchVerbs = []string{
	"show", "find", "search", "suggest", "recommend", "looking for", "want to visit",
	"want to go", "places for", "destinations for",
}

// Nouns that name the object of a search ("beach destinations", "hill places").
var searchObjects = []string{"destination", "destinations", "place", "places", "spot", "spots", "getaway", "getaways"}

var weatherPreferences = map[string][]string{
	"cold":     {"cold", "snow", "snowy", "cool", "chilly"},
	"hot":      {"hot", "warm", "sunny", "tropical"},
	"pleasant": {"pleasant", "moderate", "mild"},
}

var weatherPreferenceOrder = []string{"cold", "hot", "pleasant"}

var timeFrames = []string{
	"summer", "winter", "monsoon", "spring",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"this week", "next week", "this month", "next month",
}
