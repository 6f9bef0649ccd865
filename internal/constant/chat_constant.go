package constant

// Canned reply lines for intents that never touch the catalog.
const (
	GreetingReply = "Hi! I'm your travel buddy. Tell me what kind of trip you're dreaming of — beaches, mountains, a budget, anything."

	FarewellReply = "Safe travels! Come back whenever you're planning your next trip."

	GeneralChatReply = "I'm best at helping you find places to travel. Try asking for beach destinations, mountain getaways, or trips under a budget."

	NoResultsReply = "I couldn't find destinations matching all of that. Want to loosen the budget or try a different vibe?"

	RelaxedResultsReply = "Nothing matched exactly, so I widened the search a little. Here's what's close:"

	ReferenceMissReply = "I'm not sure which place you mean. Here are the ones we were looking at:"

	TopicConfirmReply = "Sounds like you might be after something different now. Want to keep refining the current list, or start a fresh search?"

	WeatherUnavailableReply = "I couldn't fetch live weather right now, but here's everything else about the place."
)

// Suggestion chips shown under each response type. Static sets, the
// frontend renders them as one-tap quick replies.
var (
	SuggestionsAfterSearch = []string{
		"Under 30000 budget",
		"Tell me about the first one",
		"Something less crowded",
	}

	SuggestionsAfterRefinement = []string{
		"Tell me about the first one",
		"Shorter trip",
		"Start a new search",
	}

	SuggestionsAfterDetail = []string{
		"How's the weather there?",
		"Show similar places",
		"Back to the list",
	}

	SuggestionsAfterGreeting = []string{
		"Show me beach destinations",
		"Mountain trips under 20000",
		"Weekend getaways",
	}

	SuggestionsAfterTopicConfirm = []string{
		"Keep refining",
		"Start fresh",
	}
)
