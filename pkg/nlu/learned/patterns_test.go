package learned

import (
	"testing"

	"ai-travelmate-be/pkg/nlu"
)

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Show me BEACHES!!", "show me beaches"},
		{"  under   30k,  please ", "under 30k please"},
		{"plan-a-trip", "plan a trip"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLearnAndExactLookup(t *testing.T) {
	s := NewStore(10, DefaultThreshold)
	s.Learn("book a houseboat stay", nlu.IntentAccommodations)

	intent, score, ok := s.Lookup("Book a houseboat stay?")
	if !ok || intent != nlu.IntentAccommodations || score != 1.0 {
		t.Fatalf("Lookup = (%s, %.2f, %v), want exact accommodations hit", intent, score, ok)
	}
}

func TestFuzzyLookupThreshold(t *testing.T) {
	s := NewStore(10, 0.85)
	s.Learn("show me beach destinations please", nlu.IntentSearch)

	// One-character drift stays above the threshold.
	if intent, _, ok := s.Lookup("show me beach destination please"); !ok || intent != nlu.IntentSearch {
		t.Errorf("near-duplicate missed, got (%s, %v)", intent, ok)
	}
	// A different utterance stays below it.
	if _, _, ok := s.Lookup("what is the weather in goa"); ok {
		t.Error("dissimilar utterance matched a learned pattern")
	}
}

func TestCapacityEvictsColdest(t *testing.T) {
	s := NewStore(3, DefaultThreshold)
	s.Learn("quiet hill stations in the south", nlu.IntentSearch)
	s.Learn("houseboat rentals with breakfast", nlu.IntentAccommodations)
	s.Learn("street food tour of old delhi", nlu.IntentRestaurants)

	// Touch the oldest so the second pattern becomes the coldest.
	if _, _, ok := s.Lookup("quiet hill stations in the south"); !ok {
		t.Fatal("warm-up lookup missed")
	}
	s.Learn("snow trek dates for december", nlu.IntentTripPlanning)

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if _, _, ok := s.Lookup("houseboat rentals with breakfast"); ok {
		t.Error("coldest pattern survived eviction")
	}
	if _, _, ok := s.Lookup("quiet hill stations in the south"); !ok {
		t.Error("recently used pattern was evicted")
	}
}

func TestLearnOverwritesIntent(t *testing.T) {
	s := NewStore(10, DefaultThreshold)
	s.Learn("weekend getaway ideas", nlu.IntentGeneral)
	s.Learn("weekend getaway ideas", nlu.IntentRecommendation)

	intent, _, ok := s.Lookup("weekend getaway ideas")
	if !ok || intent != nlu.IntentRecommendation {
		t.Errorf("Lookup after correction = (%s, %v), want recommendation", intent, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1 after overwrite", s.Len())
	}
}

func TestForget(t *testing.T) {
	s := NewStore(10, DefaultThreshold)
	s.Learn("save this trip", nlu.IntentBookmark)
	s.Forget("Save this trip!")

	if _, _, ok := s.Lookup("save this trip"); ok {
		t.Error("forgotten pattern still matches")
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("abc", "abc"); got != 1.0 {
		t.Errorf("identical similarity = %.2f", got)
	}
	if got := Similarity("abc", "xyz"); got != 0.0 {
		t.Errorf("disjoint similarity = %.2f, want 0", got)
	}
	if got := Similarity("", "abc"); got != 0.0 {
		t.Errorf("empty similarity = %.2f, want 0", got)
	}
}
