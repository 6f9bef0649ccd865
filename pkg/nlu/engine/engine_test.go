package engine

import (
	"context"
	"io"
	"log"
	"testing"

	"ai-travelmate-be/pkg/nlu"
	"ai-travelmate-be/pkg/nlu/extract"
	"ai-travelmate-be/pkg/nlu/learned"
	"ai-travelmate-be/pkg/store"

	"github.com/google/uuid"
)

func newTestEngine(cache ResultCache) *Engine {
	logger := log.New(io.Discard, "", 0)
	patterns := learned.NewStore(learned.DefaultCapacity, learned.DefaultThreshold)
	return New(extract.NewExtractor(), nil, patterns, cache, logger)
}

func contextWithResults(n int) *store.Context {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	ctx := store.NewContext()
	ctx.UpdateActiveSearch("beach destinations", ids, nil)
	return ctx
}

func TestProcessSearchUtterance(t *testing.T) {
	e := newTestEngine(nil)

	result := e.Process(context.Background(), "Show me beach destinations", store.NewContext())
	if result.Intent != nlu.IntentSearch {
		t.Errorf("intent = %s, want search", result.Intent)
	}
	if result.Entities.PrimaryActivity != "beach" || result.Entities.FilterMode != extract.FilterStrict {
		t.Errorf("primary activity = (%s, %s), want (beach, strict)",
			result.Entities.PrimaryActivity, result.Entities.FilterMode)
	}
	if !result.IsSafe || result.Source != nlu.SourceFallback {
		t.Errorf("safe/source = (%v, %s), want (true, fallback)", result.IsSafe, result.Source)
	}
}

func TestProcessReferenceShortCircuit(t *testing.T) {
	e := newTestEngine(nil)
	sctx := contextWithResults(3)

	result := e.Process(context.Background(), "tell me about the first one", sctx)
	if result.Intent != nlu.IntentReference || result.Source != nlu.SourceReference {
		t.Errorf("got (%s, %s), want (reference, reference)", result.Intent, result.Source)
	}
	if result.Confidence != 0.95 {
		t.Errorf("confidence = %.2f, want 0.95", result.Confidence)
	}
}

func TestProcessReferenceRequiresActiveResults(t *testing.T) {
	e := newTestEngine(nil)

	result := e.Process(context.Background(), "tell me about the first one", store.NewContext())
	if result.Intent == nlu.IntentReference {
		t.Error("reference fired without active results")
	}
}

func TestDenylistOverridesTiers(t *testing.T) {
	e := newTestEngine(nil)

	result := e.Process(context.Background(), "show me fucking beach destinations", store.NewContext())
	if result.Intent != nlu.IntentInappropriate {
		t.Fatalf("intent = %s, want inappropriate", result.Intent)
	}
	if result.IsSafe || len(result.SafetyIssues) == 0 {
		t.Errorf("safety = (%v, %v), want flagged", result.IsSafe, result.SafetyIssues)
	}
}

func TestDenylistNeverShadowsReference(t *testing.T) {
	e := newTestEngine(nil)
	sctx := contextWithResults(2)

	// A reference reply containing a denylisted term still resolves as a
	// reference; tier 1 runs before the screen.
	result := e.Process(context.Background(), "the first one, you bastard", sctx)
	if result.Intent != nlu.IntentReference {
		t.Errorf("intent = %s, want reference", result.Intent)
	}
}

func TestLocationShortCircuit(t *testing.T) {
	e := newTestEngine(nil)

	result := e.Process(context.Background(), "restaurants in goa", store.NewContext())
	if result.Intent != nlu.IntentRestaurants || result.Source != nlu.SourceLocation {
		t.Errorf("got (%s, %s), want (restaurants, location)", result.Intent, result.Source)
	}
}

func TestImplicitLocationFromLastDiscussed(t *testing.T) {
	e := newTestEngine(nil)
	sctx := store.NewContext()
	sctx.UpdateLocation(uuid.New(), "Manali", store.InteractionDiscussed)

	result := e.Process(context.Background(), "where to eat", sctx)
	if result.Intent != nlu.IntentRestaurants || result.Source != nlu.SourceLocation {
		t.Errorf("got (%s, %s), want (restaurants, location)", result.Intent, result.Source)
	}
}

func TestLearnedPatternPreemptsTiers(t *testing.T) {
	e := newTestEngine(nil)
	e.Patterns().Learn("any cold places this december", nlu.IntentRecommendation)

	result := e.Process(context.Background(), "any cold places this december", store.NewContext())
	if result.Intent != nlu.IntentRecommendation || result.Source != nlu.SourceLearned {
		t.Errorf("got (%s, %s), want (recommendation, learned)", result.Intent, result.Source)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache(DefaultCacheTTL)
	e := newTestEngine(cache)
	sctx := store.NewContext()

	first := e.Process(context.Background(), "suggest mountain destinations", sctx)
	if first.Source == nlu.SourceCache {
		t.Fatal("first call reported a cache hit")
	}
	second := e.Process(context.Background(), "suggest mountain destinations", sctx)
	if second.Source != nlu.SourceCache {
		t.Fatalf("second call source = %s, want cache", second.Source)
	}
	if second.Intent != first.Intent {
		t.Errorf("cached intent = %s, want %s", second.Intent, first.Intent)
	}
}

func TestCacheKeyedByContext(t *testing.T) {
	cache := NewMemoryCache(DefaultCacheTTL)
	e := newTestEngine(cache)

	// Same words, different context facets: must not share a cache entry,
	// because active results flip the classification to reference.
	noResults := store.NewContext()
	e.Process(context.Background(), "the first one", noResults)

	withResults := contextWithResults(2)
	result := e.Process(context.Background(), "the first one", withResults)
	if result.Intent != nlu.IntentReference {
		t.Errorf("intent = %s, want reference (stale cache entry replayed?)", result.Intent)
	}
}

func TestReinforceTurnSeedsLearnedPattern(t *testing.T) {
	e := newTestEngine(nil)

	// A successfully served turn keeps its mapping warm without waiting for
	// explicit feedback.
	e.ReinforceTurn("any cold places this december", nlu.IntentRecommendation)
	result := e.Process(context.Background(), "any cold places this december", store.NewContext())
	if result.Intent != nlu.IntentRecommendation || result.Source != nlu.SourceLearned {
		t.Errorf("got (%s, %s), want (recommendation, learned)", result.Intent, result.Source)
	}
}

func TestReinforceTurnSkipsChatter(t *testing.T) {
	e := newTestEngine(nil)

	e.ReinforceTurn("okay sounds good", nlu.IntentGeneral)
	e.ReinforceTurn("whatever", nlu.IntentInappropriate)
	e.ReinforceTurn("show me beaches", "not-an-intent")

	if got := e.Patterns().Len(); got != 0 {
		t.Errorf("patterns = %d, want 0 (chatter must not occupy slots)", got)
	}
}

func TestLearnFromInteraction(t *testing.T) {
	e := newTestEngine(nil)

	e.LearnFromInteraction("find me somewhere quiet", nlu.IntentGeneral, FeedbackCorrection, nlu.IntentRecommendation)
	result := e.Process(context.Background(), "find me somewhere quiet", store.NewContext())
	if result.Intent != nlu.IntentRecommendation || result.Source != nlu.SourceLearned {
		t.Fatalf("got (%s, %s), want (recommendation, learned)", result.Intent, result.Source)
	}

	e.LearnFromInteraction("find me somewhere quiet", nlu.IntentRecommendation, FeedbackNegative, "")
	result = e.Process(context.Background(), "find me somewhere quiet", store.NewContext())
	if result.Source == nlu.SourceLearned {
		t.Error("pattern survived negative feedback")
	}

	if len(e.Corrections()) != 1 {
		t.Errorf("corrections = %d, want 1", len(e.Corrections()))
	}
}
