// Package engine composes the language-understanding pipeline: cache lookup,
// entity extraction, location and reference short-circuits, learned-pattern
// recall, and tiered or remote classification, in that order. The engine is
// an explicit service object constructed once and passed by reference; caches
// and their TTLs are fields, never globals.
package engine

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"strings"
	"sync"

	"ai-travelmate-be/pkg/nlu"
	"ai-travelmate-be/pkg/nlu/extract"
	"ai-travelmate-be/pkg/nlu/intent"
	"ai-travelmate-be/pkg/nlu/learned"
	"ai-travelmate-be/pkg/nlu/safety"
	"ai-travelmate-be/pkg/store"
)

// Engine is safe for concurrent use; per-session state arrives per call.
type Engine struct {
	extractor  *extract.Extractor
	classifier *intent.Classifier
	remote     *intent.RemoteClassifier // nil disables escalation
	patterns   *learned.Store
	cache      ResultCache
	logger     *log.Logger

	correctionMu sync.Mutex
	corrections  []Correction
}

func New(extractor *extract.Extractor, remote *intent.RemoteClassifier, patterns *learned.Store, cache ResultCache, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		extractor:  extractor,
		classifier: intent.NewClassifier(),
		remote:     remote,
		patterns:   patterns,
		cache:      cache,
		logger:     logger,
	}
}

// Patterns exposes the learned-pattern store for feedback handling.
func (e *Engine) Patterns() *learned.Store { return e.patterns }

// Extractor exposes the entity extractor so the catalog can register
// destination names at startup.
func (e *Engine) Extractor() *extract.Extractor { return e.extractor }

// Process classifies one utterance against the session's conversation state.
// Steps short-circuit in a fixed order; every safe result is cached.
func (e *Engine) Process(ctx context.Context, text string, sctx *store.Context) *nlu.Result {
	message := strings.TrimSpace(text)
	key := cacheKey(message, sctx)

	if e.cache != nil {
		if cached, found := e.cache.Get(ctx, key); found {
			e.logger.Printf("[NLU] Cache hit: %.50s", message)
			replay := *cached
			replay.Source = nlu.SourceCache
			return &replay
		}
	}

	entities := e.extractor.Extract(message)

	// Reference detection runs before the denylist so a short reply aimed at
	// shown results can never be vetoed by a stray term.
	if sctx != nil && sctx.HasActiveResults() && intent.IsReference(message) {
		e.logger.Printf("[NLU] Reference detected: %.50s", message)
		result := &nlu.Result{
			Message:    message,
			Entities:   entities,
			Intent:     nlu.IntentReference,
			Confidence: 0.95,
			IsSafe:     true,
			Source:     nlu.SourceReference,
		}
		e.cacheResult(ctx, key, result)
		return result
	}

	if issues := safety.Screen(message); len(issues) > 0 {
		e.logger.Printf("[NLU] Denylist hit (%v): %.50s", issues, message)
		return &nlu.Result{
			Message:      message,
			Entities:     entities,
			Intent:       nlu.IntentInappropriate,
			Confidence:   1.0,
			IsSafe:       false,
			SafetyIssues: issues,
			Source:       nlu.SourceFallback,
		}
	}

	if result := e.detectLocationQuery(message, entities, sctx); result != nil {
		e.cacheResult(ctx, key, result)
		return result
	}

	if e.patterns != nil {
		if learnedIntent, score, ok := e.patterns.Lookup(message); ok {
			e.logger.Printf("[NLU] Learned pattern hit (%.2f): %s", score, learnedIntent)
			result := &nlu.Result{
				Message:    message,
				Entities:   entities,
				Intent:     learnedIntent,
				Confidence: score,
				IsSafe:     true,
				Source:     nlu.SourceLearned,
			}
			e.cacheResult(ctx, key, result)
			return result
		}
	}

	result := e.classify(ctx, message, entities, sctx)
	if result.IsSafe {
		e.cacheResult(ctx, key, result)
	}
	return result
}

// detectLocationQuery short-circuits category questions tied to a place:
// either the place is named in the utterance, or the question immediately
// follows a discussed destination ("where to eat" right after Goa came up).
func (e *Engine) detectLocationQuery(message string, entities extract.EntityBag, sctx *store.Context) *nlu.Result {
	category, ok := intent.DetectCategory(message)
	if !ok {
		return nil
	}
	hasNamedPlace := len(entities.Locations) > 0
	hasRecentPlace := sctx != nil && sctx.LastDiscussed() != nil
	if !hasNamedPlace && !hasRecentPlace {
		return nil
	}
	e.logger.Printf("[NLU] Location query: %s (named=%v)", category, hasNamedPlace)
	return &nlu.Result{
		Message:    message,
		Entities:   entities,
		Intent:     category,
		Confidence: 0.9,
		IsSafe:     true,
		Source:     nlu.SourceLocation,
	}
}

// classify escalates to the remote classifier when configured and falls back
// to the local tiers on any failure. Exactly one degradation per turn.
func (e *Engine) classify(ctx context.Context, message string, entities extract.EntityBag, sctx *store.Context) *nlu.Result {
	hasActive := sctx != nil && sctx.HasActiveResults()

	if e.remote != nil {
		pctx := intent.PromptContext{HasActiveResults: hasActive}
		if sctx != nil {
			pctx.CurrentTopic = sctx.CurrentTopic
		}
		outcome, err := e.remote.Classify(ctx, message, pctx)
		if err == nil {
			// The denylist already passed; the remote verdict's own safety
			// flags still bind.
			return &nlu.Result{
				Message:      message,
				Entities:     entities,
				Intent:       outcome.Intent,
				Confidence:   outcome.Confidence,
				IsSafe:       outcome.IsSafe,
				SafetyIssues: outcome.SafetyIssues,
				Source:       nlu.SourceExternal,
			}
		}
		e.logger.Printf("[WARN] Remote classification degraded to local: %v", err)
	}

	match := e.classifier.Classify(message, entities, hasActive)
	return &nlu.Result{
		Message:    message,
		Entities:   entities,
		Intent:     match.Intent,
		Confidence: match.Confidence,
		IsSafe:     true,
		Source:     nlu.SourceFallback,
	}
}

func (e *Engine) cacheResult(ctx context.Context, key string, result *nlu.Result) {
	if e.cache != nil && result.IsSafe {
		e.cache.Set(ctx, key, result)
	}
}

// cacheKey mixes the normalized utterance with the context facets that can
// change its classification: whether results are active and which place was
// last discussed.
func cacheKey(message string, sctx *store.Context) string {
	facet := "none"
	if sctx != nil {
		last := ""
		if l := sctx.LastDiscussed(); l != nil {
			last = l.ID.String()
		}
		facet = fmt.Sprintf("%v|%s", sctx.HasActiveResults(), last)
	}
	sum := md5.Sum([]byte(learned.Normalize(message) + "|" + facet))
	return fmt.Sprintf("%x", sum)
}
