// Package topic decides how a new utterance relates to the conversation's
// current subject: opening one, refining it, abandoning it, or drifting
// close enough that the caller should confirm before discarding results.
package topic

import (
	"strings"

	"ai-travelmate-be/pkg/nlu/extract"
	"ai-travelmate-be/pkg/store"
)

// Action is the detector's verdict for one turn.
type Action string

const (
	ActionFresh    Action = "fresh"
	ActionRefine   Action = "refine"
	ActionClear    Action = "clear"
	ActionConfirm  Action = "confirm"
	ActionContinue Action = "continue"
)

// Decision carries the verdict plus the topic the utterance points at, which
// may be empty when the turn has no topical signal of its own.
type Decision struct {
	Action      Action  `json:"action"`
	Confidence  float64 `json:"confidence"`
	TargetTopic string  `json:"target_topic,omitempty"`
}

// Explicit change-of-mind phrases. Presence alone is not enough to clear:
// the new subject must also be far from the current one.
var clearPhrases = []string{
	"changed my mind", "change my mind", "forget that", "forget it",
	"never mind", "nevermind", "start over", "start fresh", "start again",
	"something else", "something different", "scrap that", "instead",
}

// Plural references that point back at the shown results and therefore mark
// a refinement, not a subject change.
var pluralReferences = []string{
	"these", "those", "of them", "among them", "out of these", "from these",
}

// Constraint words that narrow without carrying an extractable value.
var constraintWords = []string{
	"cheaper", "cheapest", "shorter", "longer", "closer", "nearer",
	"less crowded", "quieter", "budget", "filter", "narrow",
}

// topicClusters groups activity tags that travelers treat as neighbouring
// subjects. Spiritual and cultural stay in separate groups: a fort trip is
// not a pilgrimage, and conflating them suppresses legitimate clears.
// Membership is hand-tuned configuration, same as the similarity constants
// below.
var topicClusters = [][]string{
	{"beach", "coastal", "island", "lake"},
	{"mountain", "hill", "trek", "adventure"},
	{"spiritual", "temple", "religious"},
	{"cultural", "historical", "heritage"},
	{"wildlife", "nature", "safari", "waterfall"},
}

const (
	similarIdentical  = 1.0
	similarSameGroup  = 0.6
	confirmBandLow    = 0.3
	confirmBandHigh   = 0.4
	clearSimilarityLT = 0.3
)

// Detector is stateless; all conversational state arrives in the Context.
type Detector struct{}

func NewDetector() *Detector { return &Detector{} }

// Detect classifies the utterance relative to the stored topic. The checks
// run in fixed order so identical inputs always yield the same decision.
func (d *Detector) Detect(text string, entities extract.EntityBag, ctx *store.Context) Decision {
	lower := strings.ToLower(text)
	topics := utteranceTopics(entities)
	target := primaryTopic(entities)

	if ctx == nil || ctx.CurrentTopic == "" {
		return Decision{Action: ActionFresh, Confidence: 1.0, TargetTopic: target}
	}

	sim := Similarity(topics, ctx.CurrentTopic)

	if hasClearPhrase(lower) && sim < clearSimilarityLT {
		return Decision{Action: ActionClear, Confidence: 0.95, TargetTopic: target}
	}

	if carriesConstraint(lower, entities) {
		return Decision{Action: ActionRefine, Confidence: 0.9, TargetTopic: ctx.CurrentTopic}
	}

	if sim >= confirmBandLow && sim < confirmBandHigh {
		return Decision{Action: ActionConfirm, Confidence: 0.7, TargetTopic: target}
	}

	return Decision{Action: ActionContinue, Confidence: 0.8, TargetTopic: ctx.CurrentTopic}
}

// Similarity scores how close the utterance's topics sit to the current one:
// 1.0 for the same tag, 0.6 for a clustered neighbour, 0.0 otherwise,
// averaged over every topic the utterance names. A mixed utterance therefore
// lands between the bands, which is exactly the ambiguity the confirm action
// exists for.
func Similarity(topics []string, current string) float64 {
	if len(topics) == 0 || current == "" {
		return 0
	}
	var sum float64
	for _, t := range topics {
		sum += pairSimilarity(t, current)
	}
	return sum / float64(len(topics))
}

func pairSimilarity(a, b string) float64 {
	if a == b {
		return similarIdentical
	}
	for _, cluster := range topicClusters {
		if containsString(cluster, a) && containsString(cluster, b) {
			return similarSameGroup
		}
	}
	return 0
}

func utteranceTopics(entities extract.EntityBag) []string {
	return entities.Activities
}

// primaryTopic names what the utterance is about. With no activity signal a
// named place still anchors the conversation, as destination:<name>.
func primaryTopic(entities extract.EntityBag) string {
	if entities.PrimaryActivity != "" {
		return entities.PrimaryActivity
	}
	if len(entities.Activities) > 0 {
		return entities.Activities[0]
	}
	if len(entities.Locations) > 0 {
		return "destination:" + entities.Locations[0]
	}
	return ""
}

func hasClearPhrase(lower string) bool {
	for _, p := range clearPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func carriesConstraint(lower string, entities extract.EntityBag) bool {
	if entities.HasConstraint() {
		return true
	}
	for _, p := range pluralReferences {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, w := range constraintWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
