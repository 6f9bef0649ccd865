package topic

import (
	"testing"

	"ai-travelmate-be/pkg/nlu/extract"
	"ai-travelmate-be/pkg/store"
)

func contextWithTopic(topic string) *store.Context {
	ctx := store.NewContext()
	if topic != "" {
		ctx.SetTopic(topic)
	}
	return ctx
}

func TestDetect(t *testing.T) {
	extractor := extract.NewExtractor()
	detector := NewDetector()

	tests := []struct {
		name         string
		text         string
		currentTopic string
		wantAction   Action
		wantTarget   string
	}{
		{
			name:       "no current topic opens fresh",
			text:       "show me beach destinations",
			wantAction: ActionFresh,
			wantTarget: "beach",
		},
		{
			name:         "explicit clear with distant topic",
			text:         "forget that, show me temples",
			currentTopic: "beach",
			wantAction:   ActionClear,
			wantTarget:   "spiritual",
		},
		{
			name:         "clear phrase alone does not clear a neighbouring topic",
			text:         "changed my mind, lakes sound better",
			currentTopic: "beach",
			wantAction:   ActionContinue,
			wantTarget:   "beach",
		},
		{
			name:         "cultural after spiritual is a distinct subject",
			text:         "forget that, show me cultural places",
			currentTopic: "spiritual",
			wantAction:   ActionClear,
			wantTarget:   "cultural",
		},
		{
			name:       "location-only utterance anchors a destination topic",
			text:       "plan a trip to goa",
			wantAction: ActionFresh,
			wantTarget: "destination:goa",
		},
		{
			name:         "budget entity refines",
			text:         "under 20k please",
			currentTopic: "beach",
			wantAction:   ActionRefine,
			wantTarget:   "beach",
		},
		{
			name:         "duration entity refines",
			text:         "just 3 days",
			currentTopic: "mountain",
			wantAction:   ActionRefine,
			wantTarget:   "mountain",
		},
		{
			name:         "plural reference refines",
			text:         "which of those is quieter",
			currentTopic: "beach",
			wantAction:   ActionRefine,
			wantTarget:   "beach",
		},
		{
			name:         "mixed topics land in the confirm band",
			text:         "beach or maybe some trekking",
			currentTopic: "mountain",
			wantAction:   ActionConfirm,
			wantTarget:   "beach",
		},
		{
			name:         "same topic continues",
			text:         "more beaches like that",
			currentTopic: "beach",
			wantAction:   ActionContinue,
			wantTarget:   "beach",
		},
		{
			name:         "clustered neighbour continues",
			text:         "what about trekking",
			currentTopic: "mountain",
			wantAction:   ActionContinue,
			wantTarget:   "mountain",
		},
		{
			name:         "no topical signal continues",
			text:         "okay sounds good",
			currentTopic: "beach",
			wantAction:   ActionContinue,
			wantTarget:   "beach",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := extractor.Extract(tt.text)
			got := detector.Detect(tt.text, entities, contextWithTopic(tt.currentTopic))
			if got.Action != tt.wantAction {
				t.Errorf("Detect(%q).Action = %v, want %v", tt.text, got.Action, tt.wantAction)
			}
			if got.TargetTopic != tt.wantTarget {
				t.Errorf("Detect(%q).TargetTopic = %q, want %q", tt.text, got.TargetTopic, tt.wantTarget)
			}
		})
	}
}

func TestDetectConfidenceBands(t *testing.T) {
	extractor := extract.NewExtractor()
	detector := NewDetector()

	tests := []struct {
		text           string
		currentTopic   string
		wantConfidence float64
	}{
		{"show me beaches", "", 1.0},
		{"forget that, show me temples", "beach", 0.95},
		{"under 20k please", "beach", 0.9},
		{"beach or maybe some trekking", "mountain", 0.7},
		{"more beaches like that", "beach", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			entities := extractor.Extract(tt.text)
			got := detector.Detect(tt.text, entities, contextWithTopic(tt.currentTopic))
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Detect(%q).Confidence = %v, want %v", tt.text, got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestDetectDeterministic(t *testing.T) {
	extractor := extract.NewExtractor()
	detector := NewDetector()
	ctx := contextWithTopic("mountain")

	text := "beach or maybe some trekking"
	entities := extractor.Extract(text)

	first := detector.Detect(text, entities, ctx)
	for i := 0; i < 5; i++ {
		again := detector.Detect(text, entities, ctx)
		if again != first {
			t.Fatalf("Detect() not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		topics  []string
		current string
		want    float64
	}{
		{"identical", []string{"beach"}, "beach", 1.0},
		{"same cluster", []string{"adventure"}, "mountain", 0.6},
		{"unrelated", []string{"beach"}, "mountain", 0.0},
		{"spiritual and cultural are distinct", []string{"cultural"}, "spiritual", 0.0},
		{"mixed average", []string{"beach", "adventure"}, "mountain", 0.3},
		{"no topics", nil, "beach", 0.0},
		{"no current", []string{"beach"}, "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.topics, tt.current); got != tt.want {
				t.Errorf("Similarity(%v, %q) = %v, want %v", tt.topics, tt.current, got, tt.want)
			}
		})
	}
}
