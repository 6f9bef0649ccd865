package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-travelmate-be/pkg/llm"
	"ai-travelmate-be/pkg/nlu"
)

// DefaultRemoteTimeout bounds a single classification call. There are no
// retries: on timeout or error the caller degrades to local classification
// for that turn.
const DefaultRemoteTimeout = 6 * time.Second

// Outcome is the structured verdict produced by the remote model.
type Outcome struct {
	Intent                nlu.Intent `json:"intent"`
	Confidence            float64    `json:"confidence"`
	IsSafe                bool       `json:"is_safe"`
	SafetyIssues          []string   `json:"safety_issues"`
	SuggestedResponseType string     `json:"suggested_response_type"`
	Reasoning             string     `json:"reasoning"`
}

// PromptContext is the conversation state the remote model gets to see.
type PromptContext struct {
	CurrentTopic     string
	LastIntent       nlu.Intent
	HasActiveResults bool
	RecentMessages   []llm.Message
}

// RemoteClassifier escalates classification to an LLM provider.
type RemoteClassifier struct {
	llmProvider llm.LLMProvider
	timeout     time.Duration
	logger      *log.Logger
}

func NewRemoteClassifier(llmProvider llm.LLMProvider, timeout time.Duration, logger *log.Logger) *RemoteClassifier {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &RemoteClassifier{
		llmProvider: llmProvider,
		timeout:     timeout,
		logger:      logger,
	}
}

// Classify sends one message to the model and parses its verdict. Exactly one
// attempt is made; any failure is returned to the caller so it can fall back
// locally.
func (r *RemoteClassifier) Classify(ctx context.Context, text string, pctx PromptContext) (*Outcome, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	prompt := r.buildPrompt(text, pctx)

	response, err := r.llmProvider.Generate(callCtx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("remote classification failed: %w", err)
	}

	outcome, err := r.parseOutcome(response)
	if err != nil {
		r.logger.Printf("[WARN] Structured parse failed, trying loose recovery: %v", err)
		outcome = recoverOutcome(response)
		if outcome == nil {
			return nil, fmt.Errorf("unparseable classifier response: %w", err)
		}
	}

	r.logger.Printf("[INTENT] Remote verdict: %s (Confidence: %.2f, Safe: %v)",
		outcome.Intent, outcome.Confidence, outcome.IsSafe)

	return outcome, nil
}

func (r *RemoteClassifier) buildPrompt(text string, pctx PromptContext) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You are an intent classifier for a travel assistant. Your ONLY job is to label the user's message.\n")
	prompt.WriteString("You do NOT answer the message. You only classify it.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<conversation_state>\n")
	if pctx.CurrentTopic != "" {
		prompt.WriteString(fmt.Sprintf("CURRENT_TOPIC: %s\n", pctx.CurrentTopic))
	}
	if pctx.LastIntent != "" {
		prompt.WriteString(fmt.Sprintf("LAST_INTENT: %s\n", pctx.LastIntent))
	}
	if pctx.HasActiveResults {
		prompt.WriteString("ACTIVE_RESULTS: The user was shown a list of destinations and may refer back to it.\n")
	} else {
		prompt.WriteString("ACTIVE_RESULTS: none\n")
	}
	for _, m := range pctx.RecentMessages {
		prompt.WriteString(fmt.Sprintf("%s: %s\n", strings.ToUpper(m.Role), m.Content))
	}
	prompt.WriteString("</conversation_state>\n\n")

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(text)
	prompt.WriteString("\n</user_message>\n\n")

	prompt.WriteString("<classification_rules>\n")
	prompt.WriteString("Pick ONE intent. Evaluate rules top to bottom; the first that applies wins:\n\n")
	prompt.WriteString("1. reference: message points at a shown result ('the first one', 'that one'). ONLY valid when ACTIVE_RESULTS is present.\n")
	prompt.WriteString("2. greeting | farewell: pure conversation boundaries ('hi', 'bye', 'thanks that's all').\n")
	prompt.WriteString("3. attractions | restaurants | accommodations | weather | safety: a question about one destination aspect.\n")
	prompt.WriteString("4. duration | budget: a bare constraint with NO search verb ('3 days', 'under 20k'). These refine previous results.\n")
	prompt.WriteString("5. search | recommendation: an explicit request to find or suggest destinations.\n")
	prompt.WriteString("6. more_info | trip_planning | bookmark: follow-up detail, itinerary help, or saving a result.\n")
	prompt.WriteString("7. general: anything else that is still travel conversation.\n")
	prompt.WriteString("8. inappropriate: vulgar, hateful, harmful, or spam content. Set is_safe=false and name the issues.\n")
	prompt.WriteString("</classification_rules>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"intent\": \"one of the intents above\",\n")
	prompt.WriteString("  \"confidence\": 0.9,\n")
	prompt.WriteString("  \"is_safe\": true,\n")
	prompt.WriteString("  \"safety_issues\": [],\n")
	prompt.WriteString("  \"suggested_response_type\": \"short hint for the responder\",\n")
	prompt.WriteString("  \"reasoning\": \"Brief explanation\"\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func (r *RemoteClassifier) parseOutcome(response string) (*Outcome, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	// is_safe must default to true when the model omits it, so decode into a
	// pointer first.
	var raw struct {
		Intent                string   `json:"intent"`
		Confidence            float64  `json:"confidence"`
		IsSafe                *bool    `json:"is_safe"`
		SafetyIssues          []string `json:"safety_issues"`
		SuggestedResponseType string   `json:"suggested_response_type"`
		Reasoning             string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	resolved := nlu.Intent(strings.ToLower(strings.TrimSpace(raw.Intent)))
	if !resolved.Valid() {
		return nil, fmt.Errorf("unknown intent %q", raw.Intent)
	}

	outcome := &Outcome{
		Intent:                resolved,
		Confidence:            clamp(raw.Confidence, 0, 1),
		IsSafe:                true,
		SafetyIssues:          raw.SafetyIssues,
		SuggestedResponseType: raw.SuggestedResponseType,
		Reasoning:             raw.Reasoning,
	}
	if raw.IsSafe != nil {
		outcome.IsSafe = *raw.IsSafe
	}
	if outcome.Intent == nlu.IntentInappropriate {
		outcome.IsSafe = false
	}

	return outcome, nil
}

// looseIntentOrder is scanned when the model ignores the JSON contract and
// answers in prose. Longer names come first so "recommendation" is not read
// as "search" and "more_info" is found before "info"-less fragments.
var looseIntentOrder = []nlu.Intent{
	nlu.IntentRecommendation,
	nlu.IntentTripPlanning,
	nlu.IntentAccommodations,
	nlu.IntentInappropriate,
	nlu.IntentAttractions,
	nlu.IntentRestaurants,
	nlu.IntentMoreInfo,
	nlu.IntentReference,
	nlu.IntentGreeting,
	nlu.IntentFarewell,
	nlu.IntentBookmark,
	nlu.IntentDuration,
	nlu.IntentWeather,
	nlu.IntentSafety,
	nlu.IntentBudget,
	nlu.IntentSearch,
	nlu.IntentGeneral,
}

// recoverOutcome scans a prose response for a known intent name. Recovery is
// deliberately conservative: fixed confidence, assumed safe.
func recoverOutcome(response string) *Outcome {
	lower := strings.ToLower(response)
	for _, candidate := range looseIntentOrder {
		needle := strings.ReplaceAll(string(candidate), "_", " ")
		if strings.Contains(lower, string(candidate)) || strings.Contains(lower, needle) {
			outcome := &Outcome{
				Intent:     candidate,
				Confidence: 0.7,
				IsSafe:     candidate != nlu.IntentInappropriate,
				Reasoning:  "recovered from unstructured response",
			}
			return outcome
		}
	}
	return nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
