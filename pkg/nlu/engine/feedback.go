package engine

import (
	"time"

	"ai-travelmate-be/pkg/nlu"
)

// Feedback kinds accepted from users.
const (
	FeedbackPositive   = "positive"
	FeedbackNegative   = "negative"
	FeedbackCorrection = "correction"
)

// correctionHistoryLimit caps the audit trail of explicit corrections.
const correctionHistoryLimit = 50

// Correction records one explicit user correction for later review.
type Correction struct {
	Message       string     `json:"message"`
	WrongIntent   nlu.Intent `json:"wrong_intent"`
	CorrectIntent nlu.Intent `json:"correct_intent"`
	At            time.Time  `json:"at"`
}

// LearnFromInteraction folds user feedback into the learned-pattern store.
// Corrections create or overwrite a pattern; positive feedback reinforces the
// detected mapping; negative feedback drops whatever pattern produced it.
func (e *Engine) LearnFromInteraction(message string, detected nlu.Intent, feedback string, correct nlu.Intent) {
	if e.patterns == nil || message == "" {
		return
	}
	switch feedback {
	case FeedbackCorrection:
		if !correct.Valid() {
			return
		}
		e.patterns.Learn(message, correct)
		e.recordCorrection(Correction{
			Message:       message,
			WrongIntent:   detected,
			CorrectIntent: correct,
			At:            time.Now(),
		})
		e.logger.Printf("[LEARN] Correction: %q %s -> %s", message, detected, correct)
	case FeedbackPositive:
		e.patterns.Reinforce(message, detected)
	case FeedbackNegative:
		e.patterns.Forget(message)
		e.logger.Printf("[LEARN] Dropped pattern after negative feedback: %q", message)
	}
}

// ReinforceTurn keeps the utterance→intent mapping warm after a turn was
// served without error. General chatter and unsafe turns are not worth a
// pattern slot.
func (e *Engine) ReinforceTurn(message string, detected nlu.Intent) {
	if e.patterns == nil || message == "" {
		return
	}
	if !detected.Valid() || detected == nlu.IntentGeneral || detected == nlu.IntentInappropriate {
		return
	}
	e.patterns.Reinforce(message, detected)
}

func (e *Engine) recordCorrection(c Correction) {
	e.correctionMu.Lock()
	defer e.correctionMu.Unlock()
	e.corrections = append(e.corrections, c)
	if len(e.corrections) > correctionHistoryLimit {
		e.corrections = e.corrections[len(e.corrections)-correctionHistoryLimit:]
	}
}

// Corrections returns a copy of the recent correction history.
func (e *Engine) Corrections() []Correction {
	e.correctionMu.Lock()
	defer e.correctionMu.Unlock()
	out := make([]Correction, len(e.corrections))
	copy(out, e.corrections)
	return out
}
