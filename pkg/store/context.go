package store

import (
	"time"

	"github.com/google/uuid"
)

// Interaction kinds recorded in location memory.
const (
	InteractionDiscussed  = "discussed"
	InteractionSearched   = "searched"
	InteractionAskedAbout = "asked_about"
	InteractionSelected   = "selected"
)

// Constraint kinds tracked on the active-search ledger.
const (
	ConstraintBudget    = "budget"
	ConstraintDuration  = "duration"
	ConstraintGroupSize = "group_size"
	ConstraintSafety    = "safety"
	ConstraintWeather   = "weather"
	ConstraintGeneral   = "general"
)

// Ranking priority keys. Weights are nudged by named adjustments only.
const (
	PriorityWeather        = "weather_priority"
	PriorityResource       = "resource_priority"
	PrioritySafety         = "safety_priority"
	PriorityPopularity     = "popularity_priority"
	PriorityBudget         = "budget_priority"
	PriorityUserPreference = "user_preference_priority"
)

// locationHistoryLimit bounds location_memory.history to the most recent
// distinct destinations.
const locationHistoryLimit = 10

// Constraint is one narrowing step applied to the active search.
type Constraint struct {
	Kind      string    `json:"kind"`
	Value     string    `json:"value"`
	Timestamp time.Time `json:"ts"`
}

// EvolutionStep records the result-set size after one search/filter step.
// Step numbers are strictly sequential starting at 1.
type EvolutionStep struct {
	Step      int       `json:"step"`
	Count     int       `json:"count"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"ts"`
}

// ActiveSearch is the progressive-filter ledger. CurrentResultIDs always
// reflects the latest successful search/filter step.
type ActiveSearch struct {
	InitialQuery       string          `json:"initial_query"`
	CurrentResultIDs   []uuid.UUID     `json:"current_result_ids"`
	ResultsEvolution   []EvolutionStep `json:"results_evolution"`
	ConstraintsApplied []Constraint    `json:"constraints_applied"`
	IsRefining         bool            `json:"is_refining"`
}

// LocationRecord is one remembered destination interaction.
type LocationRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
}

// LocationMemory keeps the last destination the user engaged with plus a
// bounded, deduplicated interaction history.
type LocationMemory struct {
	LastDiscussed *LocationRecord  `json:"last_discussed,omitempty"`
	History       []LocationRecord `json:"history"`
}

// Context is the per-session conversation state. One session owns exactly
// one Context; it is created lazily on the first turn and mutated in place
// afterwards. Single writer per session: the storage boundary serializes
// turns, so Context itself carries no locks.
type Context struct {
	CurrentTopic    string     `json:"current_topic"`
	TopicHistory    []string   `json:"topic_history"`
	TopicSwitches   int        `json:"topic_switches"`
	LastTopicChange *time.Time `json:"last_topic_change,omitempty"`

	ActiveSearch   ActiveSearch   `json:"active_search"`
	LocationMemory LocationMemory `json:"location_memory"`

	LearnedPreferences map[string]interface{} `json:"learned_preferences"`
	RankingPriorities  map[string]float64     `json:"ranking_priorities"`
}

// NewContext returns a Context with default ranking priorities and
// initialized maps.
func NewContext() *Context {
	return &Context{
		TopicHistory:       []string{},
		LearnedPreferences: map[string]interface{}{},
		RankingPriorities:  defaultRankingPriorities(),
	}
}

func defaultRankingPriorities() map[string]float64 {
	return map[string]float64{
		PriorityWeather:        0.35,
		PriorityResource:       0.20,
		PrioritySafety:         0.15,
		PriorityPopularity:     0.15,
		PriorityBudget:         0.10,
		PriorityUserPreference: 0.05,
	}
}

// EnsureDefaults backfills maps and priorities on a Context deserialized
// from storage. Safe to call on every load.
func (c *Context) EnsureDefaults() {
	if c.TopicHistory == nil {
		c.TopicHistory = []string{}
	}
	if c.LearnedPreferences == nil {
		c.LearnedPreferences = map[string]interface{}{}
	}
	if len(c.RankingPriorities) == 0 {
		c.RankingPriorities = defaultRankingPriorities()
	}
}

// HasActiveResults reports whether a previous search left results that a
// reference or a refinement can target.
func (c *Context) HasActiveResults() bool {
	return len(c.ActiveSearch.CurrentResultIDs) > 0
}

// LastDiscussed returns the most recent location interaction, or nil.
func (c *Context) LastDiscussed() *LocationRecord {
	return c.LocationMemory.LastDiscussed
}

// Summary is a compact view used in logs and escalation prompts.
func (c *Context) Summary() map[string]interface{} {
	lastLocation := ""
	if c.LocationMemory.LastDiscussed != nil {
		lastLocation = c.LocationMemory.LastDiscussed.Name
	}
	return map[string]interface{}{
		"current_topic":       c.CurrentTopic,
		"topic_switches":      c.TopicSwitches,
		"active_results":      len(c.ActiveSearch.CurrentResultIDs),
		"constraints_applied": len(c.ActiveSearch.ConstraintsApplied),
		"is_refining":         c.ActiveSearch.IsRefining,
		"last_location":       lastLocation,
		"learned_preferences": len(c.LearnedPreferences),
	}
}
