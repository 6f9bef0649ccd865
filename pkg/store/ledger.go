package store

import (
	"time"

	"github.com/google/uuid"
)

// UpdateActiveSearch records one search/filter step. The evolution step
// counter increments by exactly 1 per call. IsRefining becomes true only
// when a constraint was applied on top of a non-empty prior result set.
func (c *Context) UpdateActiveSearch(query string, resultIDs []uuid.UUID, constraint *Constraint) {
	now := time.Now()
	s := &c.ActiveSearch

	hadResults := len(s.CurrentResultIDs) > 0
	if s.InitialQuery == "" && len(s.ResultsEvolution) == 0 {
		s.InitialQuery = query
	}

	s.ResultsEvolution = append(s.ResultsEvolution, EvolutionStep{
		Step:      len(s.ResultsEvolution) + 1,
		Count:     len(resultIDs),
		Query:     query,
		Timestamp: now,
	})
	s.CurrentResultIDs = resultIDs

	if constraint != nil {
		applied := *constraint
		if applied.Timestamp.IsZero() {
			applied.Timestamp = now
		}
		s.ConstraintsApplied = append(s.ConstraintsApplied, applied)
		s.IsRefining = hadResults
	} else {
		s.IsRefining = false
	}
}

// UpdateLocation remembers a destination interaction. History is deduplicated
// by destination id (a repeat mention refreshes its timestamp and kind) and
// bounded to the most recent entries.
func (c *Context) UpdateLocation(id uuid.UUID, name, kind string) {
	now := time.Now()
	rec := LocationRecord{ID: id, Name: name, Timestamp: now, Kind: kind}
	c.LocationMemory.LastDiscussed = &rec

	history := c.LocationMemory.History
	for i := range history {
		if history[i].ID == id {
			history[i].Timestamp = now
			history[i].Kind = kind
			return
		}
	}
	history = append(history, rec)
	if len(history) > locationHistoryLimit {
		history = history[len(history)-locationHistoryLimit:]
	}
	c.LocationMemory.History = history
}

// LearnPreference stores a learned user preference.
func (c *Context) LearnPreference(key string, value interface{}) {
	if c.LearnedPreferences == nil {
		c.LearnedPreferences = map[string]interface{}{}
	}
	c.LearnedPreferences[key] = value
}

// AdjustRankingPriorities nudges ranking weights for a constraint kind.
// Weights are never reset wholesale; only the named keys move.
func (c *Context) AdjustRankingPriorities(kind string) {
	if c.RankingPriorities == nil {
		c.RankingPriorities = defaultRankingPriorities()
	}
	switch kind {
	case ConstraintBudget:
		c.RankingPriorities[PriorityBudget] = 0.30
		c.RankingPriorities[PriorityWeather] = 0.25
	case ConstraintSafety:
		c.RankingPriorities[PrioritySafety] = 0.35
	case ConstraintWeather:
		c.RankingPriorities[PriorityWeather] = 0.45
	}
}

// SetTopic switches the current topic, archiving the previous one when it
// differs.
func (c *Context) SetTopic(topic string) {
	if topic == "" || topic == c.CurrentTopic {
		return
	}
	if c.CurrentTopic != "" {
		c.TopicHistory = append(c.TopicHistory, c.CurrentTopic)
		c.TopicSwitches++
		now := time.Now()
		c.LastTopicChange = &now
	}
	c.CurrentTopic = topic
}

// Clear resets topic state, the active search, and the pronoun target. The
// location history survives so earlier places stay recallable by name, but a
// bare "it" must not point into the abandoned topic. Learned preferences
// survive when keepPreferences is true.
func (c *Context) Clear(keepPreferences bool) {
	if c.CurrentTopic != "" {
		c.TopicHistory = append(c.TopicHistory, c.CurrentTopic)
		c.TopicSwitches++
		now := time.Now()
		c.LastTopicChange = &now
	}
	c.CurrentTopic = ""
	c.ActiveSearch = ActiveSearch{}
	c.LocationMemory.LastDiscussed = nil
	if !keepPreferences {
		c.LearnedPreferences = map[string]interface{}{}
	}
}
