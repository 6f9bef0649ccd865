package store

import (
	"testing"

	"github.com/google/uuid"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestUpdateActiveSearchStepCounter(t *testing.T) {
	c := NewContext()

	c.UpdateActiveSearch("beach destinations", ids(5), nil)
	c.UpdateActiveSearch("under 30000", ids(3), &Constraint{Kind: ConstraintBudget, Value: "30000"})
	c.UpdateActiveSearch("5 days", ids(2), &Constraint{Kind: ConstraintDuration, Value: "5"})

	steps := c.ActiveSearch.ResultsEvolution
	if len(steps) != 3 {
		t.Fatalf("evolution length = %d, want 3", len(steps))
	}
	for i, s := range steps {
		if s.Step != i+1 {
			t.Errorf("step[%d].Step = %d, want %d", i, s.Step, i+1)
		}
	}
	if steps[1].Count != 3 {
		t.Errorf("step[1].Count = %d, want 3", steps[1].Count)
	}
	if c.ActiveSearch.InitialQuery != "beach destinations" {
		t.Errorf("InitialQuery = %q, want first query", c.ActiveSearch.InitialQuery)
	}
}

func TestUpdateActiveSearchRefiningFlag(t *testing.T) {
	budget := &Constraint{Kind: ConstraintBudget, Value: "30000"}

	tests := []struct {
		name       string
		setup      func(c *Context)
		constraint *Constraint
		want       bool
	}{
		{
			name:       "fresh search without constraint",
			setup:      func(c *Context) {},
			constraint: nil,
			want:       false,
		},
		{
			name: "constraint on top of prior results",
			setup: func(c *Context) {
				c.UpdateActiveSearch("beaches", ids(4), nil)
			},
			constraint: budget,
			want:       true,
		},
		{
			name:       "constraint with no prior results",
			setup:      func(c *Context) {},
			constraint: budget,
			want:       false,
		},
		{
			name: "fresh search clears refining",
			setup: func(c *Context) {
				c.UpdateActiveSearch("beaches", ids(4), nil)
				c.UpdateActiveSearch("under 30000", ids(2), budget)
			},
			constraint: nil,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext()
			tt.setup(c)
			c.UpdateActiveSearch("next", ids(2), tt.constraint)
			if c.ActiveSearch.IsRefining != tt.want {
				t.Errorf("IsRefining = %v, want %v", c.ActiveSearch.IsRefining, tt.want)
			}
		})
	}
}

func TestUpdateLocationDedupAndBound(t *testing.T) {
	c := NewContext()

	goa := uuid.New()
	c.UpdateLocation(goa, "Goa", InteractionSearched)
	first := c.LocationMemory.History[0].Timestamp

	for i := 0; i < 12; i++ {
		c.UpdateLocation(uuid.New(), "Other", InteractionDiscussed)
	}

	if len(c.LocationMemory.History) != locationHistoryLimit {
		t.Fatalf("history length = %d, want %d", len(c.LocationMemory.History), locationHistoryLimit)
	}

	// Goa fell off the bounded history; a re-mention re-enters it.
	c.UpdateLocation(goa, "Goa", InteractionDiscussed)
	c.UpdateLocation(goa, "Goa", InteractionSelected)

	count := 0
	for _, rec := range c.LocationMemory.History {
		if rec.ID == goa {
			count++
			if rec.Kind != InteractionSelected {
				t.Errorf("kind = %q, want refreshed to %q", rec.Kind, InteractionSelected)
			}
			if !rec.Timestamp.After(first) && !rec.Timestamp.Equal(first) {
				t.Errorf("timestamp not refreshed")
			}
		}
	}
	if count != 1 {
		t.Errorf("duplicate entries for same id: %d", count)
	}

	if c.LocationMemory.LastDiscussed == nil || c.LocationMemory.LastDiscussed.ID != goa {
		t.Errorf("LastDiscussed not updated")
	}
}

func TestClearKeepsLocationHistory(t *testing.T) {
	tests := []struct {
		name            string
		keepPreferences bool
		wantPrefs       int
	}{
		{name: "preferences kept", keepPreferences: true, wantPrefs: 1},
		{name: "preferences dropped", keepPreferences: false, wantPrefs: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext()
			c.SetTopic("beach")
			c.UpdateActiveSearch("beaches", ids(3), nil)
			c.UpdateLocation(uuid.New(), "Goa", InteractionSearched)
			c.LearnPreference("budget_max", 30000)

			c.Clear(tt.keepPreferences)

			if c.CurrentTopic != "" {
				t.Errorf("CurrentTopic = %q, want empty", c.CurrentTopic)
			}
			if len(c.TopicHistory) != 1 || c.TopicHistory[0] != "beach" {
				t.Errorf("TopicHistory = %v, want [beach]", c.TopicHistory)
			}
			if c.TopicSwitches != 1 {
				t.Errorf("TopicSwitches = %d, want 1", c.TopicSwitches)
			}
			if c.HasActiveResults() {
				t.Errorf("active search not reset")
			}
			if len(c.LocationMemory.History) != 1 {
				t.Errorf("location history lost on clear")
			}
			// The pronoun target must not survive: "tell me about it" after a
			// clear would otherwise resolve into the abandoned topic.
			if c.LastDiscussed() != nil {
				t.Errorf("LastDiscussed = %q, want nil after clear", c.LastDiscussed().Name)
			}
			if len(c.LearnedPreferences) != tt.wantPrefs {
				t.Errorf("preferences = %d, want %d", len(c.LearnedPreferences), tt.wantPrefs)
			}
		})
	}
}

func TestAdjustRankingPriorities(t *testing.T) {
	tests := []struct {
		name string
		kind string
		key  string
		want float64
	}{
		{name: "budget nudges budget weight", kind: ConstraintBudget, key: PriorityBudget, want: 0.30},
		{name: "budget nudges weather weight", kind: ConstraintBudget, key: PriorityWeather, want: 0.25},
		{name: "safety nudge", kind: ConstraintSafety, key: PrioritySafety, want: 0.35},
		{name: "weather nudge", kind: ConstraintWeather, key: PriorityWeather, want: 0.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext()
			c.AdjustRankingPriorities(tt.kind)
			if got := c.RankingPriorities[tt.key]; got != tt.want {
				t.Errorf("%s = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestAdjustRankingPrioritiesNeverResets(t *testing.T) {
	c := NewContext()
	base := len(c.RankingPriorities)

	c.AdjustRankingPriorities(ConstraintBudget)
	c.AdjustRankingPriorities(ConstraintGeneral)

	if len(c.RankingPriorities) != base {
		t.Errorf("priority keys = %d, want %d", len(c.RankingPriorities), base)
	}
	if c.RankingPriorities[PrioritySafety] != 0.15 {
		t.Errorf("untouched weight changed: safety = %v", c.RankingPriorities[PrioritySafety])
	}
}
