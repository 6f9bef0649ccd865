package search

import (
	"context"
	"io"
	"log"
	"testing"

	"ai-travelmate-be/pkg/nlu/extract"
	"ai-travelmate-be/pkg/store"

	"github.com/google/uuid"
)

// fakeCatalog filters a fixed destination list in memory, mirroring the
// attribute semantics of the real catalog.
type fakeCatalog struct {
	destinations []Destination
	calls        []Query
}

func (f *fakeCatalog) Find(_ context.Context, q Query) ([]Destination, error) {
	f.calls = append(f.calls, q)
	var out []Destination
	for _, d := range f.destinations {
		if len(q.RestrictToIDs) > 0 && !containsID(q.RestrictToIDs, d.ID) {
			continue
		}
		if q.BudgetMax > 0 && d.BudgetMax > q.BudgetMax {
			continue
		}
		if q.BudgetWithin > 0 && (d.BudgetMin > q.BudgetWithin || d.BudgetMax < q.BudgetWithin) {
			continue
		}
		if q.DurationMax > 0 && d.TypicalDurationDays > q.DurationMax {
			continue
		}
		if len(q.TagFilter) > 0 && !hasAnyTag(d.Tags, q.TagFilter) {
			continue
		}
		out = append(out, d)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func hasAnyTag(tags, wanted []string) bool {
	for _, t := range tags {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}

func dest(name string, budgetMax, days int, tags ...string) Destination {
	return Destination{
		ID:                  uuid.New(),
		Name:                name,
		BudgetMin:           budgetMax / 2,
		BudgetMax:           budgetMax,
		TypicalDurationDays: days,
		Tags:                tags,
	}
}

func beachCatalog() *fakeCatalog {
	return &fakeCatalog{destinations: []Destination{
		dest("Goa", 15000, 4, "beach"),
		dest("Gokarna", 10000, 3, "beach"),
		dest("Varkala", 25000, 4, "beach"),
		dest("Andaman", 60000, 6, "beach"),
		dest("Manali", 12000, 5, "mountain"),
	}}
}

func newTestPlanner(c Catalog) *Planner {
	return NewPlanner(c, DefaultConfig(), log.New(io.Discard, "", 0))
}

func TestFreshSearchStrictTagFilter(t *testing.T) {
	catalog := beachCatalog()
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	entities := extract.EntityBag{
		Activities:      []string{"beach"},
		PrimaryActivity: "beach",
		FilterMode:      extract.FilterStrict,
	}
	out, err := p.FreshSearch(context.Background(), "show me beach destinations", entities, sctx)
	if err != nil {
		t.Fatal(err)
	}
	if out.Action != "fresh" || len(out.Destinations) != 4 {
		t.Fatalf("fresh = (%s, %d results), want (fresh, 4)", out.Action, len(out.Destinations))
	}
	if sctx.ActiveSearch.IsRefining {
		t.Error("is_refining true after a fresh search")
	}
	if got := len(sctx.ActiveSearch.CurrentResultIDs); got != 4 {
		t.Errorf("ledger holds %d ids, want 4", got)
	}
	if catalog.calls[0].TagFilterMode != TagModeStrict {
		t.Errorf("tag filter mode = %q, want strict", catalog.calls[0].TagFilterMode)
	}
}

func TestRefineNarrowsWithinPriorResults(t *testing.T) {
	catalog := beachCatalog()
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	entities := extract.EntityBag{PrimaryActivity: "beach", Activities: []string{"beach"}, FilterMode: extract.FilterStrict}
	if _, err := p.FreshSearch(context.Background(), "beach destinations", entities, sctx); err != nil {
		t.Fatal(err)
	}
	before := len(sctx.ActiveSearch.CurrentResultIDs)

	budget := extract.EntityBag{Budget: &extract.Budget{Type: extract.BudgetMax, Max: 30000}}
	out, err := p.Refine(context.Background(), "under 30000", budget, sctx)
	if err != nil {
		t.Fatal(err)
	}
	if out.Action != "refine" || out.AutoExpanded {
		t.Fatalf("refine = (%s, expanded=%v), want (refine, false)", out.Action, out.AutoExpanded)
	}
	if len(out.Destinations) > before {
		t.Errorf("refinement grew the result set: %d -> %d", before, len(out.Destinations))
	}
	for _, d := range out.Destinations {
		if d.BudgetMax > 30000 {
			t.Errorf("%s exceeds the budget cap", d.Name)
		}
	}
	if !sctx.ActiveSearch.IsRefining {
		t.Error("is_refining false after a constrained refinement")
	}
	// The refinement query must be pinned to the prior ids, not the catalog.
	refineCall := catalog.calls[1]
	if len(refineCall.RestrictToIDs) != before {
		t.Errorf("refine call restricted to %d ids, want %d", len(refineCall.RestrictToIDs), before)
	}
}

func TestRefineRelaxesOnceWhenTooFewSurvive(t *testing.T) {
	catalog := &fakeCatalog{destinations: []Destination{
		dest("Goa", 28000, 4, "beach"),
		dest("Gokarna", 29000, 3, "beach"),
		dest("Varkala", 33000, 4, "beach"),
	}}
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	entities := extract.EntityBag{PrimaryActivity: "beach", Activities: []string{"beach"}, FilterMode: extract.FilterStrict}
	if _, err := p.FreshSearch(context.Background(), "beach destinations", entities, sctx); err != nil {
		t.Fatal(err)
	}

	// A 25k cap keeps nobody; 25k*1.2=30k recovers two from the full catalog.
	budget := extract.EntityBag{Budget: &extract.Budget{Type: extract.BudgetMax, Max: 25000}}
	out, err := p.Refine(context.Background(), "under 25k", budget, sctx)
	if err != nil {
		t.Fatal(err)
	}
	if !out.AutoExpanded {
		t.Fatal("relaxation pass did not fire")
	}
	if len(out.Destinations) != 2 {
		t.Fatalf("relaxed results = %d, want 2", len(out.Destinations))
	}
	// Exactly one extra catalog call, drawn from the full catalog.
	if len(catalog.calls) != 3 {
		t.Fatalf("catalog calls = %d, want 3 (fresh, refine, relax)", len(catalog.calls))
	}
	if len(catalog.calls[2].RestrictToIDs) != 0 {
		t.Error("relaxation pass was still pinned to prior ids")
	}
	if catalog.calls[2].BudgetMax != 30000 {
		t.Errorf("relaxed budget = %d, want 30000", catalog.calls[2].BudgetMax)
	}
}

func TestEvolutionStepsAreSequential(t *testing.T) {
	catalog := beachCatalog()
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	entities := extract.EntityBag{PrimaryActivity: "beach", Activities: []string{"beach"}, FilterMode: extract.FilterStrict}
	if _, err := p.FreshSearch(context.Background(), "beaches", entities, sctx); err != nil {
		t.Fatal(err)
	}
	budget := extract.EntityBag{Budget: &extract.Budget{Type: extract.BudgetMax, Max: 30000}}
	if _, err := p.Refine(context.Background(), "under 30000", budget, sctx); err != nil {
		t.Fatal(err)
	}
	duration := extract.EntityBag{DurationDays: 4}
	if _, err := p.Refine(context.Background(), "for 4 days", duration, sctx); err != nil {
		t.Fatal(err)
	}

	steps := sctx.ActiveSearch.ResultsEvolution
	if len(steps) != 3 {
		t.Fatalf("evolution steps = %d, want 3", len(steps))
	}
	for i, s := range steps {
		if s.Step != i+1 {
			t.Errorf("step %d numbered %d, want %d", i, s.Step, i+1)
		}
	}
}

func TestRepeatedConstraintKindNudgesPriorities(t *testing.T) {
	catalog := beachCatalog()
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	entities := extract.EntityBag{PrimaryActivity: "beach", Activities: []string{"beach"}, FilterMode: extract.FilterStrict}
	if _, err := p.FreshSearch(context.Background(), "beaches", entities, sctx); err != nil {
		t.Fatal(err)
	}

	baseline := sctx.RankingPriorities[store.PriorityBudget]
	first := extract.EntityBag{Budget: &extract.Budget{Type: extract.BudgetMax, Max: 50000}}
	if _, err := p.Refine(context.Background(), "under 50000", first, sctx); err != nil {
		t.Fatal(err)
	}
	if sctx.RankingPriorities[store.PriorityBudget] != baseline {
		t.Error("first budget constraint already moved the weight")
	}

	second := extract.EntityBag{Budget: &extract.Budget{Type: extract.BudgetMax, Max: 30000}}
	if _, err := p.Refine(context.Background(), "under 30000", second, sctx); err != nil {
		t.Fatal(err)
	}
	if got := sctx.RankingPriorities[store.PriorityBudget]; got != 0.30 {
		t.Errorf("budget priority after repeat = %.2f, want 0.30", got)
	}
}

func TestRefineBudgetCapExcludesOverrunners(t *testing.T) {
	catalog := beachCatalog()
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	entities := extract.EntityBag{PrimaryActivity: "beach", Activities: []string{"beach"}, FilterMode: extract.FilterStrict}
	if _, err := p.FreshSearch(context.Background(), "beach destinations", entities, sctx); err != nil {
		t.Fatal(err)
	}

	budget := extract.EntityBag{Budget: &extract.Budget{Type: extract.BudgetMax, Max: 30000}}
	out, err := p.Refine(context.Background(), "under 30000", budget, sctx)
	if err != nil {
		t.Fatal(err)
	}
	// "Under 30000" means the whole trip fits: a place whose range tops out
	// above the cap must not survive even if it can be done cheaper.
	for _, d := range out.Destinations {
		if d.BudgetMax > 30000 {
			t.Errorf("%s tops out at %d, above the 30000 cap", d.Name, d.BudgetMax)
		}
	}
	call := catalog.calls[1]
	if call.BudgetMax != 30000 || call.BudgetWithin != 0 {
		t.Errorf("max budget queried as (max=%d, within=%d), want (30000, 0)", call.BudgetMax, call.BudgetWithin)
	}
}

func TestRefineExactBudgetChecksRange(t *testing.T) {
	catalog := beachCatalog()
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	entities := extract.EntityBag{PrimaryActivity: "beach", Activities: []string{"beach"}, FilterMode: extract.FilterStrict}
	if _, err := p.FreshSearch(context.Background(), "beach destinations", entities, sctx); err != nil {
		t.Fatal(err)
	}

	exact := extract.EntityBag{Budget: &extract.Budget{Type: extract.BudgetExact, Min: 14000, Max: 14000}}
	out, err := p.Refine(context.Background(), "my budget is 14000", exact, sctx)
	if err != nil {
		t.Fatal(err)
	}
	call := catalog.calls[1]
	if call.BudgetWithin != 14000 || call.BudgetMax != 0 {
		t.Errorf("exact budget queried as (max=%d, within=%d), want (0, 14000)", call.BudgetMax, call.BudgetWithin)
	}
	if len(out.Destinations) != 2 {
		t.Fatalf("results = %d, want 2", len(out.Destinations))
	}
	for _, d := range out.Destinations {
		if d.BudgetMin > 14000 || d.BudgetMax < 14000 {
			t.Errorf("%s (%d-%d) does not straddle the stated amount", d.Name, d.BudgetMin, d.BudgetMax)
		}
	}
}

func TestTurnPathsLearnPreferences(t *testing.T) {
	catalog := beachCatalog()
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	entities := extract.EntityBag{PrimaryActivity: "beach", Activities: []string{"beach"}, FilterMode: extract.FilterStrict}
	if _, err := p.FreshSearch(context.Background(), "beaches", entities, sctx); err != nil {
		t.Fatal(err)
	}
	if got := sctx.LearnedPreferences["likes_beach"]; got != true {
		t.Errorf("likes_beach = %v, want true after a beach search", got)
	}

	budget := extract.EntityBag{Budget: &extract.Budget{Type: extract.BudgetMax, Max: 30000}}
	if _, err := p.Refine(context.Background(), "under 30000", budget, sctx); err != nil {
		t.Fatal(err)
	}
	if got := sctx.LearnedPreferences["budget_conscious"]; got != true {
		t.Errorf("budget_conscious = %v, want true after a budget refinement", got)
	}

	duration := extract.EntityBag{DurationDays: 3}
	if _, err := p.Refine(context.Background(), "just 3 days", duration, sctx); err != nil {
		t.Fatal(err)
	}
	if got := sctx.LearnedPreferences["short_trips"]; got != true {
		t.Errorf("short_trips = %v, want true after a 3-day refinement", got)
	}
}

func TestRefineWithoutActiveResultsFallsBackToFresh(t *testing.T) {
	catalog := beachCatalog()
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	budget := extract.EntityBag{Budget: &extract.Budget{Type: extract.BudgetMax, Max: 30000}}
	out, err := p.Refine(context.Background(), "under 30000", budget, sctx)
	if err != nil {
		t.Fatal(err)
	}
	if out.Action != "fresh" {
		t.Errorf("action = %s, want fresh when no results are active", out.Action)
	}
}

func TestRefineWithNoConstraintIsNoOp(t *testing.T) {
	catalog := beachCatalog()
	p := newTestPlanner(catalog)
	sctx := store.NewContext()

	entities := extract.EntityBag{PrimaryActivity: "beach", Activities: []string{"beach"}, FilterMode: extract.FilterStrict}
	if _, err := p.FreshSearch(context.Background(), "beaches", entities, sctx); err != nil {
		t.Fatal(err)
	}
	stepsBefore := len(sctx.ActiveSearch.ResultsEvolution)

	out, err := p.Refine(context.Background(), "hmm okay", extract.EntityBag{}, sctx)
	if err != nil {
		t.Fatal(err)
	}
	if out.Action != "none" {
		t.Errorf("action = %s, want none", out.Action)
	}
	if len(sctx.ActiveSearch.ResultsEvolution) != stepsBefore {
		t.Error("no-op refinement still appended an evolution step")
	}
}
