package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-travelmate-be/pkg/nlu/extract"
	"ai-travelmate-be/pkg/store"
)

// Config holds the hand-tuned filtering constants. The relaxation numbers
// come from product tuning, not derivation; change them there, not here.
type Config struct {
	RelaxBudgetFactor float64 // widen a budget cap on the relaxation pass
	RelaxExtraDays    int     // widen a duration cap on the relaxation pass
	MinResults        int     // below this a refinement triggers relaxation
	MaxResults        int     // cap on fresh-search result lists
}

func DefaultConfig() Config {
	return Config{
		RelaxBudgetFactor: 1.2,
		RelaxExtraDays:    1,
		MinResults:        2,
		MaxResults:        10,
	}
}

// Outcome is one planner step: what ran, what it returned, and whether the
// relaxation pass fired.
type Outcome struct {
	Action       string // "fresh" | "refine" | "none"
	Destinations []Destination
	Constraint   *store.Constraint
	AutoExpanded bool
}

// Planner decides fresh-search vs refine-existing and keeps the context's
// active-search ledger in step with what the catalog returned.
type Planner struct {
	catalog Catalog
	cfg     Config
	logger  *log.Logger
}

func NewPlanner(catalog Catalog, cfg Config, logger *log.Logger) *Planner {
	if cfg.RelaxBudgetFactor <= 1 {
		cfg.RelaxBudgetFactor = DefaultConfig().RelaxBudgetFactor
	}
	if cfg.MinResults <= 0 {
		cfg.MinResults = DefaultConfig().MinResults
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultConfig().MaxResults
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{catalog: catalog, cfg: cfg, logger: logger}
}

// FreshSearch runs a full catalog query and replaces the active search. The
// ledger gains one evolution step; is_refining resets.
func (p *Planner) FreshSearch(ctx context.Context, query string, entities extract.EntityBag, sctx *store.Context) (*Outcome, error) {
	q := Query{Limit: p.cfg.MaxResults}

	if entities.PrimaryActivity != "" && entities.FilterMode == extract.FilterStrict {
		q.TagFilter = []string{entities.PrimaryActivity}
		q.TagFilterMode = TagModeStrict
	} else if len(entities.Activities) > 0 {
		q.TagFilter = entities.Activities
		q.TagFilterMode = TagModeRelaxed
	}
	applyBudget(&q, entities.Budget)
	if entities.DurationDays > 0 {
		q.DurationMax = entities.DurationDays
	}
	if len(entities.Locations) > 0 {
		q.Location = entities.Locations[0]
	}

	destinations, err := p.catalog.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fresh search failed: %w", err)
	}

	sctx.UpdateActiveSearch(query, IDs(destinations), nil)
	for _, activity := range entities.Activities {
		sctx.LearnPreference("likes_"+activity, true)
	}
	p.logger.Printf("[SEARCH] Fresh: %q -> %d results", query, len(destinations))

	return &Outcome{Action: "fresh", Destinations: destinations}, nil
}

// Refine narrows the current result set with exactly the new constraint. The
// catalog sees only the already shown ids. When fewer than MinResults
// survive, one relaxation pass runs against the full catalog with the
// constraint widened, and the outcome is flagged auto-expanded.
func (p *Planner) Refine(ctx context.Context, message string, entities extract.EntityBag, sctx *store.Context) (*Outcome, error) {
	if !sctx.HasActiveResults() {
		return p.FreshSearch(ctx, message, entities, sctx)
	}

	constraint, q := p.constraintQuery(entities)
	if constraint == nil {
		return &Outcome{Action: "none"}, nil
	}
	q.RestrictToIDs = sctx.ActiveSearch.CurrentResultIDs

	destinations, err := p.catalog.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("refinement failed: %w", err)
	}

	autoExpanded := false
	if len(destinations) < p.cfg.MinResults {
		relaxed := p.relaxQuery(q, sctx)
		wider, err := p.catalog.Find(ctx, relaxed)
		if err == nil && len(wider) > len(destinations) {
			p.logger.Printf("[SEARCH] Relaxation pass: %d -> %d results", len(destinations), len(wider))
			destinations = wider
			autoExpanded = true
		}
	}

	p.nudgePriorities(sctx, constraint.Kind)
	sctx.UpdateActiveSearch(message, IDs(destinations), constraint)
	p.learnFromConstraint(sctx, constraint.Kind, entities)
	p.logger.Printf("[SEARCH] Refine (%s): %d results, auto_expanded=%v",
		constraint.Kind, len(destinations), autoExpanded)

	return &Outcome{
		Action:       "refine",
		Destinations: destinations,
		Constraint:   constraint,
		AutoExpanded: autoExpanded,
	}, nil
}

// applyBudget maps a budget entity onto the query. A max-type budget caps the
// destination's whole range; an exact or vocabulary-range budget only asks
// that the range be reachable at the stated amount.
func applyBudget(q *Query, budget *extract.Budget) {
	if budget == nil || budget.Max <= 0 {
		return
	}
	if budget.Type == extract.BudgetMax {
		q.BudgetMax = budget.Max
		return
	}
	q.BudgetWithin = budget.Max
}

// learnFromConstraint records the durable preference a refinement implies.
func (p *Planner) learnFromConstraint(sctx *store.Context, kind string, entities extract.EntityBag) {
	switch kind {
	case store.ConstraintBudget:
		sctx.LearnPreference("budget_conscious", true)
	case store.ConstraintDuration:
		sctx.LearnPreference("short_trips", entities.DurationDays <= 3)
	}
}

// constraintQuery maps the utterance's narrowing entity to the single
// constraint this refinement applies.
func (p *Planner) constraintQuery(entities extract.EntityBag) (*store.Constraint, Query) {
	var q Query
	switch {
	case entities.Budget != nil && entities.Budget.Max > 0:
		applyBudget(&q, entities.Budget)
		return &store.Constraint{
			Kind:  store.ConstraintBudget,
			Value: fmt.Sprintf("<=%d", entities.Budget.Max),
		}, q
	case entities.DurationDays > 0:
		q.DurationMax = entities.DurationDays
		return &store.Constraint{
			Kind:  store.ConstraintDuration,
			Value: fmt.Sprintf("<=%dd", entities.DurationDays),
		}, q
	case entities.PersonCount > 0:
		// Group size does not map to a catalog attribute; it narrows nothing
		// but is still recorded for ranking downstream.
		return &store.Constraint{
			Kind:  store.ConstraintGroupSize,
			Value: fmt.Sprintf("%d", entities.PersonCount),
		}, q
	case entities.WeatherPreference != "":
		return &store.Constraint{
			Kind:  store.ConstraintWeather,
			Value: entities.WeatherPreference,
		}, q
	}
	return nil, q
}

// relaxQuery widens the refinement by the configured factors and lifts the id
// restriction so the pass draws from the full catalog. The current topic
// keeps the pass on subject when it names an activity.
func (p *Planner) relaxQuery(q Query, sctx *store.Context) Query {
	relaxed := q
	relaxed.RestrictToIDs = nil
	relaxed.Limit = p.cfg.MaxResults
	if relaxed.BudgetMax > 0 {
		relaxed.BudgetMax = int(float64(relaxed.BudgetMax) * p.cfg.RelaxBudgetFactor)
	}
	if relaxed.BudgetWithin > 0 {
		relaxed.BudgetWithin = int(float64(relaxed.BudgetWithin) * p.cfg.RelaxBudgetFactor)
	}
	if relaxed.DurationMax > 0 {
		relaxed.DurationMax += p.cfg.RelaxExtraDays
	}
	// A destination:<name> topic is not a catalog tag and would zero the pass.
	if topic := sctx.CurrentTopic; topic != "" && !strings.HasPrefix(topic, "destination:") && len(relaxed.TagFilter) == 0 {
		relaxed.TagFilter = []string{topic}
		relaxed.TagFilterMode = TagModeRelaxed
	}
	return relaxed
}

// nudgePriorities moves ranking weights when the user leans on the same
// constraint kind again. First application records only the constraint.
func (p *Planner) nudgePriorities(sctx *store.Context, kind string) {
	for _, applied := range sctx.ActiveSearch.ConstraintsApplied {
		if applied.Kind == kind {
			sctx.AdjustRankingPriorities(kind)
			return
		}
	}
}
