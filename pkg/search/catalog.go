// Package search drives progressive filtering over the destination catalog:
// a fresh search runs the full catalog query, a refinement narrows the ids
// already shown, and a thin relaxation pass widens exactly once when a
// refinement leaves too little to choose from.
package search

import (
	"context"

	"github.com/google/uuid"
)

// Filter modes for tag queries.
const (
	TagModeStrict  = "strict"
	TagModeRelaxed = "relaxed"
)

// Query is the outbound contract to the catalog collaborator. Zero values
// mean "no filter". BudgetMax is a hard cap (the whole range must fit);
// BudgetWithin keeps places whose range straddles a stated amount.
// RestrictToIDs pins a refinement to the ids already shown instead of
// re-querying the whole catalog.
type Query struct {
	TagFilter     []string    `json:"tag_filter,omitempty"`
	TagFilterMode string      `json:"tag_filter_mode,omitempty"`
	BudgetMax     int         `json:"budget_max,omitempty"`
	BudgetWithin  int         `json:"budget_within,omitempty"`
	DurationMax   int         `json:"duration_max,omitempty"`
	RestrictToIDs []uuid.UUID `json:"restrict_to_ids,omitempty"`
	Location      string      `json:"location,omitempty"`
	Limit         int         `json:"limit,omitempty"`
}

// Destination is the catalog's read-only view of one destination: an opaque
// id plus the scalar attributes filtering needs.
type Destination struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	State               string    `json:"state"`
	BudgetMin           int       `json:"budget_min"`
	BudgetMax           int       `json:"budget_max"`
	TypicalDurationDays int       `json:"typical_duration_days"`
	Tags                []string  `json:"tags"`
}

// Catalog executes attribute-filter queries. Implemented by the destination
// service over the database.
type Catalog interface {
	Find(ctx context.Context, q Query) ([]Destination, error)
}

// IDs projects a result list to its id sequence, the shape the
// active-search ledger stores.
func IDs(destinations []Destination) []uuid.UUID {
	ids := make([]uuid.UUID, len(destinations))
	for i, d := range destinations {
		ids[i] = d.ID
	}
	return ids
}
