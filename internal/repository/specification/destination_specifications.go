package specification

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActiveDestinations struct{}

func (s ActiveDestinations) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// HasAllTags matches destinations whose tags jsonb array contains every
// given tag (Postgres @> containment).
type HasAllTags struct {
	Tags []string
}

func (s HasAllTags) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Tags) == 0 {
		return db
	}
	encoded, err := json.Marshal(s.Tags)
	if err != nil {
		return db
	}
	return db.Where("tags @> ?", string(encoded))
}

// HasAnyTag matches destinations whose tags jsonb array overlaps the
// given list. Uses jsonb_exists_any because the ?| operator collides
// with the driver's placeholder syntax.
type HasAnyTag struct {
	Tags []string
}

func (s HasAnyTag) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Tags) == 0 {
		return db
	}
	return db.Where("jsonb_exists_any(tags, ?::text[])", "{"+strings.Join(s.Tags, ",")+"}")
}

// BudgetAtMost keeps destinations whose entire budget range fits under the
// cap: "under 30000" must not surface a place that can overrun it.
type BudgetAtMost struct {
	Max int
}

func (s BudgetAtMost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("budget_range_max <= ?", s.Max)
}

// BudgetWithin keeps destinations whose budget range straddles a stated
// amount, for "my budget is 30000" rather than "under 30000".
type BudgetWithin struct {
	Amount int
}

func (s BudgetWithin) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("budget_range_min <= ? AND budget_range_max >= ?", s.Amount, s.Amount)
}

type DurationAtMost struct {
	Days int
}

func (s DurationAtMost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("typical_duration_days <= ?", s.Days)
}

type ByNameLike struct {
	Name string
}

func (s ByNameLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", "%"+s.Name+"%")
}

type ByState struct {
	State string
}

func (s ByState) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("state ILIKE ?", s.State)
}

type ExcludeIDs struct {
	IDs []uuid.UUID
}

func (s ExcludeIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.IDs) == 0 {
		return db
	}
	return db.Where("id NOT IN ?", s.IDs)
}
