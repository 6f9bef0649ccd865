package entity

import (
	"time"

	"github.com/google/uuid"
)

type Destination struct {
	Id                  uuid.UUID
	Name                string
	State               string
	Country             string
	Description         string
	Tags                []string
	BudgetRangeMin      int
	BudgetRangeMax      int
	TypicalDurationDays int
	SafetyRating        float64
	PopularityScore     float64
	Latitude            float64
	Longitude           float64
	ClimateType         string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
