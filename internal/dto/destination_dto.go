package dto

import (
	"github.com/google/uuid"
)

type CreateDestinationRequest struct {
	Name                string   `json:"name" validate:"required,max=120"`
	State               string   `json:"state" validate:"max=120"`
	Country             string   `json:"country" validate:"max=120"`
	Description         string   `json:"description"`
	Tags                []string `json:"tags" validate:"required,min=1,dive,max=40"`
	BudgetRangeMin      int      `json:"budget_range_min" validate:"gte=0"`
	BudgetRangeMax      int      `json:"budget_range_max" validate:"gtefield=BudgetRangeMin"`
	TypicalDurationDays int      `json:"typical_duration_days" validate:"gte=0"`
	SafetyRating        float64  `json:"safety_rating" validate:"gte=0,lte=10"`
	PopularityScore     float64  `json:"popularity_score" validate:"gte=0"`
	Latitude            float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude           float64  `json:"longitude" validate:"gte=-180,lte=180"`
	ClimateType         string   `json:"climate_type" validate:"max=40"`
}

type CreateDestinationResponse struct {
	Id uuid.UUID `json:"id"`
}

type ListDestinationsRequest struct {
	Tag       string `query:"tag"`
	State     string `query:"state"`
	BudgetMax int    `query:"budget_max"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

type ShowDestinationResponse struct {
	DestinationCardDTO
	Country     string              `json:"country"`
	Latitude    float64             `json:"latitude"`
	Longitude   float64             `json:"longitude"`
	ClimateType string              `json:"climate_type"`
	Weather     *WeatherSnapshotDTO `json:"weather,omitempty"`
}
