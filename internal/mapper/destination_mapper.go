package mapper

import (
	"encoding/json"
	"time"

	"ai-travelmate-be/internal/entity"
	"ai-travelmate-be/internal/model"

	"gorm.io/datatypes"
)

type DestinationMapper struct{}

func NewDestinationMapper() *DestinationMapper {
	return &DestinationMapper{}
}

func (m *DestinationMapper) ToEntity(d *model.Destination) *entity.Destination {
	if d == nil {
		return nil
	}

	var tags []string
	if len(d.Tags) > 0 {
		_ = json.Unmarshal(d.Tags, &tags)
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Destination{
		Id:                  d.Id,
		Name:                d.Name,
		State:               d.State,
		Country:             d.Country,
		Description:         d.Description,
		Tags:                tags,
		BudgetRangeMin:      d.BudgetRangeMin,
		BudgetRangeMax:      d.BudgetRangeMax,
		TypicalDurationDays: d.TypicalDurationDays,
		SafetyRating:        d.SafetyRating,
		PopularityScore:     d.PopularityScore,
		Latitude:            d.Latitude,
		Longitude:           d.Longitude,
		ClimateType:         d.ClimateType,
		IsActive:            d.IsActive,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *DestinationMapper) ToModel(d *entity.Destination) *model.Destination {
	if d == nil {
		return nil
	}

	var tags datatypes.JSON
	if d.Tags != nil {
		if data, err := json.Marshal(d.Tags); err == nil {
			tags = data
		}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Destination{
		Id:                  d.Id,
		Name:                d.Name,
		State:               d.State,
		Country:             d.Country,
		Description:         d.Description,
		Tags:                tags,
		BudgetRangeMin:      d.BudgetRangeMin,
		BudgetRangeMax:      d.BudgetRangeMax,
		TypicalDurationDays: d.TypicalDurationDays,
		SafetyRating:        d.SafetyRating,
		PopularityScore:     d.PopularityScore,
		Latitude:            d.Latitude,
		Longitude:           d.Longitude,
		ClimateType:         d.ClimateType,
		IsActive:            d.IsActive,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}
