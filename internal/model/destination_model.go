package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Destination struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                string         `gorm:"type:varchar(120);not null;uniqueIndex"`
	State               string         `gorm:"type:varchar(120)"`
	Country             string         `gorm:"type:varchar(120);default:'India'"`
	Description         string         `gorm:"type:text"`
	Tags                datatypes.JSON `gorm:"type:jsonb"`
	BudgetRangeMin      int            `gorm:"not null;default:0;index"`
	BudgetRangeMax      int            `gorm:"not null;default:0"`
	TypicalDurationDays int            `gorm:"not null;default:0;index"`
	SafetyRating        float64        `gorm:"type:numeric(3,1);default:0"`
	PopularityScore     float64        `gorm:"type:numeric(4,1);default:0"`
	Latitude            float64        `gorm:"type:numeric(9,6);default:0"`
	Longitude           float64        `gorm:"type:numeric(9,6);default:0"`
	ClimateType         string         `gorm:"type:varchar(40)"`
	IsActive            bool           `gorm:"not null;default:true;index"`
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
}

func (Destination) TableName() string {
	return "destinations"
}
