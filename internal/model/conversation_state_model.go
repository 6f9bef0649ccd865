package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationState struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	ContextData   datatypes.JSON `gorm:"type:jsonb"`
	LastIntent    string         `gorm:"type:varchar(50)"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`

	ChatSession *ChatSession `gorm:"foreignKey:ChatSessionId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ConversationState) TableName() string {
	return "conversation_states"
}
