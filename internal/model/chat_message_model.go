package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Sender           string         `gorm:"type:varchar(10);not null"`
	Content          string         `gorm:"type:text;not null"`
	DetectedIntent   string         `gorm:"type:varchar(50)"`
	DetectedEntities datatypes.JSON `gorm:"type:jsonb"`
	Confidence       float64        `gorm:"type:numeric(4,3);default:0"`
	ResponseTimeMs   int            `gorm:"default:0"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index"`

	ChatSession *ChatSession `gorm:"foreignKey:ChatSessionId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
