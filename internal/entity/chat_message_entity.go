package entity

import (
	"time"

	"ai-travelmate-be/pkg/nlu"
	"ai-travelmate-be/pkg/nlu/extract"

	"github.com/google/uuid"
)

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

type ChatMessage struct {
	Id               uuid.UUID
	ChatSessionId    uuid.UUID
	Sender           string
	Content          string
	DetectedIntent   nlu.Intent
	DetectedEntities *extract.EntityBag
	Confidence       float64
	ResponseTimeMs   int
	CreatedAt        time.Time
}
