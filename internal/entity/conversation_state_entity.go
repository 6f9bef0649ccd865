package entity

import (
	"time"

	"ai-travelmate-be/pkg/store"

	"github.com/google/uuid"
)

// ConversationState is the durable form of one session's dialogue context.
// It exists 1:1 with a ChatSession and is rewritten at the end of every turn.
type ConversationState struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Context       *store.Context
	LastIntent    string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
