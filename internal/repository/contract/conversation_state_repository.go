package contract

import (
	"context"

	"ai-travelmate-be/internal/entity"

	"github.com/google/uuid"
)

// ConversationStateRepository persists one dialogue context per session.
// Upsert keys on chat_session_id so a turn never races itself into
// duplicate rows.
type ConversationStateRepository interface {
	Upsert(ctx context.Context, state *entity.ConversationState) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.ConversationState, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
