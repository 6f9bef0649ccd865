package unitofwork

import (
	"context"

	"ai-travelmate-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ConversationStateRepository() contract.ConversationStateRepository
	DestinationRepository() contract.DestinationRepository
}
