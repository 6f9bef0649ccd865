package implementation

import (
	"context"
	"errors"

	"ai-travelmate-be/internal/entity"
	"ai-travelmate-be/internal/mapper"
	"ai-travelmate-be/internal/model"
	"ai-travelmate-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewConversationStateRepository(db *gorm.DB) contract.ConversationStateRepository {
	return &ConversationStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ConversationStateRepositoryImpl) Upsert(ctx context.Context, state *entity.ConversationState) error {
	m := r.mapper.ConversationStateToModel(state)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"context_data", "last_intent", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*state = *r.mapper.ConversationStateToEntity(m)
	return nil
}

func (r *ConversationStateRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.ConversationState, error) {
	var m model.ConversationState
	err := r.db.WithContext(ctx).
		Where("chat_session_id = ?", sessionId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConversationStateToEntity(&m), nil
}

func (r *ConversationStateRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("chat_session_id = ?", sessionId).
		Delete(&model.ConversationState{}).
		Error
}
