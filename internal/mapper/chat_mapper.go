package mapper

import (
	"encoding/json"
	"time"

	"ai-travelmate-be/internal/entity"
	"ai-travelmate-be/internal/model"
	"ai-travelmate-be/pkg/nlu"
	"ai-travelmate-be/pkg/nlu/extract"
	"ai-travelmate-be/pkg/store"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:            s.Id,
		UserId:        s.UserId,
		Title:         s.Title,
		IsActive:      s.IsActive,
		TotalMessages: s.TotalMessages,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
		IsDeleted:     s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:            s.Id,
		UserId:        s.UserId,
		Title:         s.Title,
		IsActive:      s.IsActive,
		TotalMessages: s.TotalMessages,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var entities *extract.EntityBag
	if len(msg.DetectedEntities) > 0 {
		var bag extract.EntityBag
		if err := json.Unmarshal(msg.DetectedEntities, &bag); err == nil {
			entities = &bag
		}
	}

	return &entity.ChatMessage{
		Id:               msg.Id,
		ChatSessionId:    msg.ChatSessionId,
		Sender:           msg.Sender,
		Content:          msg.Content,
		DetectedIntent:   nlu.Intent(msg.DetectedIntent),
		DetectedEntities: entities,
		Confidence:       msg.Confidence,
		ResponseTimeMs:   msg.ResponseTimeMs,
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var entities datatypes.JSON
	if msg.DetectedEntities != nil {
		if data, err := json.Marshal(msg.DetectedEntities); err == nil {
			entities = data
		}
	}

	return &model.ChatMessage{
		Id:               msg.Id,
		ChatSessionId:    msg.ChatSessionId,
		Sender:           msg.Sender,
		Content:          msg.Content,
		DetectedIntent:   string(msg.DetectedIntent),
		DetectedEntities: entities,
		Confidence:       msg.Confidence,
		ResponseTimeMs:   msg.ResponseTimeMs,
		CreatedAt:        msg.CreatedAt,
	}
}

// Conversation State Mappers

func (m *ChatMapper) ConversationStateToEntity(s *model.ConversationState) *entity.ConversationState {
	if s == nil {
		return nil
	}

	var ctx *store.Context
	if len(s.ContextData) > 0 {
		var decoded store.Context
		if err := json.Unmarshal(s.ContextData, &decoded); err == nil {
			decoded.EnsureDefaults()
			ctx = &decoded
		}
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ConversationState{
		Id:            s.Id,
		ChatSessionId: s.ChatSessionId,
		Context:       ctx,
		LastIntent:    s.LastIntent,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ChatMapper) ConversationStateToModel(s *entity.ConversationState) *model.ConversationState {
	if s == nil {
		return nil
	}

	var contextData datatypes.JSON
	if s.Context != nil {
		if data, err := json.Marshal(s.Context); err == nil {
			contextData = data
		}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ConversationState{
		Id:            s.Id,
		ChatSessionId: s.ChatSessionId,
		ContextData:   contextData,
		LastIntent:    s.LastIntent,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}
