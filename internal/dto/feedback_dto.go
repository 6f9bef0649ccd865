package dto

import "github.com/google/uuid"

type SendFeedbackRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	MessageId     uuid.UUID `json:"message_id" validate:"required"`
	Feedback      string    `json:"feedback" validate:"required,oneof=positive negative correction"`
	CorrectIntent string    `json:"correct_intent,omitempty"`
}

type SendFeedbackResponse struct {
	Learned bool   `json:"learned"`
	Message string `json:"message"`
}
