package dto

import "github.com/google/uuid"

// TurnCompletedMessage is the payload published after every chat turn.
// The consumer updates session counters; NATS mirrors it for external
// analytics.
type TurnCompletedMessage struct {
	ChatSessionId  uuid.UUID `json:"chat_session_id"`
	UserMessageId  uuid.UUID `json:"user_message_id"`
	BotMessageId   uuid.UUID `json:"bot_message_id"`
	Intent         string    `json:"intent"`
	Source         string    `json:"source"`
	Confidence     float64   `json:"confidence"`
	ResponseTimeMs int       `json:"response_time_ms"`
}
