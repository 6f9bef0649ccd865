package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Message       string    `json:"message" validate:"required,max=2000"`
}

// Response types tell the frontend which rendering path to take.
const (
	ResponseTypeRecommendations = "recommendations"
	ResponseTypeRefinement      = "refinement"
	ResponseTypeDetail          = "detail"
	ResponseTypeClarification   = "clarification"
	ResponseTypeTopicConfirm    = "topic_confirmation"
	ResponseTypeRemediation     = "remediation"
	ResponseTypeText            = "text"
)

type DestinationCardDTO struct {
	Id              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	State           string    `json:"state"`
	Description     string    `json:"description"`
	Tags            []string  `json:"tags"`
	BudgetRangeMin  int       `json:"budget_range_min"`
	BudgetRangeMax  int       `json:"budget_range_max"`
	DurationDays    int       `json:"duration_days"`
	SafetyRating    float64   `json:"safety_rating"`
	PopularityScore float64   `json:"popularity_score"`
}

type WeatherSnapshotDTO struct {
	Condition string  `json:"condition"`
	TempC     float64 `json:"temp_c"`
}

type SendChatResponse struct {
	ChatSessionId  uuid.UUID            `json:"chat_session_id"`
	UserMessageId  uuid.UUID            `json:"user_message_id"`
	BotMessageId   uuid.UUID            `json:"bot_message_id"`
	Intent         string               `json:"intent"`
	Confidence     float64              `json:"confidence"`
	Source         string               `json:"source"`
	ResponseType   string               `json:"response_type"`
	Text           string               `json:"text"`
	Destinations   []DestinationCardDTO `json:"destinations,omitempty"`
	Weather        *WeatherSnapshotDTO  `json:"weather,omitempty"`
	Suggestions    []string             `json:"suggestions,omitempty"`
	AutoExpanded   bool                 `json:"auto_expanded,omitempty"`
	ResponseTimeMs int                  `json:"response_time_ms"`
}

type GetChatHistoryResponse struct {
	Id             uuid.UUID `json:"id"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	DetectedIntent string    `json:"detected_intent,omitempty"`
	Confidence     float64   `json:"confidence,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
