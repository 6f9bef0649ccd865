package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"max=200"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	IsActive      bool       `json:"is_active"`
	TotalMessages int        `json:"total_messages"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type RenameSessionRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required,max=200"`
}
