package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ActiveSessions struct{}

func (s ActiveSessions) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type BySender struct {
	Sender string
}

func (s BySender) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender = ?", s.Sender)
}

// RecentMessages limits to the newest N rows. Callers that need
// chronological order should reverse the slice afterwards.
type RecentMessages struct {
	Limit int
}

func (s RecentMessages) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Limit(s.Limit)
}
