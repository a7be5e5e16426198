package domain

import (
	"strings"
	"time"
)

// Favorite is a user's bookmark on an animal. A pair is unique.
type Favorite struct {
	ID        int64     `json:"favorite_id"`
	UserID    int64     `json:"user_id"`
	CattleID  int64     `json:"cattle_id"`
	CreatedAt time.Time `json:"created_at"`
}

type FavoriteCreate struct {
	UserID   int64 `json:"user_id" validate:"required,gt=0"`
	CattleID int64 `json:"cattle_id" validate:"required,gt=0"`
}

func (in FavoriteCreate) Validate() error {
	if in.UserID <= 0 {
		return Invalid("user_id", "is required")
	}
	if in.CattleID <= 0 {
		return Invalid("cattle_id", "is required")
	}
	return nil
}

// Notification is a short message addressed to one user.
type Notification struct {
	ID        int64      `json:"notification_id"`
	UserID    int64      `json:"user_id"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}

type NotificationCreate struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Message string `json:"message" validate:"required,max=255"`
}

func (in NotificationCreate) Validate() error {
	if in.UserID <= 0 {
		return Invalid("user_id", "is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return Invalid("message", "is required")
	}
	return nil
}

type NotificationPatch struct {
	Message *string    `json:"message" validate:"omitempty,min=1,max=255"`
	ReadAt  *time.Time `json:"read_at"`
}

func (p NotificationPatch) Validate() error {
	if p.Message != nil && strings.TrimSpace(*p.Message) == "" {
		return Invalid("message", "must not be empty")
	}
	return nil
}

// Message is a text exchanged between two users.
type Message struct {
	ID         int64     `json:"message_id"`
	SenderID   *int64    `json:"sender_id"`
	ReceiverID *int64    `json:"receiver_id"`
	Content    string    `json:"message_content"`
	SentAt     time.Time `json:"sent_at"`
}

type MessageCreate struct {
	SenderID   int64  `json:"sender_id" validate:"required,gt=0"`
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	Content    string `json:"message_content" validate:"required,max=1000"`
}

func (in MessageCreate) Validate() error {
	if in.SenderID <= 0 {
		return Invalid("sender_id", "is required")
	}
	if in.ReceiverID <= 0 {
		return Invalid("receiver_id", "is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return Invalid("message_content", "is required")
	}
	if len(in.Content) > 1000 {
		return Invalid("message_content", "must be at most 1000 characters")
	}
	return nil
}
