package models

import (
	"encoding/json"
	"time"
)

type Chat struct {
	ID        int       `json:"id"`
	TripID    int       `json:"trip_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMember struct {
	ChatID   int       `json:"chat_id"`
	UserID   int       `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

const (
	MessageTypeText     = "TEXT"
	MessageTypeImage    = "IMAGE"
	MessageTypeLocation = "LOCATION"
)

type Message struct {
	ID        string          `json:"id"`
	ChatID    int             `json:"chat_id"`
	SenderID  int             `json:"sender_id"`
	Content   string          `json:"content"`
	Type      string          `json:"type"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreateMessageRequest struct {
	Content  string          `json:"content"`
	Type     string          `json:"type"`
	Metadata json.RawMessage `json:"metadata"`
}

type ChatResponse struct {
	ChatID   int          `json:"chat_id"`
	TripID   int          `json:"trip_id"`
	Members  []ChatMember `json:"members"`
	Messages []Message    `json:"messages"`
}

// MemberIDs lists the member user ids, for push and websocket delivery.
func (c ChatResponse) MemberIDs() []int {
	ids := make([]int, 0, len(c.Members))
	for _, member := range c.Members {
		ids = append(ids, member.UserID)
	}
	return ids
}
