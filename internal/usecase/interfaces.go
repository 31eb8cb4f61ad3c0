package usecase

import (
	"time"

	"gamebazaar/internal/domain/entity"
)

// Notifier pushes real-time events to connected users.
type Notifier interface {
	Notify(userID, eventType string, payload interface{})
}

type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}

type NewMessageEvent struct {
	ChatID  string          `json:"chat_id"`
	Message *entity.Message `json:"message"`
}

type OrderUpdateEvent struct {
	ChatID string               `json:"chat_id"`
	Order  *entity.OrderDetails `json:"order"`
}

type TypingEvent struct {
	ChatID string `json:"chat_id"`
	UserID string `json:"user_id"`
	Typing bool   `json:"typing"`
}

type NewBidEvent struct {
	RequestID string      `json:"request_id"`
	Bid       *entity.Bid `json:"bid"`
}
