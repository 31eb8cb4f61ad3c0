package entity

import (
	"errors"
	"fmt"
	"time"
)

type MessageType string

const (
	MessageTypeText    MessageType = "text"
	MessageTypeImage   MessageType = "image"
	MessageTypeOrder   MessageType = "order"
	MessageTypeSystem  MessageType = "system"
	MessageTypeAdmin   MessageType = "admin"
	MessageTypeWarning MessageType = "warning"
)

const (
	PreviewOrder   = "new order"
	PreviewGeneric = "message"
)

var ErrInvalidMessage = errors.New("invalid message")

// Message is a tagged union: Type decides which one of Text, Image or Order is set.
type Message struct {
	ID        string        `json:"id" firestore:"id"`
	ChatID    string        `json:"chat_id" firestore:"chatId"`
	SenderID  string        `json:"sender_id" firestore:"senderId"`
	Type      MessageType   `json:"type" firestore:"type"`
	Text      string        `json:"text,omitempty" firestore:"text,omitempty"`
	Image     string        `json:"image,omitempty" firestore:"image,omitempty"`
	Order     *OrderDetails `json:"order_details,omitempty" firestore:"orderDetails,omitempty"`
	IsRead    bool          `json:"is_read" firestore:"isRead"`
	CreatedAt time.Time     `json:"timestamp" firestore:"createdAt"`
}

func NewTextMessage(senderID, text string) *Message {
	return &Message{SenderID: senderID, Type: MessageTypeText, Text: text}
}

func NewImageMessage(senderID, imageURL string) *Message {
	return &Message{SenderID: senderID, Type: MessageTypeImage, Image: imageURL}
}

func NewOrderMessage(senderID string, details *OrderDetails) *Message {
	return &Message{SenderID: senderID, Type: MessageTypeOrder, Order: details}
}

func NewSystemMessage(text string) *Message {
	return &Message{SenderID: SenderSystem, Type: MessageTypeSystem, Text: text}
}

func NewAdminMessage(text string) *Message {
	return &Message{SenderID: SenderAdmin, Type: MessageTypeAdmin, Text: text}
}

func NewWarningMessage(text string) *Message {
	return &Message{SenderID: SenderSystem, Type: MessageTypeWarning, Text: text}
}

// Validate checks that exactly the payload matching Type is populated.
func (m *Message) Validate() error {
	if m.SenderID == "" {
		return fmt.Errorf("%w: missing sender", ErrInvalidMessage)
	}

	hasText, hasImage, hasOrder := m.Text != "", m.Image != "", m.Order != nil

	switch m.Type {
	case MessageTypeText, MessageTypeSystem, MessageTypeAdmin, MessageTypeWarning:
		if !hasText || hasImage || hasOrder {
			return fmt.Errorf("%w: %s message needs text payload only", ErrInvalidMessage, m.Type)
		}
	case MessageTypeImage:
		if !hasImage || hasText || hasOrder {
			return fmt.Errorf("%w: image message needs image payload only", ErrInvalidMessage)
		}
	case MessageTypeOrder:
		if !hasOrder || hasText || hasImage {
			return fmt.Errorf("%w: order message needs order payload only", ErrInvalidMessage)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, m.Type)
	}

	if (m.Type == MessageTypeSystem || m.Type == MessageTypeWarning) && m.SenderID != SenderSystem {
		return fmt.Errorf("%w: %s message must come from %s", ErrInvalidMessage, m.Type, SenderSystem)
	}
	if m.Type == MessageTypeAdmin && m.SenderID != SenderAdmin {
		return fmt.Errorf("%w: admin message must come from %s", ErrInvalidMessage, SenderAdmin)
	}

	return nil
}

// Preview is the denormalized conversation-list text for this message.
func (m *Message) Preview() string {
	switch m.Type {
	case MessageTypeText:
		return m.Text
	case MessageTypeOrder:
		return PreviewOrder
	default:
		return PreviewGeneric
	}
}

func (m *Message) Clone() *Message {
	cp := *m
	if m.Order != nil {
		cp.Order = m.Order.Clone()
	}
	return &cp
}
