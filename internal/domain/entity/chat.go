package entity

import "time"

// Chat is a conversation between two participants with an append-only log.
type Chat struct {
	ID            string         `json:"id"`
	Participants  []UserSummary  `json:"participants"`
	Messages      []*Message     `json:"-"`
	LastMessage   string         `json:"last_message,omitempty"`
	LastMessageAt time.Time      `json:"last_message_at"`
	UnreadCount   map[string]int `json:"unread_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// Partner returns the participant that is not userID.
func (c *Chat) Partner(userID string) UserSummary {
	for _, p := range c.Participants {
		if p.ID != userID {
			return p
		}
	}
	return UserSummary{}
}

// LatestOrderMessage returns the most recent order ticket, or nil.
func (c *Chat) LatestOrderMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Type == MessageTypeOrder {
			return c.Messages[i]
		}
	}
	return nil
}

func (c *Chat) OrderMessage(orderID string) *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		m := c.Messages[i]
		if m.Type == MessageTypeOrder && m.Order.OrderID == orderID {
			return m
		}
	}
	return nil
}

// Snapshot deep-copies the chat so callers never share the store's state.
func (c *Chat) Snapshot() *Chat {
	cp := *c
	cp.Participants = append([]UserSummary(nil), c.Participants...)
	cp.UnreadCount = make(map[string]int, len(c.UnreadCount))
	for k, v := range c.UnreadCount {
		cp.UnreadCount[k] = v
	}
	cp.Messages = make([]*Message, len(c.Messages))
	for i, m := range c.Messages {
		cp.Messages[i] = m.Clone()
	}
	return &cp
}

// ChatView is a conversation as seen by one of its participants.
type ChatView struct {
	ID            string        `json:"id"`
	Partner       UserSummary   `json:"partner"`
	LastMessage   string        `json:"last_message,omitempty"`
	LastMessageAt time.Time     `json:"last_message_at"`
	UnreadCount   int           `json:"unread_count"`
	ActiveOrder   *OrderDetails `json:"active_order,omitempty"`
}

func (c *Chat) ViewFor(userID string) ChatView {
	view := ChatView{
		ID:            c.ID,
		Partner:       c.Partner(userID),
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   c.UnreadCount[userID],
	}
	if m := c.LatestOrderMessage(); m != nil {
		view.ActiveOrder = m.Order.Clone()
	}
	return view
}
