package websocket

import (
	"context"
	"encoding/json"
	"time"

	"gamebazaar/pkg/logger"
)

// Event types pushed to or received from clients.
const (
	EventPing        = "ping"
	EventPong        = "pong"
	EventTyping      = "typing"
	EventNewMessage  = "new_message"
	EventOrderUpdate = "order_update"
	EventNewBid      = "new_bid"
	EventError       = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type TypingData struct {
	ChatID string `json:"chat_id"`
	UserID string `json:"user_id,omitempty"`
	Typing bool   `json:"typing"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// HandleClientMessage dispatches one frame read from a client.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		logger.Debug("WebSocket: malformed frame from %s: %v", client.UserID, err)
		m.sendError(client, "Invalid message format")
		return
	}

	switch msg.Type {
	case EventPing:
		m.reply(client, EventPong, nil)

	case EventTyping:
		var data TypingData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.ChatID == "" {
			m.sendError(client, "Invalid typing event")
			return
		}
		if m.inbound == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.inbound.RelayTyping(ctx, client.UserID, data.ChatID, data.Typing); err != nil {
			m.sendError(client, err.Error())
		}

	default:
		m.sendError(client, "Unknown message type: "+msg.Type)
	}
}

func (m *Manager) reply(client *Client, eventType string, payload interface{}) {
	data, err := json.Marshal(WSMessage{
		Type:      eventType,
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}

func (m *Manager) sendError(client *Client, message string) {
	m.reply(client, EventError, ErrorData{Message: message})
}
