package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInbound struct {
	calls []TypingData
	err   error
}

func (f *fakeInbound) RelayTyping(ctx context.Context, userID, chatID string, typing bool) error {
	f.calls = append(f.calls, TypingData{ChatID: chatID, UserID: userID, Typing: typing})
	return f.err
}

func decode(t *testing.T, raw []byte) WSMessage {
	t.Helper()
	var msg WSMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestManagerNotifyReachesEveryConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	phone := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	laptop := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	m.Register <- phone
	m.Register <- laptop

	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		return len(m.clients["u1"]) == 2
	}, time.Second, 5*time.Millisecond)

	m.Notify("u1", EventNewMessage, map[string]string{"chat_id": "c1"})

	for _, c := range []*Client{phone, laptop} {
		select {
		case raw := <-c.Send:
			assert.Equal(t, EventNewMessage, decode(t, raw).Type)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}

	m.Notify("nobody", EventNewMessage, nil)
}

func TestManagerDropsWhenBufferFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	c := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	m.Register <- c
	require.Eventually(t, func() bool { return m.IsOnline("u1") }, time.Second, 5*time.Millisecond)

	m.Notify("u1", EventOrderUpdate, nil)
	m.Notify("u1", EventOrderUpdate, nil)
	assert.Len(t, c.Send, 1)

	m.Unregister <- c
	require.Eventually(t, func() bool { return !m.IsOnline("u1") }, time.Second, 5*time.Millisecond)
}

func TestHandleClientMessage(t *testing.T) {
	m := NewManager()
	inbound := &fakeInbound{}
	m.SetInboundHandler(inbound)

	c := &Client{UserID: "u1", Send: make(chan []byte, 4)}

	m.HandleClientMessage(c, []byte(`{"type":"ping"}`))
	assert.Equal(t, EventPong, decode(t, <-c.Send).Type)

	m.HandleClientMessage(c, []byte(`{"type":"typing","data":{"chat_id":"c1","typing":true}}`))
	require.Len(t, inbound.calls, 1)
	assert.Equal(t, TypingData{ChatID: "c1", UserID: "u1", Typing: true}, inbound.calls[0])

	m.HandleClientMessage(c, []byte(`not json`))
	assert.Equal(t, EventError, decode(t, <-c.Send).Type)

	inbound.err = errors.New("forbidden")
	m.HandleClientMessage(c, []byte(`{"type":"typing","data":{"chat_id":"c2","typing":false}}`))
	assert.Equal(t, EventError, decode(t, <-c.Send).Type)

	m.HandleClientMessage(c, []byte(`{"type":"dance"}`))
	assert.Equal(t, EventError, decode(t, <-c.Send).Type)
}

func TestManagerShutdownReleasesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := NewManager()
	m.Start(ctx)

	c := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	require.True(t, m.Add(c))
	require.Eventually(t, func() bool { return m.IsOnline("u1") }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("send channel left open")
	}
	assert.False(t, m.IsOnline("u1"))

	removed := make(chan struct{})
	go func() {
		m.Remove(c)
		close(removed)
	}()
	select {
	case <-removed:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("unregister blocked after shutdown")
	}

	assert.False(t, m.Add(&Client{UserID: "u2", Send: make(chan []byte, 1)}))
	m.Notify("u1", EventNewMessage, nil)
}
