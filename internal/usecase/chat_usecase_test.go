package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/service"
	ws "gamebazaar/internal/infrastructure/websocket"
	"gamebazaar/pkg/errors"
)

func startChat(t *testing.T, f *fixture) string {
	t.Helper()
	view, created, err := f.chat.StartChat(context.Background(), buyerActor, "u2")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "u2", view.Partner.ID)
	return view.ID
}

func TestSubmitTextBlocksExternalLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chatID := startChat(t, f)

	res, err := f.chat.SubmitText(ctx, chatID, "u1", "pay me here https://evil.example/pay")
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Equal(t, entity.MessageTypeWarning, res.Message.Type)
	assert.Equal(t, entity.SenderSystem, res.Message.SenderID)

	msgs, total, err := f.chat.GetMessages(ctx, chatID, "u1", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	for _, m := range msgs {
		assert.NotEqual(t, entity.MessageTypeText, m.Type)
	}
}

func TestSubmitTextAllowsPlatformLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chatID := startChat(t, f)

	res, err := f.chat.SubmitText(ctx, chatID, "u1", "  see https://gamebazaar.com/listing/l1  ")
	require.NoError(t, err)
	assert.False(t, res.Blocked)
	assert.Equal(t, entity.MessageTypeText, res.Message.Type)
	assert.Equal(t, "see https://gamebazaar.com/listing/l1", res.Message.Text)
	assert.False(t, res.Message.IsRead)

	view, err := f.chat.GetChat(ctx, chatID, "u2")
	require.NoError(t, err)
	assert.Equal(t, res.Message.Text, view.LastMessage)
	assert.Equal(t, 1, view.UnreadCount)
	assert.Equal(t, 1, f.notifier.count("u2", ws.EventNewMessage))
}

func TestSubmitTextValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chatID := startChat(t, f)

	_, err := f.chat.SubmitText(ctx, chatID, "u1", "   ")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.chat.SubmitText(ctx, chatID, "a1", "hello")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.chat.SubmitText(ctx, "missing", "u1", "hello")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestSubmitImageIsNotModerated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chatID := startChat(t, f)

	res, err := f.chat.SubmitImage(ctx, chatID, "u2", "https://elsewhere.example/pic.png")
	require.NoError(t, err)
	assert.False(t, res.Blocked)
	assert.Equal(t, entity.MessageTypeImage, res.Message.Type)

	view, err := f.chat.GetChat(ctx, chatID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.PreviewGeneric, view.LastMessage)
}

func TestSubmitTextRateLimited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chatID := startChat(t, f)

	limited := NewChatUseCase(f.chats, f.users, service.NewLinkPolicy("gamebazaar"), f.notifier, fakeLimiter{allow: false})
	_, err := limited.SubmitText(ctx, chatID, "u1", "hello")
	assert.True(t, errors.Is(err, errors.CodeTooManyRequests))
}

func TestStartChatIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chatID := startChat(t, f)

	view, created, err := f.chat.StartChat(ctx, sellerActor, "u1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, chatID, view.ID)

	chats, err := f.chat.ListChats(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestMarkReadAndTyping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chatID := startChat(t, f)

	_, err := f.chat.SubmitText(ctx, chatID, "u1", "hello")
	require.NoError(t, err)
	require.NoError(t, f.chat.MarkRead(ctx, chatID, "u2"))

	view, err := f.chat.GetChat(ctx, chatID, "u2")
	require.NoError(t, err)
	assert.Zero(t, view.UnreadCount)

	require.NoError(t, f.chat.RelayTyping(ctx, "u2", chatID, true))
	assert.Equal(t, 1, f.notifier.count("u1", ws.EventTyping))
	assert.Error(t, f.chat.RelayTyping(ctx, "a1", chatID, true))
}
