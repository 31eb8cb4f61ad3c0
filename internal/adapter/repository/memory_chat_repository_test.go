package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/pkg/errors"
)

var (
	buyer  = entity.UserSummary{ID: "u1", Username: "buyer"}
	seller = entity.UserSummary{ID: "u2", Username: "seller"}
)

func frozenClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func newTicket(orderID string) *entity.Message {
	return entity.NewOrderMessage("u1", &entity.OrderDetails{
		OrderID:  orderID,
		Title:    "Gold",
		Price:    850,
		Currency: "RUB",
		Status:   entity.OrderStatusPaid,
		BuyerID:  "u1",
		SellerID: "u2",
	})
}

func TestFindOrCreateIsIdempotentPerPair(t *testing.T) {
	repo := newMemoryChatRepository(time.Now)
	ctx := context.Background()

	first, created, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repo.FindOrCreate(ctx, seller, buyer)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	_, _, err = repo.FindOrCreate(ctx, buyer, buyer)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestAppendMessagesOrderingAndPreview(t *testing.T) {
	repo := newMemoryChatRepository(frozenClock())
	ctx := context.Background()

	chat, _, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)

	stored, err := repo.AppendMessages(ctx, chat.ID,
		entity.NewAdminMessage("Payment received"),
		newTicket("o1"),
	)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.True(t, stored[1].CreatedAt.After(stored[0].CreatedAt))

	got, err := repo.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PreviewOrder, got.LastMessage)
	assert.Equal(t, 2, got.UnreadCount["u2"])
	assert.Equal(t, 1, got.UnreadCount["u1"])

	_, err = repo.AppendMessages(ctx, chat.ID, entity.NewTextMessage("u2", "hi"))
	require.NoError(t, err)
	_, err = repo.AppendMessages(ctx, chat.ID, entity.NewImageMessage("u1", "https://img/1.png"))
	require.NoError(t, err)

	got, err = repo.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PreviewGeneric, got.LastMessage)

	msgs, total, err := repo.GetMessages(ctx, chat.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i].CreatedAt.After(msgs[i-1].CreatedAt))
	}
}

func TestAppendMessagesIsAtomic(t *testing.T) {
	repo := newMemoryChatRepository(time.Now)
	ctx := context.Background()

	chat, _, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)

	_, err = repo.AppendMessages(ctx, chat.ID,
		entity.NewTextMessage("u1", "ok"),
		&entity.Message{SenderID: "u1", Type: entity.MessageTypeText},
	)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = repo.AppendMessages(ctx, chat.ID, entity.NewTextMessage("intruder", "hi"))
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, total, err := repo.GetMessages(ctx, chat.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMutateLatestOrder(t *testing.T) {
	repo := newMemoryChatRepository(time.Now)
	ctx := context.Background()

	chat, _, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)

	status := entity.OrderStatusDeliveryConfirmed
	_, err = repo.MutateLatestOrder(ctx, chat.ID, entity.OrderPatch{Status: &status})
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = repo.AppendMessages(ctx, chat.ID, newTicket("o1"))
	require.NoError(t, err)
	_, err = repo.AppendMessages(ctx, chat.ID, newTicket("o2"))
	require.NoError(t, err)

	details, err := repo.MutateLatestOrder(ctx, chat.ID, entity.OrderPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "o2", details.OrderID)
	assert.Equal(t, entity.OrderStatusDeliveryConfirmed, details.Status)

	got, err := repo.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, got.OrderMessage("o1").Order.Status)
	assert.Equal(t, entity.OrderStatusDeliveryConfirmed, got.OrderMessage("o2").Order.Status)
}

func TestUpdateOrderAppendsAnnouncementAfterTransition(t *testing.T) {
	repo := newMemoryChatRepository(frozenClock())
	ctx := context.Background()

	chat, _, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)
	_, err = repo.AppendMessages(ctx, chat.ID, newTicket("o1"))
	require.NoError(t, err)

	details, msgs, err := repo.UpdateOrder(ctx, chat.ID, "o1", func(d *entity.OrderDetails) ([]*entity.Message, error) {
		d.Status = entity.OrderStatusDisputed
		return []*entity.Message{entity.NewAdminMessage("dispute opened")}, nil
	})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, entity.OrderStatusDisputed, details.Status)
	assert.False(t, msgs[0].CreatedAt.Before(details.UpdatedAt))

	_, _, err = repo.UpdateOrder(ctx, chat.ID, "o1", func(d *entity.OrderDetails) ([]*entity.Message, error) {
		d.Status = entity.OrderStatusCancelled
		return nil, errors.Conflict("nope")
	})
	require.Error(t, err)

	got, err := repo.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDisputed, got.LatestOrderMessage().Order.Status)

	found, err := repo.FindByOrderID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, chat.ID, found.ID)
}

func TestMarkRead(t *testing.T) {
	repo := newMemoryChatRepository(time.Now)
	ctx := context.Background()

	chat, _, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)
	_, err = repo.AppendMessages(ctx, chat.ID, entity.NewTextMessage("u1", "hello"), entity.NewTextMessage("u2", "hey"))
	require.NoError(t, err)

	require.NoError(t, repo.MarkRead(ctx, chat.ID, "u2"))

	got, err := repo.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Zero(t, got.UnreadCount["u2"])
	assert.Equal(t, 1, got.UnreadCount["u1"])
	assert.True(t, got.Messages[0].IsRead)
	assert.False(t, got.Messages[1].IsRead)

	assert.True(t, errors.Is(repo.MarkRead(ctx, chat.ID, "u9"), errors.CodeForbidden))
}

func TestConcurrentAppendsKeepStrictOrder(t *testing.T) {
	repo := newMemoryChatRepository(frozenClock())
	ctx := context.Background()

	chat, _, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AppendMessages(ctx, chat.ID, entity.NewTextMessage("u1", "spam"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	msgs, total, err := repo.GetMessages(ctx, chat.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i].CreatedAt.After(msgs[i-1].CreatedAt))
	}
}

func TestListByUserID(t *testing.T) {
	repo := newMemoryChatRepository(time.Now)
	ctx := context.Background()

	_, _, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)
	_, _, err = repo.FindOrCreate(ctx, buyer, entity.UserSummary{ID: "u3"})
	require.NoError(t, err)

	chats, err := repo.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, chats, 2)

	chats, err = repo.ListByUserID(ctx, "u3")
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestDeleteIfEmpty(t *testing.T) {
	repo := newMemoryChatRepository(time.Now)
	ctx := context.Background()

	chat, _, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)
	stale, err := repo.get(chat.ID)
	require.NoError(t, err)

	deleted, err := repo.DeleteIfEmpty(ctx, chat.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, chat.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.True(t, stale.deleted)

	again, created, err := repo.FindOrCreate(ctx, buyer, seller)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, chat.ID, again.ID)

	_, err = repo.AppendMessages(ctx, again.ID, entity.NewTextMessage("u1", "hi"))
	require.NoError(t, err)
	deleted, err = repo.DeleteIfEmpty(ctx, again.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
