package repository

import (
	"context"

	"gamebazaar/internal/domain/entity"
)

// OrderMutation runs against the targeted ticket while the conversation is
// locked. The messages it returns are appended in the same critical section.
type OrderMutation func(details *entity.OrderDetails) ([]*entity.Message, error)

type ChatRepository interface {
	FindOrCreate(ctx context.Context, owner, partner entity.UserSummary) (*entity.Chat, bool, error)
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error)
	FindByOrderID(ctx context.Context, orderID string) (*entity.Chat, error)
	// DeleteIfEmpty drops a conversation that never received a message.
	DeleteIfEmpty(ctx context.Context, id string) (bool, error)

	GetMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
	AppendMessages(ctx context.Context, chatID string, messages ...*entity.Message) ([]*entity.Message, error)
	MarkRead(ctx context.Context, chatID, readerID string) error

	// Order tickets. An empty orderID targets the most recent ticket.
	MutateLatestOrder(ctx context.Context, chatID string, patch entity.OrderPatch) (*entity.OrderDetails, error)
	UpdateOrder(ctx context.Context, chatID, orderID string, fn OrderMutation) (*entity.OrderDetails, []*entity.Message, error)
}
