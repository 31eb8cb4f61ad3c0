package repository

import (
	"context"

	"gamebazaar/internal/domain/entity"
)

type OrderFilter struct {
	Status entity.OrderStatus
	UserID string
}

// OrderRepository stores the administrative order records.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, int64, error)
	CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error)
}
