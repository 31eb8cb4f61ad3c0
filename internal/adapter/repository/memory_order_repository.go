package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/utils"
)

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*entity.Order
}

func NewMemoryOrderRepository() repository.OrderRepository {
	return &memoryOrderRepository{
		orders: make(map[string]*entity.Order),
	}
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	if o.Meta != nil {
		cp.Meta = make(map[string]string, len(o.Meta))
		for k, v := range o.Meta {
			cp.Meta[k] = v
		}
	}
	if o.Review != nil {
		r := *o.Review
		cp.Review = &r
	}
	return &cp
}

func (r *memoryOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		return errors.BadRequest("Order id is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return errors.Conflict("Order already exists")
	}

	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = order.CreatedAt

	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memoryOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return cloneOrder(order), nil
}

func (r *memoryOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return errors.NotFound("Order", nil)
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = time.Now()
	}

	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memoryOrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return errors.NotFound("Order", nil)
	}
	delete(r.orders, id)
	return nil
}

func (r *memoryOrderRepository) List(ctx context.Context, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	r.mu.RLock()
	matched := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && o.BuyerID != filter.UserID && o.SellerID != filter.UserID {
			continue
		}
		matched = append(matched, cloneOrder(o))
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start, end := utils.Window(len(matched), limit, offset)
	return matched[start:end], int64(len(matched)), nil
}

func (r *memoryOrderRepository) CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[entity.OrderStatus]int)
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}
