package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/pkg/errors"
)

const ordersCollection = "orders"

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		return errors.BadRequest("Order id is required", nil)
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = order.CreatedAt

	_, err := r.client.Collection(ordersCollection).Doc(order.ID).Create(ctx, order)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Order already exists")
		}
		return errors.Internal("Failed to create order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = time.Now()
	}

	_, err := r.client.Collection(ordersCollection).Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to update order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(ordersCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete order", err)
	}
	return nil
}

func (r *firestoreOrderRepository) List(ctx context.Context, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection(ordersCollection).OrderBy("createdAt", firestore.Desc)

	if filter.Status != "" {
		query = query.Where("status", "==", string(filter.Status))
	}

	// Firestore has no OR across fields here, so participant filtering happens client side.
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list orders", err)
	}

	matched := []*entity.Order{}
	for _, doc := range docs {
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, 0, errors.Internal("Failed to parse order data", err)
		}
		if filter.UserID != "" && order.BuyerID != filter.UserID && order.SellerID != filter.UserID {
			continue
		}
		matched = append(matched, &order)
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*entity.Order{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, total, nil
}

// CountByStatus streams the collection once and tallies orders per status.
func (r *firestoreOrderRepository) CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error) {
	iter := r.client.Collection(ordersCollection).Select("status").Documents(ctx)
	defer iter.Stop()

	counts := make(map[entity.OrderStatus]int)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate orders", err)
		}
		s, _ := doc.Data()["status"].(string)
		counts[entity.OrderStatus(s)]++
	}

	return counts, nil
}
