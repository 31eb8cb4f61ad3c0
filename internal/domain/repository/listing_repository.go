package repository

import (
	"context"

	"gamebazaar/internal/domain/entity"
)

type ListingFilter struct {
	Game     string
	Type     entity.ListingCategory
	SellerID string
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, filter ListingFilter, limit, offset int) ([]*entity.Listing, int64, error)
}
