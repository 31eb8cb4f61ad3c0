package repository

import (
	"context"

	"gamebazaar/internal/domain/entity"
)

type BoostingRepository interface {
	Create(ctx context.Context, request *entity.BoostingRequest) error
	GetByID(ctx context.Context, id string) (*entity.BoostingRequest, error)
	List(ctx context.Context, status entity.BoostingStatus, limit, offset int) ([]*entity.BoostingRequest, int64, error)
	// Update applies fn to the stored request under the repository lock.
	Update(ctx context.Context, id string, fn func(*entity.BoostingRequest) error) (*entity.BoostingRequest, error)
}
