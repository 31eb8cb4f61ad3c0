package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/utils"
)

type memoryBoostingRepository struct {
	mu       sync.Mutex
	requests map[string]*entity.BoostingRequest
}

func NewMemoryBoostingRepository() repository.BoostingRepository {
	return &memoryBoostingRepository{
		requests: make(map[string]*entity.BoostingRequest),
	}
}

func (r *memoryBoostingRepository) Create(ctx context.Context, request *entity.BoostingRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	now := time.Now()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = request.CreatedAt
	if request.Status == "" {
		request.Status = entity.BoostingStatusOpen
	}
	if request.Bids == nil {
		request.Bids = []entity.Bid{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requests[request.ID]; exists {
		return errors.Conflict("Boosting request already exists")
	}
	r.requests[request.ID] = request.Clone()
	return nil
}

func (r *memoryBoostingRepository) GetByID(ctx context.Context, id string) (*entity.BoostingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, errors.NotFound("Boosting request", nil)
	}
	return request.Clone(), nil
}

func (r *memoryBoostingRepository) List(ctx context.Context, status entity.BoostingStatus, limit, offset int) ([]*entity.BoostingRequest, int64, error) {
	r.mu.Lock()
	matched := make([]*entity.BoostingRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if status != "" && req.Status != status {
			continue
		}
		matched = append(matched, req.Clone())
	}
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start, end := utils.Window(len(matched), limit, offset)
	return matched[start:end], int64(len(matched)), nil
}

func (r *memoryBoostingRepository) Update(ctx context.Context, id string, fn func(*entity.BoostingRequest) error) (*entity.BoostingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[id]
	if !ok {
		return nil, errors.NotFound("Boosting request", nil)
	}

	working := stored.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now()

	r.requests[id] = working
	return working.Clone(), nil
}
