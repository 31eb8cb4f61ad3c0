package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/utils"
)

type memoryListingRepository struct {
	mu       sync.RWMutex
	listings map[string]*entity.Listing
}

func NewMemoryListingRepository() repository.ListingRepository {
	return &memoryListingRepository{
		listings: make(map[string]*entity.Listing),
	}
}

func cloneListing(l *entity.Listing) *entity.Listing {
	cp := *l
	cp.Screenshots = append([]string(nil), l.Screenshots...)
	if l.Details != nil {
		cp.Details = make(map[string]string, len(l.Details))
		for k, v := range l.Details {
			cp.Details[k] = v
		}
	}
	return &cp
}

func (r *memoryListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.listings[listing.ID]; exists {
		return errors.Conflict("Listing already exists")
	}
	r.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *memoryListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	return cloneListing(listing), nil
}

func (r *memoryListingRepository) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.RLock()
	matched := make([]*entity.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if filter.Game != "" && !strings.EqualFold(l.Game, filter.Game) {
			continue
		}
		if filter.Type != "" && l.Type != filter.Type {
			continue
		}
		if filter.SellerID != "" && l.Seller.ID != filter.SellerID {
			continue
		}
		matched = append(matched, cloneListing(l))
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start, end := utils.Window(len(matched), limit, offset)
	return matched[start:end], int64(len(matched)), nil
}
