package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/internal/domain/service"
	"gamebazaar/internal/infrastructure/ratelimit"
	ws "gamebazaar/internal/infrastructure/websocket"
	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/logger"
)

type BoostingUseCase struct {
	boostingRepo repository.BoostingRepository
	chatRepo     repository.ChatRepository
	notifier     Notifier
	rateLimiter  RateLimiter
	bidDelay     time.Duration
}

func NewBoostingUseCase(
	boostingRepo repository.BoostingRepository,
	chatRepo repository.ChatRepository,
	notifier Notifier,
	rateLimiter RateLimiter,
	bidDelay time.Duration,
) *BoostingUseCase {
	return &BoostingUseCase{
		boostingRepo: boostingRepo,
		chatRepo:     chatRepo,
		notifier:     notifier,
		rateLimiter:  rateLimiter,
		bidDelay:     bidDelay,
	}
}

type CreateBoostingInput struct {
	Game        string
	Title       string
	Description string
	Budget      float64
	Currency    string
}

type PlaceBidInput struct {
	Price        float64
	Currency     string
	TimeEstimate string
	Comment      string
}

type AcceptBidResult struct {
	Request *entity.BoostingRequest `json:"request"`
	ChatID  string                  `json:"chat_id"`
}

func (uc *BoostingUseCase) CreateRequest(ctx context.Context, buyer entity.Actor, input CreateBoostingInput) (*entity.BoostingRequest, error) {
	if strings.TrimSpace(input.Game) == "" || strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Game and title are required", nil)
	}
	if input.Budget < 0 {
		return nil, errors.BadRequest("Budget cannot be negative", nil)
	}

	req := &entity.BoostingRequest{
		ID:          uuid.New().String(),
		Buyer:       buyer.Summary(),
		Game:        strings.TrimSpace(input.Game),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Budget:      input.Budget,
		Currency:    input.Currency,
		Status:      entity.BoostingStatusOpen,
	}
	if err := uc.boostingRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.Info("Boosting request created: requestID=%s, buyer=%s", req.ID, buyer.ID)
	return req, nil
}

func (uc *BoostingUseCase) ListRequests(ctx context.Context, status entity.BoostingStatus, limit, offset int) ([]*entity.BoostingRequest, int64, error) {
	return uc.boostingRepo.List(ctx, status, limit, offset)
}

func (uc *BoostingUseCase) GetRequest(ctx context.Context, id string) (*entity.BoostingRequest, error) {
	return uc.boostingRepo.GetByID(ctx, id)
}

// PlaceBid records the seller's offer. A second bid from the same seller
// replaces the first and keeps its id.
func (uc *BoostingUseCase) PlaceBid(ctx context.Context, seller entity.Actor, requestID string, input PlaceBidInput) (*entity.Bid, error) {
	if input.Price <= 0 {
		return nil, errors.BadRequest("Bid price must be positive", nil)
	}
	if strings.TrimSpace(input.TimeEstimate) == "" {
		return nil, errors.BadRequest("Time estimate is required", nil)
	}

	if uc.rateLimiter != nil {
		if ok, wait := uc.rateLimiter.Allow(seller.ID, ratelimit.ActionPlaceBid); !ok {
			return nil, errors.TooManyRequests("You are bidding too fast", wait)
		}
	}

	if err := service.Sleep(ctx, uc.bidDelay); err != nil {
		return nil, err
	}

	var placed entity.Bid
	req, err := uc.boostingRepo.Update(ctx, requestID, func(r *entity.BoostingRequest) error {
		if r.Status != entity.BoostingStatusOpen {
			return errors.Conflict("Boosting request is closed")
		}
		if r.Buyer.ID == seller.ID {
			return errors.BadRequest("You cannot bid on your own request", nil)
		}

		placed = entity.Bid{
			ID:           uuid.New().String(),
			RequestID:    r.ID,
			Seller:       seller.Summary(),
			Price:        input.Price,
			Currency:     input.Currency,
			TimeEstimate: strings.TrimSpace(input.TimeEstimate),
			Comment:      strings.TrimSpace(input.Comment),
			CreatedAt:    time.Now(),
		}
		if placed.Currency == "" {
			placed.Currency = r.Currency
		}
		for _, b := range r.Bids {
			if b.Seller.ID == seller.ID {
				placed.ID = b.ID
			}
		}

		r.UpsertBid(placed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.Notify(req.Buyer.ID, ws.EventNewBid, NewBidEvent{RequestID: req.ID, Bid: &placed})
	}
	return &placed, nil
}

// AcceptBid closes the request and opens the conversation with the bidder.
func (uc *BoostingUseCase) AcceptBid(ctx context.Context, buyer entity.Actor, requestID, bidID string) (*AcceptBidResult, error) {
	var accepted entity.Bid
	req, err := uc.boostingRepo.Update(ctx, requestID, func(r *entity.BoostingRequest) error {
		if r.Buyer.ID != buyer.ID {
			return errors.Forbidden("Only the request owner can accept bids", nil)
		}
		if r.Status != entity.BoostingStatusOpen {
			return errors.Conflict("Boosting request is closed")
		}
		bid := r.FindBid(bidID)
		if bid == nil {
			return errors.NotFound("Bid", nil)
		}

		accepted = *bid
		r.Status = entity.BoostingStatusClosed
		r.AcceptedBidID = bid.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	chat, _, err := uc.chatRepo.FindOrCreate(ctx, buyer.Summary(), accepted.Seller)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("%s accepted the offer from %s for \"%s\": %.2f %s, estimated time %s.",
		buyer.Username, accepted.Seller.Username, req.Title, accepted.Price, accepted.Currency, accepted.TimeEstimate)
	stored, err := uc.chatRepo.AppendMessages(ctx, chat.ID, entity.NewSystemMessage(text))
	if err != nil {
		return nil, err
	}
	publishMessages(uc.notifier, chat, stored)

	logger.Info("Bid accepted: requestID=%s, bidID=%s, chatID=%s", req.ID, accepted.ID, chat.ID)
	return &AcceptBidResult{Request: req, ChatID: chat.ID}, nil
}
