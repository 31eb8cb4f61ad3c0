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
	ws "gamebazaar/internal/infrastructure/websocket"
	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/logger"
)

// Ticket meta keys besides the ones copied from listing details.
const (
	MetaTradeURL = "trade_url"
	MetaNickname = "nickname"
)

// CheckoutUseCase turns a completed payment into an order ticket inside the
// buyer/seller conversation.
type CheckoutUseCase struct {
	listingRepo repository.ListingRepository
	orderRepo   repository.OrderRepository
	chatRepo    repository.ChatRepository
	payments    service.PaymentService
	notifier    Notifier
}

func NewCheckoutUseCase(
	listingRepo repository.ListingRepository,
	orderRepo repository.OrderRepository,
	chatRepo repository.ChatRepository,
	payments service.PaymentService,
	notifier Notifier,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		listingRepo: listingRepo,
		orderRepo:   orderRepo,
		chatRepo:    chatRepo,
		payments:    payments,
		notifier:    notifier,
	}
}

type DeliveryInfo struct {
	Nickname string `json:"nickname"`
	TradeURL string `json:"trade_url"`
}

type PurchaseInput struct {
	ListingID     string
	PaymentMethod string
	Delivery      DeliveryInfo
}

type PurchaseResult struct {
	Order  *entity.Order `json:"order"`
	ChatID string        `json:"chat_id"`
}

func newOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), strings.ToUpper(uuid.New().String()[:8]))
}

// CompletePurchase validates the purchase, waits for the payment to settle,
// records the order and posts the payment notice plus the order ticket into
// the conversation with the seller in a single append.
func (uc *CheckoutUseCase) CompletePurchase(ctx context.Context, buyer entity.Actor, input PurchaseInput) (*PurchaseResult, error) {
	if input.ListingID == "" {
		return nil, errors.BadRequest("Listing is required", nil)
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, errors.BadRequest("Payment method is required", nil)
	}
	if buyer.ID == "" || buyer.Username == "" {
		return nil, errors.BadRequest("Buyer profile is incomplete", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if err := validateListing(listing); err != nil {
		return nil, err
	}
	if listing.Seller.ID == buyer.ID {
		return nil, errors.BadRequest("You cannot buy your own listing", nil)
	}

	orderID := newOrderID(time.Now())

	receipt, err := uc.payments.Charge(ctx, service.PaymentRequest{
		OrderID: orderID,
		Amount:  listing.Price,
		Method:  input.PaymentMethod,
	})
	if err != nil {
		logger.Warn("Payment aborted: orderID=%s, error=%v", orderID, err)
		return nil, err
	}

	meta := buildMeta(listing, input.Delivery)
	order := &entity.Order{
		ID:            orderID,
		ListingID:     listing.ID,
		Title:         listing.Title,
		Price:         listing.Price,
		Currency:      listing.Currency,
		Image:         listing.CoverImage(),
		Status:        entity.OrderStatusPaid,
		Amount:        meta[entity.DetailAmount],
		Meta:          meta,
		BuyerID:       buyer.ID,
		BuyerName:     buyer.Username,
		SellerID:      listing.Seller.ID,
		SellerName:    listing.Seller.Username,
		PaymentMethod: receipt.Method,
		CreatedAt:     receipt.PaidAt,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	chat, created, err := uc.chatRepo.FindOrCreate(ctx, buyer.Summary(), listing.Seller)
	if err != nil {
		uc.rollback(orderID, err)
		return nil, err
	}

	notice := entity.NewAdminMessage(fmt.Sprintf(
		"Payment received via %s. Order %s has been created and the seller has been notified.",
		receipt.Method, orderID,
	))
	ticket := entity.NewOrderMessage(buyer.ID, order.Details())

	stored, err := uc.chatRepo.AppendMessages(ctx, chat.ID, notice, ticket)
	if err != nil {
		uc.rollback(orderID, err)
		if created {
			uc.discardChat(chat.ID)
		}
		return nil, err
	}

	order.ChatID = chat.ID
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		logger.LogOrderError(orderID, "link_chat", err)
	}

	logger.Info("Order placed: orderID=%s, listingID=%s, buyer=%s, seller=%s, chatID=%s",
		orderID, listing.ID, buyer.ID, listing.Seller.ID, chat.ID)

	publishMessages(uc.notifier, chat, stored)
	if uc.notifier != nil {
		for _, p := range chat.Participants {
			uc.notifier.Notify(p.ID, ws.EventOrderUpdate, OrderUpdateEvent{ChatID: chat.ID, Order: stored[1].Order})
		}
	}

	return &PurchaseResult{Order: order, ChatID: chat.ID}, nil
}

// rollback removes the administrative record of an order whose ticket could
// not be posted. It runs detached from the request context.
func (uc *CheckoutUseCase) rollback(orderID string, cause error) {
	logger.LogOrderError(orderID, "post_ticket", cause)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := uc.orderRepo.Delete(ctx, orderID); err != nil {
		logger.LogOrderError(orderID, "rollback", err)
	}
}

// discardChat removes a conversation opened for a purchase that never
// posted its ticket.
func (uc *CheckoutUseCase) discardChat(chatID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := uc.chatRepo.DeleteIfEmpty(ctx, chatID); err != nil {
		logger.Warn("Failed to discard empty chat: chatID=%s, error=%v", chatID, err)
	}
}

func validateListing(l *entity.Listing) error {
	var missing []string
	if l.Title == "" {
		missing = append(missing, "title")
	}
	if l.Price <= 0 {
		missing = append(missing, "price")
	}
	if l.Currency == "" {
		missing = append(missing, "currency")
	}
	if l.Seller.ID == "" {
		missing = append(missing, "seller id")
	}
	if l.Seller.Username == "" {
		missing = append(missing, "seller name")
	}
	if len(missing) > 0 {
		return errors.BadRequest("Listing is missing required fields: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// buildMeta copies game details from the listing and the delivery target
// supplied by the buyer into the ticket meta.
func buildMeta(l *entity.Listing, delivery DeliveryInfo) map[string]string {
	meta := make(map[string]string)
	for _, key := range []string{entity.DetailServer, entity.DetailRegion, entity.DetailFaction, entity.DetailAmount} {
		if v := strings.TrimSpace(l.Details[key]); v != "" {
			meta[key] = v
		}
	}

	tradeURL := strings.TrimSpace(delivery.TradeURL)
	nickname := strings.TrimSpace(delivery.Nickname)
	switch {
	case l.Type == entity.CategoryItems && tradeURL != "":
		meta[MetaTradeURL] = tradeURL
	case nickname != "":
		meta[MetaNickname] = nickname
	}

	return meta
}
