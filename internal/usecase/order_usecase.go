package usecase

import (
	"context"
	"time"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/internal/domain/service"
	ws "gamebazaar/internal/infrastructure/websocket"
	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/logger"
)

const (
	ResolutionRefund  = "refund"
	ResolutionRelease = "release"
)

// OrderUseCase drives order tickets through their lifecycle.
type OrderUseCase struct {
	chatRepo  repository.ChatRepository
	orderRepo repository.OrderRepository
	notifier  Notifier
}

func NewOrderUseCase(
	chatRepo repository.ChatRepository,
	orderRepo repository.OrderRepository,
	notifier Notifier,
) *OrderUseCase {
	return &OrderUseCase{
		chatRepo:  chatRepo,
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

type TransitionResult struct {
	ChatID   string               `json:"chat_id"`
	Order    *entity.OrderDetails `json:"order"`
	Messages []*entity.Message    `json:"messages"`
}

type ActionsView struct {
	Order   *entity.OrderDetails  `json:"order"`
	Role    entity.Role           `json:"role"`
	Actions []service.OrderAction `json:"actions"`
}

type roleResolver func(details *entity.OrderDetails) (entity.Role, bool)

func (uc *OrderUseCase) ConfirmDelivery(ctx context.Context, actor entity.Actor, chatID, orderID string) (*TransitionResult, error) {
	return uc.Perform(ctx, actor, chatID, orderID, service.ActionConfirmDelivery, nil)
}

func (uc *OrderUseCase) ConfirmOrder(ctx context.Context, actor entity.Actor, chatID, orderID string, rating int, text string) (*TransitionResult, error) {
	review := &entity.Review{Rating: rating, Text: text}
	return uc.Perform(ctx, actor, chatID, orderID, service.ActionConfirmOrder, review)
}

func (uc *OrderUseCase) OpenDispute(ctx context.Context, actor entity.Actor, chatID, orderID string) (*TransitionResult, error) {
	return uc.Perform(ctx, actor, chatID, orderID, service.ActionOpenDispute, nil)
}

func (uc *OrderUseCase) CloseDispute(ctx context.Context, actor entity.Actor, chatID, orderID string) (*TransitionResult, error) {
	return uc.Perform(ctx, actor, chatID, orderID, service.ActionCloseDispute, nil)
}

// Perform applies action to the order identified by orderID, or to the most
// recent ticket in the conversation when orderID is empty. The actor's role
// is derived from the order itself.
func (uc *OrderUseCase) Perform(ctx context.Context, actor entity.Actor, chatID, orderID string, action service.OrderAction, review *entity.Review) (*TransitionResult, error) {
	return uc.perform(ctx, actor, chatID, orderID, action, review, func(d *entity.OrderDetails) (entity.Role, bool) {
		return service.ResolveOrderRole(actor, d)
	})
}

func (uc *OrderUseCase) perform(
	ctx context.Context,
	actor entity.Actor,
	chatID, orderID string,
	action service.OrderAction,
	review *entity.Review,
	resolve roleResolver,
) (*TransitionResult, error) {
	if !action.Valid() {
		return nil, errors.BadRequest("Unknown order action", nil)
	}
	if action == service.ActionConfirmOrder {
		if review == nil || review.Rating < 1 || review.Rating > 5 {
			return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
		}
	}

	details, messages, err := uc.chatRepo.UpdateOrder(ctx, chatID, orderID, func(d *entity.OrderDetails) ([]*entity.Message, error) {
		role, ok := resolve(d)
		if !ok {
			return nil, errors.Forbidden("You are not a party to this order", nil)
		}

		next, ok := service.NextStatus(role, action, d.Status)
		if !ok {
			return nil, errors.IllegalTransition(string(action), string(d.Status))
		}

		d.Status = next
		if action == service.ActionConfirmOrder {
			d.Review = &entity.Review{
				Rating:    review.Rating,
				Text:      review.Text,
				CreatedAt: time.Now(),
			}
		}

		return []*entity.Message{service.Announcement(action, d)}, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order transition: orderID=%s, action=%s, actor=%s, status=%s", details.OrderID, action, actor.ID, details.Status)

	uc.syncMirror(ctx, details, action, actor)
	uc.publish(ctx, chatID, details, messages)

	return &TransitionResult{ChatID: chatID, Order: details, Messages: messages}, nil
}

// syncMirror copies the ticket state into the administrative record. The
// ticket stays authoritative, so failures are only logged.
func (uc *OrderUseCase) syncMirror(ctx context.Context, details *entity.OrderDetails, action service.OrderAction, actor entity.Actor) {
	order, err := uc.orderRepo.GetByID(ctx, details.OrderID)
	if err != nil {
		logger.LogOrderError(details.OrderID, string(action), err)
		return
	}

	order.SyncFrom(details)
	if action == service.ActionResolveRefund || action == service.ActionResolveRelease {
		order.ResolvedBy = actor.ID
	}

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		logger.LogOrderError(details.OrderID, string(action), err)
	}
}

func (uc *OrderUseCase) publish(ctx context.Context, chatID string, details *entity.OrderDetails, messages []*entity.Message) {
	if uc.notifier == nil {
		return
	}
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return
	}
	for _, p := range chat.Participants {
		uc.notifier.Notify(p.ID, ws.EventOrderUpdate, OrderUpdateEvent{ChatID: chatID, Order: details})
	}
	publishMessages(uc.notifier, chat, messages)
}

// AvailableActions lists what the actor may do with the targeted order.
func (uc *OrderUseCase) AvailableActions(ctx context.Context, actor entity.Actor, chatID, orderID string) (*ActionsView, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	var ticket *entity.Message
	if orderID == "" {
		ticket = chat.LatestOrderMessage()
	} else {
		ticket = chat.OrderMessage(orderID)
	}
	if ticket == nil {
		return nil, errors.NotFound("Order", nil)
	}

	role, ok := service.ResolveOrderRole(actor, ticket.Order)
	if !ok {
		return nil, errors.Forbidden("You are not a party to this order", nil)
	}

	return &ActionsView{
		Order:   ticket.Order,
		Role:    role,
		Actions: service.AvailableActions(role, ticket.Order.Status),
	}, nil
}

// AdminResolve arbitrates a disputed order in favour of the buyer (refund)
// or the seller (release).
func (uc *OrderUseCase) AdminResolve(ctx context.Context, admin entity.Actor, orderID, resolution string) (*TransitionResult, error) {
	if !admin.IsAdmin() {
		return nil, errors.Forbidden("Admin access required", nil)
	}

	var action service.OrderAction
	switch resolution {
	case ResolutionRefund:
		action = service.ActionResolveRefund
	case ResolutionRelease:
		action = service.ActionResolveRelease
	default:
		return nil, errors.BadRequest("Resolution must be refund or release", nil)
	}

	chat, err := uc.chatRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return uc.perform(ctx, admin, chat.ID, orderID, action, nil, func(*entity.OrderDetails) (entity.Role, bool) {
		return entity.RoleAdmin, true
	})
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.List(ctx, filter, limit, offset)
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	return uc.orderRepo.GetByID(ctx, orderID)
}

func (uc *OrderUseCase) Stats(ctx context.Context) (map[entity.OrderStatus]int, error) {
	return uc.orderRepo.CountByStatus(ctx)
}
