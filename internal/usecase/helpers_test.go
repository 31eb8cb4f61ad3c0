package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	adapter "gamebazaar/internal/adapter/repository"
	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/internal/domain/service"
)

type sentEvent struct {
	UserID  string
	Type    string
	Payload interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (f *fakeNotifier) Notify(userID, eventType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, sentEvent{UserID: userID, Type: eventType, Payload: payload})
}

func (f *fakeNotifier) count(userID, eventType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.UserID == userID && e.Type == eventType {
			n++
		}
	}
	return n
}

type fakeLimiter struct {
	allow bool
}

func (f fakeLimiter) Allow(userID, action string) (bool, time.Duration) {
	if f.allow {
		return true, 0
	}
	return false, time.Second
}

var (
	buyerActor  = entity.Actor{ID: "u1", Username: "nightowl", Role: entity.RoleBuyer}
	sellerActor = entity.Actor{ID: "u2", Username: "goldsmith", Role: entity.RoleSeller}
	adminActor  = entity.Actor{ID: "a1", Username: "moderator", Role: entity.RoleAdmin}
)

type fixture struct {
	users    repository.UserRepository
	listings repository.ListingRepository
	orders   repository.OrderRepository
	chats    repository.ChatRepository
	boosting repository.BoostingRepository
	notifier *fakeNotifier

	chat     *ChatUseCase
	order    *OrderUseCase
	checkout *CheckoutUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		users:    adapter.NewMemoryUserRepository(),
		listings: adapter.NewMemoryListingRepository(),
		orders:   adapter.NewMemoryOrderRepository(),
		chats:    adapter.NewMemoryChatRepository(),
		boosting: adapter.NewMemoryBoostingRepository(),
		notifier: &fakeNotifier{},
	}

	for _, a := range []entity.Actor{buyerActor, sellerActor, adminActor} {
		require.NoError(t, f.users.Create(ctx, &entity.User{ID: a.ID, Username: a.Username, Role: a.Role}))
	}
	require.NoError(t, f.listings.Create(ctx, &entity.Listing{
		ID:          "l1",
		Game:        "World of Warcraft",
		Title:       "100k Gold",
		Price:       850,
		Currency:    "RUB",
		Seller:      entity.UserSummary{ID: "u2", Username: "goldsmith"},
		Type:        entity.CategoryCurrency,
		Screenshots: []string{"https://cdn.gamebazaar.com/l1.png"},
		Details:     map[string]string{"server": "Gordunni", "faction": "Horde", "color": "gold"},
	}))

	f.chat = NewChatUseCase(f.chats, f.users, service.NewLinkPolicy("gamebazaar"), f.notifier, fakeLimiter{allow: true})
	f.order = NewOrderUseCase(f.chats, f.orders, f.notifier)
	f.checkout = NewCheckoutUseCase(f.listings, f.orders, f.chats, service.NewSimulatedPaymentService(0), f.notifier)
	return f
}

// purchase places the standard test order and returns it.
func (f *fixture) purchase(t *testing.T) *PurchaseResult {
	t.Helper()
	res, err := f.checkout.CompletePurchase(context.Background(), buyerActor, PurchaseInput{
		ListingID:     "l1",
		PaymentMethod: "card",
		Delivery:      DeliveryInfo{Nickname: "Thrall"},
	})
	require.NoError(t, err)
	return res
}
