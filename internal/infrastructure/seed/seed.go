package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/pkg/logger"
)

//go:embed default_seed.yaml
var defaultSeed []byte

type User struct {
	ID                string  `yaml:"id"`
	Username          string  `yaml:"username"`
	Email             string  `yaml:"email"`
	AvatarURL         string  `yaml:"avatar_url"`
	Role              string  `yaml:"role"`
	SellerRating      float64 `yaml:"seller_rating"`
	SellerReviewCount int     `yaml:"seller_review_count"`
}

type Listing struct {
	ID           string            `yaml:"id"`
	Game         string            `yaml:"game"`
	Title        string            `yaml:"title"`
	Description  string            `yaml:"description"`
	Price        float64           `yaml:"price"`
	Currency     string            `yaml:"currency"`
	SellerID     string            `yaml:"seller_id"`
	Type         string            `yaml:"type"`
	Stock        int               `yaml:"stock"`
	DeliveryTime string            `yaml:"delivery_time"`
	Screenshots  []string          `yaml:"screenshots"`
	Details      map[string]string `yaml:"details"`
}

type Boosting struct {
	ID          string  `yaml:"id"`
	BuyerID     string  `yaml:"buyer_id"`
	Game        string  `yaml:"game"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Budget      float64 `yaml:"budget"`
	Currency    string  `yaml:"currency"`
}

type Message struct {
	Sender string `yaml:"sender"`
	Text   string `yaml:"text"`
	Image  string `yaml:"image"`
}

type Conversation struct {
	Participants []string  `yaml:"participants"`
	Messages     []Message `yaml:"messages"`
}

type Data struct {
	Users         []User         `yaml:"users"`
	Listings      []Listing      `yaml:"listings"`
	Boosting      []Boosting     `yaml:"boosting"`
	Conversations []Conversation `yaml:"conversations"`
}

// Load reads seed data from path, or the built-in seed when path is empty.
func Load(path string) (*Data, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		raw = b
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

type Repositories struct {
	Users    repository.UserRepository
	Listings repository.ListingRepository
	Boosting repository.BoostingRepository
	Chats    repository.ChatRepository
}

// Apply writes the seed into the repositories. Listings and conversations
// referencing unknown users are rejected.
func (d *Data) Apply(ctx context.Context, repos Repositories) error {
	users := make(map[string]*entity.User, len(d.Users))
	for _, u := range d.Users {
		user := &entity.User{
			ID:                u.ID,
			Username:          u.Username,
			Email:             u.Email,
			AvatarURL:         u.AvatarURL,
			Role:              entity.Role(u.Role),
			SellerRating:      u.SellerRating,
			SellerReviewCount: u.SellerReviewCount,
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
		users[u.ID] = user
	}

	for _, l := range d.Listings {
		seller, ok := users[l.SellerID]
		if !ok {
			return fmt.Errorf("seed listing %s: unknown seller %s", l.ID, l.SellerID)
		}
		listing := &entity.Listing{
			ID:           l.ID,
			Game:         l.Game,
			Title:        l.Title,
			Description:  l.Description,
			Price:        l.Price,
			Currency:     l.Currency,
			Seller:       seller.Summary(),
			Type:         entity.ListingCategory(l.Type),
			Stock:        l.Stock,
			DeliveryTime: l.DeliveryTime,
			Screenshots:  l.Screenshots,
			Details:      l.Details,
		}
		if err := repos.Listings.Create(ctx, listing); err != nil {
			return fmt.Errorf("seed listing %s: %w", l.ID, err)
		}
	}

	for _, b := range d.Boosting {
		buyer, ok := users[b.BuyerID]
		if !ok {
			return fmt.Errorf("seed boosting %s: unknown buyer %s", b.ID, b.BuyerID)
		}
		req := &entity.BoostingRequest{
			ID:          b.ID,
			Buyer:       buyer.Summary(),
			Game:        b.Game,
			Title:       b.Title,
			Description: b.Description,
			Budget:      b.Budget,
			Currency:    b.Currency,
		}
		if err := repos.Boosting.Create(ctx, req); err != nil {
			return fmt.Errorf("seed boosting %s: %w", b.ID, err)
		}
	}

	for i, c := range d.Conversations {
		if len(c.Participants) != 2 {
			return fmt.Errorf("seed conversation %d: need exactly two participants", i)
		}
		a, okA := users[c.Participants[0]]
		b, okB := users[c.Participants[1]]
		if !okA || !okB {
			return fmt.Errorf("seed conversation %d: unknown participant", i)
		}

		chat, _, err := repos.Chats.FindOrCreate(ctx, a.Summary(), b.Summary())
		if err != nil {
			return fmt.Errorf("seed conversation %d: %w", i, err)
		}

		msgs := make([]*entity.Message, 0, len(c.Messages))
		for _, m := range c.Messages {
			if m.Image != "" {
				msgs = append(msgs, entity.NewImageMessage(m.Sender, m.Image))
				continue
			}
			msgs = append(msgs, entity.NewTextMessage(m.Sender, m.Text))
		}
		if _, err := repos.Chats.AppendMessages(ctx, chat.ID, msgs...); err != nil {
			return fmt.Errorf("seed conversation %d: %w", i, err)
		}
	}

	logger.Info("Seeded %d users, %d listings, %d boosting requests, %d conversations",
		len(d.Users), len(d.Listings), len(d.Boosting), len(d.Conversations))
	return nil
}
