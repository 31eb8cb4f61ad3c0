package entity

import (
	"time"
)

type ListingCategory string

const (
	CategoryCurrency ListingCategory = "currency"
	CategoryAccounts ListingCategory = "accounts"
	CategoryItems    ListingCategory = "items"
	CategoryBoosting ListingCategory = "boosting"
)

// Listing detail keys copied into order tickets when present.
const (
	DetailServer  = "server"
	DetailRegion  = "region"
	DetailFaction = "faction"
	DetailAmount  = "amount"
)

type Listing struct {
	ID           string            `json:"id"`
	Game         string            `json:"game"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Price        float64           `json:"price"`
	Currency     string            `json:"currency"`
	Seller       UserSummary       `json:"seller"`
	Type         ListingCategory   `json:"type"`
	Stock        int               `json:"stock"`
	DeliveryTime string            `json:"delivery_time,omitempty"`
	Screenshots  []string          `json:"screenshots,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// CoverImage is the first screenshot, used as the order ticket image.
func (l *Listing) CoverImage() string {
	if len(l.Screenshots) == 0 {
		return ""
	}
	return l.Screenshots[0]
}
