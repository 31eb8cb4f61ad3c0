package entity

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPaid              OrderStatus = "paid"
	OrderStatusDeliveryConfirmed OrderStatus = "delivery_confirmed"
	OrderStatusCompleted         OrderStatus = "completed"
	OrderStatusDisputed          OrderStatus = "disputed"
	OrderStatusCancelled         OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPaid, OrderStatusDeliveryConfirmed, OrderStatusCompleted,
		OrderStatusDisputed, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Review is left by the buyer when confirming an order.
type Review struct {
	Rating    int       `json:"rating" firestore:"rating"`
	Text      string    `json:"text,omitempty" firestore:"text,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// OrderDetails is the order ticket payload. The ticket in the chat log holds
// the canonical order status.
type OrderDetails struct {
	OrderID    string            `json:"order_id" firestore:"orderId"`
	Title      string            `json:"title" firestore:"title"`
	Price      float64           `json:"price" firestore:"price"`
	Currency   string            `json:"currency" firestore:"currency"`
	Image      string            `json:"image,omitempty" firestore:"image,omitempty"`
	Status     OrderStatus       `json:"status" firestore:"status"`
	Amount     string            `json:"amount,omitempty" firestore:"amount,omitempty"`
	Meta       map[string]string `json:"meta,omitempty" firestore:"meta,omitempty"`
	BuyerID    string            `json:"buyer_id" firestore:"buyerId"`
	BuyerName  string            `json:"buyer_name" firestore:"buyerName"`
	SellerID   string            `json:"seller_id" firestore:"sellerId"`
	SellerName string            `json:"seller_name" firestore:"sellerName"`
	Review     *Review           `json:"review,omitempty" firestore:"review,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at" firestore:"updatedAt"`
}

func (d *OrderDetails) Clone() *OrderDetails {
	cp := *d
	if d.Meta != nil {
		cp.Meta = make(map[string]string, len(d.Meta))
		for k, v := range d.Meta {
			cp.Meta[k] = v
		}
	}
	if d.Review != nil {
		r := *d.Review
		cp.Review = &r
	}
	return &cp
}

// OrderPatch is a partial update of a ticket; nil fields are left unchanged.
type OrderPatch struct {
	Status *OrderStatus
	Review *Review
}

func (d *OrderDetails) Apply(p OrderPatch) {
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Review != nil {
		r := *p.Review
		d.Review = &r
	}
}

// Order is the administrative mirror of a ticket, kept for reporting.
type Order struct {
	ID            string            `json:"id" firestore:"id"`
	ListingID     string            `json:"listing_id" firestore:"listingId"`
	ChatID        string            `json:"chat_id,omitempty" firestore:"chatId,omitempty"`
	Title         string            `json:"title" firestore:"title"`
	Price         float64           `json:"price" firestore:"price"`
	Currency      string            `json:"currency" firestore:"currency"`
	Image         string            `json:"image,omitempty" firestore:"image,omitempty"`
	Status        OrderStatus       `json:"status" firestore:"status"`
	Amount        string            `json:"amount,omitempty" firestore:"amount,omitempty"`
	Meta          map[string]string `json:"meta,omitempty" firestore:"meta,omitempty"`
	BuyerID       string            `json:"buyer_id" firestore:"buyerId"`
	BuyerName     string            `json:"buyer_name" firestore:"buyerName"`
	SellerID      string            `json:"seller_id" firestore:"sellerId"`
	SellerName    string            `json:"seller_name" firestore:"sellerName"`
	PaymentMethod string            `json:"payment_method" firestore:"paymentMethod"`
	Review        *Review           `json:"review,omitempty" firestore:"review,omitempty"`
	ResolvedBy    string            `json:"resolved_by,omitempty" firestore:"resolvedBy,omitempty"`
	CreatedAt     time.Time         `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time         `json:"updated_at" firestore:"updatedAt"`
}

// Details builds the ticket payload for a freshly placed order.
func (o *Order) Details() *OrderDetails {
	d := &OrderDetails{
		OrderID:    o.ID,
		Title:      o.Title,
		Price:      o.Price,
		Currency:   o.Currency,
		Image:      o.Image,
		Status:     o.Status,
		Amount:     o.Amount,
		BuyerID:    o.BuyerID,
		BuyerName:  o.BuyerName,
		SellerID:   o.SellerID,
		SellerName: o.SellerName,
		UpdatedAt:  o.CreatedAt,
	}
	if o.Meta != nil {
		d.Meta = make(map[string]string, len(o.Meta))
		for k, v := range o.Meta {
			d.Meta[k] = v
		}
	}
	return d
}

// SyncFrom copies the mutable ticket state into the mirror.
func (o *Order) SyncFrom(d *OrderDetails) {
	o.Status = d.Status
	if d.Review != nil {
		r := *d.Review
		o.Review = &r
	}
	o.UpdatedAt = d.UpdatedAt
}
