package entity

import "time"

type BoostingStatus string

const (
	BoostingStatusOpen   BoostingStatus = "open"
	BoostingStatusClosed BoostingStatus = "closed"
)

// BoostingRequest is a buyer's open request that sellers bid on.
type BoostingRequest struct {
	ID            string         `json:"id"`
	Buyer         UserSummary    `json:"buyer"`
	Game          string         `json:"game"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Budget        float64        `json:"budget,omitempty"`
	Currency      string         `json:"currency"`
	Status        BoostingStatus `json:"status"`
	Bids          []Bid          `json:"bids"`
	AcceptedBidID string         `json:"accepted_bid_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type Bid struct {
	ID           string      `json:"id"`
	RequestID    string      `json:"request_id"`
	Seller       UserSummary `json:"seller"`
	Price        float64     `json:"price"`
	Currency     string      `json:"currency"`
	TimeEstimate string      `json:"time_estimate"`
	Comment      string      `json:"comment,omitempty"`
	CreatedAt    time.Time   `json:"timestamp"`
}

// UpsertBid stores bid, replacing any earlier bid from the same seller.
func (r *BoostingRequest) UpsertBid(bid Bid) (replaced bool) {
	for i := range r.Bids {
		if r.Bids[i].Seller.ID == bid.Seller.ID {
			r.Bids[i] = bid
			return true
		}
	}
	r.Bids = append(r.Bids, bid)
	return false
}

func (r *BoostingRequest) FindBid(bidID string) *Bid {
	for i := range r.Bids {
		if r.Bids[i].ID == bidID {
			return &r.Bids[i]
		}
	}
	return nil
}

func (r *BoostingRequest) Clone() *BoostingRequest {
	cp := *r
	cp.Bids = append([]Bid(nil), r.Bids...)
	return &cp
}
