package entity

import (
	"time"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Reserved sender ids for platform-generated messages.
const (
	SenderSystem = "system"
	SenderAdmin  = "admin"
)

func IsSentinelSender(id string) bool {
	return id == SenderSystem || id == SenderAdmin
}

type User struct {
	ID        string `json:"id" firestore:"id"`
	Username  string `json:"username" firestore:"username"`
	Email     string `json:"email,omitempty" firestore:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Role      Role   `json:"role" firestore:"role"`
	Bio       string `json:"bio,omitempty" firestore:"bio,omitempty"`

	SellerRating      float64 `json:"seller_rating,omitempty" firestore:"sellerRating,omitempty"`
	SellerReviewCount int     `json:"seller_review_count,omitempty" firestore:"sellerReviewCount,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// UserSummary is the snapshot of a user embedded in conversations, bids and listings.
type UserSummary struct {
	ID        string `json:"id" firestore:"id"`
	Username  string `json:"username" firestore:"username"`
	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}

// Actor is the authenticated caller as resolved by the identity provider.
type Actor struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      Role   `json:"role"`
}

func (u *User) Actor() Actor {
	return Actor{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
	}
}

func (a Actor) Summary() UserSummary {
	return UserSummary{ID: a.ID, Username: a.Username, AvatarURL: a.AvatarURL}
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
