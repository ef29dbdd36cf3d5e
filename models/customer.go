package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
	TierVIP    Tier = "VIP"
)

const (
	silverThreshold = 500
	goldThreshold   = 2000
	vipThreshold    = 5000
)

// TierFor derives the loyalty tier from lifetime spend; it is never stored.
func TierFor(totalSpent float64) Tier {
	switch {
	case totalSpent >= vipThreshold:
		return TierVIP
	case totalSpent >= goldThreshold:
		return TierGold
	case totalSpent >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// LoyaltyPointsFor awards one point per whole currency unit of an order total.
func LoyaltyPointsFor(total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(total))
}

type Customer struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Email         string     `db:"email" json:"email"`
	Phone         string     `db:"phone" json:"phone"`
	LoyaltyPoints int        `db:"loyalty_points" json:"loyalty_points"`
	TotalSpent    float64    `db:"total_spent" json:"total_spent"`
	Visits        int        `db:"visits" json:"visits"`
	LastVisit     *time.Time `db:"last_visit" json:"last_visit,omitempty"`
	Tier          Tier       `db:"-" json:"tier"`
	Feedback      []Feedback `db:"-" json:"feedback,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	ArchivedAt    *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

type Feedback struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CustomerID uuid.UUID `db:"customer_id" json:"customer_id"`
	Rating     int       `db:"rating" json:"rating"`
	Comment    string    `db:"comment" json:"comment"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CustomerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
	Tier  Tier      `json:"tier"`
}
