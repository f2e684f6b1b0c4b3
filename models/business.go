package models

import "time"

// Subscription tiers. Higher tiers unlock more action types and larger limits.
const (
	PlanFree     = 1
	PlanStarter  = 2
	PlanPro      = 3
	PlanBusiness = 4
)

// Business is the owner of services and service boards.
type Business struct {
	ID             string          `bson:"id" json:"id"`
	Name           string          `bson:"name" json:"name"`
	OwnerID        string          `bson:"ownerId" json:"ownerId"`
	Plan           int             `bson:"plan" json:"plan"`
	Currency       string          `bson:"currency" json:"currency"`
	Timezone       string          `bson:"timezone" json:"timezone"`
	FCMToken       string          `bson:"fcmToken,omitempty" json:"-"`
	PaymentMethods []PaymentMethod `bson:"paymentMethods" json:"paymentMethods"`
	Platforms      []Platform      `bson:"platforms" json:"platforms"`
	WorkingHours   []WorkingHours  `bson:"workingHours" json:"workingHours"`
	BlockedDates   []string        `bson:"blockedDates,omitempty" json:"blockedDates,omitempty"` // yyyy-MM-dd
	CreatedAt      time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// PaymentMethod is a way the business accepts money, offered as a card option.
type PaymentMethod struct {
	ID          string `bson:"id" json:"id"`
	Type        string `bson:"type" json:"type"` // e.g. "card", "bank_transfer", "cash"
	Label       string `bson:"label" json:"label"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Enabled     bool   `bson:"enabled" json:"enabled"`
}

// Platform is a meeting/communication platform the business uses (zoom, meet, ...).
type Platform struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Icon    string `bson:"icon,omitempty" json:"icon,omitempty"`
	Enabled bool   `bson:"enabled" json:"enabled"`
}

// WorkingHours describes an opening window in minutes from midnight.
type WorkingHours struct {
	Weekday int `bson:"weekday" json:"weekday"` // time.Weekday
	Open    int `bson:"open" json:"open"`
	Close   int `bson:"close" json:"close"`
}

// MonthlyRequestQuota returns the number of service requests a plan may
// receive per calendar month. Zero means unlimited.
func MonthlyRequestQuota(plan int) int {
	switch plan {
	case PlanFree:
		return 20
	case PlanStarter:
		return 100
	case PlanPro:
		return 1000
	default:
		return 0
	}
}
