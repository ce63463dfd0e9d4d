package entity

import "time"

// Plan identifies a subscription tier sold in the store.
type Plan string

const (
	PlanHalfYearly Plan = "half_yearly"
	PlanYearly     Plan = "yearly"
)

// Level returns the ordering of a plan for the upgrade-only policy.
// A new subscription must have a strictly greater level than any active one.
func (p Plan) Level() int {
	switch p {
	case PlanHalfYearly:
		return 1
	case PlanYearly:
		return 2
	default:
		return 0
	}
}

// Days returns the duration of the plan in days.
func (p Plan) Days() int {
	switch p {
	case PlanHalfYearly:
		return 180
	case PlanYearly:
		return 365
	default:
		return 0
	}
}

// Price returns the plan price in SAR.
func (p Plan) Price() float64 {
	switch p {
	case PlanHalfYearly:
		return 29.99
	case PlanYearly:
		return 49.99
	default:
		return 0
	}
}

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	return p == PlanHalfYearly || p == PlanYearly
}

const SubscriptionStatusActive = "active"

// Subscription represents one purchased subscription period. Rows are never
// updated in place; renewals and upgrades insert new rows.
type Subscription struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	PlanType         Plan      `json:"plan_type" db:"plan_type"`
	StartDate        time.Time `json:"start_date" db:"start_date"`
	EndDate          time.Time `json:"end_date" db:"end_date"`
	Status           string    `json:"status" db:"status"`
	Price            float64   `json:"price" db:"price"`
	TransactionID    string    `json:"transaction_id" db:"transaction_id"`
	PurchaseVerified bool      `json:"purchase_verified" db:"purchase_verified"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
