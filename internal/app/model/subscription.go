package model

import "time"

// SubscriptionStatus mirrors the billing provider's subscription states
type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
)

// Subscription is maintained by the billing webhook and is not written here.
type Subscription struct {
	ID                   string             `json:"id" db:"id"`
	UserID               string             `json:"user_id" db:"user_id"`
	StripeSubscriptionID *string            `json:"stripe_subscription_id,omitempty" db:"stripe_subscription_id"`
	StripeCustomerID     *string            `json:"stripe_customer_id,omitempty" db:"stripe_customer_id"`
	Status               SubscriptionStatus `json:"status" db:"status"`
	PriceID              string             `json:"price_id" db:"price_id"`
	CurrentPeriodStart   time.Time          `json:"current_period_start" db:"current_period_start"`
	CurrentPeriodEnd     time.Time          `json:"current_period_end" db:"current_period_end"`
	CreatedAt            time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for Subscription
func (Subscription) TableName() string {
	return "subscriptions"
}
