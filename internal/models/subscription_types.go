package models

import "time"

// Subscription statuses. 'grace' sits between active and expired: the
// expiry date has passed but service is still nominally available until
// the grace window closes.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusGrace     = "grace"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusCompleted = "completed"
)

// Subscription defines the model for the 'subscriptions' table.
type Subscription struct {
	ID             string     `json:"id" db:"id"`
	SubscriberID   string     `json:"subscriberId" db:"subscriber_id"`
	SubscriberName string     `json:"subscriberName" db:"subscriber_name"`
	Username       string     `json:"username" db:"username"`
	PlanName       string     `json:"planName" db:"plan_name"`
	Status         string     `json:"status" db:"status"`
	StartDate      time.Time  `json:"startDate" db:"start_date"`
	ExpiryDate     time.Time  `json:"expiryDate" db:"expiry_date"`
	GraceEndsAt    *time.Time `json:"graceEndsAt,omitempty" db:"grace_ends_at"`
	LastPayment    *time.Time `json:"lastPayment,omitempty" db:"last_payment"`

	// Computed from the expiry date by the billing package; mutually
	// exclusive by status. DaysRemaining is set for active/grace rows,
	// DaysExpired for expired rows.
	DaysRemaining *int `json:"daysRemaining,omitempty" db:"-"`
	DaysExpired   *int `json:"daysExpired,omitempty" db:"-"`
}
