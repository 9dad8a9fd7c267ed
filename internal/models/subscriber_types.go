package models

import "time"

// Subscriber statuses. These drive both the page-level mode filters
// and the row styling in the admin console.
const (
	SubscriberStatusActive    = "active"
	SubscriberStatusExpired   = "expired"
	SubscriberStatusSuspended = "suspended"
)

// Subscriber is the model for the 'subscribers' table.
type Subscriber struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Phone         string    `json:"phone" db:"phone"`
	Email         string    `json:"email" db:"email"`
	PPPoEUsername string    `json:"pppoe_username" db:"pppoe_username"`
	CurrentPlan   string    `json:"currentPlan" db:"current_plan"`
	Status        string    `json:"subscriptionStatus" db:"status"`
	ExpiryDate    time.Time `json:"expiryDate" db:"expiry_date"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Online is not a column; it is resolved from the session store
	// before the subscriber is returned to the console.
	Online bool `json:"online" db:"-"`
}
