package models

import "time"

// Payment methods accepted by the billing gateway boundary.
const (
	PaymentMethodMpesa        = "mpesa"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Payment statuses.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
)

// Payment defines the model for the 'payments' table.
// Amounts are stored in minor units (cents); display formatting is
// done by the billing package.
type Payment struct {
	ID             string    `json:"id" db:"id"`
	SubscriberID   string    `json:"subscriber_id" db:"subscriber_id"`
	SubscriberName string    `json:"subscriberName" db:"subscriber_name"`
	Username       string    `json:"username" db:"username"`
	PlanID         string    `json:"plan_id" db:"plan_id"`
	PlanName       string    `json:"plan" db:"plan_name"`
	AmountCents    int64     `json:"amount_cents" db:"amount_cents"`
	Method         string    `json:"method" db:"method"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
