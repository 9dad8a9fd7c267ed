package handlers

import (
	"database/sql"

	"github.com/redis/go-redis/v9"

	"github.com/kmwangi/netbill-golang/internal/repository"
	"github.com/kmwangi/netbill-golang/internal/sessions"
)

// Handlers holds all dependencies for the API handlers.
type Handlers struct {
	DB            *sql.DB
	Subscribers   *repository.SubscriberRepository
	Subscriptions *repository.SubscriptionRepository
	Payments      *repository.PaymentRepository
	Plans         *repository.PlanRepository
	Sessions      *sessions.Store
}

// nonNilRows keeps empty list responses serializing as [] instead of
// null; row scanning leaves the slice nil when a query matches nothing.
func nonNilRows[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// New wires the repositories and the session store onto one Handlers
// value that main injects into the router.
func New(db *sql.DB, redisClient *redis.Client) *Handlers {
	return &Handlers{
		DB:            db,
		Subscribers:   repository.NewSubscriberRepository(db),
		Subscriptions: repository.NewSubscriptionRepository(db),
		Payments:      repository.NewPaymentRepository(db),
		Plans:         repository.NewPlanRepository(db),
		Sessions:      sessions.NewStore(redisClient),
	}
}
