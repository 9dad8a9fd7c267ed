// Package scheduler runs the subscription expiry sweep: active
// subscriptions whose expiry date has passed move into the grace
// window, grace subscriptions whose window has closed expire, and the
// owning subscriber's status is mirrored so the console lists agree.
package scheduler

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/kmwangi/netbill-golang/internal/billing"
	"github.com/kmwangi/netbill-golang/internal/models"
	"github.com/kmwangi/netbill-golang/internal/repository"
)

const eventChannel = "billing.subscription.updated"

type Service struct {
	subscriptions *repository.SubscriptionRepository
	subscribers   *repository.SubscriberRepository
	redis         *redis.Client
	interval      time.Duration
	stop          chan struct{}
	stopOnce      sync.Once
}

func NewService(
	subscriptions *repository.SubscriptionRepository,
	subscribers *repository.SubscriberRepository,
	redisClient *redis.Client,
	interval time.Duration,
) *Service {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Service{
		subscriptions: subscriptions,
		subscribers:   subscribers,
		redis:         redisClient,
		interval:      interval,
		stop:          make(chan struct{}),
	}
}

// Start runs the sweep immediately and then on every tick until the
// context is cancelled or Stop is called. It blocks; run it in a
// goroutine.
func (s *Service) Start(ctx context.Context) {
	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.run(ctx)
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops the scheduler. Safe to call more than once.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *Service) run(parent context.Context) {
	log.Println("Running subscription expiry sweep...")
	now := time.Now()

	ctx, cancel := context.WithTimeout(parent, 5*time.Minute)
	defer cancel()

	if err := s.sweepIntoGrace(ctx, now); err != nil {
		log.Printf("Error sweeping subscriptions into grace: %v", err)
	}
	if err := s.sweepIntoExpired(ctx, now); err != nil {
		log.Printf("Error sweeping subscriptions into expired: %v", err)
	}
}

func (s *Service) sweepIntoGrace(ctx context.Context, now time.Time) error {
	due, err := s.subscriptions.GetDueForGrace(ctx, now)
	if err != nil {
		return errors.Wrap(err, "failed to get subscriptions due for grace")
	}

	for _, sub := range due {
		graceEnd := billing.GraceEndsAt(sub.ExpiryDate)
		if err := s.subscriptions.MarkGrace(ctx, sub.ID, graceEnd); err != nil {
			log.Printf("Error moving subscription %s into grace: %v", sub.ID, err)
			continue
		}
		// Grace-period subscribers keep service, so the subscriber row
		// stays active until the window closes.
		s.publish(ctx, sub, models.SubscriptionStatusGrace)
	}
	return nil
}

func (s *Service) sweepIntoExpired(ctx context.Context, now time.Time) error {
	due, err := s.subscriptions.GetDueForExpiry(ctx, now)
	if err != nil {
		return errors.Wrap(err, "failed to get subscriptions due for expiry")
	}

	for _, sub := range due {
		if err := s.subscriptions.MarkExpired(ctx, sub.ID); err != nil {
			log.Printf("Error expiring subscription %s: %v", sub.ID, err)
			continue
		}
		if err := s.subscribers.UpdateStatus(ctx, sub.SubscriberID, models.SubscriberStatusExpired); err != nil {
			log.Printf("Error mirroring expiry to subscriber %s: %v", sub.SubscriberID, err)
		}
		s.publish(ctx, sub, models.SubscriptionStatusExpired)
	}
	return nil
}

// publish notifies downstream consumers (notification sender, portal
// websockets) about a lifecycle change. Publish failures are logged,
// not fatal: the sweep itself already committed.
func (s *Service) publish(ctx context.Context, sub models.Subscription, event string) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"subscriptionId": sub.ID,
		"subscriberId":   sub.SubscriberID,
		"event":          event,
	})
	if err != nil {
		log.Printf("Error marshaling subscription event: %v", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.redis.Publish(pubCtx, eventChannel, string(data)).Err(); err != nil {
		log.Printf("Error publishing subscription event: %v", err)
	}
}
