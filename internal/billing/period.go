package billing

import (
	"math"
	"time"

	"github.com/kmwangi/netbill-golang/internal/models"
)

// GracePeriodDays is how long service stays nominally available after
// the expiry date passes.
const GracePeriodDays = 3

// GraceEndsAt returns the end of the grace window for an expiry date.
func GraceEndsAt(expiry time.Time) time.Time {
	return expiry.AddDate(0, 0, GracePeriodDays)
}

// DaysRemaining counts whole days until expiry, rounding up so that a
// subscription expiring tomorrow morning still shows "1 day".
// Never negative.
func DaysRemaining(now, expiry time.Time) int {
	if !expiry.After(now) {
		return 0
	}
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// DaysExpired counts whole days since expiry. Never negative.
func DaysExpired(now, expiry time.Time) int {
	if !now.After(expiry) {
		return 0
	}
	return int(now.Sub(expiry).Hours() / 24)
}

// StatusAt derives the lifecycle status for an expiry date: active
// until expiry, grace until the grace window closes, expired after.
func StatusAt(now, expiry time.Time) string {
	switch {
	case expiry.After(now):
		return models.SubscriptionStatusActive
	case GraceEndsAt(expiry).After(now):
		return models.SubscriptionStatusGrace
	default:
		return models.SubscriptionStatusExpired
	}
}

// Annotate fills the computed day counters on a subscription row for
// the console. DaysRemaining and DaysExpired are mutually exclusive by
// status: active/grace rows count down, expired rows count up, and
// pending/completed history rows carry neither.
func Annotate(sub *models.Subscription, now time.Time) {
	sub.DaysRemaining = nil
	sub.DaysExpired = nil

	switch sub.Status {
	case models.SubscriptionStatusActive, models.SubscriptionStatusGrace:
		d := DaysRemaining(now, sub.ExpiryDate)
		sub.DaysRemaining = &d
	case models.SubscriptionStatusExpired:
		d := DaysExpired(now, sub.ExpiryDate)
		sub.DaysExpired = &d
	}
}
