package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kmwangi/netbill-golang/internal/billing"
	"github.com/kmwangi/netbill-golang/internal/models"
)

// GetDashboard is the handler for GET /api/v1/dashboard/stats.
// Aggregates the headline counters shown on the admin landing page.
func (h *Handlers) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	active, err := h.Subscribers.CountByStatus(ctx, models.SubscriberStatusActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	expired, err := h.Subscribers.CountByStatus(ctx, models.SubscriberStatusExpired)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	suspended, err := h.Subscribers.CountByStatus(ctx, models.SubscriberStatusSuspended)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	grace, err := h.Subscriptions.CountByStatus(ctx, models.SubscriptionStatusGrace)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	monthStart := time.Now().AddDate(0, 0, -30)
	revenueCents, err := h.Payments.SumCompletedSince(ctx, monthStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	online := 0
	if list, err := h.Sessions.ListOnline(ctx); err == nil {
		online = len(list)
	}

	c.JSON(http.StatusOK, gin.H{
		"subscribers": gin.H{
			"active":    active,
			"expired":   expired,
			"suspended": suspended,
			"total":     active + expired + suspended,
			"online":    online,
		},
		"subscriptions": gin.H{
			"in_grace": grace,
		},
		"revenue": gin.H{
			"last_30_days_cents": revenueCents,
			"last_30_days":       billing.FormatCurrency(revenueCents, billing.DefaultCurrency),
		},
	})
}
