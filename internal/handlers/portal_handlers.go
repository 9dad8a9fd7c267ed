package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Portal handlers serve the subscriber self-service surface. The
// subscriber id always comes from the token subject, never from the
// request, so one subscriber can never read another's records.

// GetPortalProfile is the handler for GET /api/v1/portal/me.
func (h *Handlers) GetPortalProfile(c *gin.Context) {
	subscriberID := c.GetString("subject")

	sub, err := h.Subscribers.Get(c.Request.Context(), subscriberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}

	online, err := h.Sessions.OnlineIDs(c.Request.Context(), []string{sub.ID})
	if err == nil {
		sub.Online = online[sub.ID]
	}

	c.JSON(http.StatusOK, gin.H{"subscriber": sub})
}

// GetPortalPayments is the handler for GET /api/v1/portal/payments.
func (h *Handlers) GetPortalPayments(c *gin.Context) {
	subscriberID := c.GetString("subject")

	rows, err := h.Payments.HistoryBySubscriber(c.Request.Context(), subscriberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": toPaymentViews(rows)})
}
