package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kmwangi/netbill-golang/internal/billing"
	"github.com/kmwangi/netbill-golang/internal/listview"
)

// GetSubscriptions is the handler for GET /api/v1/subscriptions.
// Modes: active, expired, grace, renewals, history.
func (h *Handlers) GetSubscriptions(c *gin.Context) {
	mode := c.DefaultQuery("mode", "history")
	switch mode {
	case "active", "expired", "grace", "renewals", "history":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mode"})
		return
	}

	q := listview.DefaultQuery()
	q.Search = c.Query("q")
	q.Page = listview.ParsePage(c.Query("page"))

	dateRange, err := listview.ParseDateRange(c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q.Range = dateRange

	page, err := h.Subscriptions.List(c.Request.Context(), mode, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	now := time.Now()
	for i := range page.Rows {
		billing.Annotate(&page.Rows[i], now)
	}

	c.JSON(http.StatusOK, gin.H{
		"subscriptions": nonNilRows(page.Rows),
		"totalCount":    page.TotalCount,
		"page":          page.Page,
		"totalPages":    page.TotalPages,
	})
}
