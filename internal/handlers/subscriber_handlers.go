package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kmwangi/netbill-golang/internal/listview"
	"github.com/kmwangi/netbill-golang/internal/models"
)

var subscriberStatuses = []string{
	models.SubscriberStatusActive,
	models.SubscriberStatusExpired,
	models.SubscriberStatusSuspended,
}

// parseSubscriberView validates the raw query parameters into a typed
// ViewQuery. Invalid filter values are rejected here at the boundary;
// they never reach the predicate builder or the SQL layer.
func parseSubscriberView(c *gin.Context) (listview.ViewQuery, bool) {
	q := listview.DefaultQuery()

	status, err := listview.ParseChoiceFilter(c.Query("status"), subscriberStatuses...)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return q, false
	}
	category, err := listview.ParsePlanCategory(c.Query("plan"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return q, false
	}
	dateRange, err := listview.ParseDateRange(c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return q, false
	}

	q.Search = c.Query("q")
	q.Status = status
	q.Category = category
	q.Range = dateRange
	q.Page = listview.ParsePage(c.Query("page"))
	return q, true
}

// GetSubscribers is the handler for GET /api/v1/subscribers.
// The optional mode parameter is the page-level implicit filter
// (/subscribers/active, /subscribers/expired route variants); it is
// applied before, and cannot be removed by, the user-facing filters.
func (h *Handlers) GetSubscribers(c *gin.Context) {
	// 1. --- Validate View Parameters ---
	mode := c.DefaultQuery("mode", "all")
	switch mode {
	case "all", models.SubscriberStatusActive, models.SubscriberStatusExpired:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mode"})
		return
	}
	q, ok := parseSubscriberView(c)
	if !ok {
		return
	}

	// 2. --- Run the Filtered, Paged Query ---
	page, err := h.Subscribers.List(c.Request.Context(), mode, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	// 3. --- Annotate Online State from the Session Store ---
	ids := make([]string, len(page.Rows))
	for i, sub := range page.Rows {
		ids[i] = sub.ID
	}
	online, err := h.Sessions.OnlineIDs(c.Request.Context(), ids)
	if err == nil {
		for i := range page.Rows {
			page.Rows[i].Online = online[page.Rows[i].ID]
		}
	}
	// A session-store outage degrades to "everyone offline" rather
	// than failing the whole list.

	c.JSON(http.StatusOK, gin.H{
		"subscribers": nonNilRows(page.Rows),
		"totalCount":  page.TotalCount,
		"page":        page.Page,
		"totalPages":  page.TotalPages,
	})
}

// --- Subscriber Creation ---

type CreateSubscriberInput struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	PPPoEUsername string `json:"pppoe_username"`
	CurrentPlan   string `json:"currentPlan"`
}

// CreateSubscriber is the handler for POST /api/v1/subscribers.
func (h *Handlers) CreateSubscriber(c *gin.Context) {
	var input CreateSubscriberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := &models.Subscriber{
		ID:            "sub-" + uuid.NewString(),
		Name:          input.Name,
		Phone:         input.Phone,
		Email:         input.Email,
		PPPoEUsername: input.PPPoEUsername,
		CurrentPlan:   input.CurrentPlan,
		Status:        models.SubscriberStatusActive,
		CreatedAt:     time.Now(),
	}

	if err := h.Subscribers.Create(c.Request.Context(), sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscriber"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Subscriber created",
		"subscriber": sub,
	})
}

// --- Subscriber Update ---

type UpdateSubscriberInput struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" binding:"omitempty,email"`
	PPPoEUsername *string `json:"pppoe_username"`
	CurrentPlan   *string `json:"currentPlan"`
	Status        *string `json:"status" binding:"omitempty,oneof=active expired suspended"`
}

// UpdateSubscriber is the handler for PATCH /api/v1/subscribers/:id.
// Only the provided fields are written.
func (h *Handlers) UpdateSubscriber(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.Subscribers.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking subscriber"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}

	var input UpdateSubscriberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.PPPoEUsername != nil {
		fields["pppoe_username"] = *input.PPPoEUsername
	}
	if input.CurrentPlan != nil {
		fields["current_plan"] = *input.CurrentPlan
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}

	if err := h.Subscribers.Update(c.Request.Context(), id, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscriber"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscriber updated"})
}

// GetOnlineSessions is the handler for
// GET /api/v1/subscribers/online-sessions.
func (h *Handlers) GetOnlineSessions(c *gin.Context) {
	list, err := h.Sessions.ListOnline(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read sessions"})
		return
	}
	if list == nil {
		list = []models.OnlineSession{}
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions":   list,
		"totalCount": len(list),
	})
}
