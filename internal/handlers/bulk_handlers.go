package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmwangi/netbill-golang/internal/models"
)

type BulkActionInput struct {
	Action string   `json:"action" binding:"required,oneof=suspend restore assign_plan"`
	IDs    []string `json:"ids" binding:"required,min=1"`
	PlanID string   `json:"planId"`
}

// BulkActionResult reports the outcome for a single subscriber id.
// A bulk request succeeds as a whole (HTTP 200) even when some ids
// fail; callers inspect the per-id status.
type BulkActionResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BulkAction is the handler for POST /api/v1/subscribers/bulk.
// Supported actions: suspend, restore, assign_plan.
func (h *Handlers) BulkAction(c *gin.Context) {
	// 1. --- Validate the Request ---
	var input BulkActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var planName string
	if input.Action == "assign_plan" {
		if input.PlanID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "planId is required for assign_plan"})
			return
		}
		plan, err := h.Plans.Get(c.Request.Context(), input.PlanID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking plan"})
			return
		}
		if plan == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Plan not found"})
			return
		}
		planName = plan.Name
	}

	// 2. --- Apply the Action Per Id ---
	results := make([]BulkActionResult, 0, len(input.IDs))
	succeeded := 0
	for _, id := range input.IDs {
		var err error
		switch input.Action {
		case "suspend":
			err = h.Subscribers.UpdateStatus(c.Request.Context(), id, models.SubscriberStatusSuspended)
			if err == nil {
				// Suspension kicks the subscriber offline too. A
				// session-store failure here is not fatal; the entry
				// expires on its own TTL.
				_ = h.Sessions.SetOffline(c.Request.Context(), id)
			}
		case "restore":
			err = h.Subscribers.UpdateStatus(c.Request.Context(), id, models.SubscriberStatusActive)
		case "assign_plan":
			err = h.Subscribers.AssignPlan(c.Request.Context(), id, planName)
		}

		if err != nil {
			results = append(results, BulkActionResult{ID: id, Status: "error", Error: err.Error()})
			continue
		}
		succeeded++
		results = append(results, BulkActionResult{ID: id, Status: "success"})
	}

	c.JSON(http.StatusOK, gin.H{
		"action":    input.Action,
		"succeeded": succeeded,
		"failed":    len(input.IDs) - succeeded,
		"results":   results,
	})
}
