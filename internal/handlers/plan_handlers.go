package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/kmwangi/netbill-golang/internal/billing"
	"github.com/kmwangi/netbill-golang/internal/models"
)

type planView struct {
	models.Plan
	Price string `json:"price"`
}

// GetPlans is the handler for GET /api/v1/plans. Public: the portal
// pricing page reads it without a token.
func (h *Handlers) GetPlans(c *gin.Context) {
	plans, err := h.Plans.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	views := make([]planView, len(plans))
	for i, p := range plans {
		views[i] = planView{
			Plan:  p,
			Price: billing.FormatCurrency(p.PriceCents, billing.DefaultCurrency),
		}
	}

	c.JSON(http.StatusOK, gin.H{"plans": views})
}

type CreatePlanInput struct {
	Name         string `json:"name" binding:"required"`
	DownloadMbps int    `json:"download_mbps" binding:"required,gt=0"`
	UploadMbps   int    `json:"upload_mbps" binding:"required,gt=0"`
	PriceCents   int64  `json:"price_cents" binding:"required,gt=0"`
	ValidityDays int    `json:"validity_days" binding:"required,gt=0"`
}

// CreatePlan is the handler for POST /api/v1/plans.
func (h *Handlers) CreatePlan(c *gin.Context) {
	// 1. --- Validate the Request ---
	var input CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Generate a Unique Slug ---
	planSlug := slug.Make(input.Name)
	existing, err := h.Plans.GetBySlug(c.Request.Context(), planSlug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking slug"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A plan with this name already exists"})
		return
	}

	// 3. --- Insert the Plan ---
	plan := &models.Plan{
		ID:           "plan-" + uuid.NewString(),
		Name:         input.Name,
		Slug:         planSlug,
		DownloadMbps: input.DownloadMbps,
		UploadMbps:   input.UploadMbps,
		PriceCents:   input.PriceCents,
		ValidityDays: input.ValidityDays,
		CreatedAt:    time.Now(),
	}

	if err := h.Plans.Create(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Plan created",
		"plan": planView{
			Plan:  *plan,
			Price: billing.FormatCurrency(plan.PriceCents, billing.DefaultCurrency),
		},
	})
}
