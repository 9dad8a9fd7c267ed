package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kmwangi/netbill-golang/internal/billing"
	"github.com/kmwangi/netbill-golang/internal/listview"
	"github.com/kmwangi/netbill-golang/internal/models"
)

var paymentStatuses = []string{
	models.PaymentStatusCompleted,
	models.PaymentStatusPending,
	models.PaymentStatusFailed,
}

var paymentMethods = []string{
	models.PaymentMethodMpesa,
	models.PaymentMethodCard,
	models.PaymentMethodBankTransfer,
}

// paymentView wraps a payment with its display amount so clients
// never re-derive currency formatting.
type paymentView struct {
	models.Payment
	Amount string `json:"amount"`
}

func toPaymentViews(rows []models.Payment) []paymentView {
	views := make([]paymentView, len(rows))
	for i, p := range rows {
		views[i] = paymentView{
			Payment: p,
			Amount:  billing.FormatCurrency(p.AmountCents, billing.DefaultCurrency),
		}
	}
	return views
}

// GetPayments is the handler for GET /api/v1/payments.
func (h *Handlers) GetPayments(c *gin.Context) {
	// 1. --- Validate View Parameters ---
	status, err := listview.ParseChoiceFilter(c.Query("status"), paymentStatuses...)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	method, err := listview.ParseChoiceFilter(c.Query("method"), paymentMethods...)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dateRange, err := listview.ParseDateRange(c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q := listview.DefaultQuery()
	q.Search = c.Query("q")
	q.Status = status
	q.Range = dateRange
	q.Page = listview.ParsePage(c.Query("page"))

	// 2. --- Run the Filtered, Paged Query ---
	page, err := h.Payments.List(c.Request.Context(), q, method)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":   toPaymentViews(page.Rows),
		"totalCount": page.TotalCount,
		"page":       page.Page,
		"totalPages": page.TotalPages,
	})
}

// GetPaymentHistory is the handler for
// GET /api/v1/payments/history?subscriber_id=...
func (h *Handlers) GetPaymentHistory(c *gin.Context) {
	subscriberID := c.Query("subscriber_id")
	if subscriberID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subscriber_id is required"})
		return
	}

	rows, err := h.Payments.HistoryBySubscriber(c.Request.Context(), subscriberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": toPaymentViews(rows)})
}

// --- Payment Initiation ---

type InitiatePaymentInput struct {
	SubscriberID string `json:"subscriber_id" binding:"required"`
	PlanID       string `json:"plan_id" binding:"required"`
	Method       string `json:"method" binding:"omitempty,oneof=mpesa card bank_transfer"`
}

// InitiatePayment is the handler for POST /api/v1/payments/initiate.
// It records a pending payment for the given plan; settlement is
// confirmed out of band by the gateway callback.
func (h *Handlers) InitiatePayment(c *gin.Context) {
	// 1. --- Validate the Request ---
	var input InitiatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.Subscribers.Get(c.Request.Context(), input.SubscriberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking subscriber"})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}

	plan, err := h.Plans.Get(c.Request.Context(), input.PlanID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking plan"})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	method := input.Method
	if method == "" {
		method = models.PaymentMethodMpesa
	}

	// 2. --- Record the Pending Payment ---
	payment := &models.Payment{
		ID:             "PAY-" + uuid.NewString()[:8],
		SubscriberID:   sub.ID,
		SubscriberName: sub.Name,
		Username:       sub.PPPoEUsername,
		PlanID:         plan.ID,
		PlanName:       plan.Name,
		AmountCents:    plan.PriceCents,
		Method:         method,
		Status:         models.PaymentStatusPending,
		CreatedAt:      time.Now(),
	}

	if err := h.Payments.Create(c.Request.Context(), payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment initiated",
		"payment": paymentView{
			Payment: *payment,
			Amount:  billing.FormatCurrency(payment.AmountCents, billing.DefaultCurrency),
		},
	})
}
