package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/kmwangi/netbill-golang/internal/handlers"
	"github.com/kmwangi/netbill-golang/internal/middleware"
)

// CORSMiddleware tells the browser the console frontend is allowed to
// send credentialed requests to us. The allowed origin is overridable
// for deployments behind a real domain.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// The browser sends an empty preflight request first to check
		// permissions; reply with 204 and stop.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// CORS must be the very first thing the router uses.
	router.Use(CORSMiddleware())

	v1 := router.Group("/api/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/auth/login", h.Login)
		v1.POST("/auth/subscriber-login", h.SubscriberLogin)

		// --- Public Plan Routes ---
		// The portal pricing page reads these without a token.
		v1.GET("/plans", h.GetPlans)

		// --- Admin Console Routes ---
		admin := v1.Group("/")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/dashboard/stats", h.GetDashboard)

			// Subscriber Management
			admin.GET("/subscribers", h.GetSubscribers)
			admin.POST("/subscribers", h.CreateSubscriber)
			admin.PATCH("/subscribers/:id", h.UpdateSubscriber)
			admin.POST("/subscribers/bulk", h.BulkAction)
			admin.GET("/subscribers/online-sessions", h.GetOnlineSessions)

			// Subscription Lifecycle
			admin.GET("/subscriptions", h.GetSubscriptions)

			// Payments
			admin.GET("/payments", h.GetPayments)
			admin.GET("/payments/history", h.GetPaymentHistory)
			admin.POST("/payments/initiate", h.InitiatePayment)

			// Plan Management
			admin.POST("/plans", h.CreatePlan)
		}

		// --- Subscriber Portal Routes ---
		portal := v1.Group("/portal")
		portal.Use(middleware.AuthMiddleware())
		portal.Use(middleware.SubscriberMiddleware())
		{
			portal.GET("/me", h.GetPortalProfile)
			portal.GET("/payments", h.GetPortalPayments)
		}
	}

	return router
}
