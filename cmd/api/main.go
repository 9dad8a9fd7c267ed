package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kmwangi/netbill-golang/internal/database"
	"github.com/kmwangi/netbill-golang/internal/handlers"
	"github.com/kmwangi/netbill-golang/internal/routes"
	"github.com/kmwangi/netbill-golang/internal/scheduler"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. --- Redis Connection (Sessions + Events) ---
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()

	// --- Application Setup ---
	app := handlers.New(db, redisClient)

	// 3. --- Background Worker (Expiry Sweep) ---
	sweepInterval := time.Hour
	if raw := os.Getenv("SWEEP_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			sweepInterval = parsed
		} else {
			log.Printf("WARNING: Invalid SWEEP_INTERVAL %q, using default: %v", raw, err)
		}
	}

	sweeper := scheduler.NewService(app.Subscriptions, app.Subscribers, redisClient, sweepInterval)
	go sweeper.Start(context.Background())
	defer sweeper.Stop()
	log.Println("Background worker started: monitoring subscription expiry...")

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting NetBill API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
