package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/imjasmeet/e-commerce-app/cart"
	"github.com/imjasmeet/e-commerce-app/config"
	"github.com/imjasmeet/e-commerce-app/database"
	"github.com/imjasmeet/e-commerce-app/faults"
	"github.com/imjasmeet/e-commerce-app/logging"
	"github.com/imjasmeet/e-commerce-app/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Init DB
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	// Log streams
	logs, err := logging.New(cfg.LogDir)
	if err != nil {
		log.Fatalf("❌ Logger setup failed: %v", err)
	}
	defer logs.Close()

	// Fault injector, all simulations off
	inj := faults.New(cfg.SlowResponseDelay, cfg.RandomErrorRate)

	// Cart store
	var carts cart.Store = cart.NewMemoryStore()
	if cfg.RedisAddr != "" {
		carts = cart.NewRedisStore(cfg.RedisAddr)
		log.Printf("🛒 Using Redis cart store at %s", cfg.RedisAddr)
	}

	// Gin setup
	r := gin.New()
	r.Use(gin.Logger())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, carts, inj, logs)

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
