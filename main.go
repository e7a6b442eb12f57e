package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/config"
	"github.com/yourusername/leaselog/handlers"
	"github.com/yourusername/leaselog/middleware"
	"github.com/yourusername/leaselog/services"
	"github.com/yourusername/leaselog/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	router := setupRouter(db, cfg)

	// Reminder and late-fee sweeps; in production these could equally be
	// driven by an external cron hitting the same service functions.
	notifier := utils.NewLogNotifier()
	go runDailyJobs(db, notifier)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting LeaseLog API server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "leaselog-api",
		})
	})

	api := router.Group("/api/v1")

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db, cfg)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Everything else requires a landlord account
	protected := api.Group("")
	protected.Use(middleware.JwtAuthMiddleware(cfg))
	{
		propertyHandler := handlers.NewPropertyHandler(db)
		protected.POST("/properties", propertyHandler.Create)
		protected.GET("/properties", propertyHandler.List)
		protected.GET("/properties/:id", propertyHandler.Get)
		protected.PUT("/properties/:id", propertyHandler.Update)
		protected.DELETE("/properties/:id", propertyHandler.Delete)
		protected.POST("/properties/:id/units", propertyHandler.CreateUnit)
		protected.GET("/properties/:id/units", propertyHandler.ListUnits)
		protected.PUT("/units/:id", propertyHandler.UpdateUnit)
		protected.DELETE("/units/:id", propertyHandler.DeleteUnit)

		tenantHandler := handlers.NewTenantHandler(db)
		protected.POST("/tenants", tenantHandler.Create)
		protected.GET("/tenants", tenantHandler.List)
		protected.GET("/tenants/:id", tenantHandler.Get)
		protected.PUT("/tenants/:id", tenantHandler.Update)
		protected.DELETE("/tenants/:id", tenantHandler.Delete)

		leaseHandler := handlers.NewLeaseHandler(db)
		protected.POST("/leases", leaseHandler.Create)
		protected.GET("/leases", leaseHandler.List)
		protected.GET("/leases/:id", leaseHandler.Get)
		protected.PUT("/leases/:id", leaseHandler.Update)
		protected.DELETE("/leases/:id", leaseHandler.Delete)
		protected.POST("/leases/:id/activate", leaseHandler.Activate)
		protected.POST("/leases/:id/terminate", leaseHandler.Terminate)
		protected.POST("/leases/:id/renew", leaseHandler.Renew)

		rentPaymentHandler := handlers.NewRentPaymentHandler(db)
		protected.GET("/rent-payments", rentPaymentHandler.List)
		protected.GET("/rent-payments/:id", rentPaymentHandler.Get)
		protected.POST("/rent-payments/:id/record", rentPaymentHandler.Record)
		protected.POST("/rent-payments/:id/apply_late_fee", rentPaymentHandler.ApplyLateFee)
		protected.POST("/rent-payments/:id/waive_late_fee", rentPaymentHandler.WaiveLateFee)
	}

	return router
}

// runDailyJobs runs the periodic ledger passes once at startup and then once
// a day. Each pass is independent; a failing one is logged and skipped.
func runDailyJobs(db *gorm.DB, notifier utils.NotifierInterface) {
	runJobsOnce(db, notifier)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		runJobsOnce(db, notifier)
	}
}

func runJobsOnce(db *gorm.DB, notifier utils.NotifierInterface) {
	now := time.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if n, err := services.MarkExpiredLeases(db, day); err != nil {
		log.Printf("jobs: mark expired leases: %v", err)
	} else if n > 0 {
		log.Printf("jobs: marked %d leases expired", n)
	}

	if n, err := services.SweepLateFees(db, day); err != nil {
		log.Printf("jobs: late fee sweep: %v", err)
	} else if n > 0 {
		log.Printf("jobs: applied %d late fees", n)
	}

	if n, err := services.SendRentReminders(db, notifier, day); err != nil {
		log.Printf("jobs: rent reminders: %v", err)
	} else if n > 0 {
		log.Printf("jobs: sent %d rent reminders", n)
	}

	if n, err := services.SendRentDueNotices(db, notifier, day); err != nil {
		log.Printf("jobs: rent due notices: %v", err)
	} else if n > 0 {
		log.Printf("jobs: sent %d due notices", n)
	}

	if n, err := services.SendLateNotices(db, notifier, day); err != nil {
		log.Printf("jobs: late notices: %v", err)
	} else if n > 0 {
		log.Printf("jobs: sent %d late notices", n)
	}

	if n, err := services.SendLeaseExpiryWarnings(db, notifier, day); err != nil {
		log.Printf("jobs: expiry warnings: %v", err)
	} else if n > 0 {
		log.Printf("jobs: sent %d expiry warnings", n)
	}
}
