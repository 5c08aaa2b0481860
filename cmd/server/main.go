package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mobus/booking-backend/internal/config"
	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/handlers"
	"github.com/mobus/booking-backend/internal/middleware"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/internal/services"
	"github.com/mobus/booking-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting MoBus Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Select the storage backend. An empty DATABASE_URL runs the whole
	// platform against the in-memory store.
	var (
		stores database.Stores
		db     database.DB
	)
	if cfg.Database.URL != "" {
		logger.Info("Connecting to database...")
		db, err = database.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")

		stores = database.NewPostgresStores(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		stores = database.NewMemoryStore().Stores()
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	locks := services.NewPartitionLock()
	inventoryService := services.NewInventoryService(stores.Bookings, logger)
	bookingService := services.NewBookingService(stores, inventoryService, locks, cfg.Booking, logger)
	searchService := services.NewSearchService(stores, inventoryService, logger)
	authService := services.NewAuthService(stores.Users, stores.Operators, jwtService, cfg.Security.BcryptCost, logger)
	operatorService := services.NewOperatorService(stores.Operators, stores.Users, logger)
	fleetService := services.NewFleetService(stores, logger)
	complaintService := services.NewComplaintService(stores.Complaints, stores.Bookings, logger)
	analyticsService := services.NewAnalyticsService(stores, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	searchHandler := handlers.NewSearchHandler(searchService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	operatorHandler := handlers.NewOperatorHandler(operatorService, fleetService, bookingService, analyticsService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	adminHandler := handlers.NewAdminHandler(stores.Users, operatorService, analyticsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	api := router.Group("/api")
	{
		// Authentication routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthMiddleware(jwtService, logger), authHandler.Me)
		}

		// Route discovery (public)
		api.GET("/routes/search", searchHandler.SearchRoutes)
		api.GET("/routes/:id/availability", searchHandler.RouteAvailability)
		api.GET("/routes/:id/seats", bookingHandler.OccupiedSeats)

		// Authenticated routes
		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(jwtService, logger))
		{
			authed.POST("/bookings", bookingHandler.CreateBooking)
			authed.GET("/bookings", bookingHandler.MyBookings)
			authed.GET("/bookings/:id", bookingHandler.GetBooking)
			authed.PATCH("/bookings/:id/status", bookingHandler.UpdateBookingStatus)

			authed.POST("/operators", operatorHandler.CreateOperator)
			authed.POST("/complaints", complaintHandler.CreateComplaint)
			authed.GET("/complaints", complaintHandler.MyComplaints)
		}

		// Operator dashboard routes
		operator := api.Group("/operator")
		operator.Use(middleware.AuthMiddleware(jwtService, logger), middleware.RequireRole(models.RoleOperator))
		{
			operator.GET("/profile", operatorHandler.MyOperator)
			operator.POST("/buses", operatorHandler.CreateBus)
			operator.GET("/buses", operatorHandler.MyBuses)
			operator.PATCH("/buses/:id", operatorHandler.UpdateBus)
			operator.DELETE("/buses/:id", operatorHandler.DeleteBus)
			operator.POST("/routes", operatorHandler.CreateRoute)
			operator.GET("/routes", operatorHandler.MyRoutes)
			operator.PATCH("/routes/:id", operatorHandler.UpdateRoute)
			operator.DELETE("/routes/:id", operatorHandler.DeleteRoute)
			operator.GET("/bookings", operatorHandler.MyBookings)
			operator.GET("/stats", operatorHandler.MyStats)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService, logger), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/operators", adminHandler.ListOperators)
			admin.PATCH("/operators/:id", operatorHandler.UpdateOperator)
			admin.GET("/complaints", complaintHandler.ListComplaints)
			admin.PATCH("/complaints/:id", complaintHandler.UpdateComplaint)
			admin.GET("/stats", adminHandler.PlatformStats)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		logger.WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}).Info("Request completed")
	}
}

// healthCheckHandler reports process and database health. A nil db means
// the in-memory store is active.
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"version": version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		}

		if db != nil {
			if err := db.Ping(); err != nil {
				status["status"] = "degraded"
				status["database"] = "unreachable"
				c.JSON(http.StatusServiceUnavailable, status)
				return
			}
			status["database"] = "ok"
		} else {
			status["database"] = "in-memory"
		}

		c.JSON(http.StatusOK, status)
	}
}
