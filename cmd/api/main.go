package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/whittakeragency/agency-api/docs" // Swagger docs
	"github.com/whittakeragency/agency-api/internal/config"
	"github.com/whittakeragency/agency-api/internal/database"
	"github.com/whittakeragency/agency-api/internal/handlers"
	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/middleware"
	"github.com/whittakeragency/agency-api/internal/repository"
	"github.com/whittakeragency/agency-api/internal/services"
	"github.com/whittakeragency/agency-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Whittaker Agency API
// @version 1.0
// @description REST API for the Whittaker Insurance Agency customer portal and admin dashboard

// @contact.name API Support
// @contact.email support@whittakeragency.com

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.ResendAPIKey == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY not set. Admin notices and welcome emails will be skipped.")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, svcs, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, svcs *services.Services, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(middleware.Recovery(svcs.SystemLog))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// Contact form accepts guests; Index/Show require a token
		contact := v1.Group("/contact")
		{
			contact.POST("", middleware.OptionalAuth(cfg.JWTSecret), h.Contact.Create)
			contact.GET("", middleware.Auth(cfg.JWTSecret), h.Contact.Index)
			contact.GET("/:id", middleware.Auth(cfg.JWTSecret), h.Contact.Show)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Customer quote requests
			protected.POST("/quotes", h.Quote.Create)
			protected.GET("/quotes", h.Quote.Index)
			protected.GET("/quotes/:id", h.Quote.Show)

			// Customer claims
			protected.POST("/claims", h.Claim.Create)
			protected.GET("/claims", h.Claim.Index)
			protected.GET("/claims/:id", h.Claim.Show)
			protected.DELETE("/claims/:id", h.Claim.Delete)

			// Admin-only routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/dashboard", h.Admin.Dashboard)
				admin.GET("/attention-items", h.Admin.AttentionItems)
				admin.GET("/recent-activity", h.Admin.RecentActivity)

				admin.GET("/quotes", h.Admin.ListQuotes)
				admin.GET("/quotes/:id", h.Admin.QuoteDetail)
				admin.PUT("/quotes/:id", h.Admin.UpdateQuote)

				admin.GET("/claims", h.Admin.ListClaims)
				admin.GET("/claims/:id", h.Admin.ClaimDetail)
				admin.PUT("/claims/:id", h.Admin.UpdateClaim)

				admin.GET("/messages", h.Admin.ListMessages)
				admin.GET("/messages/:id", h.Admin.MessageDetail)
				admin.PUT("/messages/:id", h.Admin.UpdateMessage)

				admin.GET("/users", h.Admin.ListUsers)
				admin.GET("/users/:id", h.Admin.UserDetail)
				admin.PUT("/users/:id", h.Admin.UpdateUser)

				admin.GET("/audit-logs", h.Audit.Index)
				admin.GET("/system-logs", h.Audit.SystemLogs)

				admin.GET("/export/quotes", h.Export.Quotes)
				admin.GET("/export/claims", h.Export.Claims)
				admin.GET("/export/users", h.Export.Users)
				admin.GET("/export/attention", h.Export.Attention)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Daily attention digest for the agency inbox
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Sending attention digest...")
		resp, err := svcs.Admin.AttentionItems(ctx)
		if err != nil {
			return err
		}
		return svcs.Email.SendAttentionDigest(ctx, resp.Items)
	})

	logger.Info("Scheduled recurring jobs")
}
