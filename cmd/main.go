package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"listing-builder-service/internal/catalog"
	"listing-builder-service/internal/clients"
	"listing-builder-service/internal/config"
	"listing-builder-service/internal/handlers"
	"listing-builder-service/internal/middleware"
	"listing-builder-service/internal/repository"
	"listing-builder-service/internal/session"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/rbac"
	"github.com/Tesseract-Nexus/go-shared/secrets"
	"github.com/Tesseract-Nexus/go-shared/tracing"
)

// @title Listing Builder API
// @version 1.0.0
// @description Bulk listing authoring service: cascading variant selection and spreadsheet-style draft grids with multi-tenant support
// @termsOfService http://swagger.io/terms/

// @contact.name Listing Builder API Support
// @contact.url http://www.example.com/support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8093
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	// Set Redis password from GCP Secret Manager
	redisOpts.Password = secrets.GetRedisPassword()
	redisClient := redis.NewClient(redisOpts)

	// Test Redis connection. Sessions degrade to process memory without it.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisAvailable := true
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (sessions will be in-memory only)", err)
		redisAvailable = false
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Initialize session store
	var sessionStore session.Store
	if redisAvailable {
		sessionStore = session.NewStore(redisClient, cfg.SessionTTL)
	} else {
		sessionStore = session.NewStore(nil, cfg.SessionTTL)
	}

	// Initialize repository
	draftsRepo := repository.NewDraftsRepository(db, redisClient)

	// Initialize clients
	catalogClient := clients.NewCatalogClient()
	referenceClient := clients.NewReferenceClient()
	listingsClient := clients.NewListingsClient()

	// Initialize catalog loader
	catalogLoader := catalog.NewLoader(catalogClient, logger)

	// Initialize handlers
	sessionsHandler := handlers.NewSessionsHandler(sessionStore, catalogLoader, listingsClient, cfg.ListingNoPrefix, logger)
	gridHandler := handlers.NewGridHandler(sessionsHandler, sessionStore, logger)
	sheetHandler := handlers.NewSheetHandler(sessionsHandler, sessionStore, logger)
	referenceHandler := handlers.NewReferenceHandler(referenceClient, logger)
	draftsHandler := handlers.NewDraftsHandler(draftsRepo, sessionStore, cfg.DefaultPageSize, cfg.MaxPageSize, logger)

	// Initialize OpenTelemetry tracing
	var tracerProvider *tracing.TracerProvider
	if cfg.Environment == "production" {
		tracerProvider, err = tracing.InitTracer(tracing.ProductionConfig("listing-builder-service"))
	} else {
		tracerProvider, err = tracing.InitTracer(tracing.DefaultConfig("listing-builder-service"))
	}
	if err != nil {
		log.Printf("WARNING: Failed to initialize tracing: %v (continuing without tracing)", err)
	} else {
		log.Println("✓ OpenTelemetry tracing initialized")
	}

	// Initialize Prometheus metrics
	metrics := gosharedmw.InitGlobalMetrics("tesseract", "listing_builder_service")
	log.Println("✓ Prometheus metrics initialized")

	// Initialize RBAC middleware
	staffServiceURL := os.Getenv("STAFF_SERVICE_URL")
	if staffServiceURL == "" {
		staffServiceURL = "http://staff-service:8080"
	}
	rbacMw := rbac.NewMiddlewareWithURL(staffServiceURL, nil)
	log.Println("✓ RBAC middleware initialized")

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Add observability middleware (metrics + tracing)
	router.Use(metrics.Middleware())
	router.Use(tracing.GinMiddleware("listing-builder-service"))
	router.Use(gosharedmw.CompressionMiddleware())

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)
	router.GET("/metrics", gosharedmw.Handler())

	// Protected API routes
	api := router.Group("/api/v1")

	// Initialize Istio auth middleware for Keycloak JWT validation
	// During migration, AllowLegacyHeaders enables fallback to X-* headers from auth-bff
	istioAuthLogger := logrus.NewEntry(logger).WithField("component", "istio_auth")
	istioAuth := gosharedmw.IstioAuth(gosharedmw.IstioAuthConfig{
		RequireAuth:        true,
		AllowLegacyHeaders: true, // Allow X-User-ID, X-Tenant-ID during migration
		Logger:             istioAuthLogger,
	})

	// Authentication middleware
	// In development: use DevelopmentAuthMiddleware for local testing
	// In production: use IstioAuth which reads x-jwt-claim-* headers from Istio
	if cfg.Environment == "development" {
		api.Use(middleware.DevelopmentAuthMiddleware())
		api.Use(middleware.TenantMiddleware()) // Still needed in dev mode
	} else {
		api.Use(istioAuth)
		api.Use(middleware.TenantMiddleware())
	}

	// API routes
	v1 := api.Group("")
	{
		sessions := v1.Group("/sessions")
		{
			// Template download is session-independent
			sessions.GET("/template", rbacMw.RequirePermission(rbac.PermissionProductsRead), sheetHandler.GetTemplate)

			// Session lifecycle
			sessions.POST("", rbacMw.RequirePermission(rbac.PermissionProductsCreate), sessionsHandler.CreateSession)
			sessions.GET("/:id", rbacMw.RequirePermission(rbac.PermissionProductsRead), sessionsHandler.GetSession)
			sessions.DELETE("/:id", rbacMw.RequirePermission(rbac.PermissionProductsCreate), sessionsHandler.DeleteSession)

			// Cascading variant selection
			sessions.PUT("/:id/selection/models", rbacMw.RequirePermission(rbac.PermissionProductsCreate), sessionsHandler.SetModels)
			sessions.PUT("/:id/selection/storages", rbacMw.RequirePermission(rbac.PermissionProductsCreate), sessionsHandler.SetStorages)
			sessions.PUT("/:id/selection/colors", rbacMw.RequirePermission(rbac.PermissionProductsCreate), sessionsHandler.SetColors)
			sessions.GET("/:id/options", rbacMw.RequirePermission(rbac.PermissionProductsRead), sessionsHandler.GetOptions)

			// Row grid operations
			sessions.POST("/:id/rows/materialize", rbacMw.RequirePermission(rbac.PermissionProductsCreate), gridHandler.Materialize)
			sessions.POST("/:id/rows", rbacMw.RequirePermission(rbac.PermissionProductsCreate), gridHandler.AddRow)
			sessions.PUT("/:id/rows/:index", rbacMw.RequirePermission(rbac.PermissionProductsCreate), gridHandler.UpdateCell)
			sessions.POST("/:id/rows/:index/duplicate", rbacMw.RequirePermission(rbac.PermissionProductsCreate), gridHandler.DuplicateRow)
			sessions.DELETE("/:id/rows/:index", rbacMw.RequirePermission(rbac.PermissionProductsCreate), gridHandler.RemoveRow)
			sessions.POST("/:id/rows/fill-down", rbacMw.RequirePermission(rbac.PermissionProductsCreate), gridHandler.FillDown)
			sessions.POST("/:id/rows/fill-all-below", rbacMw.RequirePermission(rbac.PermissionProductsCreate), gridHandler.FillAllBelow)
			sessions.PUT("/:id/focus", rbacMw.RequirePermission(rbac.PermissionProductsCreate), sessionsHandler.SetFocus)

			// Sheet round-trip
			sessions.GET("/:id/export", rbacMw.RequirePermission(rbac.PermissionProductsRead), sheetHandler.ExportGrid)
			sessions.POST("/:id/import", rbacMw.RequirePermission(rbac.PermissionProductsCreate), sheetHandler.ImportGrid)

			// Finalization
			sessions.POST("/:id/submit", rbacMw.RequirePermission(rbac.PermissionProductsCreate), sessionsHandler.Submit)
		}

		// Saved drafts
		drafts := v1.Group("/drafts")
		{
			drafts.POST("", rbacMw.RequirePermission(rbac.PermissionProductsCreate), draftsHandler.SaveDraft)
			drafts.GET("", rbacMw.RequirePermission(rbac.PermissionProductsRead), draftsHandler.ListDrafts)
			drafts.GET("/:id", rbacMw.RequirePermission(rbac.PermissionProductsRead), draftsHandler.GetDraft)
			drafts.POST("/:id/restore", rbacMw.RequirePermission(rbac.PermissionProductsCreate), draftsHandler.RestoreDraft)
			drafts.DELETE("/:id", rbacMw.RequirePermission(rbac.PermissionProductsCreate), draftsHandler.DeleteDraft)
		}

		// Per-row select sources
		reference := v1.Group("/reference")
		{
			reference.GET("/grades", rbacMw.RequirePermission(rbac.PermissionProductsRead), referenceHandler.GetGrades)
			reference.GET("/sellers", rbacMw.RequirePermission(rbac.PermissionProductsRead), referenceHandler.GetSellers)
			reference.GET("/country-costs", rbacMw.RequirePermission(rbac.PermissionProductsRead), referenceHandler.GetCountryCosts)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server
	port := cfg.Port

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Listing builder service starting on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down listing-builder-service...")

	// Shutdown tracer provider
	if tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		} else {
			log.Println("✓ Tracer provider shut down")
		}
	}

	log.Println("Listing builder service stopped")
}
