package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pixelvault/gamestore-api/internal/auth"
	"github.com/pixelvault/gamestore-api/internal/config"
	"github.com/pixelvault/gamestore-api/internal/handler"
	"github.com/pixelvault/gamestore-api/internal/payment"
	"github.com/pixelvault/gamestore-api/internal/repository"
	"github.com/pixelvault/gamestore-api/internal/service"
	"github.com/pixelvault/gamestore-api/internal/upload"
	"github.com/pixelvault/gamestore-api/internal/validator"
	"github.com/pixelvault/gamestore-api/pkg/database"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Apply schema migrations
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Game Store API",
		ReadTimeout:  30 * time.Second,  // Max time to read request
		WriteTimeout: 30 * time.Second,  // Max time to write response
		IdleTimeout:  120 * time.Second, // Max time for keep-alive connections
		BodyLimit:    8 * 1024 * 1024,   // 8MB body limit, leaves room for image uploads
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New()) // Adds X-Request-ID header to all requests
	app.Use(logger.New())

	// Initialize validator with custom rules
	validate := validator.New()

	// Token manager for JWT issuance and verification
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Hour)

	// Payment gateway is optional; without a Stripe key card orders are
	// created with no payment intent and must be confirmed manually.
	var gateway payment.Gateway
	if cfg.Payment.StripeKey != "" {
		gateway = payment.NewStripeGateway(cfg.Payment.StripeKey, cfg.Payment.Currency)
	} else {
		log.Warn().Msg("stripe key not configured, payment intents disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	gameRepo := repository.NewGameRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	// Services
	authService := service.NewAuthService(userRepo, tokens)
	catalogService := service.NewCatalogService(categoryRepo, gameRepo, packageRepo)
	couponService := service.NewCouponService(couponRepo)
	orderService := service.NewOrderService(pool, gameRepo, packageRepo, couponRepo, orderRepo, gateway)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validate)
	categoryHandler := handler.NewCategoryHandler(catalogService, validate)
	gameHandler := handler.NewGameHandler(catalogService, validate)
	packageHandler := handler.NewPackageHandler(catalogService, validate)
	couponHandler := handler.NewCouponHandler(couponService, validate)
	orderHandler := handler.NewOrderHandler(orderService, validate)
	webhookHandler := handler.NewWebhookHandler(orderService, validate, cfg.Payment.WebhookSecret)
	healthHandler := handler.NewHealthHandler(pool)

	// Health check
	app.Get("/health", healthHandler.Check)

	// Public routes
	api := app.Group("/api")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/categories", categoryHandler.List)
	api.Get("/games", gameHandler.List)
	api.Get("/games/:id", gameHandler.Get)
	api.Get("/games/:id/packages", gameHandler.Packages)
	api.Post("/coupons/validate", couponHandler.Validate)
	api.Post("/webhooks/payment", webhookHandler.Payment)

	// Authenticated routes
	authed := api.Group("", handler.RequireAuth(tokens))
	authed.Get("/auth/me", authHandler.Me)
	authed.Post("/orders", orderHandler.Create)
	authed.Get("/orders", orderHandler.List)
	authed.Get("/orders/:id", orderHandler.Get)
	authed.Post("/orders/:id/cancel", orderHandler.Cancel)

	// Admin routes
	admin := api.Group("/admin", handler.RequireAuth(tokens), handler.RequireRole(auth.RoleAdmin))
	admin.Post("/categories", categoryHandler.Create)
	admin.Put("/categories/:id", categoryHandler.Update)
	admin.Delete("/categories/:id", categoryHandler.Delete)
	admin.Post("/games", gameHandler.Create)
	admin.Put("/games/:id", gameHandler.Update)
	admin.Delete("/games/:id", gameHandler.Delete)
	admin.Post("/packages", packageHandler.Create)
	admin.Put("/packages/:id", packageHandler.Update)
	admin.Delete("/packages/:id", packageHandler.Delete)
	admin.Post("/coupons", couponHandler.Create)
	admin.Get("/coupons", couponHandler.List)
	admin.Put("/coupons/:id", couponHandler.Update)
	admin.Delete("/coupons/:id", couponHandler.Delete)
	admin.Patch("/orders/:id/status", orderHandler.UpdateStatus)

	// Image uploads need Cloudinary credentials; the route is only
	// registered when they are present.
	if cfg.Upload.CloudinaryURL != "" {
		uploader, err := upload.NewCloudinaryUploader(cfg.Upload.CloudinaryURL, cfg.Upload.Folder)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize cloudinary uploader")
		}
		uploadHandler := handler.NewUploadHandler(uploader)
		admin.Post("/uploads", uploadHandler.Image)
	} else {
		log.Warn().Msg("cloudinary not configured, image upload disabled")
	}

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close database pool AFTER server shutdown (even if shutdown timed out)
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
