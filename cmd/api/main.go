package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/auth"
	"github.com/fairyhunter13/training-marketplace/internal/catalog"
	"github.com/fairyhunter13/training-marketplace/internal/config"
	"github.com/fairyhunter13/training-marketplace/internal/email"
	"github.com/fairyhunter13/training-marketplace/internal/handler"
	"github.com/fairyhunter13/training-marketplace/internal/middleware"
	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/payment"
	"github.com/fairyhunter13/training-marketplace/internal/repository"
	"github.com/fairyhunter13/training-marketplace/internal/service"
	"github.com/fairyhunter13/training-marketplace/internal/validator"
	"github.com/fairyhunter13/training-marketplace/pkg/database"
	"github.com/fairyhunter13/training-marketplace/pkg/redis"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initLogger(cfg)

	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional: without it webhook dedupe relies on the bookings unique key
	var (
		rdb       *goredis.Client
		events    service.EventStore
		cachePing handler.Pinger
	)
	if cfg.Redis.Configured() {
		rdb, err = redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, webhook event cache disabled")
		} else {
			events = repository.NewRedisEventStore(rdb, cfg.Redis.EventTTL)
			cachePing = redis.NewPinger(rdb)
		}
	}

	// Third-party clients
	gateway := payment.NewStripeGateway(cfg.Stripe)
	if !gateway.Configured() {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, checkout is disabled")
	}

	var sender email.Sender = email.DisabledSender{}
	if cfg.Email.Configured() {
		sender = email.NewResendSender(resend.NewClient(cfg.Email.APIKey), cfg.Email.From)
	} else {
		log.Warn().Msg("RESEND_API_KEY not set, emails are disabled")
	}
	notifier := email.NewNotifier(sender, cfg.Email.OpsAddress, cfg.App.URL)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience)

	fallback, err := catalog.NewStaticCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fallback catalog")
	}

	// Repositories
	courseRepo := repository.NewCourseRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	sessionRepo := repository.NewCheckoutSessionRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)

	// Services
	leadService := service.NewLeadService(leadRepo, promoRepo, notifier)
	promoService := service.NewPromoService(promoRepo)
	checkoutService, err := service.NewCheckoutService(gateway, courseRepo, promoService, sessionRepo, cfg.App.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create checkout service")
	}
	confirmationService := service.NewConfirmationService(gateway, bookingRepo, promoRepo, events, notifier)
	catalogService := service.NewCatalogService(courseRepo, fallback)
	adminService := service.NewAdminService(leadRepo, bookingRepo, promoRepo, profileRepo)

	// Handlers
	validate := validator.New()
	leadHandler := handler.NewLeadHandler(leadService, validate)
	promoHandler := handler.NewPromoHandler(promoService, validate)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, validate, !cfg.App.IsProduction())
	webhookHandler := handler.NewWebhookHandler(confirmationService)
	courseHandler := handler.NewCourseHandler(catalogService)
	adminHandler := handler.NewAdminHandler(adminService, validate)
	healthHandler := handler.NewHealthHandler(pool, cachePing)

	app := fiber.New(fiber.Config{
		AppName:      "Training Marketplace",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	if cfg.Server.AllowedOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.AllowedOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}
	app.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")
	api.Post("/leads/submit", leadHandler.SubmitLead)
	api.Post("/promo-codes/validate", promoHandler.ValidatePromo)
	api.Post("/checkout/create-session", middleware.Authenticate(verifier, false), checkoutHandler.CreateSession)
	// Signature verification needs the body exactly as sent; no body-rewriting middleware on this route
	api.Post("/webhooks/stripe", webhookHandler.HandleStripe)
	api.Get("/courses", courseHandler.ListCourses)
	api.Get("/courses/:id", courseHandler.GetCourse)

	admin := api.Group("/admin", middleware.Authenticate(verifier, true))
	admin.Get("/leads", middleware.RequireCapability(adminService, model.CapViewLeads), adminHandler.ListLeads)
	admin.Get("/bookings", middleware.RequireCapability(adminService, model.CapViewBookings), adminHandler.ListBookings)
	admin.Post("/promo-codes", middleware.RequireCapability(adminService, model.CapManagePromoCodes), adminHandler.CreatePromoCode)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Env).Msg("starting server")
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

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close backing stores AFTER server shutdown (even if shutdown timed out)
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis client")
		}
	}
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
