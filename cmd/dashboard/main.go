package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dentaqr/dashboard/app/controllers"
	"github.com/dentaqr/dashboard/app/repository"
	"github.com/dentaqr/dashboard/internal/pkg/billing"
	"github.com/dentaqr/dashboard/internal/pkg/cache"
	"github.com/dentaqr/dashboard/internal/pkg/database"
	"github.com/dentaqr/dashboard/internal/pkg/env"
	"github.com/dentaqr/dashboard/internal/pkg/ratelimit"
	"github.com/dentaqr/dashboard/internal/pkg/router"
	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

type config struct {
	Host          string `env:"APP_HOST" envDefault:"localhost"`
	Port          string `env:"APP_PORT" envDefault:"4000"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:4000"`

	BillingWebhookSecret string `env:"BILLING_WEBHOOK_SECRET"`
	AdminAPIKey          string `env:"ADMIN_API_KEY"`

	APIRateLimit      int `env:"API_RATE_LIMIT" envDefault:"120"`
	TrackingRateLimit int `env:"TRACKING_RATE_LIMIT" envDefault:"30"`

	Subscription subscription.Config
}

func main() {
	app, cfg := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", cfg.Host, cfg.Port))
	log.Fatal(err)
}

func NewApplication() (*fiber.App, config) {
	env.SetupEnvFile()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.Subscription.Validate(); err != nil {
		log.Fatalf("invalid subscription configuration: %v", err)
	}
	if cfg.BillingWebhookSecret == "" {
		fiberlog.Warn("[Startup] BILLING_WEBHOOK_SECRET is empty, all billing webhooks will be rejected")
	}
	if cfg.AdminAPIKey == "" {
		fiberlog.Warn("[Startup] ADMIN_API_KEY is empty, admin endpoints are disabled")
	}

	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()

	subscriptions := subscription.NewService(repos.Subscription, repos.Channel, cfg.Subscription)
	billingSvc := billing.NewServiceFromDB(database.GetDB(), cfg.Subscription)

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 1 << 20,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// ROUTER
	router.InstallRouter(app, router.Dependencies{
		Repos:                repos,
		Subscriptions:        subscriptions,
		Billing:              billingSvc,
		SubscriptionConfig:   cfg.Subscription,
		PublicBaseURL:        cfg.PublicBaseURL,
		BillingWebhookSecret: cfg.BillingWebhookSecret,
		AdminAPIKey:          cfg.AdminAPIKey,
		APIRateLimit:         cfg.APIRateLimit,
		TrackingRateLimit:    cfg.TrackingRateLimit,
		LimiterStorage:       ratelimit.NewStorage(),
		HealthChecks: map[string]controllers.HealthCheck{
			"database": database.Ping,
			"cache":    cache.Ping,
		},
	})

	fiberlog.Infof("[Startup] Trial %d days on %s, grace %d days",
		cfg.Subscription.TrialDurationDays, cfg.Subscription.TrialPlanTier(), cfg.Subscription.GracePeriodDays)
	return app, cfg
}
