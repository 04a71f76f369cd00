package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentaqr/dashboard/app/controllers"
	"github.com/dentaqr/dashboard/app/repository"
	"github.com/dentaqr/dashboard/internal/pkg/billing"
	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

// Router installs one group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are the services and settings the routes are built from.
type Dependencies struct {
	Repos              *repository.Repositories
	Subscriptions      *subscription.Service
	Billing            *billing.Service
	SubscriptionConfig subscription.Config

	PublicBaseURL        string
	BillingWebhookSecret string
	AdminAPIKey          string

	// APIRateLimit and TrackingRateLimit are requests per minute and client.
	APIRateLimit      int
	TrackingRateLimit int
	// LimiterStorage is nil for in-process limiter counters.
	LimiterStorage fiber.Storage

	HealthChecks map[string]controllers.HealthCheck
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	setup(app, NewApiRouter(deps), NewHttpRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
