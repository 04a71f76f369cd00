package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dentaqr/dashboard/app/controllers"
	"github.com/dentaqr/dashboard/internal/pkg/ratelimit"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	d := h.deps

	app.Get("/healthz", controllers.HandleHealth(d.HealthChecks))

	// Visitor tracking, hit on every scan of a printed QR code
	tracking := controllers.NewTrackingController(d.Subscriptions, d.Repos)
	app.Post("/t/:code", ratelimit.New(ratelimit.Config{
		Max:        d.TrackingRateLimit,
		Expiration: time.Minute,
		Storage:    d.LimiterStorage,
	}), tracking.HandleTrack)

	// Billing provider webhooks (signature-verified in controller)
	webhooks := controllers.NewBillingController(d.Billing, d.BillingWebhookSecret)
	app.Post("/webhooks/billing", webhooks.HandleWebhook)
}
