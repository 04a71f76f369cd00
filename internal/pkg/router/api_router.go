package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dentaqr/dashboard/app/controllers"
	"github.com/dentaqr/dashboard/internal/pkg/middleware"
	"github.com/dentaqr/dashboard/internal/pkg/ratelimit"
)

type ApiRouter struct {
	deps Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	d := h.deps
	api := app.Group("/api", ratelimit.New(ratelimit.Config{
		Max:        d.APIRateLimit,
		Expiration: time.Minute,
		Storage:    d.LimiterStorage,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	subscriptions := controllers.NewSubscriptionController(d.Subscriptions)
	channels := controllers.NewChannelController(d.Subscriptions, d.Repos, d.PublicBaseURL)
	diagnoses := controllers.NewDiagnosisController(d.Subscriptions, d.Repos.Diagnosis)
	clinics := controllers.NewClinicController(d.Repos.Clinic, d.Billing)

	v1 := api.Group("/v1")
	v1.Get("/plans", controllers.HandleListPlans(d.SubscriptionConfig))
	v1.Post("/clinics", clinics.HandleSignup)
	v1.Get("/channels/:code/qr.png", channels.HandleQRCodePNG)

	clinic := v1.Group("/clinics/:clinicID", middleware.ClinicContextMiddleware(d.Repos.Clinic))
	clinic.Get("/subscription", subscriptions.HandleGetState)
	clinic.Get("/subscription/simple", subscriptions.HandleGetSimple)
	clinic.Get("/qrcodes/eligibility", subscriptions.HandleQRCodeEligibility)

	clinic.Get("/channels", channels.HandleList)
	clinic.Post("/channels", channels.HandleCreate)
	clinic.Patch("/channels/:channelID/hidden", channels.HandleSetHidden)
	clinic.Delete("/channels/:channelID", channels.HandleDelete)

	clinic.Get("/diagnoses", diagnoses.HandleList)
	clinic.Post("/diagnoses", diagnoses.HandleCreate)
}

func NewApiRouter(deps Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
