package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentaqr/dashboard/app/controllers"
	"github.com/dentaqr/dashboard/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	d := h.deps
	admin := controllers.NewAdminController(d.Billing)

	adminGroup := app.Group("/admin", middleware.AdminKeyMiddleware(d.AdminAPIKey))
	adminGroup.Put("/clinics/:clinicID/plan", middleware.ClinicContextMiddleware(d.Repos.Clinic), admin.HandleChangePlan)
}
