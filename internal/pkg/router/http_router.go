package router

import (
	"github.com/gofiber/fiber/v2"
)

// HttpRouter holds the non API routes: public tracking, provider webhooks,
// operator endpoints and health.
type HttpRouter struct {
	deps Dependencies
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
}

func NewHttpRouter(deps Dependencies) *HttpRouter {
	return &HttpRouter{deps: deps}
}
