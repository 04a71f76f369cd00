package controllers

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HandleHealth runs every check with a short deadline and answers 503 when any fails.
func HandleHealth(checks map[string]HealthCheck) fiber.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.StatusOK
		results := make(fiber.Map, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				log.Warnf("[Health] %s check failed: %v", name, err)
				results[name] = "down"
				status = fiber.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		overall := "ok"
		if status != fiber.StatusOK {
			overall = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{"status": overall, "checks": results})
	}
}
