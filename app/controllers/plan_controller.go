package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

// HandleListPlans lists the self-service plans and the trial terms.
func HandleListPlans(cfg subscription.Config) fiber.Handler {
	trialPlan := subscription.Lookup(cfg.TrialPlanTier())
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"plans": subscription.PublicPlans(),
			"trial": fiber.Map{
				"duration_days": cfg.TrialDurationDays,
				"plan":          trialPlan,
			},
			"grace_period_days": cfg.GracePeriodDays,
		})
	}
}
