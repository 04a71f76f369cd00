package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dentaqr/dashboard/internal/pkg/billing"
	"github.com/dentaqr/dashboard/internal/pkg/cliniccontext"
)

// AdminController holds operator-only actions.
type AdminController struct {
	billing *billing.Service
}

func NewAdminController(billingSvc *billing.Service) *AdminController {
	return &AdminController{billing: billingSvc}
}

type changePlanRequest struct {
	PlanTier string `json:"plan_tier"`
}

// HandleChangePlan assigns a plan tier, including the admin-only free tier.
func (ac *AdminController) HandleChangePlan(c *fiber.Ctx) error {
	clinicID := cliniccontext.GetClinicID(c)
	var req changePlanRequest
	if err := c.BodyParser(&req); err != nil || req.PlanTier == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Field 'plan_tier' is required")
	}

	sub, err := ac.billing.ChangePlan(c.UserContext(), clinicID, req.PlanTier)
	switch {
	case errors.Is(err, billing.ErrInvalidPlan):
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_plan", err.Error())
	case errors.Is(err, billing.ErrNoSubscription):
		return jsonError(c, fiber.StatusNotFound, "not_found", "Clinic has no subscription record")
	case err != nil:
		return internalError(c, "Admin", "Plan change failed", err)
	}
	return c.JSON(fiber.Map{"subscription": sub})
}
