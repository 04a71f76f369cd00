package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentaqr/dashboard/internal/pkg/cliniccontext"
	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

// SubscriptionController exposes the resolved subscription state of a clinic.
type SubscriptionController struct {
	svc *subscription.Service
}

func NewSubscriptionController(svc *subscription.Service) *SubscriptionController {
	return &SubscriptionController{svc: svc}
}

// HandleGetState returns the full state used by the dashboard header and gating UI.
func (sc *SubscriptionController) HandleGetState(c *fiber.Ctx) error {
	clinicID := cliniccontext.GetClinicID(c)
	st, err := sc.svc.GetSubscriptionState(c.UserContext(), clinicID)
	if err != nil {
		return internalError(c, "Subscription", "Subscription state unavailable", err)
	}
	return c.JSON(st)
}

// HandleGetSimple returns the reduced legacy view.
func (sc *SubscriptionController) HandleGetSimple(c *fiber.Ctx) error {
	clinicID := cliniccontext.GetClinicID(c)
	st, err := sc.svc.CheckSubscriptionSimple(c.UserContext(), clinicID)
	if err != nil {
		return internalError(c, "Subscription", "Subscription state unavailable", err)
	}
	return c.JSON(st)
}

// HandleQRCodeEligibility answers whether another QR code may be created.
func (sc *SubscriptionController) HandleQRCodeEligibility(c *fiber.Ctx) error {
	clinicID := cliniccontext.GetClinicID(c)
	res, err := sc.svc.CanCreateQRCode(c.UserContext(), clinicID)
	if err != nil {
		return internalError(c, "Subscription", "Subscription state unavailable", err)
	}
	return c.JSON(res)
}
