package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dentaqr/dashboard/app/models"
	"github.com/dentaqr/dashboard/app/repository"
	"github.com/dentaqr/dashboard/internal/pkg/billing"
)

// ClinicController handles clinic signup. Every new clinic starts a trial.
type ClinicController struct {
	clinics repository.ClinicRepository
	billing *billing.Service
}

func NewClinicController(clinics repository.ClinicRepository, billingSvc *billing.Service) *ClinicController {
	return &ClinicController{clinics: clinics, billing: billingSvc}
}

type signupRequest struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (cc *ClinicController) HandleSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	clinic := models.Clinic{
		Name:    strings.TrimSpace(req.Name),
		Slug:    strings.ToLower(strings.TrimSpace(req.Slug)),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
	if err := clinic.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	exists, err := cc.clinics.SlugExists(c.UserContext(), clinic.Slug)
	if err != nil {
		return internalError(c, "Clinic", "Signup failed", err)
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "slug_taken", "This clinic URL is already in use")
	}

	sub := cc.billing.NewTrial()
	if err := cc.clinics.CreateWithSubscription(c.UserContext(), &clinic, sub); err != nil {
		return internalError(c, "Clinic", "Signup failed", err)
	}
	log.Infof("[Clinic] Signup %d (%s), trial until %s", clinic.ID, clinic.Slug, sub.TrialEnd.Format("2006-01-02"))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"clinic":       clinic,
		"subscription": sub,
	})
}
