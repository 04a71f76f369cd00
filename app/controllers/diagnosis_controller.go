package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dentaqr/dashboard/app/models"
	"github.com/dentaqr/dashboard/app/repository"
	"github.com/dentaqr/dashboard/internal/pkg/cliniccontext"
	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

// DiagnosisController manages clinic-authored diagnoses, a plan capability.
type DiagnosisController struct {
	svc       *subscription.Service
	diagnoses repository.DiagnosisRepository
}

func NewDiagnosisController(svc *subscription.Service, diagnoses repository.DiagnosisRepository) *DiagnosisController {
	return &DiagnosisController{svc: svc, diagnoses: diagnoses}
}

type createDiagnosisRequest struct {
	Title         string `json:"title"`
	QuestionsJSON string `json:"questions_json"`
	IsPublished   bool   `json:"is_published"`
}

func (dc *DiagnosisController) HandleList(c *fiber.Ctx) error {
	list, err := dc.diagnoses.ListByClinic(c.UserContext(), cliniccontext.GetClinicID(c))
	if err != nil {
		return internalError(c, "Diagnosis", "Failed to list diagnoses", err)
	}
	return c.JSON(fiber.Map{"diagnoses": list})
}

func (dc *DiagnosisController) HandleCreate(c *fiber.Ctx) error {
	clinicID := cliniccontext.GetClinicID(c)

	var req createDiagnosisRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	d := models.Diagnosis{
		ClinicID:      clinicID,
		Title:         req.Title,
		QuestionsJSON: req.QuestionsJSON,
		IsPublished:   req.IsPublished,
	}
	if err := d.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	eligibility, err := dc.svc.CanCreateCustomDiagnosis(c.UserContext(), clinicID)
	if err != nil {
		return internalError(c, "Diagnosis", "Subscription state unavailable", err)
	}
	if !eligibility.Allowed {
		msg := "Custom diagnoses are not available"
		if eligibility.Message != nil {
			msg = *eligibility.Message
		}
		return jsonError(c, fiber.StatusForbidden, "custom_diagnosis_not_allowed", msg)
	}

	if err := dc.diagnoses.Create(c.UserContext(), &d); err != nil {
		return internalError(c, "Diagnosis", "Failed to create diagnosis", err)
	}
	log.Infof("[Diagnosis] Clinic %d created diagnosis %d", clinicID, d.ID)
	return c.Status(fiber.StatusCreated).JSON(d)
}
