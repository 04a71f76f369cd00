package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/repository"
	"github.com/dentaqr/dashboard/internal/pkg/cliniccontext"
)

// ClinicContextMiddleware resolves the :clinicID route parameter to an existing
// clinic and stores it for the handlers behind it.
func ClinicContextMiddleware(repo repository.ClinicRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("clinicID"), 10, 64)
		if err != nil || id == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid clinic ID"})
		}

		clinic, err := repo.GetByID(c.UserContext(), uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Clinic not found"})
			}
			log.Errorf("[Clinic] Failed to load clinic %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Clinic lookup failed"})
		}

		cliniccontext.Set(c, cliniccontext.ClinicContext{
			ClinicID: clinic.ID,
			Name:     clinic.Name,
			Slug:     clinic.Slug,
		})
		return c.Next()
	}
}
