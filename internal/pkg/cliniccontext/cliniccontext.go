package cliniccontext

import "github.com/gofiber/fiber/v2"

// ClinicContext is the clinic a request operates on, loaded once per request
type ClinicContext struct {
	ClinicID uint   `json:"clinic_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

// Set stores the clinic context on the fiber context
func Set(c *fiber.Ctx, cc ClinicContext) {
	c.Locals(KeyClinicContext, cc)
}

// Get retrieves the clinic context from fiber context.
// The second value is false when no clinic was loaded for this request.
func Get(c *fiber.Ctx) (ClinicContext, bool) {
	cc, ok := c.Locals(KeyClinicContext).(ClinicContext)
	return cc, ok
}

// GetClinicID returns the current clinic's ID, or 0 if none was loaded
func GetClinicID(c *fiber.Ctx) uint {
	cc, _ := Get(c)
	return cc.ClinicID
}

// IsAdmin reports whether the admin key guard accepted this request
func IsAdmin(c *fiber.Ctx) bool {
	isAdmin, _ := c.Locals(KeyIsAdmin).(bool)
	return isAdmin
}
