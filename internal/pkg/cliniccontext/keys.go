package cliniccontext

// Locals keys shared by middlewares and controllers
const (
	KeyClinicContext = "CLINIC_CONTEXT"
	KeyIsAdmin       = "isAdmin"
)
