package constants

import "fmt"

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleReviewer   = "reviewer"
	RoleAdmin      = "admin"
)

// Template pesan error role
const (
	ErrOnlyInstructorsCanAccess = "❌ Hanya instructor atau admin yang boleh mengakses fitur %s."
	ErrOnlyReviewersCanAccess   = "❌ Hanya reviewer atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess      = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorInstructor(feature string) string {
	return fmt.Sprintf(ErrOnlyInstructorsCanAccess, feature)
}

func RoleErrorReviewer(feature string) string {
	return fmt.Sprintf(ErrOnlyReviewersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleInstructor,
		RoleReviewer,
		RoleAdmin,
	}

	InstructorAndAbove = []string{
		RoleInstructor,
		RoleAdmin,
	}

	ReviewerAndAbove = []string{
		RoleReviewer,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
