package appointment

import "strings"

// Role is the viewer's role. It is a UI hint only; the server enforces access.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleProfessional Role = "profesional"
	RoleClient       Role = "cliente"
)

// ParseRole maps free-form input onto a known role. Unknown values fall back to
// RoleClient, the least privileged view.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleProfessional, "professional":
		return RoleProfessional
	default:
		return RoleClient
	}
}

// IsAdmin reports whether the role is admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanSchedule reports whether the role may create appointments and load the
// management panels (list, history, client assignment).
func (r Role) CanSchedule() bool {
	return r == RoleAdmin || r == RoleProfessional
}
