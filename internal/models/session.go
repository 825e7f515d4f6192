package models

// SessionRole distinguishes the two authentication roles.
type SessionRole string

const (
	RoleAdministrator SessionRole = "ADM"
	RoleStaff         SessionRole = "STAFF"
)

// AdministratorID is the sentinel identity for administrator sessions.
const AdministratorID = "adm-01"

// AdministratorName is the display name for administrator sessions.
const AdministratorName = "Administrador"

// Session is transient proof of identity and role. It is held only in
// process memory, bound to an opaque bearer token, and discarded on logout
// or process exit. Never persisted into the document.
type Session struct {
	Role SessionRole `json:"role"`
	Name string      `json:"name"`
	ID   string      `json:"id"`
}

// IsAdministrator reports whether the session carries the administrator role.
func (s Session) IsAdministrator() bool {
	return s.Role == RoleAdministrator
}
