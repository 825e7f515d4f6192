package models

// StaffRole is the closed set of staff positions.
type StaffRole string

const (
	StaffRoleProfessor  StaffRole = "Professor"
	StaffRoleInstructor StaffRole = "Instrutor"
	StaffRoleAssistant  StaffRole = "Auxiliar"
)

// Valid reports whether the role belongs to the closed set.
func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleProfessor, StaffRoleInstructor, StaffRoleAssistant:
		return true
	}
	return false
}

// StaffMember represents a staff login. Password is a bcrypt hash; Active
// false means the account is locked and future logins are refused.
type StaffMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      StaffRole `json:"role"`
	Phone     string    `json:"phone"`
	Specialty string    `json:"specialty"`
	Bio       string    `json:"bio"`
	Password  string    `json:"password"`
	Active    bool      `json:"active"`
}
