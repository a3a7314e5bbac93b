package models

const (
	RoleClinician = "clinician"
	RolePatient   = "patient"
	RoleAdmin     = "admin"
)

// User is a portal account. Accounts are seeded at startup, not persisted.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
