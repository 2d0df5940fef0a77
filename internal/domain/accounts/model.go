package accounts

import "time"

// Role define los roles soportados.
// @Enum patient, caretaker
type Role string

const (
	RolePatient   Role = "patient"
	RoleCaretaker Role = "caretaker"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient:
		return RolePatient, true
	case RoleCaretaker:
		return RoleCaretaker, true
	default:
		return "", false
	}
}

// Account representa una cuenta registrada en el sistema.
// El password nunca se guarda en claro; solo el hash bcrypt.
type Account struct {
	ID       string
	Username string
	Role     Role

	PasswordHash string

	CreatedAt time.Time
}
