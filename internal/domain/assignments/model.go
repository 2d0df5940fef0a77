package assignments

import "time"

type Status string

const (
	StatusInvited Status = "invited"
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// Assignment vincula explícitamente un caretaker con un paciente.
// El paciente invita, el caretaker acepta, el paciente revoca.
// Toda lectura iniciada por un caretaker exige un assignment activo.
type Assignment struct {
	ID string

	PatientUserID   string // quien comparte sus datos
	CaretakerUserID string // quien monitorea

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}
