package assignments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Invite crea (o reusa) la invitación del paciente hacia un caretaker.
// Re-invitar mientras exista un assignment no revocado es idempotente:
// devuelve el existente con UpdatedAt refrescado.
func (s *Service) Invite(ctx context.Context, patientUserID, caretakerUserID string) (Assignment, error) {
	patientID := strings.TrimSpace(patientUserID)
	caretakerID := strings.TrimSpace(caretakerUserID)

	if patientID == "" || caretakerID == "" {
		return Assignment{}, ErrInvalidInput
	}
	if patientID == caretakerID {
		return Assignment{}, ErrInvalidInput
	}

	now := s.now()

	if existing, ok, err := s.findLatestMatch(ctx, patientID, caretakerID); err == nil && ok {
		if existing.Status != StatusRevoked {
			existing.UpdatedAt = now
			if err := s.repo.Update(ctx, existing); err != nil {
				return Assignment{}, err
			}
			return existing, nil
		}
	}

	a := Assignment{
		ID:              uuid.NewString(),
		PatientUserID:   patientID,
		CaretakerUserID: caretakerID,
		Status:          StatusInvited,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Service) Accept(ctx context.Context, assignmentID, caretakerUserID string) (Assignment, error) {
	assignmentID = strings.TrimSpace(assignmentID)
	caretakerUserID = strings.TrimSpace(caretakerUserID)

	if assignmentID == "" || caretakerUserID == "" {
		return Assignment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, assignmentID)
	if err != nil {
		return Assignment{}, ErrNotFound
	}

	if a.CaretakerUserID != caretakerUserID {
		return Assignment{}, ErrForbidden
	}
	if a.Status == StatusRevoked {
		return Assignment{}, ErrBadState
	}

	// Idempotente
	if a.Status == StatusActive {
		return a, nil
	}

	a.Status = StatusActive
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Service) Revoke(ctx context.Context, assignmentID, patientUserID string) (Assignment, error) {
	assignmentID = strings.TrimSpace(assignmentID)
	patientUserID = strings.TrimSpace(patientUserID)

	if assignmentID == "" || patientUserID == "" {
		return Assignment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, assignmentID)
	if err != nil {
		return Assignment{}, ErrNotFound
	}

	if a.PatientUserID != patientUserID {
		return Assignment{}, ErrForbidden
	}

	// Idempotente
	if a.Status == StatusRevoked {
		return a, nil
	}

	now := s.now()
	a.Status = StatusRevoked
	a.UpdatedAt = now
	a.RevokedAt = &now

	if err := s.repo.Update(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientUserID string) ([]Assignment, error) {
	return s.repo.ListByPatient(ctx, patientUserID)
}

func (s *Service) ListByCaretaker(ctx context.Context, caretakerUserID string) ([]Assignment, error) {
	return s.repo.ListByCaretaker(ctx, caretakerUserID)
}

// IsActive responde si el caretaker tiene un assignment activo con el
// paciente. Es el check de acceso de todas las lecturas de caretaker.
func (s *Service) IsActive(ctx context.Context, caretakerUserID, patientUserID string) (bool, error) {
	caretakerUserID = strings.TrimSpace(caretakerUserID)
	patientUserID = strings.TrimSpace(patientUserID)
	if caretakerUserID == "" || patientUserID == "" {
		return false, nil
	}

	items, err := s.repo.ListByCaretaker(ctx, caretakerUserID)
	if err != nil {
		return false, err
	}
	for _, a := range items {
		if a.PatientUserID == patientUserID && a.Status == StatusActive {
			return true, nil
		}
	}
	return false, nil
}

// ActivePatientIDs devuelve los pacientes con assignment activo,
// en orden estable por fecha de creación.
func (s *Service) ActivePatientIDs(ctx context.Context, caretakerUserID string) ([]string, error) {
	items, err := s.repo.ListByCaretaker(ctx, caretakerUserID)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))
	seen := map[string]struct{}{}
	for _, a := range items {
		if a.Status != StatusActive {
			continue
		}
		if _, ok := seen[a.PatientUserID]; ok {
			continue
		}
		seen[a.PatientUserID] = struct{}{}
		out = append(out, a.PatientUserID)
	}
	return out, nil
}

// findLatestMatch busca el assignment más reciente para (patient, caretaker).
func (s *Service) findLatestMatch(ctx context.Context, patientID, caretakerID string) (Assignment, bool, error) {
	items, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return Assignment{}, false, err
	}

	var winner Assignment
	has := false
	for _, a := range items {
		if a.CaretakerUserID != caretakerID {
			continue
		}
		if !has || a.UpdatedAt.After(winner.UpdatedAt) {
			winner = a
			has = true
		}
	}
	return winner, has, nil
}
