package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
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

type AddInput struct {
	Name      string
	Dosage    string
	Frequency string
	Date      string
	Time      string
}

func (s *Service) Add(ctx context.Context, ownerUserID string, in AddInput) (Entry, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Entry{}, ErrInvalidInput
	}

	name := strings.TrimSpace(in.Name)
	dosage := strings.TrimSpace(in.Dosage)
	frequency := strings.TrimSpace(in.Frequency)
	date := strings.TrimSpace(in.Date)
	hhmm := strings.TrimSpace(in.Time)

	if name == "" || dosage == "" || frequency == "" || date == "" || hhmm == "" {
		return Entry{}, ErrInvalidInput
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Entry{}, ErrInvalidInput
	}
	if _, err := time.Parse(TimeLayout, hhmm); err != nil {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Dosage:      dosage,
		Frequency:   frequency,
		Date:        date,
		Time:        hhmm,
		Active:      true,
		Taken:       false,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListForDate(ctx context.Context, ownerUserID, date string) ([]Entry, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	date = strings.TrimSpace(date)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, ErrInvalidInput
	}
	return s.repo.ListForOwnerOnDate(ctx, ownerUserID, date)
}

// MarkTaken es idempotente sobre filas existentes: marcar dos veces no es error.
// Si la fila no existe o no pertenece al owner, devuelve ErrNotFound.
func (s *Service) MarkTaken(ctx context.Context, ownerUserID, id string) error {
	id = strings.TrimSpace(id)
	if strings.TrimSpace(ownerUserID) == "" || id == "" {
		return ErrInvalidInput
	}
	return s.repo.MarkTaken(ctx, ownerUserID, id, s.now())
}

// MarkTakenBatch marca varias entradas en una sola operación atómica:
// si algún id no existe o no pertenece al owner, ninguna queda marcada.
func (s *Service) MarkTakenBatch(ctx context.Context, ownerUserID string, ids []string) error {
	if strings.TrimSpace(ownerUserID) == "" {
		return ErrInvalidInput
	}
	if len(ids) == 0 {
		return ErrInvalidInput
	}
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return ErrInvalidInput
		}
		clean = append(clean, id)
	}
	return s.repo.MarkTakenBatch(ctx, ownerUserID, clean, s.now())
}

// SoftDelete marca la entrada como inactiva (tombstone, no se borra).
func (s *Service) SoftDelete(ctx context.Context, ownerUserID, id string) error {
	id = strings.TrimSpace(id)
	if strings.TrimSpace(ownerUserID) == "" || id == "" {
		return ErrInvalidInput
	}
	return s.repo.SoftDelete(ctx, ownerUserID, id)
}
