package assignments

import "context"

type Repository interface {
	Create(ctx context.Context, a Assignment) error
	Update(ctx context.Context, a Assignment) error
	GetByID(ctx context.Context, id string) (Assignment, error)
	ListByPatient(ctx context.Context, patientUserID string) ([]Assignment, error)
	ListByCaretaker(ctx context.Context, caretakerUserID string) ([]Assignment, error)
}
