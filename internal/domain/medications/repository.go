package medications

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)

	// ListForOwnerOnDate devuelve solo entradas activas.
	ListForOwnerOnDate(ctx context.Context, ownerUserID, date string) ([]Entry, error)

	// MarkTaken y SoftDelete devuelven ErrNotFound si la fila no existe,
	// no pertenece al owner, o está inactiva.
	MarkTaken(ctx context.Context, ownerUserID, id string, at time.Time) error
	MarkTakenBatch(ctx context.Context, ownerUserID string, ids []string, at time.Time) error
	SoftDelete(ctx context.Context, ownerUserID, id string) error
}
