package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"med-adherence-tracker/internal/domain/medications"
)

// medicationsRepo implementa medications.Repository y adherence.Repository.
type medicationsRepo struct {
	mu   sync.RWMutex
	byID map[string]medications.Entry
}

func NewMedicationsRepo() *medicationsRepo {
	return &medicationsRepo{
		byID: make(map[string]medications.Entry),
	}
}

func (r *medicationsRepo) Create(ctx context.Context, e medications.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *medicationsRepo) GetByID(ctx context.Context, id string) (medications.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return medications.Entry{}, medications.ErrNotFound
	}
	return e, nil
}

func (r *medicationsRepo) ListForOwnerOnDate(ctx context.Context, ownerUserID, date string) ([]medications.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Entry, 0)
	for _, e := range r.byID {
		if e.OwnerUserID == ownerUserID && e.Date == date && e.Active {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *medicationsRepo) ListForOwnerBetween(ctx context.Context, ownerUserID, from, to string) ([]medications.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Entry, 0)
	for _, e := range r.byID {
		if e.OwnerUserID == ownerUserID && e.Active && e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *medicationsRepo) ListForOwner(ctx context.Context, ownerUserID string) ([]medications.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Entry, 0)
	for _, e := range r.byID {
		if e.OwnerUserID == ownerUserID && e.Active {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *medicationsRepo) MarkTaken(ctx context.Context, ownerUserID, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.markTakenLocked(ownerUserID, id, at)
}

// MarkTakenBatch valida todo antes de tocar nada: todas o ninguna.
func (r *medicationsRepo) MarkTakenBatch(ctx context.Context, ownerUserID string, ids []string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		e, ok := r.byID[id]
		if !ok || e.OwnerUserID != ownerUserID || !e.Active {
			return medications.ErrNotFound
		}
	}
	for _, id := range ids {
		_ = r.markTakenLocked(ownerUserID, id, at)
	}
	return nil
}

func (r *medicationsRepo) SoftDelete(ctx context.Context, ownerUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok || e.OwnerUserID != ownerUserID || !e.Active {
		return medications.ErrNotFound
	}
	e.Active = false
	r.byID[id] = e
	return nil
}

func (r *medicationsRepo) markTakenLocked(ownerUserID, id string, at time.Time) error {
	e, ok := r.byID[id]
	if !ok || e.OwnerUserID != ownerUserID || !e.Active {
		return medications.ErrNotFound
	}
	if !e.Taken {
		e.Taken = true
		t := at
		e.TakenAt = &t
	}
	r.byID[id] = e
	return nil
}

// Orden estable: fecha asc, luego orden de inserción (created_at asc).
func sortEntries(items []medications.Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
