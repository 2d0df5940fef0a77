package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"med-adherence-tracker/internal/domain/assignments"
)

type assignmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]assignments.Assignment
}

func NewAssignmentsRepo() assignments.Repository {
	return &assignmentsRepo{
		byID: make(map[string]assignments.Assignment),
	}
}

func (r *assignmentsRepo) Create(ctx context.Context, a assignments.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("assignment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("assignment already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *assignmentsRepo) Update(ctx context.Context, a assignments.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return assignments.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *assignmentsRepo) GetByID(ctx context.Context, id string) (assignments.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return assignments.Assignment{}, assignments.ErrNotFound
	}
	return a, nil
}

func (r *assignmentsRepo) ListByPatient(ctx context.Context, patientUserID string) ([]assignments.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignments.Assignment, 0)
	for _, a := range r.byID {
		if a.PatientUserID == patientUserID {
			out = append(out, a)
		}
	}
	sortAssignments(out)
	return out, nil
}

func (r *assignmentsRepo) ListByCaretaker(ctx context.Context, caretakerUserID string) ([]assignments.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignments.Assignment, 0)
	for _, a := range r.byID {
		if a.CaretakerUserID == caretakerUserID {
			out = append(out, a)
		}
	}
	sortAssignments(out)
	return out, nil
}

// Orden estable por created_at asc (solo para consistencia en dev)
func sortAssignments(items []assignments.Assignment) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
