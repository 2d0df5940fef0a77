package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"med-adherence-tracker/internal/domain/medications"
)

func seedEntry(t *testing.T, repo *medicationsRepo, id, owner, date string) {
	t.Helper()
	err := repo.Create(context.Background(), medications.Entry{
		ID:          id,
		OwnerUserID: owner,
		Name:        "ibuprofen",
		Dosage:      "200mg",
		Frequency:   "daily",
		Date:        date,
		Time:        "08:00",
		Active:      true,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestMedicationsRepo_MarkTakenBatch_AllOrNothing(t *testing.T) {
	repo := NewMedicationsRepo()
	seedEntry(t, repo, "m1", "u1", "2025-06-18")
	seedEntry(t, repo, "m2", "u1", "2025-06-18")

	err := repo.MarkTakenBatch(context.Background(), "u1", []string{"m1", "missing"}, time.Now())
	if !errors.Is(err, medications.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Nada quedó marcado
	e, _ := repo.GetByID(context.Background(), "m1")
	if e.Taken {
		t.Fatalf("expected m1 untouched after failed batch")
	}

	if err := repo.MarkTakenBatch(context.Background(), "u1", []string{"m1", "m2"}, time.Now()); err != nil {
		t.Fatalf("batch error: %v", err)
	}
	for _, id := range []string{"m1", "m2"} {
		e, _ := repo.GetByID(context.Background(), id)
		if !e.Taken {
			t.Fatalf("expected %s taken", id)
		}
	}
}

func TestMedicationsRepo_MarkTaken_PreservesFirstTakenAt(t *testing.T) {
	repo := NewMedicationsRepo()
	seedEntry(t, repo, "m1", "u1", "2025-06-18")

	t1 := time.Date(2025, 6, 18, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	if err := repo.MarkTaken(context.Background(), "u1", "m1", t1); err != nil {
		t.Fatalf("MarkTaken #1: %v", err)
	}
	if err := repo.MarkTaken(context.Background(), "u1", "m1", t2); err != nil {
		t.Fatalf("MarkTaken #2: %v", err)
	}

	e, _ := repo.GetByID(context.Background(), "m1")
	if e.TakenAt == nil || !e.TakenAt.Equal(t1) {
		t.Fatalf("expected TakenAt to keep first mark time, got %v", e.TakenAt)
	}
}

func TestMedicationsRepo_SoftDelete_KeepsRow(t *testing.T) {
	repo := NewMedicationsRepo()
	seedEntry(t, repo, "m1", "u1", "2025-06-18")

	if err := repo.SoftDelete(context.Background(), "u1", "m1"); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	items, _ := repo.ListForOwnerOnDate(context.Background(), "u1", "2025-06-18")
	if len(items) != 0 {
		t.Fatalf("expected tombstoned entry excluded, got %d", len(items))
	}

	e, err := repo.GetByID(context.Background(), "m1")
	if err != nil {
		t.Fatalf("expected row still present: %v", err)
	}
	if e.Active {
		t.Fatalf("expected active=false")
	}

	// segundo delete sobre fila inactiva
	if err := repo.SoftDelete(context.Background(), "u1", "m1"); !errors.Is(err, medications.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on re-delete, got %v", err)
	}
}

func TestMedicationsRepo_ListForOwnerBetween_OrderedByDate(t *testing.T) {
	repo := NewMedicationsRepo()
	seedEntry(t, repo, "m3", "u1", "2025-06-20")
	seedEntry(t, repo, "m1", "u1", "2025-06-18")
	seedEntry(t, repo, "m2", "u1", "2025-06-19")
	seedEntry(t, repo, "other", "u2", "2025-06-19")

	items, err := repo.ListForOwnerBetween(context.Background(), "u1", "2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("ListForOwnerBetween: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(items))
	}
	for i, want := range []string{"2025-06-18", "2025-06-19", "2025-06-20"} {
		if items[i].Date != want {
			t.Fatalf("expected %s at index %d, got %s", want, i, items[i].Date)
		}
	}
}
