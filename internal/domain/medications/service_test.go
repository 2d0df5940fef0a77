package medications

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Entry
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Entry{}}
}

func (r *testRepo) Create(ctx context.Context, e Entry) error {
	if e.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Entry, error) {
	e, ok := r.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *testRepo) ListForOwnerOnDate(ctx context.Context, ownerUserID, date string) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.byID {
		if e.OwnerUserID == ownerUserID && e.Date == date && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *testRepo) MarkTaken(ctx context.Context, ownerUserID, id string, at time.Time) error {
	e, ok := r.byID[id]
	if !ok || e.OwnerUserID != ownerUserID || !e.Active {
		return ErrNotFound
	}
	e.Taken = true
	r.byID[id] = e
	return nil
}

func (r *testRepo) MarkTakenBatch(ctx context.Context, ownerUserID string, ids []string, at time.Time) error {
	for _, id := range ids {
		e, ok := r.byID[id]
		if !ok || e.OwnerUserID != ownerUserID || !e.Active {
			return ErrNotFound
		}
	}
	for _, id := range ids {
		_ = r.MarkTaken(ctx, ownerUserID, id, at)
	}
	return nil
}

func (r *testRepo) SoftDelete(ctx context.Context, ownerUserID, id string) error {
	e, ok := r.byID[id]
	if !ok || e.OwnerUserID != ownerUserID || !e.Active {
		return ErrNotFound
	}
	e.Active = false
	r.byID[id] = e
	return nil
}

// -------------------------
// Tests
// -------------------------

func validAdd() AddInput {
	return AddInput{
		Name:      "ibuprofen",
		Dosage:    "200mg",
		Frequency: "daily",
		Date:      "2025-06-18",
		Time:      "08:00",
	}
}

func TestService_Add_Defaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2025, 6, 18, 7, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	e, err := svc.Add(context.Background(), "u1", validAdd())
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if e.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if !e.Active || e.Taken {
		t.Fatalf("expected active=true taken=false, got active=%v taken=%v", e.Active, e.Taken)
	}
	if e.CreatedAt != now {
		t.Fatalf("expected CreatedAt=now")
	}
}

func TestService_Add_RejectsMissingOrMalformedFields(t *testing.T) {
	svc := NewService(newTestRepo())

	bad := []func(*AddInput){
		func(in *AddInput) { in.Name = "" },
		func(in *AddInput) { in.Dosage = " " },
		func(in *AddInput) { in.Frequency = "" },
		func(in *AddInput) { in.Date = "" },
		func(in *AddInput) { in.Time = "" },
		func(in *AddInput) { in.Date = "18-06-2025" },
		func(in *AddInput) { in.Time = "8am" },
	}
	for i, mutate := range bad {
		in := validAdd()
		mutate(&in)
		if _, err := svc.Add(context.Background(), "u1", in); err != ErrInvalidInput {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestService_ListForDate_RequiresValidDate(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.ListForDate(context.Background(), "u1", ""); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty date, got %v", err)
	}
	if _, err := svc.ListForDate(context.Background(), "u1", "junk"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for malformed date, got %v", err)
	}
}

func TestService_MarkTaken_IdempotentOnExistingRow(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	e, err := svc.Add(context.Background(), "u1", validAdd())
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	if err := svc.MarkTaken(context.Background(), "u1", e.ID); err != nil {
		t.Fatalf("MarkTaken #1 error: %v", err)
	}
	if err := svc.MarkTaken(context.Background(), "u1", e.ID); err != nil {
		t.Fatalf("MarkTaken #2 (idempotent) error: %v", err)
	}

	got, _ := repo.GetByID(context.Background(), e.ID)
	if !got.Taken {
		t.Fatalf("expected taken=true")
	}
}

func TestService_MarkTaken_UnownedOrMissingIsNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	e, err := svc.Add(context.Background(), "u1", validAdd())
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	if err := svc.MarkTaken(context.Background(), "u2", e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if err := svc.MarkTaken(context.Background(), "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestService_SoftDelete_Tombstones(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	e, err := svc.Add(context.Background(), "u1", validAdd())
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	if err := svc.SoftDelete(context.Background(), "u1", e.ID); err != nil {
		t.Fatalf("SoftDelete error: %v", err)
	}

	items, err := svc.ListForDate(context.Background(), "u1", e.Date)
	if err != nil {
		t.Fatalf("ListForDate error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected tombstoned entry excluded from listing, got %d", len(items))
	}

	// La fila sigue existiendo, solo inactiva.
	got, err := repo.GetByID(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("expected row still present, got %v", err)
	}
	if got.Active {
		t.Fatalf("expected active=false after soft delete")
	}
}

func TestService_MarkTakenBatch_ValidatesIDs(t *testing.T) {
	svc := NewService(newTestRepo())

	if err := svc.MarkTakenBatch(context.Background(), "u1", nil); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
	if err := svc.MarkTakenBatch(context.Background(), "u1", []string{"a", " "}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}
