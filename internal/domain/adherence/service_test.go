package adherence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"med-adherence-tracker/internal/domain/medications"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	entries []medications.Entry
}

func (r *testRepo) ListForOwnerBetween(ctx context.Context, ownerUserID, from, to string) ([]medications.Entry, error) {
	out := make([]medications.Entry, 0)
	for _, e := range r.entries {
		if e.OwnerUserID == ownerUserID && e.Active && e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *testRepo) ListForOwner(ctx context.Context, ownerUserID string) ([]medications.Entry, error) {
	out := make([]medications.Entry, 0)
	for _, e := range r.entries {
		if e.OwnerUserID == ownerUserID && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

var entrySeq int

func entry(owner, date string, taken bool) medications.Entry {
	entrySeq++
	return medications.Entry{
		ID:          fmt.Sprintf("med-%d", entrySeq),
		OwnerUserID: owner,
		Name:        "ibuprofen",
		Dosage:      "200mg",
		Frequency:   "daily",
		Date:        date,
		Time:        "08:00",
		Active:      true,
		Taken:       taken,
		CreatedAt:   time.Now(),
	}
}

// -------------------------
// Tests
// -------------------------

func TestMonthSummary_StreakBreaksOnReferenceDay(t *testing.T) {
	repo := &testRepo{entries: []medications.Entry{
		entry("u1", "2025-06-18", true),
		entry("u1", "2025-06-18", true),
		entry("u1", "2025-06-19", true),
		entry("u1", "2025-06-20", true),
		entry("u1", "2025-06-20", false), // una sin tomar
	}}
	svc := NewService(repo)

	sum, err := svc.MonthSummary(context.Background(), "u1", "2025-06-20")
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if sum.Streak != 0 {
		t.Fatalf("expected streak 0 (reference day not fully taken), got %d", sum.Streak)
	}
}

func TestMonthSummary_StreakCountsBackFromReference(t *testing.T) {
	repo := &testRepo{entries: []medications.Entry{
		entry("u1", "2025-06-18", true),
		entry("u1", "2025-06-19", true),
		entry("u1", "2025-06-20", false),
	}}
	svc := NewService(repo)

	sum, err := svc.MonthSummary(context.Background(), "u1", "2025-06-19")
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if sum.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", sum.Streak)
	}
}

func TestMonthSummary_StreakToleratesCalendarGaps(t *testing.T) {
	// Días sin entradas no participan: 01, 03 y 05 todos tomados => streak 3.
	repo := &testRepo{entries: []medications.Entry{
		entry("u1", "2025-06-01", true),
		entry("u1", "2025-06-03", true),
		entry("u1", "2025-06-05", true),
	}}
	svc := NewService(repo)

	sum, err := svc.MonthSummary(context.Background(), "u1", "2025-06-05")
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if sum.Streak != 3 {
		t.Fatalf("expected streak 3 across gaps, got %d", sum.Streak)
	}
}

func TestMonthSummary_EmptyWindow(t *testing.T) {
	svc := NewService(&testRepo{})

	sum, err := svc.MonthSummary(context.Background(), "u1", "2025-06-20")
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if sum.AdherenceRate != "0.00%" {
		t.Fatalf("expected 0.00%%, got %s", sum.AdherenceRate)
	}
	if sum.Streak != 0 || sum.TotalTaken != 0 || sum.TotalMissed != 0 {
		t.Fatalf("expected zeroed summary, got %+v", sum)
	}
	if len(sum.Days) != 0 {
		t.Fatalf("expected empty days map, got %d entries", len(sum.Days))
	}
}

func TestMonthSummary_FullAdherenceRate(t *testing.T) {
	repo := &testRepo{entries: []medications.Entry{
		entry("u1", "2025-06-18", true),
		entry("u1", "2025-06-19", true),
		entry("u1", "2025-06-20", true),
	}}
	svc := NewService(repo)

	sum, err := svc.MonthSummary(context.Background(), "u1", "2025-06-20")
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if sum.AdherenceRate != "100.00%" {
		t.Fatalf("expected 100.00%%, got %s", sum.AdherenceRate)
	}
	if sum.TotalTaken != 3 || sum.TotalMissed != 0 {
		t.Fatalf("expected 3/0, got %d/%d", sum.TotalTaken, sum.TotalMissed)
	}
}

func TestMonthSummary_RateTwoDecimals(t *testing.T) {
	repo := &testRepo{entries: []medications.Entry{
		entry("u1", "2025-06-18", true),
		entry("u1", "2025-06-19", true),
		entry("u1", "2025-06-20", false),
	}}
	svc := NewService(repo)

	sum, err := svc.MonthSummary(context.Background(), "u1", "2025-06-20")
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if sum.AdherenceRate != "66.67%" {
		t.Fatalf("expected 66.67%%, got %s", sum.AdherenceRate)
	}
}

func TestMonthSummary_TotalsCoverWholeMonth_StreakOnlyUpToReference(t *testing.T) {
	// La entrada del 25 (posterior a la referencia) cuenta en los totales
	// pero no participa del streak.
	repo := &testRepo{entries: []medications.Entry{
		entry("u1", "2025-06-10", true),
		entry("u1", "2025-06-25", false),
	}}
	svc := NewService(repo)

	sum, err := svc.MonthSummary(context.Background(), "u1", "2025-06-15")
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if sum.TotalTaken != 1 || sum.TotalMissed != 1 {
		t.Fatalf("expected totals over whole month 1/1, got %d/%d", sum.TotalTaken, sum.TotalMissed)
	}
	if sum.Streak != 1 {
		t.Fatalf("expected streak 1 (only 06-10 qualifies), got %d", sum.Streak)
	}
}

func TestMonthSummary_WindowExcludesOtherMonths(t *testing.T) {
	repo := &testRepo{entries: []medications.Entry{
		entry("u1", "2025-05-31", false),
		entry("u1", "2025-06-10", true),
		entry("u1", "2025-07-01", false),
	}}
	svc := NewService(repo)

	sum, err := svc.MonthSummary(context.Background(), "u1", "2025-06-15")
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if sum.TotalTaken != 1 || sum.TotalMissed != 0 {
		t.Fatalf("expected only June entries, got taken=%d missed=%d", sum.TotalTaken, sum.TotalMissed)
	}
	if sum.AdherenceRate != "100.00%" {
		t.Fatalf("expected 100.00%%, got %s", sum.AdherenceRate)
	}
}

func TestMonthSummary_DaysGroupedByDate(t *testing.T) {
	repo := &testRepo{entries: []medications.Entry{
		entry("u1", "2025-06-18", true),
		entry("u1", "2025-06-18", false),
		entry("u1", "2025-06-19", true),
	}}
	svc := NewService(repo)

	sum, err := svc.MonthSummary(context.Background(), "u1", "2025-06-19")
	if err != nil {
		t.Fatalf("MonthSummary error: %v", err)
	}
	if len(sum.Days["2025-06-18"]) != 2 || len(sum.Days["2025-06-19"]) != 1 {
		t.Fatalf("unexpected day buckets: %+v", sum.Days)
	}
}

func TestMonthSummary_InvalidInput(t *testing.T) {
	svc := NewService(&testRepo{})

	if _, err := svc.MonthSummary(context.Background(), "", "2025-06-20"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty user, got %v", err)
	}
	if _, err := svc.MonthSummary(context.Background(), "u1", "20-06-2025"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}
}

func TestCalendarSummary_Statuses(t *testing.T) {
	repo := &testRepo{entries: []medications.Entry{
		entry("u1", "2025-06-18", true),
		entry("u1", "2025-06-18", true),
		entry("u1", "2025-06-19", true),
		entry("u1", "2025-06-19", false),
	}}
	svc := NewService(repo)

	out, err := svc.CalendarSummary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CalendarSummary error: %v", err)
	}
	if out["2025-06-18"] != DayTaken {
		t.Fatalf("expected taken for 06-18, got %s", out["2025-06-18"])
	}
	if out["2025-06-19"] != DayMissed {
		t.Fatalf("expected missed for 06-19, got %s", out["2025-06-19"])
	}
	if _, ok := out["2025-06-20"]; ok {
		t.Fatalf("expected 06-20 absent from result")
	}
}

func TestCalendarSummary_IgnoresInactiveAndOtherUsers(t *testing.T) {
	tomb := entry("u1", "2025-06-18", false)
	tomb.Active = false

	repo := &testRepo{entries: []medications.Entry{
		tomb,
		entry("u2", "2025-06-19", true),
	}}
	svc := NewService(repo)

	out, err := svc.CalendarSummary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CalendarSummary error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty summary, got %+v", out)
	}
}
