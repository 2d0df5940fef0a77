package adherence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"med-adherence-tracker/internal/domain/medications"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Repository lee entradas de medicación activas. Lo implementan los mismos
// repos de medications (postgres y memory); adherence no tiene tablas propias.
type Repository interface {
	// ListForOwnerBetween devuelve entradas activas con from <= date <= to,
	// ordenadas por fecha ascendente (y orden de inserción dentro del día).
	ListForOwnerBetween(ctx context.Context, ownerUserID, from, to string) ([]medications.Entry, error)

	// ListForOwner devuelve todas las entradas activas del usuario, sin ventana.
	ListForOwner(ctx context.Context, ownerUserID string) ([]medications.Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// MonthSummary calcula streak, totales y adherencia sobre el mes calendario
// de la fecha de referencia.
func (s *Service) MonthSummary(ctx context.Context, ownerUserID, referenceDate string) (Summary, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Summary{}, ErrInvalidInput
	}

	ref, err := time.Parse(medications.DateLayout, strings.TrimSpace(referenceDate))
	if err != nil {
		return Summary{}, ErrInvalidInput
	}

	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	entries, err := s.repo.ListForOwnerBetween(ctx, ownerUserID,
		first.Format(medications.DateLayout), last.Format(medications.DateLayout))
	if err != nil {
		return Summary{}, err
	}

	days := make(map[string][]medications.Entry)
	totalMeds := 0
	totalTaken := 0

	for _, e := range entries {
		days[e.Date] = append(days[e.Date], e)
		totalMeds++
		if e.Taken {
			totalTaken++
		}
	}

	// Candidatos al streak: solo fechas <= referencia.
	// Las fechas ISO ordenan lexicográficamente igual que cronológicamente.
	refDate := ref.Format(medications.DateLayout)
	sortedDates := make([]string, 0, len(days))
	for d := range days {
		if d <= refDate {
			sortedDates = append(sortedDates, d)
		}
	}
	sort.Strings(sortedDates)

	// Caminar hacia atrás desde el final: cada día debe estar 100% tomado.
	// Los huecos de calendario (días sin entradas) no cortan la cuenta.
	streak := 0
	for i := len(sortedDates) - 1; i >= 0; i-- {
		if !allTaken(days[sortedDates[i]]) {
			break
		}
		streak++
	}

	rate := "0.00%"
	if totalMeds > 0 {
		rate = fmt.Sprintf("%.2f%%", float64(totalTaken)/float64(totalMeds)*100)
	}

	return Summary{
		Streak:        streak,
		TotalTaken:    totalTaken,
		TotalMissed:   totalMeds - totalTaken,
		TotalMeds:     totalMeds,
		AdherenceRate: rate,
		Days:          days,
	}, nil
}

// CalendarSummary clasifica cada fecha con entradas activas del usuario:
// "taken" si todas las entradas del día están tomadas, si no "missed".
// Fechas sin entradas no aparecen en el mapa.
func (s *Service) CalendarSummary(ctx context.Context, ownerUserID string) (map[string]DayStatus, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}

	entries, err := s.repo.ListForOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	type counts struct{ taken, total int }
	byDate := make(map[string]counts)
	for _, e := range entries {
		c := byDate[e.Date]
		c.total++
		if e.Taken {
			c.taken++
		}
		byDate[e.Date] = c
	}

	out := make(map[string]DayStatus, len(byDate))
	for d, c := range byDate {
		if c.taken == c.total {
			out[d] = DayTaken
		} else {
			out[d] = DayMissed
		}
	}
	return out, nil
}

func allTaken(entries []medications.Entry) bool {
	for _, e := range entries {
		if !e.Taken {
			return false
		}
	}
	return true
}
