package adherence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"med-adherence-tracker/internal/domain/accounts"
	"med-adherence-tracker/internal/domain/medications"
	"med-adherence-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// CaretakerAccess evita importar el paquete assignments (rompe ciclos).
type CaretakerAccess interface {
	IsActive(ctx context.Context, caretakerUserID, patientUserID string) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, access CaretakerAccess) {
	r.Post("/medications/summary", monthSummaryHandler(svc, access))
	r.Post("/medications/calendar-summary", calendarSummaryHandler(svc, access))
}

type summaryRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

type calendarSummaryRequest struct {
	UserID string `json:"user_id"`
}

type summaryResponse struct {
	Streak        int                               `json:"streak"`
	TotalTaken    int                               `json:"totalTaken"`
	TotalMissed   int                               `json:"totalMissed"`
	AdherenceRate string                            `json:"adherenceRate"`
	Days          map[string][]summaryEntryResponse `json:"days"`
}

type summaryEntryResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"user_id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Taken     bool   `json:"taken"`
}

// monthSummaryHandler godoc
// @Summary Resumen mensual de adherencia
// @Description Calcula streak, totales y tasa de adherencia del mes calendario de la fecha indicada. Puede consultarlo el propio paciente o un caretaker con assignment activo.
// @Tags adherence
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body summaryRequest true "user_id y fecha de referencia (yyyy-MM-dd)"
// @Success 200 {object} summaryResponse
// @Failure 400 {string} string "user_id and date are required"
// @Failure 403 {string} string "access denied"
// @Router /medications/summary [post]
func monthSummaryHandler(svc *Service, access CaretakerAccess) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req summaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Date) == "" {
			http.Error(w, "user_id and date are required", http.StatusBadRequest)
			return
		}

		if !authorizeRead(r, claims.UserID, claims.Role, req.UserID, access) {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}

		sum, err := svc.MonthSummary(r.Context(), req.UserID, req.Date)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "date must be yyyy-MM-dd", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toSummaryResponse(sum))
	}
}

func calendarSummaryHandler(svc *Service, access CaretakerAccess) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req calendarSummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.UserID) == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		if !authorizeRead(r, claims.UserID, claims.Role, req.UserID, access) {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}

		out, err := svc.CalendarSummary(r.Context(), req.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// authorizeRead: el propio paciente siempre puede; un caretaker solo con
// assignment activo.
func authorizeRead(r *http.Request, callerID, callerRole, targetUserID string, access CaretakerAccess) bool {
	if callerID == targetUserID {
		return true
	}
	if callerRole != string(accounts.RoleCaretaker) {
		return false
	}
	active, err := access.IsActive(r.Context(), callerID, targetUserID)
	if err != nil {
		return false
	}
	return active
}

func toSummaryResponse(sum Summary) summaryResponse {
	days := make(map[string][]summaryEntryResponse, len(sum.Days))
	for d, entries := range sum.Days {
		out := make([]summaryEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, toSummaryEntry(e))
		}
		days[d] = out
	}
	return summaryResponse{
		Streak:        sum.Streak,
		TotalTaken:    sum.TotalTaken,
		TotalMissed:   sum.TotalMissed,
		AdherenceRate: sum.AdherenceRate,
		Days:          days,
	}
}

func toSummaryEntry(e medications.Entry) summaryEntryResponse {
	return summaryEntryResponse{
		ID:        e.ID,
		OwnerID:   e.OwnerUserID,
		Name:      e.Name,
		Dosage:    e.Dosage,
		Frequency: e.Frequency,
		Date:      e.Date,
		Time:      e.Time,
		Taken:     e.Taken,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
