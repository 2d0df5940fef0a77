package medications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"med-adherence-tracker/internal/domain/accounts"
	"med-adherence-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// CaretakerAccess evita importar el paquete assignments (rompe ciclos).
// Responde si el caretaker tiene un assignment activo con el paciente.
type CaretakerAccess interface {
	IsActive(ctx context.Context, caretakerUserID, patientUserID string) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, access CaretakerAccess) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", addMedicationHandler(svc))
		mr.Get("/", listMedicationsHandler(svc))

		// Batch primero: el segmento estático gana sobre {id}
		mr.Put("/taken", markTakenBatchHandler(svc))
		mr.Put("/{medID}/taken", markTakenHandler(svc))
		mr.Delete("/{medID}", softDeleteHandler(svc))
	})

	// Caretaker consulta las entradas de un paciente asignado
	r.Post("/caretaker/medications", listForPatientHandler(svc, access))
}

type addMedicationRequest struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Date      string `json:"date"` // yyyy-MM-dd
	Time      string `json:"time"` // HH:mm
}

type markTakenBatchRequest struct {
	IDs []string `json:"ids"`
}

type caretakerListRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

type entryResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"user_id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Active    bool   `json:"active"`
	Taken     bool   `json:"taken"`
}

// addMedicationHandler godoc
// @Summary Registrar medicación
// @Description Crea una entrada de medicación para el usuario autenticado. Todos los campos son obligatorios; date en yyyy-MM-dd y time en HH:mm.
// @Tags medications
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body addMedicationRequest true "Datos de la entrada"
// @Success 201 {object} map[string]string
// @Failure 400 {string} string "all fields are required"
// @Failure 401 {string} string "unauthorized"
// @Router /medications [post]
func addMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req addMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Add(r.Context(), claims.UserID, AddInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			Date:      req.Date,
			Time:      req.Time,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "all fields are required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"message": "Medication added",
			"id":      e.ID,
		})
	}
}

func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForDate(r.Context(), claims.UserID, r.URL.Query().Get("date"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "date must be yyyy-MM-dd", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponses(items))
	}
}

func markTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.MarkTaken(r.Context(), claims.UserID, chi.URLParam(r, "medID"))
		if err != nil {
			writeMutationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Medication marked as taken"})
	}
}

// markTakenBatchHandler godoc
// @Summary Marcar varias tomas
// @Description Marca todas las entradas indicadas como tomadas en una sola transacción. Si algún id no existe o no pertenece al usuario, ninguna queda marcada.
// @Tags medications
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body markTakenBatchRequest true "IDs de las entradas"
// @Success 200 {object} map[string]string
// @Failure 400 {string} string "ids are required"
// @Failure 404 {string} string "medication not found"
// @Router /medications/taken [put]
func markTakenBatchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req markTakenBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.MarkTakenBatch(r.Context(), claims.UserID, req.IDs); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "ids are required", http.StatusBadRequest)
				return
			}
			writeMutationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Medications marked as taken"})
	}
}

func softDeleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.SoftDelete(r.Context(), claims.UserID, chi.URLParam(r, "medID"))
		if err != nil {
			writeMutationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Medication deleted"})
	}
}

// listForPatientHandler aplica permisos:
// - caller debe tener rol caretaker
// - y un assignment activo con el paciente consultado
func listForPatientHandler(svc *Service, access CaretakerAccess) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != string(accounts.RoleCaretaker) {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}

		var req caretakerListRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Date) == "" {
			http.Error(w, "user_id and date are required", http.StatusBadRequest)
			return
		}

		active, err := access.IsActive(r.Context(), claims.UserID, req.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !active {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}

		items, err := svc.ListForDate(r.Context(), req.UserID, req.Date)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "date must be yyyy-MM-dd", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponses(items))
	}
}

func writeMutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		OwnerID:   e.OwnerUserID,
		Name:      e.Name,
		Dosage:    e.Dosage,
		Frequency: e.Frequency,
		Date:      e.Date,
		Time:      e.Time,
		Active:    e.Active,
		Taken:     e.Taken,
	}
}

func toEntryResponses(items []Entry) []entryResponse {
	out := make([]entryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEntryResponse(e))
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
