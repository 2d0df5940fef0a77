package assignments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"med-adherence-tracker/internal/domain/accounts"
	"med-adherence-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, accountsSvc *accounts.Service) {
	r.Route("/assignments", func(ar chi.Router) {
		// El paciente invita a un caretaker por username
		ar.Post("/", inviteHandler(svc, accountsSvc))

		ar.Post("/{assignmentID}/accept", acceptHandler(svc))
		ar.Post("/{assignmentID}/revoke", revokeHandler(svc))
	})

	// Assignments donde participo (como paciente o como caretaker)
	r.Get("/me/assignments", listMineHandler(svc))
}

type inviteRequest struct {
	CaretakerUsername string `json:"caretaker_username"`
}

type assignmentResponse struct {
	ID              string     `json:"id"`
	PatientUserID   string     `json:"patient_user_id"`
	CaretakerUserID string     `json:"caretaker_user_id"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	RevokedAt       *time.Time `json:"revoked_at,omitempty"`
}

// inviteHandler godoc
// @Summary Invitar caretaker
// @Description El paciente autenticado invita a un caretaker por username. La cuenta invitada debe existir y tener rol caretaker.
// @Tags assignments
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body inviteRequest true "Username del caretaker"
// @Success 201 {object} assignmentResponse
// @Failure 400 {string} string "caretaker not found / invalid input"
// @Failure 403 {string} string "access denied"
// @Router /assignments [post]
func inviteHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != string(accounts.RolePatient) {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}

		var req inviteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		caretaker, err := accountsSvc.GetByUsername(r.Context(), req.CaretakerUsername)
		if err != nil || caretaker.Role != accounts.RoleCaretaker {
			http.Error(w, "caretaker not found", http.StatusBadRequest)
			return
		}

		a, err := svc.Invite(r.Context(), claims.UserID, caretaker.ID)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toAssignmentResponse(a))
	}
}

func acceptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Accept(r.Context(), chi.URLParam(r, "assignmentID"), claims.UserID)
		if err != nil {
			writeLifecycleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAssignmentResponse(a))
	}
}

func revokeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Revoke(r.Context(), chi.URLParam(r, "assignmentID"), claims.UserID)
		if err != nil {
			writeLifecycleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAssignmentResponse(a))
	}
}

func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			items []Assignment
			err   error
		)
		if claims.Role == string(accounts.RoleCaretaker) {
			items, err = svc.ListByCaretaker(r.Context(), claims.UserID)
		} else {
			items, err = svc.ListByPatient(r.Context(), claims.UserID)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]assignmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAssignmentResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "assignment not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "access denied", http.StatusForbidden)
	case errors.Is(err, ErrBadState):
		http.Error(w, "assignment revoked", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAssignmentResponse(a Assignment) assignmentResponse {
	return assignmentResponse{
		ID:              a.ID,
		PatientUserID:   a.PatientUserID,
		CaretakerUserID: a.CaretakerUserID,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		RevokedAt:       a.RevokedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
