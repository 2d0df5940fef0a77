package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"med-adherence-tracker/internal/middleware"
	"med-adherence-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// AssignmentLookup evita importar el paquete assignments (rompe ciclos).
type AssignmentLookup interface {
	ActivePatientIDs(ctx context.Context, caretakerUserID string) ([]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer, assigned AssignmentLookup) {
	r.Post("/signup", signupHandler(svc))
	r.Post("/login", loginHandler(svc, issuer))

	// Pacientes asignados al caretaker autenticado
	r.Get("/patients", listPatientsHandler(svc, assigned))
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type patientResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// signupHandler godoc
// @Summary Registrar cuenta
// @Description Crea una cuenta con rol patient o caretaker. El username debe ser único.
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body signupRequest true "Credenciales y rol"
// @Success 201 {object} map[string]string
// @Failure 400 {string} string "all fields are required / user already exists"
// @Router /signup [post]
func signupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Signup(r.Context(), SignupInput{
			Username: req.Username,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "all fields are required", http.StatusBadRequest)
			case errors.Is(err, ErrUsernameTaken):
				http.Error(w, "user already exists", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"message": "Signup successful",
			"userId":  a.ID,
		})
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Valida credenciales y emite un token de sesión (1 hora).
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "invalid credentials"
// @Router /login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		if issuer == nil {
			// modo dev sin issuer: no podemos emitir token
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		token, err := issuer.Issue(r.Context(), auth.Claims{
			UserID:   a.ID,
			Username: a.Username,
			Role:     string(a.Role),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Login successful",
			"token":   token,
			"role":    string(a.Role),
			"userId":  a.ID,
		})
	}
}

func listPatientsHandler(svc *Service, assigned AssignmentLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != string(RoleCaretaker) {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}

		ids, err := assigned.ActivePatientIDs(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]patientResponse, 0, len(ids))
		for _, id := range ids {
			a, err := svc.GetByID(r.Context(), id)
			if err != nil {
				// tolera assignments huérfanos
				continue
			}
			out = append(out, patientResponse{ID: a.ID, Username: a.Username})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
