package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type SignupInput struct {
	Username string
	Password string
	Role     string
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (Account, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return Account{}, ErrInvalidInput
	}

	role, ok := ParseRole(strings.TrimSpace(in.Role))
	if !ok {
		return Account{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	a := Account{
		ID:           uuid.NewString(),
		Username:     username,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

// Login valida credenciales. Username desconocido y password incorrecto
// devuelven el mismo error para no filtrar qué cuentas existen.
func (s *Service) Login(ctx context.Context, username, password string) (Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Account{}, ErrInvalidCredentials
	}

	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return Account{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Account{}, ErrNotFound
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	return a, nil
}

// GetByUsername se usa al invitar a un caretaker por username.
func (s *Service) GetByUsername(ctx context.Context, username string) (Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Account{}, ErrNotFound
	}
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return Account{}, ErrNotFound
	}
	return a, nil
}
