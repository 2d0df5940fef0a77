package accounts

import (
	"context"
	"errors"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID       map[string]Account
	byUsername map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:       map[string]Account{},
		byUsername: map[string]string{},
	}
}

func (r *testRepo) Create(ctx context.Context, a Account) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byUsername[a.Username]; ok {
		return ErrUsernameTaken
	}
	r.byID[a.ID] = a
	r.byUsername[a.Username] = a.ID
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return Account{}, errors.New("repo: not found")
	}
	return a, nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (Account, error) {
	id, ok := r.byUsername[username]
	if !ok {
		return Account{}, errors.New("repo: not found")
	}
	return r.byID[id], nil
}

// -------------------------
// Tests
// -------------------------

func TestService_SignupThenLogin(t *testing.T) {
	svc := NewService(newTestRepo())

	a, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Password: "s3cret",
		Role:     "patient",
	})
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if a.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if a.Role != RolePatient {
		t.Fatalf("expected role patient, got %s", a.Role)
	}
	if a.PasswordHash == "s3cret" || a.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}

	got, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if got.ID != a.ID {
		t.Fatalf("expected same account id, got %s vs %s", got.ID, a.ID)
	}
}

func TestService_Signup_RejectsBadInput(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []SignupInput{
		{Username: "", Password: "x", Role: "patient"},
		{Username: "bob", Password: "", Role: "patient"},
		{Username: "bob", Password: "x", Role: "doctor"},
	}
	for _, in := range cases {
		if _, err := svc.Signup(context.Background(), in); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestService_Signup_DuplicateUsername(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "x", Role: "patient"}); err != nil {
		t.Fatalf("Signup #1 error: %v", err)
	}
	_, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "y", Role: "caretaker"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestService_Login_WrongPasswordOrUnknownUser(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "s3cret", Role: "patient"}); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
