package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"med-adherence-tracker/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrInvalidToken = errors.New("invalid token")
)

// Tokens implementa auth.TokenIssuer y auth.TokenVerifier con JWT HS256.
// El secret es compartido; no hay session store del lado servidor.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (t *Tokens) Issue(_ context.Context, c auth.Claims) (string, error) {
	if t == nil || len(t.secret) == 0 {
		return "", errors.New("jwtauth: secret not configured")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("jwtauth: claims missing user id")
	}

	now := t.now()
	sc := sessionClaims{
		Username: c.Username,
		Role:     c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sc)
	return tok.SignedString(t.secret)
}

func (t *Tokens) Verify(_ context.Context, token string) (auth.Claims, error) {
	if t == nil || len(t.secret) == 0 {
		return auth.Claims{}, errors.New("jwtauth: secret not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tk.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sc, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(sc.Subject) == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return auth.Claims{
		UserID:   sc.Subject,
		Username: sc.Username,
		Role:     sc.Role,
	}, nil
}
