package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care-reminders/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("jwt verifier not configured")
)

// Claims del token emitido por el proveedor de identidad (HS256).
// sub = user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier con un secreto compartido.
type Verifier struct {
	secret []byte
	// leeway tolera desfasaje de reloj en exp/nbf.
	leeway time.Duration
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(strings.TrimSpace(secret)),
		leeway: 30 * time.Second,
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var c Claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	userID := strings.TrimSpace(c.Subject)
	if userID == "" {
		return auth.Claims{}, errors.New("jwt claims missing subject")
	}

	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(c.Email),
	}, nil
}

// Sign emite un token HS256; lo usan tests y herramientas de desarrollo.
func Sign(secret, userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}
