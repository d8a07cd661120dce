// Package auth verifies access tokens issued by the identity provider.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrNotConfigured = errors.New("token verification not configured")
)

// Claims are the Supabase access token claims we rely on. The user id is the subject.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified caller.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Verifier validates HS256 access tokens signed with the project JWT secret.
type Verifier struct {
	secret   []byte
	audience string
}

// NewVerifier creates a Verifier. An empty secret yields a verifier that rejects every token.
func NewVerifier(secret, audience string) *Verifier {
	return &Verifier{secret: []byte(secret), audience: audience}
}

// Configured reports whether a signing secret is set.
func (v *Verifier) Configured() bool {
	return len(v.secret) > 0
}

// Verify parses tokenString and returns the caller identity.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	if !v.Configured() {
		return nil, ErrNotConfigured
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return &Identity{UserID: userID, Email: claims.Email}, nil
}
