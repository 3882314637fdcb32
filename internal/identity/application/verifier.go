package application

import (
	"errors"
	"fmt"

	"github.com/Swacker3927/ai-todo-manager/internal/identity/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionVerifier validates session tokens issued by the external auth
// service. Tokens are HS256-signed JWTs carrying the user id in `sub`.
type SessionVerifier struct {
	secret []byte
}

// NewSessionVerifier creates a verifier for the given shared secret.
func NewSessionVerifier(secret string) (*SessionVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is not configured")
	}
	return &SessionVerifier{secret: []byte(secret)}, nil
}

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verify parses and validates a session token. Expired tokens yield
// domain.ErrSessionExpired; every other failure yields
// domain.ErrSessionInvalid.
func (v *SessionVerifier) Verify(token string) (*domain.Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrSessionInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrSessionInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrSessionInvalid
	}

	session := &domain.Session{
		UserID: userID,
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
