package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionInvalid means the token could not be verified at all.
	ErrSessionInvalid = errors.New("session token is invalid")
	// ErrSessionExpired means the token was valid but has expired; callers
	// use this to trigger re-authentication instead of a plain failure.
	ErrSessionExpired = errors.New("session has expired")
)

// Session is the verified identity of a caller. It is passed explicitly into
// every operation rather than read from ambient state.
type Session struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}
