package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	identityApp "github.com/Swacker3927/ai-todo-manager/internal/identity/application"
	identityDomain "github.com/Swacker3927/ai-todo-manager/internal/identity/domain"
)

type contextKey int

const sessionContextKey contextKey = iota

// AuthMiddleware resolves the caller's session from the Authorization
// header and makes it available on the request context.
type AuthMiddleware struct {
	verifier *identityApp.SessionVerifier
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(verifier *identityApp.SessionVerifier, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// Require wraps a handler so it only runs with a verified session. Expired
// sessions get a distinct message so clients can redirect to sign-in.
func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing session token")
			return
		}

		session, err := m.verifier.Verify(token)
		if err != nil {
			if errors.Is(err, identityDomain.ErrSessionExpired) {
				writeError(w, http.StatusUnauthorized, "session expired, please sign in again")
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// SessionFromContext retrieves the verified session from a request context.
func SessionFromContext(ctx context.Context) (*identityDomain.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*identityDomain.Session)
	return session, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}
