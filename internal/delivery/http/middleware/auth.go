package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller carried in the request context.
type Identity struct {
	Username string
	Role     domain.Role
}

// SetIdentity returns a context with the caller identity set. Used by auth middleware.
func SetIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated caller from the context, if present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// bearerToken extracts the token from the Authorization header. present is false when the header is absent.
func bearerToken(r *http.Request) (token string, present bool, problem string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", false, "missing authorization header"
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", true, "invalid authorization format"
	}
	token = strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", true, "missing token"
	}
	return token, true, ""
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the caller identity in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, _, problem := bearerToken(r)
			if problem != "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, problem)
				return
			}
			username, role, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetIdentity(r.Context(), Identity{Username: username, Role: role}))
			next(w, r)
		}
	}
}

// OptionalAuth is like RequireAuth but lets requests without an Authorization header through anonymously.
// A header that is present but invalid is still rejected with 401.
func OptionalAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	required := RequireAuth(verifier, logger)
	return func(next http.HandlerFunc) http.HandlerFunc {
		authed := required(next)
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next(w, r)
				return
			}
			authed(w, r)
		}
	}
}

// RequireRole responds with 403 unless the authenticated caller has the given role.
// It must run after RequireAuth; a request without identity gets 401.
func RequireRole(role domain.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
				return
			}
			if id.Role != role {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "requires "+string(role)+" role")
				return
			}
			next(w, r)
		}
	}
}
