package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/logger"
)

// UserLoader resolves a user id from a token into the full account.
// Satisfied by repository.User.
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// Authenticate resolves the bearer token, if any, into a principal on
// the request context. It never rejects: anonymous requests pass
// through and the per-capability guards decide what needs a principal.
// Tokens naming a deactivated account are dropped silently.
func Authenticate(issuer *Issuer, loader UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := issuer.ParseToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := loader.GetUserByID(r.Context(), userID)
			if err != nil || !user.IsActive {
				if user != nil && !user.IsActive {
					logger.FromContext(r.Context()).Warn("Token for inactive account dropped", "user_id", userID)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// RequireAuthenticated rejects anonymous requests with 401
func RequireAuthenticated(next http.Handler) http.Handler {
	return requireFunc(next, func(user *domain.User) bool { return true })
}

// RequireStaff admits staff and superusers
func RequireStaff(next http.Handler) http.Handler {
	return requireFunc(next, func(user *domain.User) bool {
		return user.IsStaff || user.IsSuperuser
	})
}

// RequireReviewer admits members of the value reviewer role. Staff and
// superuser status alone does not grant it.
func RequireReviewer(next http.Handler) http.Handler {
	return requireFunc(next, func(user *domain.User) bool {
		return user.IsValueReviewer()
	})
}

// RequireSuperuser admits superusers only
func RequireSuperuser(next http.Handler) http.Handler {
	return requireFunc(next, func(user *domain.User) bool {
		return user.IsSuperuser
	})
}

// requireFunc is the shared guard shape: 401 without a principal, 403
// when the capability check fails.
func requireFunc(next http.Handler, allowed func(*domain.User) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, domain.ErrMsgAuthRequired)
			return
		}
		if !allowed(user) {
			writeAuthError(w, http.StatusForbidden, domain.ErrMsgPermissionDenied)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeAuthError is a minimal JSON error writer. The handler package's
// response helpers are not used here to keep auth free of that import.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
