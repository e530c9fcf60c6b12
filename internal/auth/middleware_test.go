package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

type fakeLoader struct {
	users map[string]*domain.User
}

func (f *fakeLoader) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// echoUserHandler reports whether a principal reached the handler
func echoUserHandler(t *testing.T, want string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if want == "" {
			assert.False(t, ok, "expected no principal")
		} else {
			require.True(t, ok, "expected a principal")
			assert.Equal(t, want, user.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateResolvesPrincipal(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	loader := &fakeLoader{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Username: "casey", IsActive: true},
		"user-2": {ID: "user-2", Username: "riley", IsActive: false},
	}}
	mw := Authenticate(issuer, loader)

	t.Run("ValidToken", func(t *testing.T) {
		token, err := issuer.IssueToken(loader.users["user-1"])
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw(echoUserHandler(t, "user-1")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("NoTokenPassesThroughAnonymously", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		mw(echoUserHandler(t, "")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("GarbageTokenPassesThroughAnonymously", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()

		mw(echoUserHandler(t, "")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("InactiveAccountTokenDropped", func(t *testing.T) {
		token, err := issuer.IssueToken(loader.users["user-2"])
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw(echoUserHandler(t, "")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGuards(t *testing.T) {
	regular := &domain.User{ID: "u1", IsActive: true}
	staff := &domain.User{ID: "u2", IsActive: true, IsStaff: true}
	reviewer := &domain.User{ID: "u3", IsActive: true, Roles: []string{domain.RoleValueReviewer}}
	super := &domain.User{ID: "u4", IsActive: true, IsSuperuser: true}

	tests := []struct {
		name  string
		guard func(http.Handler) http.Handler
		user  *domain.User
		want  int
	}{
		{"AuthenticatedAnonymous", RequireAuthenticated, nil, http.StatusUnauthorized},
		{"AuthenticatedRegular", RequireAuthenticated, regular, http.StatusOK},

		{"StaffAnonymous", RequireStaff, nil, http.StatusUnauthorized},
		{"StaffRegular", RequireStaff, regular, http.StatusForbidden},
		{"StaffStaff", RequireStaff, staff, http.StatusOK},
		{"StaffSuperuser", RequireStaff, super, http.StatusOK},

		{"ReviewerRegular", RequireReviewer, regular, http.StatusForbidden},
		{"ReviewerReviewer", RequireReviewer, reviewer, http.StatusOK},
		// Staff status alone does not confer the reviewer capability
		{"ReviewerStaff", RequireReviewer, staff, http.StatusForbidden},
		{"ReviewerSuperuser", RequireReviewer, super, http.StatusForbidden},

		{"SuperuserStaff", RequireSuperuser, staff, http.StatusForbidden},
		{"SuperuserSuperuser", RequireSuperuser, super, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()

			tt.guard(okHandler()).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
