package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of
// repository.User for integration-style unit tests.
type FakeRepository struct {
	users    map[string]*domain.User    // keyed by user ID
	profiles map[string]*domain.Profile // keyed by user ID
	tokens   map[string]*domain.VerificationToken
	roles    map[string]int        // role name -> id
	grants   map[string]map[int]bool // user ID -> role id set

	// RoleLookups counts GetRoleID calls so cache behavior is testable
	RoleLookups int
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		users:    make(map[string]*domain.User),
		profiles: make(map[string]*domain.Profile),
		tokens:   make(map[string]*domain.VerificationToken),
		roles:    map[string]int{domain.RoleValueReviewer: 1},
		grants:   make(map[string]map[int]bool),
	}
}

func (f *FakeRepository) CreateUser(ctx context.Context, user *domain.User, displayName string) (string, error) {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return "", domain.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return "", domain.ErrEmailTaken
		}
	}

	user.ID = uuid.NewString()
	user.IsActive = false
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored

	f.profiles[user.ID] = &domain.Profile{
		ID:          len(f.profiles) + 1,
		UserID:      user.ID,
		DisplayName: displayName,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.CreatedAt,
	}

	token := uuid.NewString()
	f.tokens[token] = &domain.VerificationToken{
		ID:        len(f.tokens) + 1,
		UserID:    user.ID,
		Token:     token,
		CreatedAt: user.CreatedAt,
	}

	return token, nil
}

func (f *FakeRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return f.withRoles(user), nil
}

func (f *FakeRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return f.withRoles(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *FakeRepository) ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	stored, ok := f.tokens[token]
	if !ok || stored.IsUsed {
		return nil, domain.ErrTokenInvalid
	}
	stored.IsUsed = true

	user := f.users[stored.UserID]
	user.IsActive = true
	if profile, ok := f.profiles[stored.UserID]; ok {
		profile.IsVerified = true
	}
	return f.withRoles(user), nil
}

func (f *FakeRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *FakeRepository) GetRoleID(ctx context.Context, roleName string) (int, error) {
	f.RoleLookups++
	id, ok := f.roles[roleName]
	if !ok {
		return 0, fmt.Errorf("failed to get role: %s", roleName)
	}
	return id, nil
}

func (f *FakeRepository) GrantRole(ctx context.Context, userID string, roleID int) error {
	if f.grants[userID] == nil {
		f.grants[userID] = make(map[int]bool)
	}
	f.grants[userID][roleID] = true
	return nil
}

func (f *FakeRepository) RevokeRole(ctx context.Context, userID string, roleID int) error {
	delete(f.grants[userID], roleID)
	return nil
}

func (f *FakeRepository) withRoles(user *domain.User) *domain.User {
	copied := *user
	copied.Roles = nil
	for roleID := range f.grants[user.ID] {
		for name, id := range f.roles {
			if id == roleID {
				copied.Roles = append(copied.Roles, name)
			}
		}
	}
	return &copied
}
