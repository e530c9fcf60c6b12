package repository

import (
	"context"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// User defines the interface for account, profile and role persistence
type User interface {
	// CreateUser inserts the user, its profile and a verification token
	// as one transaction and returns the token value.
	CreateUser(ctx context.Context, user *domain.User, displayName string) (string, error)

	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ConsumeVerificationToken marks an unused token used and activates
	// its user (plus the profile verified flag) in one transaction.
	// A used or unknown token reports domain.ErrTokenInvalid.
	ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error)

	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)

	// Role membership management
	GetRoleID(ctx context.Context, roleName string) (int, error)
	GrantRole(ctx context.Context, userID string, roleID int) error
	RevokeRole(ctx context.Context, userID string, roleID int) error
}
