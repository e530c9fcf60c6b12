package identity

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/logger"
	"github.com/lunarbyte/tradevalues/internal/repository"
)

// Service defines the interface for account operations
type Service interface {
	// Register creates an inactive account with its profile and returns
	// the verification token to be delivered out of band.
	Register(ctx context.Context, username, email, password, displayName string) (*domain.User, string, error)

	// Login checks credentials against an active account. Unknown
	// usernames and wrong passwords are indistinguishable.
	Login(ctx context.Context, username, password string) (*domain.User, error)

	// Verify spends a verification token and activates its account
	Verify(ctx context.Context, token string) (*domain.User, error)

	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)

	GrantRole(ctx context.Context, username, roleName string) error
	RevokeRole(ctx context.Context, username, roleName string) error
}

type service struct {
	repo      repository.User
	roleCache *roleCache
}

// NewService creates a new identity service
func NewService(repo repository.User) Service {
	return &service{
		repo:      repo,
		roleCache: newRoleCache(RoleCacheSize, RoleCacheTTL),
	}
}

func (s *service) Register(ctx context.Context, username, email, password, displayName string) (*domain.User, string, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if displayName == "" {
		displayName = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	token, err := s.repo.CreateUser(ctx, user, displayName)
	if err != nil {
		return nil, "", err
	}

	log.Info("User registered", "user_id", user.ID, "username", username)
	return user, token, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	log.Info("User logged in", "user_id", user.ID, "username", username)
	return user, nil
}

func (s *service) Verify(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.repo.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	log.Info("User verified", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *service) GrantRole(ctx context.Context, username, roleName string) error {
	log := logger.FromContext(ctx)

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	roleID, err := s.resolveRoleID(ctx, roleName)
	if err != nil {
		return err
	}

	if err := s.repo.GrantRole(ctx, user.ID, roleID); err != nil {
		return err
	}

	log.Info("Role granted", "user_id", user.ID, "role", roleName)
	return nil
}

func (s *service) RevokeRole(ctx context.Context, username, roleName string) error {
	log := logger.FromContext(ctx)

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	roleID, err := s.resolveRoleID(ctx, roleName)
	if err != nil {
		return err
	}

	if err := s.repo.RevokeRole(ctx, user.ID, roleID); err != nil {
		return err
	}

	log.Info("Role revoked", "user_id", user.ID, "role", roleName)
	return nil
}

// resolveRoleID looks up a role id through the cache. Role rows are
// seed data, so a long TTL is safe.
func (s *service) resolveRoleID(ctx context.Context, roleName string) (int, error) {
	if id, ok := s.roleCache.Get(roleName); ok {
		return id, nil
	}

	id, err := s.repo.GetRoleID(ctx, roleName)
	if err != nil {
		return 0, err
	}

	s.roleCache.Set(roleName, id)
	return id, nil
}
