package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/repository"
)

// UserRepository implements the account repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) repository.User {
	return &UserRepository{db: db}
}

// CreateUser inserts the user row, its profile and a verification token
// as one transaction and returns the token value. The user starts
// inactive until the token is consumed.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User, displayName string) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer tx.Rollback(ctx)

	userQuery := `
		INSERT INTO users (username, email, password_hash, is_active)
		VALUES ($1, $2, $3, FALSE)
		RETURNING user_id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, userQuery, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return "", uniqueUserError(err)
		}
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToInsertUser, err)
	}

	profileQuery := `
		INSERT INTO profiles (user_id, display_name)
		VALUES ($1, $2)
	`
	if _, err := tx.Exec(ctx, profileQuery, user.ID, displayName); err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToInsertProfile, err)
	}

	tokenQuery := `
		INSERT INTO verification_tokens (user_id, token)
		VALUES ($1, encode(gen_random_bytes(32), 'hex'))
		RETURNING token
	`
	var token string
	if err := tx.QueryRow(ctx, tokenQuery, user.ID).Scan(&token); err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToInsertToken, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}

	return token, nil
}

// uniqueUserError maps a users-table unique violation to the field that
// collided. The constraint name carries the column.
func uniqueUserError(err error) error {
	if strings.Contains(err.Error(), "email") {
		return domain.ErrEmailTaken
	}
	return domain.ErrUsernameTaken
}

// GetUserByID finds a user with their role names loaded
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, "user_id = $1", id)
}

// GetUserByUsername finds a user with their role names loaded
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, "username = $1", username)
}

func (r *UserRepository) getUser(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	query := `
		SELECT user_id, username, email, password_hash, is_active, is_staff,
			is_superuser, created_at, updated_at
		FROM users
		WHERE ` + where

	var user domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsActive, &user.IsStaff, &user.IsSuperuser,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}

	rolesQuery := `
		SELECT ro.role_name
		FROM user_roles ur
		JOIN roles ro ON ur.role_id = ro.role_id
		WHERE ur.user_id = $1
		ORDER BY ro.role_name
	`
	rows, err := r.db.Query(ctx, rolesQuery, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserRoles, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserRoles, err)
		}
		user.Roles = append(user.Roles, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserRoles, err)
	}

	return &user, nil
}

// ConsumeVerificationToken marks an unused token used and activates its
// user plus the profile verified flag in one transaction. The
// conditional update on is_used means a token spends exactly once even
// under concurrent verification attempts.
func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer tx.Rollback(ctx)

	consumeQuery := `
		UPDATE verification_tokens
		SET is_used = TRUE
		WHERE token = $1 AND is_used = FALSE
		RETURNING user_id
	`
	var userID string
	err = tx.QueryRow(ctx, consumeQuery, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToConsumeToken, err)
	}

	activateQuery := `
		UPDATE users
		SET is_active = TRUE, updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, username, email, password_hash, is_active,
			is_staff, is_superuser, created_at, updated_at
	`
	var user domain.User
	err = tx.QueryRow(ctx, activateQuery, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsActive, &user.IsStaff, &user.IsSuperuser,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToConsumeToken, err)
	}

	verifyQuery := `
		UPDATE profiles
		SET is_verified = TRUE, updated_at = NOW()
		WHERE user_id = $1
	`
	if _, err := tx.Exec(ctx, verifyQuery, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToConsumeToken, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}

	return &user, nil
}

// GetProfile finds the profile belonging to a user
func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT profile_id, user_id, display_name, bio, is_verified,
			created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p domain.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Bio, &p.IsVerified,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProfile, err)
	}

	return &p, nil
}

// GetRoleID resolves a role name to its id
func (r *UserRepository) GetRoleID(ctx context.Context, roleName string) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `SELECT role_id FROM roles WHERE role_name = $1`, roleName).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s: %s", ErrMsgFailedToGetRole, roleName)
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetRole, err)
	}
	return id, nil
}

// GrantRole adds a user to a role; granting twice is a no-op
func (r *UserRepository) GrantRole(ctx context.Context, userID string, roleID int) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, roleID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGrantRole, err)
	}
	return nil
}

// RevokeRole removes a user from a role; revoking a missing grant is a no-op
func (r *UserRepository) RevokeRole(ctx context.Context, userID string, roleID int) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`
	if _, err := r.db.Exec(ctx, query, userID, roleID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRevokeRole, err)
	}
	return nil
}
