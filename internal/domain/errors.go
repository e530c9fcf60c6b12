package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Identity errors
	ErrMsgUserNotFound       = "user not found"
	ErrMsgUsernameTaken      = "username already taken"
	ErrMsgEmailTaken         = "email already registered"
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgAccountInactive    = "account is not active"
	ErrMsgTokenInvalid       = "verification token is invalid or already used"

	// Authorization errors
	ErrMsgAuthRequired     = "authentication required"
	ErrMsgPermissionDenied = "permission denied"

	// Catalog errors
	ErrMsgItemNotFound     = "item not found"
	ErrMsgCategoryNotFound = "category not found"
	ErrMsgNameTaken        = "an item with that name already exists"
	ErrMsgCategoryInUse    = "category still has items referencing it"

	// Inventory errors
	ErrMsgInventoryRowNotFound = "inventory entry not found"

	// Value-change workflow errors
	ErrMsgRequestNotFound   = "value change request not found"
	ErrMsgRequestNotPending = "value change request is no longer pending"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Identity errors
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)
	ErrUsernameTaken      = errors.New(ErrMsgUsernameTaken)
	ErrEmailTaken         = errors.New(ErrMsgEmailTaken)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrAccountInactive    = errors.New(ErrMsgAccountInactive)
	ErrTokenInvalid       = errors.New(ErrMsgTokenInvalid)

	// Authorization errors
	ErrAuthRequired     = errors.New(ErrMsgAuthRequired)
	ErrPermissionDenied = errors.New(ErrMsgPermissionDenied)

	// Catalog errors
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrCategoryNotFound = errors.New(ErrMsgCategoryNotFound)
	ErrNameTaken        = errors.New(ErrMsgNameTaken)
	ErrCategoryInUse    = errors.New(ErrMsgCategoryInUse)

	// Inventory errors
	ErrInventoryRowNotFound = errors.New(ErrMsgInventoryRowNotFound)

	// Value-change workflow errors
	ErrRequestNotFound   = errors.New(ErrMsgRequestNotFound)
	ErrRequestNotPending = errors.New(ErrMsgRequestNotPending)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
