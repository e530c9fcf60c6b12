package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgInvalidID   = "Invalid id"
	ErrMsgInvalidPage = "Invalid page number"

	// User-facing error messages mapped from domain errors
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgCategoryNotFoundError = "Category not found"
	ErrMsgNameTakenError        = "That name is already in use"
	ErrMsgCategoryInUseError    = "Category still has items and cannot be deleted"
	ErrMsgUserNotFoundError     = "User not found"
	ErrMsgUsernameTakenError    = "That username is already taken"
	ErrMsgEmailTakenError       = "That email is already registered"
	ErrMsgBadCredentialsError   = "Invalid username or password"
	ErrMsgInactiveAccountError  = "Account is not active. Check your verification email."
	ErrMsgBadTokenError         = "Verification link is invalid or already used"
	ErrMsgAuthRequiredError     = "Authentication required"
	ErrMsgForbiddenError        = "You do not have permission to do that"
	ErrMsgInventoryRowError     = "Inventory entry not found"
	ErrMsgRequestNotFoundError  = "Value change request not found"
	ErrMsgRequestSettledError   = "Request has already been reviewed"
)
