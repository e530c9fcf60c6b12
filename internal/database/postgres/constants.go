package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a delete is blocked by a referencing row
	PgErrorCodeForeignKeyViolation = "23503"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToListCategories = "failed to list categories"
	ErrMsgFailedToGetCategory    = "failed to get category"
	ErrMsgFailedToInsertCategory = "failed to insert category"
	ErrMsgFailedToDeleteCategory = "failed to delete category"
	ErrMsgFailedToListItems      = "failed to list items"
	ErrMsgFailedToCountItems     = "failed to count items"
	ErrMsgFailedToGetItem        = "failed to get item"
	ErrMsgFailedToInsertItem     = "failed to insert item"
	ErrMsgFailedToUpdateItem     = "failed to update item"
	ErrMsgFailedToDeleteItem     = "failed to delete item"
)

// Error Messages - Account Operations
const (
	ErrMsgFailedToInsertUser    = "failed to insert user"
	ErrMsgFailedToGetUser       = "failed to get user"
	ErrMsgFailedToGetUserRoles  = "failed to get user roles"
	ErrMsgFailedToInsertProfile = "failed to insert profile"
	ErrMsgFailedToGetProfile    = "failed to get profile"
	ErrMsgFailedToInsertToken   = "failed to insert verification token"
	ErrMsgFailedToConsumeToken  = "failed to consume verification token"
	ErrMsgFailedToGetRole       = "failed to get role"
	ErrMsgFailedToGrantRole     = "failed to grant role"
	ErrMsgFailedToRevokeRole    = "failed to revoke role"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToAddInventoryItem    = "failed to add inventory item"
	ErrMsgFailedToRemoveInventoryItem = "failed to remove inventory item"
	ErrMsgFailedToListInventory       = "failed to list inventory"
)

// Error Messages - Value Request Operations
const (
	ErrMsgFailedToInsertRequest = "failed to insert value change request"
	ErrMsgFailedToGetRequest    = "failed to get value change request"
	ErrMsgFailedToListRequests  = "failed to list value change requests"
	ErrMsgFailedToUpdateRequest = "failed to update value change request"
	ErrMsgFailedToSyncItemValue = "failed to sync item value"
)
