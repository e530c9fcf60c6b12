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

const requestColumns = `
	r.request_id, r.item_id, r.requested_by, r.current_value,
	r.requested_value, r.reason, r.status, r.reviewed_by, r.review_notes,
	r.created_at, r.reviewed_at`

// ReviewRepository implements the value-change request repository for PostgreSQL
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) repository.Review {
	return &ReviewRepository{db: db}
}

// Insert stores a new pending request and returns its id
func (r *ReviewRepository) Insert(ctx context.Context, req *domain.ValueChangeRequest) (int, error) {
	query := `
		INSERT INTO value_change_requests (
			item_id, requested_by, current_value, requested_value, reason
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING request_id, status, created_at
	`

	err := r.db.QueryRow(ctx, query,
		req.ItemID, req.RequestedBy, req.CurrentValue, req.RequestedValue, req.Reason,
	).Scan(&req.ID, &req.Status, &req.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertRequest, err)
	}

	return req.ID, nil
}

// GetByID finds a request with its item joined in
func (r *ReviewRepository) GetByID(ctx context.Context, id int) (*domain.ValueChangeRequest, error) {
	query := "SELECT" + requestColumns + "," + itemColumns + `
		FROM value_change_requests r
		JOIN items i ON r.item_id = i.item_id
		JOIN categories c ON i.category_id = c.category_id
		WHERE r.request_id = $1
	`

	req, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRequest, err)
	}

	return req, nil
}

// ListByRequester returns a user's own requests, newest first
func (r *ReviewRepository) ListByRequester(ctx context.Context, userID string) ([]domain.ValueChangeRequest, error) {
	query := "SELECT" + requestColumns + "," + itemColumns + `
		FROM value_change_requests r
		JOIN items i ON r.item_id = i.item_id
		JOIN categories c ON i.category_id = c.category_id
		WHERE r.requested_by = $1
		ORDER BY r.created_at DESC, r.request_id DESC
	`

	return r.listRequests(ctx, query, userID)
}

// ListAll returns requests across all users, optionally filtered by
// status, newest first.
func (r *ReviewRepository) ListAll(ctx context.Context, status domain.RequestStatus) ([]domain.ValueChangeRequest, error) {
	var query strings.Builder
	query.WriteString("SELECT" + requestColumns + "," + itemColumns + `
		FROM value_change_requests r
		JOIN items i ON r.item_id = i.item_id
		JOIN categories c ON i.category_id = c.category_id`)

	args := []interface{}{}
	if status != "" {
		query.WriteString(" WHERE r.status = $1")
		args = append(args, status)
	}
	query.WriteString(" ORDER BY r.created_at DESC, r.request_id DESC")

	return r.listRequests(ctx, query.String(), args...)
}

func (r *ReviewRepository) listRequests(ctx context.Context, query string, args ...interface{}) ([]domain.ValueChangeRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRequests, err)
	}
	defer rows.Close()

	var requests []domain.ValueChangeRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRequests, err)
		}
		requests = append(requests, *req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRequests, err)
	}

	return requests, nil
}

// Approve moves a pending request to approved and writes the requested
// value onto the item, both in one transaction. The status precondition
// sits in the UPDATE itself, so of two concurrent reviews exactly one
// sees a row and the other reports domain.ErrRequestNotPending.
func (r *ReviewRepository) Approve(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	return r.review(ctx, id, domain.StatusApproved, reviewerID, notes)
}

// Reject moves a pending request to rejected. The item value is left
// untouched.
func (r *ReviewRepository) Reject(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	return r.review(ctx, id, domain.StatusRejected, reviewerID, notes)
}

func (r *ReviewRepository) review(ctx context.Context, id int, status domain.RequestStatus, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE value_change_requests
		SET status = $1, reviewed_by = $2, review_notes = $3, reviewed_at = NOW()
		WHERE request_id = $4 AND status = 'pending'
		RETURNING request_id, item_id, requested_by, current_value,
			requested_value, reason, status, reviewed_by, review_notes,
			created_at, reviewed_at
	`

	var req domain.ValueChangeRequest
	err = tx.QueryRow(ctx, query, status, reviewerID, notes, id).Scan(
		&req.ID, &req.ItemID, &req.RequestedBy, &req.CurrentValue,
		&req.RequestedValue, &req.Reason, &req.Status, &req.ReviewedBy,
		&req.ReviewNotes, &req.CreatedAt, &req.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missingOrSettled(ctx, id)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateRequest, err)
	}

	if status == domain.StatusApproved {
		if err := syncItemValue(ctx, tx, req.ItemID, req.RequestedValue); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}

	return &req, nil
}

// missingOrSettled distinguishes an unknown request from one already
// reviewed, after the conditional update matched nothing.
func (r *ReviewRepository) missingOrSettled(ctx context.Context, id int) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM value_change_requests WHERE request_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGetRequest, err)
	}
	if !exists {
		return domain.ErrRequestNotFound
	}
	return domain.ErrRequestNotPending
}

// SetStatus backs the administrative direct edit: the status field is
// rewritten regardless of its current value, reviewer and timestamp are
// stamped only when the status actually changes and are never
// overwritten once set, and a move to approved syncs the item value in
// the same transaction.
func (r *ReviewRepository) SetStatus(ctx context.Context, id int, status domain.RequestStatus, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer tx.Rollback(ctx)

	// status on the right-hand side reads the pre-update value, so the
	// CASE detects whether this edit is a real transition.
	query := `
		UPDATE value_change_requests
		SET status = $1,
			reviewed_by = CASE WHEN status <> $1 THEN COALESCE(reviewed_by, $2) ELSE reviewed_by END,
			review_notes = CASE WHEN $3 <> '' THEN $3 ELSE review_notes END,
			reviewed_at = CASE WHEN status <> $1 THEN COALESCE(reviewed_at, NOW()) ELSE reviewed_at END
		WHERE request_id = $4
		RETURNING request_id, item_id, requested_by, current_value,
			requested_value, reason, status, reviewed_by, review_notes,
			created_at, reviewed_at
	`

	var req domain.ValueChangeRequest
	err = tx.QueryRow(ctx, query, status, reviewerID, notes, id).Scan(
		&req.ID, &req.ItemID, &req.RequestedBy, &req.CurrentValue,
		&req.RequestedValue, &req.Reason, &req.Status, &req.ReviewedBy,
		&req.ReviewNotes, &req.CreatedAt, &req.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateRequest, err)
	}

	if status == domain.StatusApproved {
		if err := syncItemValue(ctx, tx, req.ItemID, req.RequestedValue); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}

	return &req, nil
}

func syncItemValue(ctx context.Context, tx pgx.Tx, itemID, value int) error {
	query := `
		UPDATE items
		SET item_value = $1, updated_at = NOW()
		WHERE item_id = $2
	`
	if _, err := tx.Exec(ctx, query, value, itemID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSyncItemValue, err)
	}
	return nil
}

// scanRequest scans a request row with its joined item and category
func scanRequest(row pgx.Row) (*domain.ValueChangeRequest, error) {
	var req domain.ValueChangeRequest
	var item domain.Item
	var category domain.Category

	err := row.Scan(
		&req.ID, &req.ItemID, &req.RequestedBy, &req.CurrentValue,
		&req.RequestedValue, &req.Reason, &req.Status, &req.ReviewedBy,
		&req.ReviewNotes, &req.CreatedAt, &req.ReviewedAt,
		&item.ID, &item.Name, &item.Slug, &item.CategoryID, &item.ItemType,
		&item.Rarity, &item.Value, &item.Demand, &item.Trend, &item.IsLimited,
		&item.Featured, &item.ObtainedFrom, &item.ImageURL, &item.Notes,
		&item.CreatedAt, &item.UpdatedAt,
		&category.ID, &category.Name, &category.Slug, &category.Description, &category.Color,
	)
	if err != nil {
		return nil, err
	}

	item.Category = &category
	req.Item = &item
	return &req, nil
}
