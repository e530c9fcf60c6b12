package repository

import (
	"context"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// Review defines the interface for value-change request persistence.
//
// Approve and Reject must perform the pending-status precondition check
// and the state-changing write as one atomic read-modify-write, so that
// of two concurrent reviews exactly one succeeds; Approve additionally
// commits the item-value sync in the same transaction.
type Review interface {
	Insert(ctx context.Context, req *domain.ValueChangeRequest) (int, error)
	GetByID(ctx context.Context, id int) (*domain.ValueChangeRequest, error)
	ListByRequester(ctx context.Context, userID string) ([]domain.ValueChangeRequest, error)
	ListAll(ctx context.Context, status domain.RequestStatus) ([]domain.ValueChangeRequest, error)

	Approve(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error)
	Reject(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error)

	// SetStatus backs the administrative direct edit: it rewrites the
	// status field, stamping reviewer/time if they were unset, and when
	// the new status is approved it syncs the item value in the same
	// transaction.
	SetStatus(ctx context.Context, id int, status domain.RequestStatus, reviewerID, notes string) (*domain.ValueChangeRequest, error)
}
