package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/logger"
	"github.com/lunarbyte/tradevalues/internal/repository"
)

// Service defines the interface for the value-change review workflow
type Service interface {
	// Submit files a new pending request for the item named by slug,
	// snapshotting the item's value at submission time.
	Submit(ctx context.Context, userID, itemSlug string, requestedValue int, reason string) (*domain.ValueChangeRequest, error)

	ListMine(ctx context.Context, userID string) ([]domain.ValueChangeRequest, error)
	ListAll(ctx context.Context, status domain.RequestStatus) ([]domain.ValueChangeRequest, error)
	GetRequest(ctx context.Context, id int) (*domain.ValueChangeRequest, error)

	// Approve settles a pending request and writes the requested value
	// onto the item. A request that is no longer pending reports
	// domain.ErrRequestNotPending.
	Approve(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error)
	Reject(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error)

	// SetStatus is the administrative direct edit. Unlike Approve and
	// Reject it does not require the request to be pending.
	SetStatus(ctx context.Context, id int, status domain.RequestStatus, reviewerID, notes string) (*domain.ValueChangeRequest, error)
}

type service struct {
	repo    repository.Review
	catalog repository.Catalog
}

// NewService creates a new review service
func NewService(repo repository.Review, catalog repository.Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) Submit(ctx context.Context, userID, itemSlug string, requestedValue int, reason string) (*domain.ValueChangeRequest, error) {
	log := logger.FromContext(ctx)

	if requestedValue <= 0 {
		return nil, fmt.Errorf("%w: requested value must be positive", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a reason is required", domain.ErrInvalidInput)
	}

	item, err := s.catalog.GetItemBySlug(ctx, itemSlug)
	if err != nil {
		return nil, err
	}

	req := &domain.ValueChangeRequest{
		ItemID:         item.ID,
		RequestedBy:    userID,
		CurrentValue:   item.Value,
		RequestedValue: requestedValue,
		Reason:         reason,
	}

	id, err := s.repo.Insert(ctx, req)
	if err != nil {
		return nil, err
	}
	req.Item = item

	log.Info("Value change request submitted",
		"request_id", id, "item_id", item.ID, "user_id", userID,
		"current_value", item.Value, "requested_value", requestedValue)
	return req, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]domain.ValueChangeRequest, error) {
	return s.repo.ListByRequester(ctx, userID)
}

func (s *service) ListAll(ctx context.Context, status domain.RequestStatus) ([]domain.ValueChangeRequest, error) {
	if status != "" && !domain.ValidStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.repo.ListAll(ctx, status)
}

func (s *service) GetRequest(ctx context.Context, id int) (*domain.ValueChangeRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Approve(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	log := logger.FromContext(ctx)

	req, err := s.repo.Approve(ctx, id, reviewerID, notes)
	if err != nil {
		return nil, err
	}

	log.Info("Value change request approved",
		"request_id", id, "item_id", req.ItemID, "reviewer_id", reviewerID,
		"new_value", req.RequestedValue)
	return req, nil
}

func (s *service) Reject(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	log := logger.FromContext(ctx)

	req, err := s.repo.Reject(ctx, id, reviewerID, notes)
	if err != nil {
		return nil, err
	}

	log.Info("Value change request rejected",
		"request_id", id, "item_id", req.ItemID, "reviewer_id", reviewerID)
	return req, nil
}

func (s *service) SetStatus(ctx context.Context, id int, status domain.RequestStatus, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	log := logger.FromContext(ctx)

	if !domain.ValidStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	req, err := s.repo.SetStatus(ctx, id, status, reviewerID, notes)
	if err != nil {
		return nil, err
	}

	log.Info("Value change request edited",
		"request_id", id, "status", status, "reviewer_id", reviewerID)
	return req, nil
}
