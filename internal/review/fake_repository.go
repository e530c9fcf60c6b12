package review

import (
	"context"
	"sort"
	"time"

	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/repository"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Review for integration-style unit tests. Item value sync
// on approval goes through the supplied catalog repository, mirroring
// the transactional coupling of the real implementation.
type FakeRepository struct {
	catalog  repository.Catalog
	requests map[int]*domain.ValueChangeRequest
	nextID   int
}

func NewFakeRepository(catalog repository.Catalog) *FakeRepository {
	return &FakeRepository{
		catalog:  catalog,
		requests: make(map[int]*domain.ValueChangeRequest),
		nextID:   1,
	}
}

func (f *FakeRepository) Insert(ctx context.Context, req *domain.ValueChangeRequest) (int, error) {
	req.ID = f.nextID
	f.nextID++
	req.Status = domain.StatusPending
	req.CreatedAt = time.Now()
	stored := *req
	f.requests[req.ID] = &stored
	return req.ID, nil
}

func (f *FakeRepository) GetByID(ctx context.Context, id int) (*domain.ValueChangeRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return f.withItem(ctx, req), nil
}

func (f *FakeRepository) ListByRequester(ctx context.Context, userID string) ([]domain.ValueChangeRequest, error) {
	var out []domain.ValueChangeRequest
	for _, req := range f.requests {
		if req.RequestedBy == userID {
			out = append(out, *f.withItem(ctx, req))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *FakeRepository) ListAll(ctx context.Context, status domain.RequestStatus) ([]domain.ValueChangeRequest, error) {
	var out []domain.ValueChangeRequest
	for _, req := range f.requests {
		if status == "" || req.Status == status {
			out = append(out, *f.withItem(ctx, req))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *FakeRepository) Approve(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	return f.review(ctx, id, domain.StatusApproved, reviewerID, notes)
}

func (f *FakeRepository) Reject(ctx context.Context, id int, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	return f.review(ctx, id, domain.StatusRejected, reviewerID, notes)
}

func (f *FakeRepository) review(ctx context.Context, id int, status domain.RequestStatus, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	if req.Status != domain.StatusPending {
		return nil, domain.ErrRequestNotPending
	}

	now := time.Now()
	req.Status = status
	req.ReviewedBy = &reviewerID
	req.ReviewNotes = notes
	req.ReviewedAt = &now

	if status == domain.StatusApproved {
		if err := f.syncItemValue(ctx, req.ItemID, req.RequestedValue); err != nil {
			return nil, err
		}
	}

	copied := *req
	return &copied, nil
}

func (f *FakeRepository) SetStatus(ctx context.Context, id int, status domain.RequestStatus, reviewerID, notes string) (*domain.ValueChangeRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}

	// Reviewer stamps apply only on a real transition and only once
	if req.Status != status {
		if req.ReviewedBy == nil {
			req.ReviewedBy = &reviewerID
		}
		if req.ReviewedAt == nil {
			now := time.Now()
			req.ReviewedAt = &now
		}
	}
	req.Status = status
	if notes != "" {
		req.ReviewNotes = notes
	}

	if status == domain.StatusApproved {
		if err := f.syncItemValue(ctx, req.ItemID, req.RequestedValue); err != nil {
			return nil, err
		}
	}

	copied := *req
	return &copied, nil
}

func (f *FakeRepository) syncItemValue(ctx context.Context, itemID, value int) error {
	item, err := f.catalog.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	item.Value = value
	return f.catalog.UpdateItem(ctx, itemID, item)
}

func (f *FakeRepository) withItem(ctx context.Context, req *domain.ValueChangeRequest) *domain.ValueChangeRequest {
	copied := *req
	if item, err := f.catalog.GetItemByID(ctx, req.ItemID); err == nil {
		copied.Item = item
	}
	return &copied
}
