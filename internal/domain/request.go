package domain

import "time"

// RequestStatus is the review state of a value-change request.
// pending is initial; approved and rejected are terminal.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// ValidStatuses maps every accepted request status
var ValidStatuses = map[RequestStatus]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// ValueChangeRequest proposes a new trade value for an item.
// CurrentValue snapshots the item's value at submission time and is
// never rewritten. ReviewedBy and ReviewedAt are set together, once.
type ValueChangeRequest struct {
	ID             int           `json:"id"`
	ItemID         int           `json:"item_id"`
	Item           *Item         `json:"item,omitempty"`
	RequestedBy    string        `json:"requested_by"`
	CurrentValue   int           `json:"current_value"`
	RequestedValue int           `json:"requested_value"`
	Reason         string        `json:"reason"`
	Status         RequestStatus `json:"status"`
	ReviewedBy     *string       `json:"reviewed_by,omitempty"`
	ReviewNotes    string        `json:"review_notes"`
	CreatedAt      time.Time     `json:"created_at"`
	ReviewedAt     *time.Time    `json:"reviewed_at,omitempty"`
}

// VerificationToken activates an account exactly once
type VerificationToken struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}
