package domain

import "time"

// RequestStatus is the lifecycle state of a redemption request.
// PENDING is initial, APPROVED is terminal. There is deliberately no
// rejected or cancelled state: an unwanted request stays pending.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
)

// RedemptionRequest is a child-initiated ask for parent approval to redeem a
// reward. The funds check is deferred to approval time, since the balance may
// change between submission and approval.
type RedemptionRequest struct {
	RequestID   string        `json:"requestID"` // Primary Key (UUID)
	ChildID     string        `json:"childID"`
	RewardID    string        `json:"rewardID"`
	Status      RequestStatus `json:"status"`
	RequestedAt time.Time     `json:"requestedAt"`
	ApprovedAt  *time.Time    `json:"approvedAt,omitempty"`
	ApprovedBy  *string       `json:"approvedBy,omitempty"` // Approving parent UserID
}

// IsApproved reports whether the request has reached its terminal state.
func (r *RedemptionRequest) IsApproved() bool {
	return r.Status == RequestApproved
}
