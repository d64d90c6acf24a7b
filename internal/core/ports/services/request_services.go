package services

import (
	"context"

	"github.com/familypoints/familypoints_app/internal/core/domain"
	"github.com/familypoints/familypoints_app/internal/dto"
)

// RequestSvcFacade manages the redemption request state machine: pending on
// creation, approved as the terminal state, nothing else.
type RequestSvcFacade interface {
	// Submit creates a pending request by the calling child for a reward
	// issued by one of its guarding parents. No funds check happens here;
	// funds are only checked at approval time.
	Submit(ctx context.Context, callerUserID string, req dto.CreateRedemptionRequest) (*domain.RedemptionRequest, error)

	// Approve transitions a pending request to approved: re-derives the
	// child's balance, appends the redemption entry attributing the
	// approving parent, and records the approval, atomically.
	Approve(ctx context.Context, callerUserID string, requestID string) (*domain.LedgerEntry, error)

	// ListRequests retrieves the requests visible to the requesting
	// principal: a child's own, or those of a parent's guarded children.
	ListRequests(ctx context.Context, requestingUserID string) (*dto.ListRequestsResponse, error)
}
