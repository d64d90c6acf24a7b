package repositories

import (
	"context"
	"time"

	"github.com/familypoints/familypoints_app/internal/core/domain"
)

// RequestReader defines read operations for redemption request data.
type RequestReader interface {
	// FindRequestByID retrieves a specific request by its unique identifier.
	FindRequestByID(ctx context.Context, requestID string) (*domain.RedemptionRequest, error)

	// ListRequestsByChild retrieves a child's requests, newest first.
	ListRequestsByChild(ctx context.Context, childID string) ([]domain.RedemptionRequest, error)

	// ListRequestsByChildren retrieves requests for several children, newest first.
	ListRequestsByChildren(ctx context.Context, childIDs []string) ([]domain.RedemptionRequest, error)
}

// RequestWriter defines write operations for redemption request data. The
// pending-to-approved transition is one-way; ApproveRequest is the only
// mutation after creation.
type RequestWriter interface {
	// SaveRequest persists a new pending request.
	SaveRequest(ctx context.Context, request domain.RedemptionRequest) error

	// ApproveRequest atomically flips a pending request to approved and
	// appends the redemption entry, funds-checked under the per-child lock.
	// Returns apperrors.ErrAlreadyApproved if the request is not pending and
	// apperrors.ErrInsufficientFunds if the re-derived balance is below cost.
	ApproveRequest(ctx context.Context, requestID string, approvedBy string, approvedAt time.Time, entry domain.LedgerEntry, cost int64) error
}

// RequestRepositoryFacade combines all request repository interfaces.
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
}
