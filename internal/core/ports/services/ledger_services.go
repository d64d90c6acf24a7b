package services

import (
	"context"

	"github.com/familypoints/familypoints_app/internal/core/domain"
	"github.com/familypoints/familypoints_app/internal/dto"
)

// LedgerReaderSvc defines read operations over a child's ledger.
type LedgerReaderSvc interface {
	// ListTransactions retrieves a child's ledger entries, newest first,
	// after checking the requesting principal may see them.
	ListTransactions(ctx context.Context, requestingUserID string, childID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListFamilyTransactions retrieves the entries of every child visible to
	// the requesting principal as one combined feed, newest first: all of a
	// parent's guarded children, or a child's own entries.
	ListFamilyTransactions(ctx context.Context, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetBalance derives the child's current balance from the ledger. The
	// balance is never cached; every call re-sums the entries.
	GetBalance(ctx context.Context, requestingUserID string, childID string) (int64, error)
}

// LedgerWriterSvc defines the parent-initiated ledger mutations.
type LedgerWriterSvc interface {
	// ParentAdjust appends a grant or deduction for a guarded child. Grants
	// need no funds check; deductions are unchecked and may drive the
	// balance negative.
	ParentAdjust(ctx context.Context, parentID string, childID string, req dto.CreateAdjustmentRequest) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}

// RedemptionSvcFacade is the funds-gated spend path. Self-redemption and
// request approval are the only operations that decrease a balance subject to
// a funds check.
type RedemptionSvcFacade interface {
	// SelfRedeem redeems a visible reward for the calling child, appending a
	// redemption entry with no attributed parent. Fails with
	// apperrors.ErrInsufficientFunds when the balance does not cover the cost.
	SelfRedeem(ctx context.Context, callerUserID string, rewardID string) (*domain.LedgerEntry, error)
}
