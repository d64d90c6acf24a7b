package dto

import (
	"time"

	"github.com/familypoints/familypoints_app/internal/core/domain"
)

// CreateAdjustmentRequest defines a parent-initiated grant or deduction.
// Points may be supplied with either sign; the ledger normalizes the sign
// from the kind on write.
type CreateAdjustmentRequest struct {
	Points      int64            `json:"points" binding:"required"`
	Kind        domain.EntryKind `json:"kind" binding:"required,entrykind"`
	Description string           `json:"description"`
}

// ListTransactionsParams defines query parameters for listing ledger entries.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	EntryID     string           `json:"entryID"`
	ChildID     string           `json:"childID"`
	ParentID    *string          `json:"parentID,omitempty"`
	Points      int64            `json:"points"`
	Kind        domain.EntryKind `json:"kind"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// BalanceResponse carries a child's derived balance.
type BalanceResponse struct {
	ChildID string `json:"childID"`
	Balance int64  `json:"balance"`
}

// ToTransactionResponse converts a domain.LedgerEntry to TransactionResponse DTO.
func ToTransactionResponse(entry *domain.LedgerEntry) TransactionResponse {
	return TransactionResponse{
		EntryID:     entry.EntryID,
		ChildID:     entry.ChildID,
		ParentID:    entry.ParentID,
		Points:      entry.Points,
		Kind:        entry.Kind,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.LedgerEntry to DTOs.
func ToTransactionResponses(entries []domain.LedgerEntry) []TransactionResponse {
	responses := make([]TransactionResponse, len(entries))
	for i := range entries {
		responses[i] = ToTransactionResponse(&entries[i])
	}
	return responses
}
