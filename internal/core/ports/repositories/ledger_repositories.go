package repositories

import (
	"context"

	"github.com/familypoints/familypoints_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations over the append-only ledger.
type LedgerReader interface {
	// ListEntriesByChild retrieves a child's ledger entries, newest first,
	// ties broken by insertion order.
	ListEntriesByChild(ctx context.Context, childID string, limit int, offset int) ([]domain.LedgerEntry, error)

	// ListEntriesByChildren retrieves entries for several children at once,
	// newest first across the whole set.
	ListEntriesByChildren(ctx context.Context, childIDs []string, limit int, offset int) ([]domain.LedgerEntry, error)

	// SumPointsByChild derives the child's current balance as the sum of all
	// entry points. Returns 0 for a child with no entries.
	SumPointsByChild(ctx context.Context, childID string) (int64, error)
}

// LedgerWriter defines write operations over the ledger. Entries are
// append-only: there is no update or delete.
type LedgerWriter interface {
	// SaveEntry appends a single entry unconditionally. Used for parent
	// grants and deductions, which carry no funds check.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// SaveRedemption appends a redemption entry only if the child's balance,
	// re-derived under a per-child lock, covers cost. Returns
	// apperrors.ErrInsufficientFunds otherwise.
	SaveRedemption(ctx context.Context, entry domain.LedgerEntry, cost int64) error
}

// LedgerTransactionSupport defines operations usable inside an open database
// transaction, for callers that combine the funds-checked append with writes
// of their own (the request approval path).
type LedgerTransactionSupport interface {
	// LockChildBalance locks the child's user row for update and returns the
	// balance derived under that lock. The lock is the per-child
	// serialization boundary for every funds-checked append.
	LockChildBalance(ctx context.Context, tx pgx.Tx, childID string) (int64, error)

	// InsertEntryInTx appends a ledger entry within the given transaction.
	InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerTransactionSupport
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
