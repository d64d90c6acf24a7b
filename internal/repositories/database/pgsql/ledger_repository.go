package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository persists the append-only ledger. Entries are inserted,
// never updated or deleted.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, child_id, parent_id, points, kind, description, created_at`

const insertEntryQuery = `
    INSERT INTO ledger_entries (` + entryColumns + `)
    VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// SaveEntry appends a single entry outside any caller transaction. Used for
// grants and deductions, which carry no funds check.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	_, err := r.Pool.Exec(ctx, insertEntryQuery,
		entry.EntryID,
		entry.ChildID,
		entry.ParentID,
		entry.Points,
		entry.Kind,
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// InsertEntryInTx appends a ledger entry within the given transaction.
func (r *PgxLedgerRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	_, err := tx.Exec(ctx, insertEntryQuery,
		entry.EntryID,
		entry.ChildID,
		entry.ParentID,
		entry.Points,
		entry.Kind,
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// LockChildBalance locks the child's user row and derives the balance under
// that lock. Every funds-checked append for one child serializes on this row
// lock; appends for different children lock different rows and proceed in
// parallel.
func (r *PgxLedgerRepository) LockChildBalance(ctx context.Context, tx pgx.Tx, childID string) (int64, error) {
	var lockedID string
	err := tx.QueryRow(ctx, `SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE;`, childID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock child row %s: %w", childID, err)
	}

	var balance int64
	err = tx.QueryRow(ctx, `SELECT COALESCE(SUM(points), 0) FROM ledger_entries WHERE child_id = $1;`, childID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to derive balance for child %s: %w", childID, err)
	}
	return balance, nil
}

// SaveRedemption appends a redemption entry only if the balance, re-derived
// under the per-child lock, covers the cost. The lock closes the
// check-then-act window between concurrent redemptions.
func (r *PgxLedgerRepository) SaveRedemption(ctx context.Context, entry domain.LedgerEntry, cost int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction committed

	balance, err := r.LockChildBalance(ctx, tx, entry.ChildID)
	if err != nil {
		return err
	}
	if balance < cost {
		return fmt.Errorf("balance %d below cost %d: %w", balance, cost, apperrors.ErrInsufficientFunds)
	}

	if err := r.InsertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SumPointsByChild derives the child's balance. 0 for a child with no entries.
func (r *PgxLedgerRepository) SumPointsByChild(ctx context.Context, childID string) (int64, error) {
	var balance int64
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(points), 0) FROM ledger_entries WHERE child_id = $1;`, childID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to sum points for child %s: %w", childID, err)
	}
	return balance, nil
}

// ListEntriesByChild retrieves a child's entries, newest first; ties in
// created_at break by the insertion sequence.
func (r *PgxLedgerRepository) ListEntriesByChild(ctx context.Context, childID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	query := `
        SELECT ` + entryColumns + `
        FROM ledger_entries
        WHERE child_id = $1
        ORDER BY created_at DESC, seq DESC
        LIMIT $2 OFFSET $3;
    `
	return r.queryEntries(ctx, query, childID, limit, offset)
}

// ListEntriesByChildren retrieves entries for several children, newest first.
func (r *PgxLedgerRepository) ListEntriesByChildren(ctx context.Context, childIDs []string, limit int, offset int) ([]domain.LedgerEntry, error) {
	if len(childIDs) == 0 {
		return []domain.LedgerEntry{}, nil
	}
	query := `
        SELECT ` + entryColumns + `
        FROM ledger_entries
        WHERE child_id = ANY($1)
        ORDER BY created_at DESC, seq DESC
        LIMIT $2 OFFSET $3;
    `
	return r.queryEntries(ctx, query, childIDs, limit, offset)
}

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.ChildID,
			&entry.ParentID,
			&entry.Points,
			&entry.Kind,
			&entry.Description,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}

	return entries, nil
}
