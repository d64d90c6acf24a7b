package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRequestRepository persists redemption requests and owns the
// pending-to-approved transition. The approval write shares a transaction
// with the funds-checked ledger append, via the injected ledger repository,
// so a crash between the two aborts both.
type PgxRequestRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

func newPgxRequestRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerRepositoryFacade) portsrepo.RequestRepositoryFacade {
	return &PgxRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

const requestColumns = `request_id, child_id, reward_id, status, requested_at, approved_at, approved_by`

func (r *PgxRequestRepository) SaveRequest(ctx context.Context, request domain.RedemptionRequest) error {
	query := `
        INSERT INTO reward_requests (` + requestColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query,
		request.RequestID,
		request.ChildID,
		request.RewardID,
		request.Status,
		request.RequestedAt,
		request.ApprovedAt,
		request.ApprovedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save request %s: %w", request.RequestID, err)
	}
	return nil
}

// ApproveRequest runs the whole approval as one transaction: lock the child
// row, re-derive the balance, conditionally flip the request out of PENDING,
// and append the redemption entry. The conditional UPDATE is the idempotency
// guard: a request already approved flips zero rows and the transaction
// aborts without touching the ledger.
func (r *PgxRequestRepository) ApproveRequest(ctx context.Context, requestID string, approvedBy string, approvedAt time.Time, entry domain.LedgerEntry, cost int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction committed

	balance, err := r.ledgerRepo.LockChildBalance(ctx, tx, entry.ChildID)
	if err != nil {
		return err
	}
	if balance < cost {
		return fmt.Errorf("balance %d below cost %d: %w", balance, cost, apperrors.ErrInsufficientFunds)
	}

	flip := `
        UPDATE reward_requests
        SET status = $2, approved_at = $3, approved_by = $4
        WHERE request_id = $1 AND status = $5;
    `
	ct, err := tx.Exec(ctx, flip, requestID, domain.RequestApproved, approvedAt, approvedBy, domain.RequestPending)
	if err != nil {
		return fmt.Errorf("failed to approve request %s: %w", requestID, err)
	}
	if ct.RowsAffected() == 0 {
		// Either the request never existed or it already left PENDING.
		var status domain.RequestStatus
		err := tx.QueryRow(ctx, `SELECT status FROM reward_requests WHERE request_id = $1;`, requestID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to inspect request %s: %w", requestID, err)
		}
		return apperrors.ErrAlreadyApproved
	}

	if err := r.ledgerRepo.InsertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.RedemptionRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM reward_requests WHERE request_id = $1;`
	var request domain.RedemptionRequest
	err := r.Pool.QueryRow(ctx, query, requestID).Scan(
		&request.RequestID,
		&request.ChildID,
		&request.RewardID,
		&request.Status,
		&request.RequestedAt,
		&request.ApprovedAt,
		&request.ApprovedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find request by ID %s: %w", requestID, err)
	}
	return &request, nil
}

func (r *PgxRequestRepository) ListRequestsByChild(ctx context.Context, childID string) ([]domain.RedemptionRequest, error) {
	query := `
        SELECT ` + requestColumns + `
        FROM reward_requests
        WHERE child_id = $1
        ORDER BY requested_at DESC;
    `
	return r.queryRequests(ctx, query, childID)
}

func (r *PgxRequestRepository) ListRequestsByChildren(ctx context.Context, childIDs []string) ([]domain.RedemptionRequest, error) {
	if len(childIDs) == 0 {
		return []domain.RedemptionRequest{}, nil
	}
	query := `
        SELECT ` + requestColumns + `
        FROM reward_requests
        WHERE child_id = ANY($1)
        ORDER BY requested_at DESC;
    `
	return r.queryRequests(ctx, query, childIDs)
}

func (r *PgxRequestRepository) queryRequests(ctx context.Context, query string, arg any) ([]domain.RedemptionRequest, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.RedemptionRequest{}
	for rows.Next() {
		var request domain.RedemptionRequest
		if err := rows.Scan(
			&request.RequestID,
			&request.ChildID,
			&request.RewardID,
			&request.Status,
			&request.RequestedAt,
			&request.ApprovedAt,
			&request.ApprovedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}

	return requests, nil
}
