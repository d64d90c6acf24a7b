package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
	portssvc "github.com/familypoints/familypoints_app/internal/core/ports/services"
	"github.com/familypoints/familypoints_app/internal/dto"
	"github.com/familypoints/familypoints_app/internal/middleware"
)

// ledgerService provides the parent-initiated ledger operations and all
// ledger reads. Balances are derived from the entries on every call, never
// cached, since they gate spend decisions made elsewhere.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	authz      *authorizer
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, userRepo portsrepo.UserReader, guardianRepo portsrepo.GuardianReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		authz:      newAuthorizer(userRepo, guardianRepo),
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ParentAdjust appends a grant or deduction for a guarded child. Deductions
// carry no funds check and may drive the balance negative; only
// redemption-style spends are funds-gated.
func (s *ledgerService) ParentAdjust(ctx context.Context, parentID string, childID string, req dto.CreateAdjustmentRequest) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsAdjustment() {
		return nil, fmt.Errorf("%w: kind must be GRANT or DEDUCTION", apperrors.ErrValidation)
	}

	if _, err := s.authz.requireParentOf(ctx, parentID, childID); err != nil {
		logger.Warn("Authorization failed for ParentAdjust", slog.String("parent_id", parentID), slog.String("child_id", childID), slog.String("error", err.Error()))
		return nil, err
	}

	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		ChildID:     childID,
		ParentID:    &parentID,
		Points:      req.Kind.NormalizeSign(req.Points),
		Kind:        req.Kind,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save adjustment entry", slog.String("error", err.Error()), slog.String("child_id", childID))
		return nil, fmt.Errorf("failed to save adjustment: %w", err)
	}

	logger.Info("Adjustment recorded", slog.String("entry_id", entry.EntryID), slog.String("kind", string(entry.Kind)), slog.Int64("points", entry.Points))
	return &entry, nil
}

// ListTransactions retrieves a child's entries after a visibility check.
func (s *ledgerService) ListTransactions(ctx context.Context, requestingUserID string, childID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.authz.requireCanViewChild(ctx, requestingUserID, childID); err != nil {
		logger.Warn("Authorization failed for ListTransactions", slog.String("child_id", childID), slog.String("error", err.Error()))
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, err := s.ledgerRepo.ListEntriesByChild(ctx, childID, limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()), slog.String("child_id", childID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(entries)}, nil
}

// ListFamilyTransactions retrieves one combined feed across every child the
// principal may see: a parent's guarded children together, a child alone.
func (s *ledgerService) ListFamilyTransactions(ctx context.Context, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.authz.requireUser(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	var childIDs []string
	if user.IsChild() {
		childIDs = []string{user.UserID}
	} else {
		childIDs, err = s.authz.guardianRepo.ListChildIDsByParent(ctx, user.UserID)
		if err != nil {
			logger.Error("Failed to list guarded children", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to list children: %w", err)
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, err := s.ledgerRepo.ListEntriesByChildren(ctx, childIDs, limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list family ledger entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(entries)}, nil
}

// GetBalance derives the child's balance from the ledger.
func (s *ledgerService) GetBalance(ctx context.Context, requestingUserID string, childID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.authz.requireCanViewChild(ctx, requestingUserID, childID); err != nil {
		logger.Warn("Authorization failed for GetBalance", slog.String("child_id", childID), slog.String("error", err.Error()))
		return 0, err
	}

	balance, err := s.ledgerRepo.SumPointsByChild(ctx, childID)
	if err != nil {
		logger.Error("Failed to derive balance", slog.String("error", err.Error()), slog.String("child_id", childID))
		return 0, fmt.Errorf("failed to derive balance: %w", err)
	}
	return balance, nil
}
