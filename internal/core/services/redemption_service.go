package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
	portssvc "github.com/familypoints/familypoints_app/internal/core/ports/services"
	"github.com/familypoints/familypoints_app/internal/middleware"
)

// redemptionService is the child-initiated spend path. The funds check and
// the append run as one atomic unit inside the repository, under the
// per-child lock, so two concurrent redemptions cannot both observe a
// sufficient balance.
type redemptionService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	rewardRepo portsrepo.RewardReader
	authz      *authorizer
}

// NewRedemptionService creates a new RedemptionService.
func NewRedemptionService(ledgerRepo portsrepo.LedgerRepositoryFacade, rewardRepo portsrepo.RewardReader, userRepo portsrepo.UserReader, guardianRepo portsrepo.GuardianReader) portssvc.RedemptionSvcFacade {
	return &redemptionService{
		ledgerRepo: ledgerRepo,
		rewardRepo: rewardRepo,
		authz:      newAuthorizer(userRepo, guardianRepo),
	}
}

var _ portssvc.RedemptionSvcFacade = (*redemptionService)(nil)

// SelfRedeem redeems a visible reward for the calling child. The appended
// entry carries no acting parent.
func (s *redemptionService) SelfRedeem(ctx context.Context, callerUserID string, rewardID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	child, err := s.authz.requireChild(ctx, callerUserID)
	if err != nil {
		logger.Warn("Authorization failed for SelfRedeem", slog.String("error", err.Error()))
		return nil, err
	}

	reward, err := s.rewardRepo.FindRewardByID(ctx, rewardID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find reward for redemption", slog.String("error", err.Error()), slog.String("reward_id", rewardID))
		}
		return nil, err
	}

	visible, err := s.authz.rewardVisibleTo(ctx, child, reward)
	if err != nil {
		return nil, err
	}
	if !visible {
		// Invisible rewards read as absent
		return nil, apperrors.ErrNotFound
	}

	entry := domain.NewRedemptionEntry(uuid.NewString(), child.UserID, nil, *reward, time.Now().UTC())

	if err := s.ledgerRepo.SaveRedemption(ctx, entry, reward.Cost); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Info("Redemption declined for insufficient funds", slog.String("reward_id", rewardID), slog.Int64("cost", reward.Cost))
			return nil, err
		}
		logger.Error("Failed to save redemption", slog.String("error", err.Error()), slog.String("reward_id", rewardID))
		return nil, fmt.Errorf("failed to save redemption: %w", err)
	}

	logger.Info("Reward redeemed", slog.String("entry_id", entry.EntryID), slog.String("reward_id", rewardID), slog.Int64("points", entry.Points))
	return &entry, nil
}
