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
	"github.com/familypoints/familypoints_app/internal/dto"
	"github.com/familypoints/familypoints_app/internal/middleware"
)

// rewardService owns the reward catalog: a read-mostly, parent-scoped list
// of purchasable items consumed by both spend paths.
type rewardService struct {
	rewardRepo portsrepo.RewardRepositoryFacade
	authz      *authorizer
}

// NewRewardService creates a new RewardService.
func NewRewardService(rewardRepo portsrepo.RewardRepositoryFacade, userRepo portsrepo.UserReader, guardianRepo portsrepo.GuardianReader) portssvc.RewardSvcFacade {
	return &rewardService{
		rewardRepo: rewardRepo,
		authz:      newAuthorizer(userRepo, guardianRepo),
	}
}

var _ portssvc.RewardSvcFacade = (*rewardService)(nil)

// CreateReward creates a reward issued by the calling parent.
func (s *rewardService) CreateReward(ctx context.Context, parentID string, req dto.CreateRewardRequest) (*domain.Reward, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.authz.requireParent(ctx, parentID); err != nil {
		logger.Warn("Authorization failed for CreateReward", slog.String("error", err.Error()))
		return nil, err
	}

	if req.Cost < 0 {
		return nil, fmt.Errorf("%w: cost must not be negative", apperrors.ErrValidation)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	reward := domain.Reward{
		RewardID:    uuid.NewString(),
		ParentID:    parentID,
		Name:        req.Name,
		Cost:        req.Cost,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     parentID,
			LastUpdatedAt: now,
			LastUpdatedBy: parentID,
		},
	}

	if err := s.rewardRepo.SaveReward(ctx, reward); err != nil {
		logger.Error("Failed to save reward", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reward: %w", err)
	}

	logger.Info("Reward created", slog.String("reward_id", reward.RewardID), slog.Int64("cost", reward.Cost))
	return &reward, nil
}

// UpdateReward updates a reward. Only the issuing parent may modify it;
// anyone else sees it as absent.
func (s *rewardService) UpdateReward(ctx context.Context, parentID string, rewardID string, req dto.UpdateRewardRequest) (*domain.Reward, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.authz.requireParent(ctx, parentID); err != nil {
		logger.Warn("Authorization failed for UpdateReward", slog.String("error", err.Error()))
		return nil, err
	}

	reward, err := s.rewardRepo.FindRewardByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if reward.ParentID != parentID {
		return nil, apperrors.ErrNotFound
	}

	updated := false
	if req.Name != nil {
		reward.Name = *req.Name
		updated = true
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			return nil, fmt.Errorf("%w: cost must not be negative", apperrors.ErrValidation)
		}
		reward.Cost = *req.Cost
		updated = true
	}
	if req.Description != nil {
		reward.Description = *req.Description
		updated = true
	}
	if !updated {
		return reward, nil
	}

	reward.LastUpdatedAt = time.Now().UTC()
	reward.LastUpdatedBy = parentID

	if err := s.rewardRepo.UpdateReward(ctx, *reward); err != nil {
		logger.Error("Failed to update reward", slog.String("error", err.Error()), slog.String("reward_id", rewardID))
		return nil, fmt.Errorf("failed to update reward: %w", err)
	}

	logger.Info("Reward updated", slog.String("reward_id", rewardID))
	return reward, nil
}

// GetReward retrieves a reward if the principal may see it.
func (s *rewardService) GetReward(ctx context.Context, requestingUserID string, rewardID string) (*domain.Reward, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.authz.requireUser(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	reward, err := s.rewardRepo.FindRewardByID(ctx, rewardID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find reward", slog.String("error", err.Error()), slog.String("reward_id", rewardID))
		}
		return nil, err
	}

	visible, err := s.authz.rewardVisibleTo(ctx, user, reward)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.ErrNotFound
	}
	return reward, nil
}

// ListRewards retrieves the rewards visible to the principal.
func (s *rewardService) ListRewards(ctx context.Context, requestingUserID string) (*dto.ListRewardsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.authz.requireUser(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	var issuerIDs []string
	if user.IsParent() {
		issuerIDs = []string{user.UserID}
	} else {
		issuerIDs, err = s.authz.guardianRepo.ListParentIDsByChild(ctx, user.UserID)
		if err != nil {
			logger.Error("Failed to list guarding parents", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to resolve guarding parents: %w", err)
		}
	}

	rewards, err := s.rewardRepo.ListRewardsByParents(ctx, issuerIDs)
	if err != nil {
		logger.Error("Failed to list rewards", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve rewards: %w", err)
	}

	return dto.ToListRewardsResponse(rewards), nil
}
