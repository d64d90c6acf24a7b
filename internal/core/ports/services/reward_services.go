package services

import (
	"context"

	"github.com/familypoints/familypoints_app/internal/core/domain"
	"github.com/familypoints/familypoints_app/internal/dto"
)

// RewardReaderSvc defines read operations for the reward catalog.
type RewardReaderSvc interface {
	// GetReward retrieves a reward visible to the requesting principal.
	// Absent and invisible rewards are both reported as not found.
	GetReward(ctx context.Context, requestingUserID string, rewardID string) (*domain.Reward, error)

	// ListRewards retrieves the rewards visible to the requesting principal:
	// for a parent, the rewards they issued; for a child, rewards issued by
	// any guarding parent.
	ListRewards(ctx context.Context, requestingUserID string) (*dto.ListRewardsResponse, error)
}

// RewardWriterSvc defines write operations for the reward catalog.
type RewardWriterSvc interface {
	// CreateReward creates a reward issued by the given parent.
	CreateReward(ctx context.Context, parentID string, req dto.CreateRewardRequest) (*domain.Reward, error)

	// UpdateReward updates a reward; only the issuing parent may do so.
	UpdateReward(ctx context.Context, parentID string, rewardID string, req dto.UpdateRewardRequest) (*domain.Reward, error)
}

// RewardSvcFacade combines all reward-related service interfaces.
type RewardSvcFacade interface {
	RewardReaderSvc
	RewardWriterSvc
}
