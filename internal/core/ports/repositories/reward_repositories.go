package repositories

import (
	"context"

	"github.com/familypoints/familypoints_app/internal/core/domain"
)

// RewardReader defines read operations for reward catalog data.
type RewardReader interface {
	// FindRewardByID retrieves a specific reward by its unique identifier.
	FindRewardByID(ctx context.Context, rewardID string) (*domain.Reward, error)

	// ListRewardsByParents retrieves all rewards issued by any of the given parents.
	ListRewardsByParents(ctx context.Context, parentIDs []string) ([]domain.Reward, error)
}

// RewardWriter defines write operations for reward catalog data.
type RewardWriter interface {
	// SaveReward persists a new reward.
	SaveReward(ctx context.Context, reward domain.Reward) error

	// UpdateReward updates an existing reward's details.
	UpdateReward(ctx context.Context, reward domain.Reward) error
}

// RewardRepositoryFacade combines all reward repository interfaces.
type RewardRepositoryFacade interface {
	RewardReader
	RewardWriter
}
