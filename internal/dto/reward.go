package dto

import (
	"time"

	"github.com/familypoints/familypoints_app/internal/core/domain"
)

// CreateRewardRequest defines the data needed to create a reward.
// Cost is in points and must not be negative.
type CreateRewardRequest struct {
	Name        string `json:"name" binding:"required"`
	Cost        int64  `json:"cost" binding:"min=0"`
	Description string `json:"description"`
}

// UpdateRewardRequest defines the data allowed for updating a reward.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateRewardRequest struct {
	Name        *string `json:"name"`
	Cost        *int64  `json:"cost"`
	Description *string `json:"description"`
}

// RewardResponse defines the data returned for a reward.
type RewardResponse struct {
	RewardID    string    `json:"rewardID"`
	ParentID    string    `json:"parentID"`
	Name        string    `json:"name"`
	Cost        int64     `json:"cost"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListRewardsResponse wraps the rewards visible to a principal.
type ListRewardsResponse struct {
	Rewards []RewardResponse `json:"rewards"`
}

// ToRewardResponse converts a domain.Reward to RewardResponse DTO.
func ToRewardResponse(reward *domain.Reward) RewardResponse {
	return RewardResponse{
		RewardID:    reward.RewardID,
		ParentID:    reward.ParentID,
		Name:        reward.Name,
		Cost:        reward.Cost,
		Description: reward.Description,
		CreatedAt:   reward.CreatedAt,
	}
}

// ToListRewardsResponse converts a slice of domain.Reward to the list DTO.
func ToListRewardsResponse(rewards []domain.Reward) *ListRewardsResponse {
	responses := make([]RewardResponse, len(rewards))
	for i := range rewards {
		responses[i] = ToRewardResponse(&rewards[i])
	}
	return &ListRewardsResponse{Rewards: responses}
}
