package dto

import (
	"time"

	"github.com/familypoints/familypoints_app/internal/core/domain"
)

// CreateRedemptionRequest defines the data a child supplies to request a reward.
type CreateRedemptionRequest struct {
	RewardID string `json:"rewardID" binding:"required"`
}

// RequestResponse defines the data returned for a redemption request.
type RequestResponse struct {
	RequestID   string               `json:"requestID"`
	ChildID     string               `json:"childID"`
	RewardID    string               `json:"rewardID"`
	Status      domain.RequestStatus `json:"status"`
	RequestedAt time.Time            `json:"requestedAt"`
	ApprovedAt  *time.Time           `json:"approvedAt,omitempty"`
	ApprovedBy  *string              `json:"approvedBy,omitempty"`
}

// ListRequestsResponse wraps the requests visible to a principal.
type ListRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// ToRequestResponse converts a domain.RedemptionRequest to RequestResponse DTO.
func ToRequestResponse(request *domain.RedemptionRequest) RequestResponse {
	return RequestResponse{
		RequestID:   request.RequestID,
		ChildID:     request.ChildID,
		RewardID:    request.RewardID,
		Status:      request.Status,
		RequestedAt: request.RequestedAt,
		ApprovedAt:  request.ApprovedAt,
		ApprovedBy:  request.ApprovedBy,
	}
}

// ToListRequestsResponse converts a slice of domain.RedemptionRequest to the list DTO.
func ToListRequestsResponse(requests []domain.RedemptionRequest) *ListRequestsResponse {
	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToRequestResponse(&requests[i])
	}
	return &ListRequestsResponse{Requests: responses}
}
