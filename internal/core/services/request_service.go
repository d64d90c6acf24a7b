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

// requestService manages the redemption request state machine. A request is
// PENDING from creation until a parent approves it; there is no reject or
// cancel, so an unwanted request simply stays pending.
type requestService struct {
	requestRepo portsrepo.RequestRepositoryFacade
	rewardRepo  portsrepo.RewardReader
	authz       *authorizer
	notifier    portssvc.Notifier
}

// NewRequestService creates a new RequestService.
func NewRequestService(requestRepo portsrepo.RequestRepositoryFacade, rewardRepo portsrepo.RewardReader, userRepo portsrepo.UserReader, guardianRepo portsrepo.GuardianReader, notifier portssvc.Notifier) portssvc.RequestSvcFacade {
	return &requestService{
		requestRepo: requestRepo,
		rewardRepo:  rewardRepo,
		authz:       newAuthorizer(userRepo, guardianRepo),
		notifier:    notifier,
	}
}

var _ portssvc.RequestSvcFacade = (*requestService)(nil)

// Submit creates a pending request. Funds are deliberately not checked here;
// the balance may change before a parent approves, so the check happens at
// approval time only.
func (s *requestService) Submit(ctx context.Context, callerUserID string, req dto.CreateRedemptionRequest) (*domain.RedemptionRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	child, err := s.authz.requireChild(ctx, callerUserID)
	if err != nil {
		logger.Warn("Authorization failed for Submit", slog.String("error", err.Error()))
		return nil, err
	}

	reward, err := s.rewardRepo.FindRewardByID(ctx, req.RewardID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find reward for request", slog.String("error", err.Error()), slog.String("reward_id", req.RewardID))
		}
		return nil, err
	}

	visible, err := s.authz.rewardVisibleTo(ctx, child, reward)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.ErrForbidden
	}

	request := domain.RedemptionRequest{
		RequestID:   uuid.NewString(),
		ChildID:     child.UserID,
		RewardID:    reward.RewardID,
		Status:      domain.RequestPending,
		RequestedAt: time.Now().UTC(),
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		logger.Error("Failed to save request", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	logger.Info("Redemption request submitted", slog.String("request_id", request.RequestID), slog.String("reward_id", reward.RewardID))

	// Fire-and-forget reminder; a notification failure must never affect the
	// request itself.
	childUser := *child
	description := fmt.Sprintf("Your request for %s is waiting for a parent's approval", reward.Name)
	notifyCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.notifier.NotifyChildOfPendingTask(notifyCtx, childUser, description); err != nil {
			logger.Warn("Failed to send pending-task reminder", slog.String("error", err.Error()), slog.String("child_id", childUser.UserID))
		}
	}()

	return &request, nil
}

// Approve transitions a pending request to approved and appends the
// redemption entry. The funds re-check, the state flip, and the append all
// happen in one repository transaction under the per-child lock; the service
// only pre-validates so callers get precise errors without opening a
// transaction.
func (s *requestService) Approve(ctx context.Context, callerUserID string, requestID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find request for approval", slog.String("error", err.Error()), slog.String("request_id", requestID))
		}
		return nil, err
	}

	parent, err := s.authz.requireParentOf(ctx, callerUserID, request.ChildID)
	if err != nil {
		logger.Warn("Authorization failed for Approve", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, err
	}

	if request.IsApproved() {
		return nil, apperrors.ErrAlreadyApproved
	}

	reward, err := s.rewardRepo.FindRewardByID(ctx, request.RewardID)
	if err != nil {
		logger.Error("Failed to find reward for approval", slog.String("error", err.Error()), slog.String("reward_id", request.RewardID))
		return nil, fmt.Errorf("failed to resolve requested reward: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.NewRedemptionEntry(uuid.NewString(), request.ChildID, &parent.UserID, *reward, now)

	if err := s.requestRepo.ApproveRequest(ctx, requestID, parent.UserID, now, entry, reward.Cost); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			logger.Info("Approval declined for insufficient funds", slog.String("request_id", requestID), slog.Int64("cost", reward.Cost))
		case errors.Is(err, apperrors.ErrAlreadyApproved):
			logger.Warn("Approval raced with a prior approval", slog.String("request_id", requestID))
		default:
			logger.Error("Failed to approve request", slog.String("error", err.Error()), slog.String("request_id", requestID))
			return nil, fmt.Errorf("failed to approve request: %w", err)
		}
		return nil, err
	}

	logger.Info("Redemption request approved", slog.String("request_id", requestID), slog.String("entry_id", entry.EntryID))
	return &entry, nil
}

// ListRequests retrieves the requests visible to the principal: a child's
// own, or all requests of a parent's guarded children.
func (s *requestService) ListRequests(ctx context.Context, requestingUserID string) (*dto.ListRequestsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.authz.requireUser(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	var requests []domain.RedemptionRequest
	if user.IsChild() {
		requests, err = s.requestRepo.ListRequestsByChild(ctx, user.UserID)
	} else {
		var childIDs []string
		childIDs, err = s.authz.guardianRepo.ListChildIDsByParent(ctx, user.UserID)
		if err == nil {
			requests, err = s.requestRepo.ListRequestsByChildren(ctx, childIDs)
		}
	}
	if err != nil {
		logger.Error("Failed to list requests", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve requests: %w", err)
	}

	return dto.ToListRequestsResponse(requests), nil
}
