package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	portssvc "github.com/familypoints/familypoints_app/internal/core/ports/services"
	"github.com/familypoints/familypoints_app/internal/dto"
	"github.com/familypoints/familypoints_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// rewardHandler handles HTTP requests for the reward catalog and
// self-redemption.
type rewardHandler struct {
	rewardService     portssvc.RewardSvcFacade
	redemptionService portssvc.RedemptionSvcFacade
}

// newRewardHandler creates a new rewardHandler.
func newRewardHandler(rs portssvc.RewardSvcFacade, ds portssvc.RedemptionSvcFacade) *rewardHandler {
	return &rewardHandler{
		rewardService:     rs,
		redemptionService: ds,
	}
}

// registerRewardRoutes registers all reward-related routes.
func registerRewardRoutes(rg *gin.RouterGroup, rewardService portssvc.RewardSvcFacade, redemptionService portssvc.RedemptionSvcFacade) {
	h := newRewardHandler(rewardService, redemptionService)

	rewards := rg.Group("/rewards")
	{
		rewards.POST("", h.createReward)
		rewards.GET("", h.listRewards)
		rewards.GET("/:rewardID", h.getReward)
		rewards.PUT("/:rewardID", h.updateReward)
		rewards.POST("/:rewardID/redeem", h.redeemReward)
	}
}

// createReward creates a reward issued by the calling parent.
func (h *rewardHandler) createReward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	parentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reward, err := h.rewardService.CreateReward(c.Request.Context(), parentID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only parents can create rewards"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to create reward", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward"})
		}
		return
	}

	logger.Info("Reward created", slog.String("reward_id", reward.RewardID))
	c.JSON(http.StatusCreated, dto.ToRewardResponse(reward))
}

// listRewards lists the rewards visible to the caller.
func (h *rewardHandler) listRewards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.rewardService.ListRewards(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		logger.Error("Failed to list rewards", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rewards"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getReward returns a single reward visible to the caller.
func (h *rewardHandler) getReward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rewardID := c.Param("rewardID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reward, err := h.rewardService.GetReward(c.Request.Context(), userID, rewardID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to get reward", slog.String("error", err.Error()), slog.String("reward_id", rewardID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reward"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRewardResponse(reward))
}

// updateReward updates a reward; only the issuing parent may.
func (h *rewardHandler) updateReward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rewardID := c.Param("rewardID")

	parentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reward, err := h.rewardService.UpdateReward(c.Request.Context(), parentID, rewardID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the issuing parent can update a reward"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to update reward", slog.String("error", err.Error()), slog.String("reward_id", rewardID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRewardResponse(reward))
}

// redeemReward spends the calling child's points on a reward immediately.
func (h *rewardHandler) redeemReward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rewardID := c.Param("rewardID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.redemptionService.SelfRedeem(c.Request.Context(), userID, rewardID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient points to redeem this reward"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only children can redeem rewards"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to redeem reward", slog.String("error", err.Error()), slog.String("reward_id", rewardID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		}
		return
	}

	logger.Info("Reward redeemed", slog.String("entry_id", entry.EntryID), slog.String("reward_id", rewardID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(entry))
}
