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

// requestHandler handles HTTP requests for the redemption request workflow.
type requestHandler struct {
	requestService portssvc.RequestSvcFacade
}

// newRequestHandler creates a new requestHandler.
func newRequestHandler(rs portssvc.RequestSvcFacade) *requestHandler {
	return &requestHandler{
		requestService: rs,
	}
}

// registerRequestRoutes registers all redemption request routes.
func registerRequestRoutes(rg *gin.RouterGroup, requestService portssvc.RequestSvcFacade) {
	h := newRequestHandler(requestService)

	requests := rg.Group("/requests")
	{
		requests.POST("", h.submitRequest)
		requests.GET("", h.listRequests)
		requests.POST("/:requestID/approve", h.approveRequest)
	}
}

// submitRequest creates a pending redemption request for the calling child.
func (h *requestHandler) submitRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.requestService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only children can request rewards"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to submit request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		}
		return
	}

	logger.Info("Redemption request submitted", slog.String("request_id", request.RequestID), slog.String("reward_id", request.RewardID))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(request))
}

// listRequests lists the redemption requests visible to the caller.
func (h *requestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.requestService.ListRequests(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		logger.Error("Failed to list requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// approveRequest approves a pending request, spending the child's points.
func (h *requestHandler) approveRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.requestService.Approve(c.Request.Context(), userID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyApproved):
			c.JSON(http.StatusConflict, gin.H{"error": "Request already approved"})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Child has insufficient points"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a guardian of the requesting child"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to approve request", slog.String("error", err.Error()), slog.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve request"})
		}
		return
	}

	logger.Info("Redemption request approved", slog.String("request_id", requestID), slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(entry))
}
