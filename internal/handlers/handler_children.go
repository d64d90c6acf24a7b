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

// childHandler handles HTTP requests for child accounts and their ledgers.
type childHandler struct {
	userService   portssvc.UserSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

// newChildHandler creates a new childHandler.
func newChildHandler(us portssvc.UserSvcFacade, ls portssvc.LedgerSvcFacade) *childHandler {
	return &childHandler{
		userService:   us,
		ledgerService: ls,
	}
}

// registerChildRoutes registers all child-related routes.
func registerChildRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newChildHandler(userService, ledgerService)

	children := rg.Group("/children")
	{
		children.POST("", h.createChild)
		children.GET("", h.listChildren)
		children.GET("/:childID/balance", h.getBalance)
		children.GET("/:childID/transactions", h.listTransactions)
		children.POST("/:childID/link", h.linkChild)
		children.POST("/:childID/adjustments", h.createAdjustment)
	}

	// Combined feed across every child the caller may see
	rg.GET("/transactions", h.listFamilyTransactions)
}

// createChild creates a child account linked to the calling parent.
func (h *childHandler) createChild(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	parentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	child, err := h.userService.CreateChild(c.Request.Context(), parentID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only parents can create child accounts"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to create child", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create child"})
		}
		return
	}

	logger.Info("Child account created", slog.String("child_id", child.UserID), slog.String("parent_id", parentID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(child))
}

// listChildren lists the children visible to the caller, with balances.
func (h *childHandler) listChildren(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.userService.ListChildren(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		logger.Error("Failed to list children", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list children"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getBalance returns a child's derived balance.
func (h *childHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	childID := c.Param("childID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), userID, childID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{ChildID: childID, Balance: balance})
}

// listTransactions returns a child's ledger entries, newest first.
func (h *childHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	childID := c.Param("childID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, childID, params)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listFamilyTransactions returns the combined ledger feed for all children
// visible to the caller.
func (h *childHandler) listFamilyTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListFamilyTransactions(c.Request.Context(), userID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		logger.Error("Failed to list family transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// linkChild links an existing child account to the calling parent.
func (h *childHandler) linkChild(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	childID := c.Param("childID")

	parentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.userService.LinkChild(c.Request.Context(), parentID, childID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Child not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only parents can link children"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to link child", slog.String("error", err.Error()), slog.String("child_id", childID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link child"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// createAdjustment appends a grant or deduction to a child's ledger.
func (h *childHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	childID := c.Param("childID")

	parentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.ParentAdjust(c.Request.Context(), parentID, childID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a guardian of this child"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Child not found"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to create adjustment", slog.String("error", err.Error()), slog.String("child_id", childID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create adjustment"})
		}
		return
	}

	logger.Info("Adjustment recorded", slog.String("entry_id", entry.EntryID), slog.String("child_id", childID), slog.Int64("points", entry.Points))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(entry))
}

// respondLedgerError maps ledger read errors shared by balance and
// transaction listing onto HTTP statuses.
func respondLedgerError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Child not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
