package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interbanking/banking_poc/internal/apperrors"
	portssvc "github.com/interbanking/banking_poc/internal/core/ports/services"
	"github.com/interbanking/banking_poc/internal/dto"
	"github.com/interbanking/banking_poc/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	commandService portssvc.AccountCommandSvc
	queryService   portssvc.AccountQuerySvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(cs portssvc.AccountCommandSvc, qs portssvc.AccountQuerySvc) *accountHandler {
	return &accountHandler{
		commandService: cs,
		queryService:   qs,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, cs portssvc.AccountCommandSvc, qs portssvc.AccountQuerySvc) {
	h := newAccountHandler(cs, qs)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/:id/debit", h.debitAccount)
		accounts.POST("/:id/credit", h.creditAccount)
		accounts.POST("/:id/block", h.blockAccount)
		accounts.POST("/:id/unblock", h.unblockAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/balance", h.getAccountBalance)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("/:id/accounts", h.getCustomerAccounts)
	}
}

// respondServiceError translates service errors into HTTP responses. Domain
// rule violations map to client errors; anything unrecognized is a 500.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Account not found", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrInvalidIdentifier),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrCurrencyMismatch),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAccountNotActive),
		errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting account state", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		logger.Warn("Insufficient balance", slog.String("action", action))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Service call failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create account", slog.String("customer_id", req.CustomerID))

	result, err := h.commandService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", result.AccountID))
	c.JSON(http.StatusCreated, result)
}

func (h *accountHandler) debitAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.DebitAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DebitAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to debit account")

	result, err := h.commandService.DebitAccount(c.Request.Context(), accountID, req)
	if err != nil {
		respondServiceError(c, logger, err, "debit account")
		return
	}

	logger.Info("Account debited successfully", slog.String("transaction_id", result.TransactionID))
	c.JSON(http.StatusOK, result)
}

func (h *accountHandler) creditAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.CreditAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreditAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to credit account")

	result, err := h.commandService.CreditAccount(c.Request.Context(), accountID, req)
	if err != nil {
		respondServiceError(c, logger, err, "credit account")
		return
	}

	logger.Info("Account credited successfully", slog.String("transaction_id", result.TransactionID))
	c.JSON(http.StatusOK, result)
}

func (h *accountHandler) blockAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.BlockAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BlockAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to block account", slog.String("reason", req.Reason))

	result, err := h.commandService.BlockAccount(c.Request.Context(), accountID, req)
	if err != nil {
		respondServiceError(c, logger, err, "block account")
		return
	}

	logger.Info("Account blocked successfully")
	c.JSON(http.StatusOK, result)
}

func (h *accountHandler) unblockAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to unblock account")

	result, err := h.commandService.UnblockAccount(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, logger, err, "unblock account")
		return
	}

	logger.Info("Account unblocked successfully")
	c.JSON(http.StatusOK, result)
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to get account")

	account, err := h.queryService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve account")
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to get account balance")

	balance, err := h.queryService.GetAccountBalance(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve account balance")
		return
	}

	c.JSON(http.StatusOK, balance)
}

func (h *accountHandler) getCustomerAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	logger = logger.With(slog.String("customer_id", customerID))
	logger.Info("Received request to list customer accounts")

	accounts, err := h.queryService.GetCustomerAccounts(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, logger, err, "list customer accounts")
		return
	}

	c.JSON(http.StatusOK, accounts)
}
