package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/ledger", h.getLedgerHistory)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "internal error"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "CreateAccount", err)
		return
	}

	logger.Info("Received request to create account", slog.String("user_id", req.UserID), slog.String("account_type", req.AccountType))

	account, err := h.accountService.CreateAccount(c.Request.Context(), req.ToCommand())
	if err != nil {
		respondError(c, logger, "CreateAccount", err)
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account with its balance
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", accountID))

	account, err := h.accountService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, "GetAccount", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getLedgerHistory godoc
// @Summary List an account's entries, newest first
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} dto.LedgerEntryResponse
// @Router /accounts/{accountID}/ledger [get]
func (h *accountHandler) getLedgerHistory(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", accountID))

	entries, err := h.accountService.GetLedgerHistory(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, "GetLedgerHistory", err)
		return
	}

	logger.Debug("Ledger history retrieved", slog.Int("count", len(entries)))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}
