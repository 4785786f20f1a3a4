package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers the balance-affecting operations and
// transaction lookup.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	rg.POST("/deposits", h.deposit)
	rg.POST("/withdrawals", h.withdraw)
	rg.POST("/transfers", h.transfer)
	rg.GET("/transactions/:transactionID", h.getTransaction)
}

// deposit godoc
// @Summary Credit an account
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 200 {object} dto.TransactionResultResponse
// @Failure 400 {object} map[string]string "invalid amount"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /deposits [post]
func (h *transactionHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "Deposit", err)
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID))
	txn, err := h.transactionService.Deposit(c.Request.Context(), req.ToCommand())
	if err != nil {
		respondError(c, logger, "Deposit", err)
		return
	}

	logger.Info("Deposit recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.TransactionResultResponse{Message: "Deposit successful", TransactionID: txn.TransactionID})
}

// withdraw godoc
// @Summary Debit an account if its balance covers the amount
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.WithdrawalRequest true "Withdrawal details"
// @Success 200 {object} dto.TransactionResultResponse
// @Failure 422 {object} map[string]string "insufficient funds"
// @Failure 503 {object} map[string]string "account busy, retry"
// @Router /withdrawals [post]
func (h *transactionHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "Withdraw", err)
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID))
	txn, err := h.transactionService.Withdraw(c.Request.Context(), req.ToCommand())
	if err != nil {
		respondError(c, logger, "Withdraw", err)
		return
	}

	logger.Info("Withdrawal recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.TransactionResultResponse{Message: "Withdrawal successful", TransactionID: txn.TransactionID})
}

// transfer godoc
// @Summary Move funds between two accounts atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransactionResultResponse
// @Failure 422 {object} map[string]string "insufficient funds"
// @Router /transfers [post]
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "Transfer", err)
		return
	}

	logger = logger.With(
		slog.String("source_account_id", req.SourceAccountID),
		slog.String("destination_account_id", req.DestinationAccountID),
	)
	txn, err := h.transactionService.Transfer(c.Request.Context(), req.ToCommand())
	if err != nil {
		respondError(c, logger, "Transfer", err)
		return
	}

	logger.Info("Transfer recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.TransactionResultResponse{Message: "Transfer successful", TransactionID: txn.TransactionID})
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", transactionID))

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, "GetTransaction", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
