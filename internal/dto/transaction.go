package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/shopspring/decimal"
)

// DepositRequest credits an account. Amount accepts a JSON number or string.
type DepositRequest struct {
	AccountID   string           `json:"accountID" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description"`
}

func (r DepositRequest) ToCommand() portssvc.DepositCommand {
	return portssvc.DepositCommand{AccountID: r.AccountID, Amount: *r.Amount, Description: r.Description}
}

// WithdrawalRequest debits an account.
type WithdrawalRequest struct {
	AccountID   string           `json:"accountID" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description"`
}

func (r WithdrawalRequest) ToCommand() portssvc.WithdrawCommand {
	return portssvc.WithdrawCommand{AccountID: r.AccountID, Amount: *r.Amount, Description: r.Description}
}

// TransferRequest moves funds between two accounts.
type TransferRequest struct {
	SourceAccountID      string           `json:"sourceAccountID" binding:"required"`
	DestinationAccountID string           `json:"destinationAccountID" binding:"required"`
	Amount               *decimal.Decimal `json:"amount" binding:"required"`
	Description          string           `json:"description"`
}

func (r TransferRequest) ToCommand() portssvc.TransferCommand {
	return portssvc.TransferCommand{
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               *r.Amount,
		Description:          r.Description,
	}
}

// TransactionResultResponse acknowledges a recorded transaction.
type TransactionResultResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transactionID"`
}

// LedgerEntryResponse is one entry of an account's history or a transaction.
type LedgerEntryResponse struct {
	EntryID       string    `json:"entryID"`
	AccountID     string    `json:"accountID"`
	TransactionID string    `json:"transactionID"`
	EntryType     string    `json:"entryType"`
	Amount        string    `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TransactionResponse is a transaction with its entries in write order.
type TransactionResponse struct {
	TransactionID string                `json:"transactionID"`
	Type          string                `json:"type"`
	Status        string                `json:"status"`
	Description   string                `json:"description"`
	CreatedAt     time.Time             `json:"createdAt"`
	Entries       []LedgerEntryResponse `json:"entries"`
}

func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		AccountID:     e.AccountID,
		TransactionID: e.TransactionID,
		EntryType:     string(e.EntryType),
		Amount:        utils.FormatAmount(e.Amount),
		CreatedAt:     e.CreatedAt,
	}
}

// ToLedgerEntryResponses keeps the input order and never returns nil, so an
// empty history encodes as [].
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(e)
	}
	return res
}

func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          string(txn.Type),
		Status:        string(txn.Status),
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
		Entries:       ToLedgerEntryResponses(txn.Entries),
	}
}
