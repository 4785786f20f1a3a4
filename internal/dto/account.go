package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	UserID       string `json:"userID" binding:"required"`
	AccountType  string `json:"accountType" binding:"required"`
	CurrencyCode string `json:"currencyCode"` // Optional, defaults to USD
}

// ToCommand converts the request into the service command.
func (r CreateAccountRequest) ToCommand() portssvc.CreateAccountCommand {
	return portssvc.CreateAccountCommand{
		UserID:       r.UserID,
		AccountType:  r.AccountType,
		CurrencyCode: r.CurrencyCode,
	}
}

// AccountResponse defines the data returned for an account.
// Balance is rendered with exactly four fractional digits.
type AccountResponse struct {
	AccountID    string    `json:"accountID"`
	UserID       string    `json:"userID"`
	AccountType  string    `json:"accountType"`
	CurrencyCode string    `json:"currencyCode"`
	Status       string    `json:"status"`
	Balance      string    `json:"balance"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    acc.AccountID,
		UserID:       acc.UserID,
		AccountType:  string(acc.AccountType),
		CurrencyCode: acc.CurrencyCode,
		Status:       string(acc.Status),
		Balance:      utils.FormatAmount(acc.Balance),
		CreatedAt:    acc.CreatedAt,
	}
}
