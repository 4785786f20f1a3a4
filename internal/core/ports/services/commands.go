package services

import "github.com/shopspring/decimal"

// CreateAccountCommand carries the input of AccountRegistry.CreateAccount.
type CreateAccountCommand struct {
	UserID       string `validate:"required,max=255"`
	AccountType  string `validate:"required,max=64"`
	CurrencyCode string `validate:"omitempty,max=10"`
}

// DepositCommand credits AccountID with Amount.
type DepositCommand struct {
	AccountID   string `validate:"required"`
	Amount      decimal.Decimal
	Description string `validate:"max=255"`
}

// WithdrawCommand debits AccountID with Amount, gated on its balance.
type WithdrawCommand struct {
	AccountID   string `validate:"required"`
	Amount      decimal.Decimal
	Description string `validate:"max=255"`
}

// TransferCommand moves Amount from SourceAccountID to DestinationAccountID,
// gated on the source balance.
type TransferCommand struct {
	SourceAccountID      string `validate:"required"`
	DestinationAccountID string `validate:"required"`
	Amount               decimal.Decimal
	Description          string `validate:"max=255"`
}
