package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		UserID:       d.UserID,
		AccountType:  string(d.AccountType),
		CurrencyCode: d.CurrencyCode,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account.
// Balance is left at zero; callers derive it from entries.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		UserID:       m.UserID,
		AccountType:  domain.AccountType(m.AccountType),
		CurrencyCode: m.CurrencyCode,
		Status:       domain.AccountStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		Balance:      decimal.Zero,
	}
}
