package utils

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount at the ledger scale.
// Example: 12.3 returns "12.3000", 0 returns "0.0000".
func FormatAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, int(domain.AmountScale))
}

// FormatWithPrecision rounds amount to precision digits and always prints
// that many fractional digits.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
