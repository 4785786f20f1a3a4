package domain

import "github.com/shopspring/decimal"

// AmountScale is the number of fractional digits every stored amount carries.
const AmountScale int32 = 4

// DefaultCurrencyCode is applied to accounts created without a currency.
const DefaultCurrencyCode = "USD"

// HasValidScale reports whether amount fits the ledger's fixed-point scale
// without rounding.
func HasValidScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(AmountScale))
}

// MaxAmount is the largest amount a NUMERIC(19,4) column holds:
// 15 integer digits and AmountScale fractional digits.
var MaxAmount = decimal.New(1, 15).Sub(decimal.New(1, -AmountScale))
