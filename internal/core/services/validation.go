package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// validateCommand checks the struct tags of a command and reports every
// failing field in a single ValidationError.
func validateCommand(cmd any) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return apperrors.NewValidationError("invalid request: " + strings.Join(msgs, ", "))
}

// validateAmount enforces a strictly positive amount of at most
// domain.AmountScale fractional digits and no larger than domain.MaxAmount.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("invalid amount: must be greater than zero")
	}
	if !domain.HasValidScale(amount) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid amount: at most %d decimal places", domain.AmountScale))
	}
	if amount.GreaterThan(domain.MaxAmount) {
		return apperrors.NewValidationError("invalid amount: must not exceed " + domain.MaxAmount.StringFixed(domain.AmountScale))
	}
	return nil
}
