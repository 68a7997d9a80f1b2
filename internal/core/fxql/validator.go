package fxql

import (
	"strconv"
	"strings"

	"github.com/SscSPs/fxql_service/internal/apperrors"
	"github.com/SscSPs/fxql_service/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// currencyCodeTag is equivalent to ^[A-Z]{3}$.
const currencyCodeTag = "len=3,alpha,uppercase"

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes one failed constraint on one field of a block.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every field that failed for a single block.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return "Validation failed: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return apperrors.ErrValidation
}

// Validate converts the raw text of m into a QuoteRecord. All failing fields
// are reported together; the record is only usable when errs is empty.
func Validate(m Match) (domain.QuoteRecord, ValidationErrors) {
	var errs ValidationErrors
	collect := func(fe *FieldError) {
		if fe != nil {
			errs = append(errs, *fe)
		}
	}

	collect(ValidateCurrency("sourceCurrency", "Source currency (CURR1)", m.SourceCurrency))
	collect(ValidateCurrency("destinationCurrency", "Destination currency (CURR2)", m.DestinationCurrency))
	buy, fe := ValidatePrice("buyPrice", "Buy price", m.BuyPrice)
	collect(fe)
	sell, fe := ValidatePrice("sellPrice", "Sell price", m.SellPrice)
	collect(fe)
	capAmount, fe := ValidateCapAmount("capAmount", m.CapAmount)
	collect(fe)

	if len(errs) > 0 {
		return domain.QuoteRecord{}, errs
	}
	return domain.QuoteRecord{
		SourceCurrency:      m.SourceCurrency,
		DestinationCurrency: m.DestinationCurrency,
		BuyPrice:            buy,
		SellPrice:           sell,
		CapAmount:           capAmount,
	}, nil
}

// ValidateCurrency checks that code is exactly three uppercase ASCII letters.
func ValidateCurrency(field, label, code string) *FieldError {
	if err := validate.Var(code, currencyCodeTag); err != nil {
		return &FieldError{Field: field, Message: label + " must be exactly 3 uppercase letters."}
	}
	return nil
}

// ValidatePrice parses text as a decimal and requires it to be strictly positive.
func ValidatePrice(field, label, text string) (decimal.Decimal, *FieldError) {
	price, err := decimal.NewFromString(strings.TrimPrefix(text, "+"))
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Message: label + " must be a valid number"}
	}
	if !price.IsPositive() {
		return decimal.Zero, &FieldError{Field: field, Message: label + " must be a positive number"}
	}
	return price, nil
}

// ValidateCapAmount parses text as a base-10 integer and requires it to be >= 0.
// Values outside the int64 range are rejected as non-integers.
func ValidateCapAmount(field, text string) (int64, *FieldError) {
	capAmount, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &FieldError{Field: field, Message: "CAP amount must be an integer."}
	}
	if capAmount < 0 {
		return 0, &FieldError{Field: field, Message: "CAP amount must be a non-negative integer."}
	}
	return capAmount, nil
}
