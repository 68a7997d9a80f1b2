package dto

import (
	"time"

	"github.com/SscSPs/fxql_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Envelope codes returned in the "code" field of every response.
const (
	CodeCreated         = "FXQL-201"
	CodeOK              = "FXQL-200"
	CodeBadRequest      = "FXQL-400"
	CodeUnauthorized    = "FXQL-401"
	CodeNotFound        = "FXQL-404"
	CodeTooManyRequests = "FXQL-429"
	CodeInternal        = "FXQL-500"
)

// CreateFxqlRequest is the body of a submission.
type CreateFxqlRequest struct {
	FXQL string `json:"FXQL" binding:"required" example:"USD-GBP {\n  BUY 0.85\n  SELL 0.90\n  CAP 10000\n}"`
}

// GenerateFxqlResponse carries a generated FXQL document.
type GenerateFxqlResponse struct {
	FXQL string `json:"FXQL"`
}

// Response is the success envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the failure envelope. FailedPairs and Data are only set
// when a submission was partially stored.
type ErrorResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	Code        string   `json:"code"`
	FailedPairs []string `json:"failedPairs,omitempty"`
	Data        any      `json:"data,omitempty"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	EntryID             string          `json:"entryId"`
	SourceCurrency      string          `json:"sourceCurrency"`
	DestinationCurrency string          `json:"destinationCurrency"`
	CurrencyPair        string          `json:"currencyPair"`
	BuyPrice            decimal.Decimal `json:"buyPrice" swaggertype:"string" example:"0.85"`
	SellPrice           decimal.Decimal `json:"sellPrice" swaggertype:"string" example:"0.9"`
	CapAmount           int64           `json:"capAmount"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// SubmissionResponse is the data of a stored submission.
type SubmissionResponse struct {
	Total         int                    `json:"total"`
	ExchangeRates []ExchangeRateResponse `json:"exchangeRates"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		EntryID:             rate.ExchangeRateID,
		SourceCurrency:      rate.SourceCurrency,
		DestinationCurrency: rate.DestinationCurrency,
		CurrencyPair:        rate.CurrencyPair,
		BuyPrice:            rate.BuyPrice,
		SellPrice:           rate.SellPrice,
		CapAmount:           rate.CapAmount,
		CreatedAt:           rate.CreatedAt,
		UpdatedAt:           rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts domain exchange rates to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToExchangeRateResponse(rate)
	}
	return responses
}

// ToSubmissionResponse converts a stored submission; a nil result yields nil.
func ToSubmissionResponse(result *domain.SubmissionResult) *SubmissionResponse {
	if result == nil {
		return nil
	}
	return &SubmissionResponse{
		Total:         result.Total,
		ExchangeRates: ToListExchangeRateResponse(result.ExchangeRates),
	}
}

// ListExchangeRatesParams are the query parameters of the rate listing.
type ListExchangeRatesParams struct {
	Limit  int `form:"limit" binding:"omitempty,min=1"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// GenerateFxqlParams are the query parameters of the generator endpoint.
type GenerateFxqlParams struct {
	Count int `form:"count" binding:"omitempty,min=1,max=10000"`
}
