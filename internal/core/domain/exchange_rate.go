package domain

import (
	"github.com/shopspring/decimal"
)

// QuoteRecord is one parsed and validated FXQL block.
type QuoteRecord struct {
	SourceCurrency      string          `json:"sourceCurrency"`
	DestinationCurrency string          `json:"destinationCurrency"`
	BuyPrice            decimal.Decimal `json:"buyPrice"`
	SellPrice           decimal.Decimal `json:"sellPrice"`
	CapAmount           int64           `json:"capAmount"`
}

// PairKey returns the persistence identity of the quote, e.g. "USD-GBP".
func (q QuoteRecord) PairKey() string {
	return PairKey(q.SourceCurrency, q.DestinationCurrency)
}

// PairKey joins a source and destination currency code. It is case and order
// sensitive: USD-GBP and GBP-USD are different pairs.
func PairKey(source, destination string) string {
	return source + "-" + destination
}

// ExchangeRate is the latest persisted quote for a currency pair.
type ExchangeRate struct {
	ExchangeRateID      string          `json:"exchangeRateID"`
	SourceCurrency      string          `json:"sourceCurrency"`
	DestinationCurrency string          `json:"destinationCurrency"`
	CurrencyPair        string          `json:"currencyPair"` // unique
	BuyPrice            decimal.Decimal `json:"buyPrice"`
	SellPrice           decimal.Decimal `json:"sellPrice"`
	CapAmount           int64           `json:"capAmount"`
	AuditFields
}

// ApplyQuote overwrites the price and cap fields with the values of q.
func (r *ExchangeRate) ApplyQuote(q QuoteRecord) {
	r.SourceCurrency = q.SourceCurrency
	r.DestinationCurrency = q.DestinationCurrency
	r.CurrencyPair = q.PairKey()
	r.BuyPrice = q.BuyPrice
	r.SellPrice = q.SellPrice
	r.CapAmount = q.CapAmount
}

// SubmissionResult is what storing one FXQL submission produced.
type SubmissionResult struct {
	Total         int            `json:"total"`
	ExchangeRates []ExchangeRate `json:"exchangeRates"`
}
