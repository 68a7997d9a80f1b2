package models

import (
	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rates table. currency_pair is unique,
// so the table holds at most one row per pair.
type ExchangeRate struct {
	ExchangeRateID      string          `db:"exchange_rate_id"`
	SourceCurrency      string          `db:"source_currency"`
	DestinationCurrency string          `db:"destination_currency"`
	CurrencyPair        string          `db:"currency_pair"`
	BuyPrice            decimal.Decimal `db:"buy_price"`
	SellPrice           decimal.Decimal `db:"sell_price"`
	CapAmount           int64           `db:"cap_amount"`
	AuditFields
}
