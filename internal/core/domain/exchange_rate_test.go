package domain_test

import (
	"testing"

	"github.com/SscSPs/fxql_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuoteRecord_PairKey(t *testing.T) {
	tests := []struct {
		name  string
		quote domain.QuoteRecord
		want  string
	}{
		{
			name:  "source then destination",
			quote: domain.QuoteRecord{SourceCurrency: "USD", DestinationCurrency: "GBP"},
			want:  "USD-GBP",
		},
		{
			name:  "order matters",
			quote: domain.QuoteRecord{SourceCurrency: "GBP", DestinationCurrency: "USD"},
			want:  "GBP-USD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.quote.PairKey())
		})
	}
}

func TestExchangeRate_ApplyQuote(t *testing.T) {
	rate := domain.ExchangeRate{
		ExchangeRateID:      "rate_1",
		SourceCurrency:      "USD",
		DestinationCurrency: "GBP",
		CurrencyPair:        "USD-GBP",
		BuyPrice:            decimal.RequireFromString("1.00"),
		SellPrice:           decimal.RequireFromString("1.05"),
		CapAmount:           5000,
	}

	rate.ApplyQuote(domain.QuoteRecord{
		SourceCurrency:      "USD",
		DestinationCurrency: "GBP",
		BuyPrice:            decimal.RequireFromString("0.85"),
		SellPrice:           decimal.RequireFromString("0.90"),
		CapAmount:           10000,
	})

	assert.Equal(t, "rate_1", rate.ExchangeRateID, "identifier must survive an update")
	assert.Equal(t, "USD-GBP", rate.CurrencyPair)
	assert.True(t, decimal.RequireFromString("0.85").Equal(rate.BuyPrice))
	assert.True(t, decimal.RequireFromString("0.9").Equal(rate.SellPrice))
	assert.Equal(t, int64(10000), rate.CapAmount)
}
