package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/fxql_service/internal/core/domain"
	"github.com/SscSPs/fxql_service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExchangeRateMapping_PreservesFields(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	d := domain.ExchangeRate{
		ExchangeRateID:      "8d3c7c0e-4bd1-4bb5-9d0b-0c6b3c9fd3a1",
		SourceCurrency:      "USD",
		DestinationCurrency: "GBP",
		CurrencyPair:        "USD-GBP",
		BuyPrice:            decimal.RequireFromString("0.85"),
		SellPrice:           decimal.RequireFromString("0.90"),
		CapAmount:           10000,
		AuditFields:         domain.AuditFields{CreatedAt: created, LastUpdatedAt: created.Add(time.Minute)},
	}

	m := ToModelExchangeRate(d)
	assert.Equal(t, "USD-GBP", m.CurrencyPair)
	assert.Equal(t, created, m.CreatedAt)

	assert.Equal(t, []domain.ExchangeRate{d}, ToDomainExchangeRateSlice([]models.ExchangeRate{m}))
}
