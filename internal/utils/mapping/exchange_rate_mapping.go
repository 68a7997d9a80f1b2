package mapping

import (
	"github.com/SscSPs/fxql_service/internal/core/domain"
	"github.com/SscSPs/fxql_service/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:      d.ExchangeRateID,
		SourceCurrency:      d.SourceCurrency,
		DestinationCurrency: d.DestinationCurrency,
		CurrencyPair:        d.CurrencyPair,
		BuyPrice:            d.BuyPrice,
		SellPrice:           d.SellPrice,
		CapAmount:           d.CapAmount,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:      m.ExchangeRateID,
		SourceCurrency:      m.SourceCurrency,
		DestinationCurrency: m.DestinationCurrency,
		CurrencyPair:        m.CurrencyPair,
		BuyPrice:            m.BuyPrice,
		SellPrice:           m.SellPrice,
		CapAmount:           m.CapAmount,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRateSlice converts model rows to domain exchange rates.
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	out := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		out[i] = ToDomainExchangeRate(m)
	}
	return out
}
