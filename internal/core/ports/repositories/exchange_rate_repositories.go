package repositories

import (
	"context"

	"github.com/SscSPs/fxql_service/internal/core/domain"
)

// ExchangeRateReader defines read operations for persisted exchange rates
type ExchangeRateReader interface {
	// FindExchangeRateByPair retrieves the rate stored for a pair key such as "USD-GBP".
	// It returns an error matching apperrors.ErrNotFound when the pair has never been stored.
	FindExchangeRateByPair(ctx context.Context, currencyPair string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves stored rates ordered by currency pair.
	ListExchangeRates(ctx context.Context, limit, offset int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for persisted exchange rates
type ExchangeRateWriter interface {
	// CreateExchangeRate inserts a rate for a pair seen for the first time.
	CreateExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)

	// UpdateExchangeRate overwrites prices, cap and LastUpdatedAt of an existing rate.
	UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
