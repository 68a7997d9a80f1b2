package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/fxql_service/internal/apperrors"
	"github.com/SscSPs/fxql_service/internal/core/domain"
	portsrepo "github.com/SscSPs/fxql_service/internal/core/ports/repositories"
)

// ExchangeRateRepository keeps exchange rates in process memory, keyed by
// currency pair. It mirrors the SQL repositories, including the
// insert-or-update behaviour of CreateExchangeRate.
type ExchangeRateRepository struct {
	mu    sync.RWMutex
	rates map[string]domain.ExchangeRate
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateRepository)(nil)

// NewExchangeRateRepository creates an empty in-memory repository.
func NewExchangeRateRepository() *ExchangeRateRepository {
	return &ExchangeRateRepository{rates: make(map[string]domain.ExchangeRate)}
}

// FindExchangeRateByPair retrieves the rate stored for currencyPair.
func (r *ExchangeRateRepository) FindExchangeRateByPair(_ context.Context, currencyPair string) (*domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rate, ok := r.rates[currencyPair]
	if !ok {
		return nil, apperrors.NewNotFoundError("exchange rate for pair " + currencyPair + " not found")
	}
	return &rate, nil
}

// CreateExchangeRate stores a new rate. If the pair was stored in the
// meantime, the existing row keeps its ID and creation time and takes the new
// values.
func (r *ExchangeRateRepository) CreateExchangeRate(_ context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.rates[rate.CurrencyPair]; ok {
		rate.ExchangeRateID = existing.ExchangeRateID
		rate.CreatedAt = existing.CreatedAt
	}
	r.rates[rate.CurrencyPair] = rate
	return &rate, nil
}

// UpdateExchangeRate overwrites the stored rate for rate.CurrencyPair.
func (r *ExchangeRateRepository) UpdateExchangeRate(_ context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rates[rate.CurrencyPair]
	if !ok {
		return nil, apperrors.NewNotFoundError("exchange rate for pair " + rate.CurrencyPair + " not found")
	}
	rate.ExchangeRateID = existing.ExchangeRateID
	rate.CreatedAt = existing.CreatedAt
	r.rates[rate.CurrencyPair] = rate
	return &rate, nil
}

// ListExchangeRates returns a page of rates ordered by currency pair.
func (r *ExchangeRateRepository) ListExchangeRates(_ context.Context, limit, offset int) ([]domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pairs := make([]string, 0, len(r.rates))
	for pair := range r.rates {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	if offset >= len(pairs) {
		return []domain.ExchangeRate{}, nil
	}
	pairs = pairs[offset:]
	if limit > 0 && limit < len(pairs) {
		pairs = pairs[:limit]
	}

	rates := make([]domain.ExchangeRate, len(pairs))
	for i, pair := range pairs {
		rates[i] = r.rates[pair]
	}
	return rates, nil
}
