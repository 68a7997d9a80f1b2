package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/fxql_service/internal/apperrors"
	"github.com/SscSPs/fxql_service/internal/core/domain"
	portsrepo "github.com/SscSPs/fxql_service/internal/core/ports/repositories"
	"github.com/SscSPs/fxql_service/internal/models"
	"github.com/SscSPs/fxql_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `
	exchange_rate_id, source_currency, destination_currency, currency_pair,
	buy_price, sell_price, cap_amount, created_at, last_updated_at`

// PgxExchangeRateRepository implements the ExchangeRateRepositoryFacade using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindExchangeRateByPair retrieves the exchange rate stored for a currency pair.
func (r *PgxExchangeRateRepository) FindExchangeRateByPair(ctx context.Context, currencyPair string) (*domain.ExchangeRate, error) {
	query := `SELECT` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE currency_pair = $1;`

	modelRate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, currencyPair))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate for pair " + currencyPair + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// CreateExchangeRate inserts a new exchange rate. A concurrent insert of the
// same pair turns into an update of the prices and cap, keeping the existing
// row's ID and creation time.
func (r *PgxExchangeRateRepository) CreateExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (currency_pair) DO UPDATE SET
			buy_price = EXCLUDED.buy_price,
			sell_price = EXCLUDED.sell_price,
			cap_amount = EXCLUDED.cap_amount,
			last_updated_at = EXCLUDED.last_updated_at
		RETURNING` + exchangeRateColumns + `;`

	saved, err := scanExchangeRate(r.Pool.QueryRow(ctx, query,
		m.ExchangeRateID, m.SourceCurrency, m.DestinationCurrency, m.CurrencyPair,
		m.BuyPrice, m.SellPrice, m.CapAmount, m.CreatedAt, m.LastUpdatedAt,
	))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to create exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(saved)
	return &domainRate, nil
}

// UpdateExchangeRate overwrites the prices, cap and update time of the row
// holding rate.CurrencyPair.
func (r *PgxExchangeRateRepository) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		UPDATE exchange_rates
		SET buy_price = $1, sell_price = $2, cap_amount = $3, last_updated_at = $4
		WHERE currency_pair = $5
		RETURNING` + exchangeRateColumns + `;`

	saved, err := scanExchangeRate(r.Pool.QueryRow(ctx, query,
		m.BuyPrice, m.SellPrice, m.CapAmount, m.LastUpdatedAt, m.CurrencyPair,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate for pair " + rate.CurrencyPair + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to update exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(saved)
	return &domainRate, nil
}

// ListExchangeRates retrieves a page of exchange rates ordered by currency pair.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, limit, offset int) ([]domain.ExchangeRate, error) {
	query := `SELECT` + exchangeRateColumns + `
		FROM exchange_rates
		ORDER BY currency_pair
		LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	modelRates := []models.ExchangeRate{}
	for rows.Next() {
		m, err := scanExchangeRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate", err)
		}
		modelRates = append(modelRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rates", err)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.SourceCurrency, &m.DestinationCurrency, &m.CurrencyPair,
		&m.BuyPrice, &m.SellPrice, &m.CapAmount, &m.CreatedAt, &m.LastUpdatedAt,
	)
	return m, err
}
