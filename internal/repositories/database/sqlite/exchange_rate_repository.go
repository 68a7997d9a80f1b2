package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fxql_service/internal/apperrors"
	"github.com/SscSPs/fxql_service/internal/core/domain"
	portsrepo "github.com/SscSPs/fxql_service/internal/core/ports/repositories"
	"github.com/SscSPs/fxql_service/internal/models"
	"github.com/SscSPs/fxql_service/internal/utils/mapping"
)

const exchangeRateColumns = `
	exchange_rate_id, source_currency, destination_currency, currency_pair,
	buy_price, sell_price, cap_amount, created_at, last_updated_at`

// Timestamps are stored as text so they sort and compare lexically.
const timeLayout = time.RFC3339Nano

// ExchangeRateRepository implements the ExchangeRateRepositoryFacade on SQLite.
type ExchangeRateRepository struct {
	db *sql.DB
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateRepository)(nil)

// NewExchangeRateRepository creates a repository over an open, migrated database.
func NewExchangeRateRepository(db *sql.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// NewRepositoryProvider wires every SQLite repository.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: NewExchangeRateRepository(db),
	}
}

func (r *ExchangeRateRepository) FindExchangeRateByPair(ctx context.Context, currencyPair string) (*domain.ExchangeRate, error) {
	query := `SELECT` + exchangeRateColumns + ` FROM exchange_rates WHERE currency_pair = ?;`

	m, err := scanExchangeRate(r.db.QueryRowContext(ctx, query, currencyPair))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate for pair " + currencyPair + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *ExchangeRateRepository) CreateExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (currency_pair) DO UPDATE SET
			buy_price = excluded.buy_price,
			sell_price = excluded.sell_price,
			cap_amount = excluded.cap_amount,
			last_updated_at = excluded.last_updated_at
		RETURNING` + exchangeRateColumns + `;`

	saved, err := scanExchangeRate(r.db.QueryRowContext(ctx, query,
		m.ExchangeRateID, m.SourceCurrency, m.DestinationCurrency, m.CurrencyPair,
		m.BuyPrice.String(), m.SellPrice.String(), m.CapAmount,
		m.CreatedAt.UTC().Format(timeLayout), m.LastUpdatedAt.UTC().Format(timeLayout),
	))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to create exchange rate", err)
	}

	out := mapping.ToDomainExchangeRate(saved)
	return &out, nil
}

func (r *ExchangeRateRepository) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		UPDATE exchange_rates
		SET buy_price = ?, sell_price = ?, cap_amount = ?, last_updated_at = ?
		WHERE currency_pair = ?
		RETURNING` + exchangeRateColumns + `;`

	saved, err := scanExchangeRate(r.db.QueryRowContext(ctx, query,
		m.BuyPrice.String(), m.SellPrice.String(), m.CapAmount,
		m.LastUpdatedAt.UTC().Format(timeLayout), m.CurrencyPair,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate for pair " + rate.CurrencyPair + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to update exchange rate", err)
	}

	out := mapping.ToDomainExchangeRate(saved)
	return &out, nil
}

func (r *ExchangeRateRepository) ListExchangeRates(ctx context.Context, limit, offset int) ([]domain.ExchangeRate, error) {
	query := `SELECT` + exchangeRateColumns + `
		FROM exchange_rates
		ORDER BY currency_pair
		LIMIT ? OFFSET ?;`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	ms := []models.ExchangeRate{}
	for rows.Next() {
		m, err := scanExchangeRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rates", err)
	}

	return mapping.ToDomainExchangeRateSlice(ms), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExchangeRate(row rowScanner) (models.ExchangeRate, error) {
	var (
		m                  models.ExchangeRate
		created, updatedAt string
	)
	err := row.Scan(
		&m.ExchangeRateID, &m.SourceCurrency, &m.DestinationCurrency, &m.CurrencyPair,
		&m.BuyPrice, &m.SellPrice, &m.CapAmount, &created, &updatedAt,
	)
	if err != nil {
		return m, err
	}
	if m.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return m, fmt.Errorf("invalid created_at %q: %w", created, err)
	}
	if m.LastUpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return m, fmt.Errorf("invalid last_updated_at %q: %w", updatedAt, err)
	}
	return m, nil
}
