package services

import (
	"context"

	"github.com/SscSPs/fxql_service/internal/core/domain"
	"github.com/SscSPs/fxql_service/internal/core/fxql"
)

// FxqlParserSvc defines the parsing side of FXQL handling
type FxqlParserSvc interface {
	// ParseStatements runs the FXQL pipeline over raw text without persisting anything.
	ParseStatements(ctx context.Context, raw string) (*fxql.Result, error)

	// GenerateMaxPairs returns a submission of count random valid blocks.
	GenerateMaxPairs(ctx context.Context, count int) string
}

// FxqlWriterSvc defines write operations for FXQL submissions
type FxqlWriterSvc interface {
	// StoreSubmission parses raw, enforces the pair limit and reconciles the
	// records against stored rates.
	StoreSubmission(ctx context.Context, raw string) (*domain.SubmissionResult, error)

	// Reconcile upserts already validated records, last occurrence per pair wins.
	Reconcile(ctx context.Context, records []domain.QuoteRecord) ([]domain.ExchangeRate, error)
}

// FxqlReaderSvc defines read operations for stored rates
type FxqlReaderSvc interface {
	// GetExchangeRate retrieves the stored rate for a pair key such as "USD-GBP".
	GetExchangeRate(ctx context.Context, currencyPair string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves stored rates page by page.
	ListExchangeRates(ctx context.Context, limit, offset int) ([]domain.ExchangeRate, error)
}

// FxqlSvcFacade combines all FXQL-related service interfaces
type FxqlSvcFacade interface {
	FxqlParserSvc
	FxqlWriterSvc
	FxqlReaderSvc
}
