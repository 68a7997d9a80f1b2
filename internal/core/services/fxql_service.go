package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/fxql_service/internal/apperrors"
	"github.com/SscSPs/fxql_service/internal/core/domain"
	"github.com/SscSPs/fxql_service/internal/core/fxql"
	portsrepo "github.com/SscSPs/fxql_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fxql_service/internal/core/ports/services"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultUpsertConcurrency reconciles every pair at once. A positive value
	// bounds the number of pairs in flight.
	DefaultUpsertConcurrency = 0
	// DefaultListLimit and MaxListLimit bound ListExchangeRates pages.
	DefaultListLimit = 50
	MaxListLimit     = 500
	// MaxGeneratedPairs bounds GenerateMaxPairs output.
	MaxGeneratedPairs = 10000
)

// fxqlService implements portssvc.FxqlSvcFacade.
type fxqlService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	maxPairs    int
	concurrency int
	now         func() time.Time
	newID       func() string
}

// FxqlServiceOption is a functional option for configuring the FXQL service
type FxqlServiceOption func(*fxqlService)

// WithMaxPairs sets the number of records one submission may carry.
func WithMaxPairs(n int) FxqlServiceOption {
	return func(s *fxqlService) {
		if n > 0 {
			s.maxPairs = n
		}
	}
}

// WithUpsertConcurrency sets how many pairs are reconciled in parallel.
// Zero or less removes the bound.
func WithUpsertConcurrency(n int) FxqlServiceOption {
	return func(s *fxqlService) {
		s.concurrency = max(n, 0)
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) FxqlServiceOption {
	return func(s *fxqlService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces uuid.NewString for new exchange rate IDs.
func WithIDGenerator(newID func() string) FxqlServiceOption {
	return func(s *fxqlService) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewFxqlService creates a new FXQL service backed by rateRepo.
func NewFxqlService(rateRepo portsrepo.ExchangeRateRepositoryFacade, options ...FxqlServiceOption) portssvc.FxqlSvcFacade {
	s := &fxqlService{
		rateRepo:    rateRepo,
		maxPairs:    fxql.DefaultMaxPairs,
		concurrency: DefaultUpsertConcurrency,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// ParseStatements runs the FXQL pipeline with the request logger.
func (s *fxqlService) ParseStatements(ctx context.Context, raw string) (*fxql.Result, error) {
	logger := s.GetLogger(ctx)
	parser := fxql.NewParser(fxql.WithLogger(logger), fxql.WithMaxPairs(s.maxPairs))

	res, err := parser.Parse(raw)
	if res != nil {
		logger.Info("Parsed FXQL submission",
			slog.Int("accepted", len(res.Records)),
			slog.Int("parsed", res.Parsed),
			slog.Int("rejected", res.Rejected),
			slog.Int("unmatched", res.Unmatched),
		)
	}
	return res, err
}

// StoreSubmission parses raw and reconciles the result. The pair limit is
// checked against the parsed count before deduplication, and a submission over
// the limit is rejected before anything is written.
func (s *fxqlService) StoreSubmission(ctx context.Context, raw string) (*domain.SubmissionResult, error) {
	res, err := s.ParseStatements(ctx, raw)
	if err != nil {
		return nil, err
	}

	if res.Exceeded() {
		s.GetLogger(ctx).Warn("Rejecting FXQL submission over the pair limit",
			slog.Int("max_pairs", res.MaxPairs),
			slog.Int("parsed", res.Parsed),
		)
		return nil, &fxql.PairLimitError{Limit: res.MaxPairs, Got: res.Parsed}
	}

	rates, err := s.Reconcile(ctx, res.Records)
	result := &domain.SubmissionResult{Total: len(rates), ExchangeRates: rates}
	if err != nil {
		return result, err
	}
	return result, nil
}

// Reconcile keeps the last record of each pair and upserts them concurrently.
// A failing pair is reported as an *apperrors.PairPersistenceError and does not
// stop the others; all pair errors are joined. Returned rates are in
// completion order.
//
// No lock is held between the lookup and the write of a pair, so concurrent
// submissions of the same pair resolve by whichever write lands last.
func (s *fxqlService) Reconcile(ctx context.Context, records []domain.QuoteRecord) ([]domain.ExchangeRate, error) {
	unique := latestByPair(records)

	var (
		mu       sync.Mutex
		saved    = make([]domain.ExchangeRate, 0, len(unique))
		pairErrs []error
		g        errgroup.Group
	)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for _, rec := range unique {
		g.Go(func() error {
			rate, err := s.upsert(ctx, rec)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.LogError(ctx, err, "Failed to persist exchange rate", slog.String("currency_pair", rec.PairKey()))
				pairErrs = append(pairErrs, &apperrors.PairPersistenceError{Pair: rec.PairKey(), Err: err})
				return nil
			}
			saved = append(saved, *rate)
			return nil
		})
	}
	_ = g.Wait()

	s.LogInfo(ctx, "Reconciled exchange rates",
		slog.Int("received", len(records)),
		slog.Int("unique_pairs", len(unique)),
		slog.Int("saved", len(saved)),
		slog.Int("failed", len(pairErrs)),
	)
	return saved, errors.Join(pairErrs...)
}

func (s *fxqlService) upsert(ctx context.Context, rec domain.QuoteRecord) (*domain.ExchangeRate, error) {
	now := s.now()

	existing, err := s.rateRepo.FindExchangeRateByPair(ctx, rec.PairKey())
	switch {
	case err == nil:
		existing.ApplyQuote(rec)
		existing.LastUpdatedAt = now
		return s.rateRepo.UpdateExchangeRate(ctx, *existing)
	case errors.Is(err, apperrors.ErrNotFound):
		rate := domain.ExchangeRate{
			ExchangeRateID: s.newID(),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		rate.ApplyQuote(rec)
		return s.rateRepo.CreateExchangeRate(ctx, rate)
	default:
		return nil, fmt.Errorf("failed to look up exchange rate: %w", err)
	}
}

// latestByPair keeps the last record for every pair key. Each key stays at
// the position of its first occurrence.
func latestByPair(records []domain.QuoteRecord) []domain.QuoteRecord {
	index := make(map[string]int, len(records))
	unique := make([]domain.QuoteRecord, 0, len(records))
	for _, rec := range records {
		key := rec.PairKey()
		if i, ok := index[key]; ok {
			unique[i] = rec
			continue
		}
		index[key] = len(unique)
		unique = append(unique, rec)
	}
	return unique
}

// GetExchangeRate retrieves the stored rate for a pair such as "USD-GBP".
func (s *fxqlService) GetExchangeRate(ctx context.Context, currencyPair string) (*domain.ExchangeRate, error) {
	src, dst, ok := strings.Cut(currencyPair, "-")
	if !ok ||
		fxql.ValidateCurrency("sourceCurrency", "Source currency", src) != nil ||
		fxql.ValidateCurrency("destinationCurrency", "Destination currency", dst) != nil {
		return nil, apperrors.NewValidationError("currency pair must be two 3-letter uppercase codes joined by '-', e.g. USD-GBP")
	}

	rate, err := s.rateRepo.FindExchangeRateByPair(ctx, currencyPair)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find exchange rate", slog.String("currency_pair", currencyPair))
		}
		return nil, err
	}
	return rate, nil
}

// ListExchangeRates retrieves stored rates ordered by pair.
func (s *fxqlService) ListExchangeRates(ctx context.Context, limit, offset int) ([]domain.ExchangeRate, error) {
	if offset < 0 {
		return nil, apperrors.NewValidationError("offset must not be negative")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rates, err := s.rateRepo.ListExchangeRates(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, err
	}
	return rates, nil
}

// GenerateMaxPairs returns count random valid blocks, defaulting to one more
// than the configured pair limit.
func (s *fxqlService) GenerateMaxPairs(ctx context.Context, count int) string {
	if count <= 0 {
		count = s.maxPairs + 1
	}
	if count > MaxGeneratedPairs {
		count = MaxGeneratedPairs
	}
	s.LogDebug(ctx, "Generating FXQL pairs", slog.Int("count", count))
	return fxql.GenerateMaxPairs(count, nil)
}
