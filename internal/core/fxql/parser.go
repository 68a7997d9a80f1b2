package fxql

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/fxql_service/internal/apperrors"
	"github.com/SscSPs/fxql_service/internal/core/domain"
)

// DefaultMaxPairs is the number of records one submission may carry.
const DefaultMaxPairs = 1000

// ErrNoValidStatements is returned when a submission yields no valid record.
var ErrNoValidStatements error = apperrors.NewValidationError("Invalid FXQL statement.")

// PairLimitError reports a submission carrying more records than allowed.
type PairLimitError struct {
	Limit int
	Got   int
}

func (e *PairLimitError) Error() string {
	return fmt.Sprintf("Maximum number of currency pairs exceeded. Allowed: %d, but got: %d", e.Limit, e.Got)
}

func (e *PairLimitError) Unwrap() error {
	return apperrors.ErrValidation
}

// Result is the outcome of parsing one submission.
type Result struct {
	// Records holds the accepted records in submission order, at most MaxPairs.
	Records []domain.QuoteRecord
	// Parsed counts every valid record, including those past the ceiling.
	Parsed int
	// Rejected counts blocks that matched the grammar but failed validation.
	Rejected int
	// Unmatched counts statements in which no block was found.
	Unmatched int
	MaxPairs  int
}

// Exceeded reports whether the submission carried more valid records than
// MaxPairs, counted before any deduplication.
func (r *Result) Exceeded() bool {
	return r.Parsed > r.MaxPairs
}

// Parser runs the split, match and validate pipeline over FXQL text.
// A Parser holds no per-call state and is safe for concurrent use.
type Parser struct {
	logger   *slog.Logger
	maxPairs int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLogger sets the logger that receives unmatched and rejected statements.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxPairs overrides DefaultMaxPairs.
func WithMaxPairs(n int) ParserOption {
	return func(p *Parser) {
		if n > 0 {
			p.maxPairs = n
		}
	}
}

// NewParser creates a Parser. Without WithLogger, log output is discarded.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxPairs: DefaultMaxPairs,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// accumulator carries the counters of a single Parse call.
type accumulator struct {
	result       Result
	ceilingNoted bool
}

func (a *accumulator) accept(p *Parser, rec domain.QuoteRecord) {
	a.result.Parsed++
	if len(a.result.Records) < a.result.MaxPairs {
		a.result.Records = append(a.result.Records, rec)
		return
	}
	if !a.ceilingNoted {
		a.ceilingNoted = true
		p.logger.Warn("Maximum currency pairs reached, further records are only counted",
			slog.Int("max_pairs", a.result.MaxPairs))
	}
}

// Parse extracts every valid record from raw. Statements that do not match the
// grammar and blocks that fail validation are logged and skipped. It returns
// ErrNoValidStatements when nothing valid remains.
func (p *Parser) Parse(raw string) (*Result, error) {
	acc := &accumulator{result: Result{MaxPairs: p.maxPairs}}

	statements := SplitStatements(Normalize(raw))
	for i, stmt := range statements {
		logger := p.logger.With(slog.Int("statement", i+1))

		matches := FindAll(stmt)
		if len(matches) == 0 {
			acc.result.Unmatched++
			logger.Warn("Failed match at statement", slog.String("fxql", stmt))
			continue
		}

		for _, m := range matches {
			logger.Debug("Matched FXQL block", slog.String("fxql", m.Text(stmt)))
			rec, errs := Validate(m)
			if len(errs) > 0 {
				acc.result.Rejected++
				logger.Warn("Failed to validate FXQL block",
					slog.String("pair", domain.PairKey(m.SourceCurrency, m.DestinationCurrency)),
					slog.String("error", errs.Error()),
				)
				continue
			}
			acc.accept(p, rec)
		}
	}

	if len(acc.result.Records) == 0 {
		return &acc.result, ErrNoValidStatements
	}
	return &acc.result, nil
}
