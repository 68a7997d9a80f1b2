package fxql_test

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/SscSPs/fxql_service/internal/apperrors"
	"github.com/SscSPs/fxql_service/internal/core/domain"
	"github.com/SscSPs/fxql_service/internal/core/fxql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(pair, buy, sell, capAmount string) string {
	return pair + " {\n  BUY " + buy + "\n  SELL " + sell + "\n  CAP " + capAmount + "\n}"
}

func assertRecord(t *testing.T, rec domain.QuoteRecord, src, dst, buy, sell string, capAmount int64) {
	t.Helper()
	assert.Equal(t, src, rec.SourceCurrency)
	assert.Equal(t, dst, rec.DestinationCurrency)
	assert.True(t, decimal.RequireFromString(buy).Equal(rec.BuyPrice), "buy price %s != %s", rec.BuyPrice, buy)
	assert.True(t, decimal.RequireFromString(sell).Equal(rec.SellPrice), "sell price %s != %s", rec.SellPrice, sell)
	assert.Equal(t, capAmount, rec.CapAmount)
}

func TestParse_SingleBlock(t *testing.T) {
	res, err := fxql.NewParser().Parse("USD-GBP { BUY 0.85\nSELL 0.90\nCAP 10000 }")

	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assertRecord(t, res.Records[0], "USD", "GBP", "0.85", "0.90", 10000)
	assert.Equal(t, 1, res.Parsed)
	assert.False(t, res.Exceeded())
}

func TestParse_EscapedNewlines(t *testing.T) {
	raw := `USD-GBP {\n  BUY 0.85\n  SELL 0.90\n  CAP 10000\n}\n\nEUR-JPY {\n  BUY 145.20\n  SELL 146.50\n  CAP 50000\n}`

	res, err := fxql.NewParser().Parse(raw)

	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assertRecord(t, res.Records[0], "USD", "GBP", "0.85", "0.90", 10000)
	assertRecord(t, res.Records[1], "EUR", "JPY", "145.20", "146.50", 50000)
}

func TestParse_KeepsSubmissionOrderAndDuplicates(t *testing.T) {
	raw := strings.Join([]string{
		block("USD-GBP", "0.85", "0.90", "10000"),
		block("NGN-USD", "0.0022", "0.0023", "2000000"),
		block("USD-GBP", "1.20", "1.25", "5000"),
	}, "\n\n")

	res, err := fxql.NewParser().Parse(raw)

	require.NoError(t, err)
	require.Len(t, res.Records, 3)
	assert.Equal(t, "USD-GBP", res.Records[0].PairKey())
	assert.Equal(t, "NGN-USD", res.Records[1].PairKey())
	assertRecord(t, res.Records[2], "USD", "GBP", "1.20", "1.25", 5000)
}

func TestParse_InvalidOnlyStatement(t *testing.T) {
	raw := block("usd-GBP", "0.85", "0.90", "-10000")

	res, err := fxql.NewParser().Parse(raw)

	require.Error(t, err)
	assert.ErrorIs(t, err, fxql.ErrNoValidStatements)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, res.Records)
	assert.Equal(t, 1, res.Unmatched)
}

func TestParse_DiscardsInvalidRecordButKeepsOthers(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	raw := block("USD-GBP", "0.85", "0.90", "-1") + "\n" + block("EUR-JPY", "145.20", "146.50", "50000")

	res, err := fxql.NewParser(fxql.WithLogger(logger)).Parse(raw)

	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "EUR-JPY", res.Records[0].PairKey())
	assert.Equal(t, 1, res.Rejected)
	assert.Contains(t, logs.String(), "Failed to validate FXQL block")
	assert.Contains(t, logs.String(), "CAP amount must be a non-negative integer.")
}

func TestParse_UnmatchedStatementIsLoggedAndSkipped(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	raw := "garbage { nothing here }\n" + block("USD-GBP", "1", "2", "3")

	res, err := fxql.NewParser(fxql.WithLogger(logger)).Parse(raw)

	require.NoError(t, err)
	assert.Len(t, res.Records, 1)
	assert.Equal(t, 1, res.Unmatched)
	assert.Contains(t, logs.String(), "Failed match at statement")
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := fxql.NewParser().Parse("   ")

	assert.ErrorIs(t, err, fxql.ErrNoValidStatements)
}

func TestParse_CeilingStopsAcceptingButKeepsCounting(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	blocks := make([]string, 5)
	for i := range blocks {
		blocks[i] = block("USD-GBP", "1", "2", "3")
	}

	res, err := fxql.NewParser(fxql.WithMaxPairs(3), fxql.WithLogger(logger)).Parse(strings.Join(blocks, "\n"))

	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, 5, res.Parsed)
	assert.True(t, res.Exceeded())
	assert.Equal(t, 1, strings.Count(logs.String(), "Maximum currency pairs reached"))
}

func TestParse_DefaultCeiling(t *testing.T) {
	raw := fxql.GenerateMaxPairs(fxql.DefaultMaxPairs+1, rand.New(rand.NewPCG(7, 11)))

	res, err := fxql.NewParser().Parse(raw)

	require.NoError(t, err)
	assert.Len(t, res.Records, fxql.DefaultMaxPairs)
	assert.Equal(t, fxql.DefaultMaxPairs+1, res.Parsed)
	assert.True(t, res.Exceeded())
}

func TestParse_ExactlyAtCeilingIsNotExceeded(t *testing.T) {
	raw := fxql.GenerateMaxPairs(fxql.DefaultMaxPairs, rand.New(rand.NewPCG(3, 5)))

	res, err := fxql.NewParser().Parse(raw)

	require.NoError(t, err)
	assert.Len(t, res.Records, fxql.DefaultMaxPairs)
	assert.False(t, res.Exceeded())
}

func TestParse_FormatRoundTrip(t *testing.T) {
	records := []domain.QuoteRecord{
		{SourceCurrency: "USD", DestinationCurrency: "GBP", BuyPrice: decimal.RequireFromString("0.85"), SellPrice: decimal.RequireFromString("0.90"), CapAmount: 10000},
		{SourceCurrency: "NGN", DestinationCurrency: "USD", BuyPrice: decimal.RequireFromString("0.0022"), SellPrice: decimal.RequireFromString("0.0023"), CapAmount: 0},
	}

	for _, rec := range records {
		t.Run(rec.PairKey(), func(t *testing.T) {
			res, err := fxql.NewParser().Parse(fxql.Format(rec))
			require.NoError(t, err)
			require.Len(t, res.Records, 1)
			got := res.Records[0]
			assertRecord(t, got, rec.SourceCurrency, rec.DestinationCurrency, rec.BuyPrice.String(), rec.SellPrice.String(), rec.CapAmount)

			again, err := fxql.NewParser().Parse(fxql.Format(got))
			require.NoError(t, err)
			assert.Equal(t, fxql.Format(got), fxql.Format(again.Records[0]))
		})
	}
}

func TestGenerateMaxPairs(t *testing.T) {
	raw := fxql.GenerateMaxPairs(0, rand.New(rand.NewPCG(1, 2)))

	assert.Len(t, strings.Split(strings.TrimSpace(raw), "\n\n"), fxql.DefaultGeneratedPairs)

	res, err := fxql.NewParser(fxql.WithMaxPairs(fxql.DefaultGeneratedPairs)).Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, fxql.DefaultGeneratedPairs, res.Parsed)
	assert.Zero(t, res.Rejected)
	for _, rec := range res.Records {
		assert.NotEqual(t, rec.SourceCurrency, rec.DestinationCurrency)
		assert.GreaterOrEqual(t, rec.CapAmount, int64(1001))
	}
}
