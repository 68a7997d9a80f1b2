package fxql

import (
	"strconv"
	"strings"

	"github.com/SscSPs/fxql_service/internal/core/domain"
)

// Format renders rec as a canonical FXQL block. Parsing the output yields rec
// again.
func Format(rec domain.QuoteRecord) string {
	var b strings.Builder
	b.WriteString(rec.PairKey())
	b.WriteString(" {\n  BUY ")
	b.WriteString(rec.BuyPrice.String())
	b.WriteString("\n  SELL ")
	b.WriteString(rec.SellPrice.String())
	b.WriteString("\n  CAP ")
	b.WriteString(strconv.FormatInt(rec.CapAmount, 10))
	b.WriteString("\n}")
	return b.String()
}

// FormatAll renders records as one submission, separating blocks with a blank
// line.
func FormatAll(records []domain.QuoteRecord) string {
	blocks := make([]string, len(records))
	for i, rec := range records {
		blocks[i] = Format(rec)
	}
	return strings.Join(blocks, "\n\n")
}
