package fxql

import (
	"math/rand/v2"

	"github.com/SscSPs/fxql_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultGeneratedPairs is one more than DefaultMaxPairs, so a generated
// submission trips the pair limit.
const DefaultGeneratedPairs = DefaultMaxPairs + 1

var generatorCurrencies = []string{"USD", "EUR", "GBP", "JPY", "NGN", "AUD", "CAD", "CHF", "CNY", "INR"}

// GenerateMaxPairs builds a submission of n random, valid blocks. Source and
// destination always differ; pairs may repeat. A nil r uses the global source.
func GenerateMaxPairs(n int, r *rand.Rand) string {
	if n <= 0 {
		n = DefaultGeneratedPairs
	}
	intN := rand.IntN
	float := rand.Float64
	if r != nil {
		intN = r.IntN
		float = r.Float64
	}

	price := func() decimal.Decimal {
		return decimal.NewFromFloat(0.1 + float()*1.9).Round(4)
	}

	records := make([]domain.QuoteRecord, 0, n)
	for len(records) < n {
		src := generatorCurrencies[intN(len(generatorCurrencies))]
		dst := generatorCurrencies[intN(len(generatorCurrencies))]
		if src == dst {
			continue
		}
		records = append(records, domain.QuoteRecord{
			SourceCurrency:      src,
			DestinationCurrency: dst,
			BuyPrice:            price(),
			SellPrice:           price(),
			CapAmount:           int64(1001 + intN(1000000-1001)),
		})
	}
	return FormatAll(records)
}
