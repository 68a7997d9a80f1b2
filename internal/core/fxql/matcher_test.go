package fxql_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fxql_service/internal/core/fxql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tuple struct {
	src, dst, buy, sell, capAmount string
}

func tuples(matches []fxql.Match) []tuple {
	out := make([]tuple, len(matches))
	for i, m := range matches {
		out[i] = tuple{m.SourceCurrency, m.DestinationCurrency, m.BuyPrice, m.SellPrice, m.CapAmount}
	}
	return out
}

func TestFindAll(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tuple
	}{
		{
			name:  "multi-line block",
			input: "USD-GBP {\n  BUY 0.85\n  SELL 0.90\n  CAP 10000\n}",
			want:  []tuple{{"USD", "GBP", "0.85", "0.90", "10000"}},
		},
		{
			name:  "single line without optional whitespace",
			input: "USD-GBP{BUY 1 SELL 2 CAP 3}",
			want:  []tuple{{"USD", "GBP", "1", "2", "3"}},
		},
		{
			name:  "back to back blocks",
			input: "USD-GBP { BUY 1 SELL 2 CAP 3 }EUR-JPY { BUY 145.20 SELL 146.50 CAP 50000 }",
			want: []tuple{
				{"USD", "GBP", "1", "2", "3"},
				{"EUR", "JPY", "145.20", "146.50", "50000"},
			},
		},
		{
			name:  "signs are captured for the validator",
			input: "USD-GBP { BUY -1 SELL +2 CAP -5 }",
			want:  []tuple{{"USD", "GBP", "-1", "+2", "-5"}},
		},
		{
			name:  "leading and trailing decimal points",
			input: "USD-GBP { BUY .5 SELL 5. CAP 0 }",
			want:  []tuple{{"USD", "GBP", ".5", "5.", "0"}},
		},
		{
			name:  "tabs and carriage returns",
			input: "NGN-USD\t{\r\n\tBUY 0.0022\r\n\tSELL 0.0023\r\n\tCAP 2000000\r\n}",
			want:  []tuple{{"NGN", "USD", "0.0022", "0.0023", "2000000"}},
		},
		{
			name:  "unanchored header inside a longer letter run",
			input: "XUSD-GBP { BUY 1 SELL 2 CAP 3 }",
			want:  []tuple{{"USD", "GBP", "1", "2", "3"}},
		},
		{name: "lowercase currency", input: "usd-GBP { BUY 1 SELL 2 CAP 3 }"},
		{name: "header followed by a letter", input: "USD-GBPX { BUY 1 SELL 2 CAP 3 }"},
		{name: "space inside header", input: "USD - GBP { BUY 1 SELL 2 CAP 3 }"},
		{name: "missing cap", input: "USD-GBP { BUY 1 SELL 2 }"},
		{name: "directives out of order", input: "USD-GBP { SELL 2 BUY 1 CAP 3 }"},
		{name: "decimal cap", input: "USD-GBP { BUY 1 SELL 2 CAP 10.5 }"},
		{name: "non-numeric price", input: "USD-GBP { BUY abc SELL 2 CAP 3 }"},
		{name: "keyword glued to value", input: "USD-GBP { BUY0.85 SELL 2 CAP 3 }"},
		{name: "value glued to next keyword", input: "USD-GBP { BUY 0.85SELL 2 CAP 3 }"},
		{name: "nested braces", input: "USD-GBP { { BUY 1 SELL 2 CAP 3 } }"},
		{name: "missing closing brace", input: "USD-GBP { BUY 1 SELL 2 CAP 3"},
		{name: "empty input", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fxql.FindAll(tt.input)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, tuples(got))
		})
	}
}

func TestFindAll_OffsetsCoverTheBlock(t *testing.T) {
	input := "noise USD-GBP { BUY 1 SELL 2 CAP 3 } trailing"

	matches := fxql.FindAll(input)

	require.Len(t, matches, 1)
	assert.Equal(t, "USD-GBP { BUY 1 SELL 2 CAP 3 }", matches[0].Text(input))
	assert.Equal(t, 6, matches[0].Start)
}

func TestMatchAt_RequiresExactOffset(t *testing.T) {
	input := " USD-GBP { BUY 1 SELL 2 CAP 3 }"

	_, ok := fxql.MatchAt(input, 0)
	assert.False(t, ok)

	m, ok := fxql.MatchAt(input, 1)
	require.True(t, ok)
	assert.Equal(t, len(input), m.End)
}

func TestFindAll_AdversarialInputStaysFast(t *testing.T) {
	input := strings.Repeat("AAA-BBB { BUY 1 SELL 2 "+strings.Repeat(" ", 64), 20000)

	start := time.Now()
	matches := fxql.FindAll(input)

	assert.Empty(t, matches)
	assert.Less(t, time.Since(start), 2*time.Second)
}
