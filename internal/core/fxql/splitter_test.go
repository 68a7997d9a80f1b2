package fxql_test

import (
	"testing"

	"github.com/SscSPs/fxql_service/internal/core/fxql"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "USD-GBP {\n BUY 1\n}", fxql.Normalize(`  USD-GBP {\n BUY 1\n}  `))
	assert.Equal(t, "", fxql.Normalize(" \n\t "))
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "splits after each closing brace",
			input: "USD-GBP { A }\n\nEUR-JPY { B }",
			want:  []string{"USD-GBP { A }", "EUR-JPY { B }"},
		},
		{
			name:  "keeps trailing text without a brace",
			input: "USD-GBP { A }   trailing words",
			want:  []string{"USD-GBP { A }", "trailing words"},
		},
		{
			name:  "adjacent braces",
			input: "}}",
			want:  []string{"}", "}"},
		},
		{
			name:  "no brace at all",
			input: "just text",
			want:  []string{"just text"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fxql.SplitStatements(tt.input))
		})
	}
}
