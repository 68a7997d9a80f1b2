package fxql_test

import (
	"testing"

	"github.com/SscSPs/fxql_service/internal/apperrors"
	"github.com/SscSPs/fxql_service/internal/core/fxql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Success(t *testing.T) {
	rec, errs := fxql.Validate(fxql.Match{
		SourceCurrency:      "USD",
		DestinationCurrency: "GBP",
		BuyPrice:            "0.85",
		SellPrice:           "+0.90",
		CapAmount:           "10000",
	})

	require.Empty(t, errs)
	assert.Equal(t, "USD", rec.SourceCurrency)
	assert.Equal(t, "GBP", rec.DestinationCurrency)
	assert.True(t, decimal.RequireFromString("0.85").Equal(rec.BuyPrice))
	assert.True(t, decimal.RequireFromString("0.9").Equal(rec.SellPrice))
	assert.Equal(t, int64(10000), rec.CapAmount)
}

func TestValidate_ReportsEveryFailingField(t *testing.T) {
	_, errs := fxql.Validate(fxql.Match{
		SourceCurrency:      "usd",
		DestinationCurrency: "GB1",
		BuyPrice:            "0",
		SellPrice:           "1.2.3",
		CapAmount:           "-1",
	})

	require.Len(t, errs, 5)
	fields := make([]string, len(errs))
	for i, fe := range errs {
		fields[i] = fe.Field
	}
	assert.Equal(t, []string{"sourceCurrency", "destinationCurrency", "buyPrice", "sellPrice", "capAmount"}, fields)
	assert.ErrorIs(t, errs, apperrors.ErrValidation)
	assert.Contains(t, errs.Error(), "Source currency (CURR1) must be exactly 3 uppercase letters.")
	assert.Contains(t, errs.Error(), "Buy price must be a positive number")
	assert.Contains(t, errs.Error(), "Sell price must be a valid number")
	assert.Contains(t, errs.Error(), "CAP amount must be a non-negative integer.")
}

func TestValidateCurrency(t *testing.T) {
	for _, code := range []string{"USD", "NGN", "XAU"} {
		assert.Nil(t, fxql.ValidateCurrency("sourceCurrency", "Source currency (CURR1)", code), code)
	}
	for _, code := range []string{"usd", "Usd", "US", "USDT", "U$D", "12A", ""} {
		fe := fxql.ValidateCurrency("sourceCurrency", "Source currency (CURR1)", code)
		require.NotNil(t, fe, code)
		assert.Equal(t, "sourceCurrency", fe.Field)
	}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		text    string
		wantErr string
	}{
		{text: "0.0022"},
		{text: "145.20"},
		{text: ".5"},
		{text: "0", wantErr: "must be a positive number"},
		{text: "-0.85", wantErr: "must be a positive number"},
		{text: "", wantErr: "must be a valid number"},
		{text: "abc", wantErr: "must be a valid number"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			price, fe := fxql.ValidatePrice("buyPrice", "Buy price", tt.text)
			if tt.wantErr == "" {
				assert.Nil(t, fe)
				assert.True(t, price.IsPositive())
				return
			}
			require.NotNil(t, fe)
			assert.Contains(t, fe.Message, tt.wantErr)
		})
	}
}

func TestValidateCapAmount(t *testing.T) {
	tests := []struct {
		text    string
		want    int64
		wantErr string
	}{
		{text: "0", want: 0},
		{text: "+25", want: 25},
		{text: "2000000", want: 2000000},
		{text: "-10000", wantErr: "non-negative"},
		{text: "9223372036854775807", want: 9223372036854775807},
		{text: "9223372036854775808", wantErr: "must be an integer"},
		{text: "99999999999999999999", wantErr: "must be an integer"},
		{text: "10.5", wantErr: "must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, fe := fxql.ValidateCapAmount("capAmount", tt.text)
			if tt.wantErr == "" {
				assert.Nil(t, fe)
				assert.Equal(t, tt.want, got)
				return
			}
			require.NotNil(t, fe)
			assert.Contains(t, fe.Message, tt.wantErr)
		})
	}
}
