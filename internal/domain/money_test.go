package domain_test

import (
	"testing"

	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		unit   currency.Unit
		want   string
	}{
		{
			name:   "whole pesos",
			amount: decimal.NewFromInt(2500),
			unit:   currency.MustParseISO("ARS"),
			want:   "$2500",
		},
		{
			name:   "fraction",
			amount: decimal.RequireFromString("12.5"),
			unit:   currency.MustParseISO("ARS"),
			want:   "$12.5",
		},
		{
			name:   "prefix does not follow the unit",
			amount: decimal.NewFromInt(10),
			unit:   currency.EUR,
			want:   "$10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NewMoney(tt.amount, tt.unit).String())
		})
	}
}
