package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// String renders the amount the way the storefront prints prices: "$2500".
// The "$" prefix is fixed; Currency is not consulted.
func (m Money) String() string {
	return "$" + m.Amount.String()
}
