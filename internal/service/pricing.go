package service

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ApplyDiscount returns the discount rounded to whole currency units and the resulting price.
func ApplyDiscount(price decimal.Decimal, percent int) (discount, final decimal.Decimal) {
	if percent <= 0 {
		return decimal.Zero, price
	}
	if percent > 100 {
		percent = 100
	}
	discount = price.Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Round(0)
	return discount, price.Sub(discount)
}

// MinorUnits converts an amount to integer cents for the gateway.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts gateway cents back to a currency amount.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
