package domain

import "github.com/shopspring/decimal"

// rateDivisor scales the BTC/USD rate into a price multiplier:
// a rate of 50000 doubles the base price.
var rateDivisor = decimal.NewFromInt(50000)

var promoDiscount = decimal.RequireFromString("0.9")

// FinalPrice computes the price paid for a skin given its base price and the
// current BTC/USD rate:
//
//	basePrice × (1 + rate/50000), rounded to 2 decimal places.
//
// Rounding is half-away-from-zero. The function is pure: same inputs always
// produce the same output.
func FinalPrice(basePriceUSD, btcUSDRate decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(btcUSDRate.Div(rateDivisor))
	return basePriceUSD.Mul(multiplier).Round(2)
}

// PromoFinalPrice is FinalPrice with an additional 10% discount applied
// before rounding.
func PromoFinalPrice(basePriceUSD, btcUSDRate decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(btcUSDRate.Div(rateDivisor))
	return basePriceUSD.Mul(multiplier).Mul(promoDiscount).Round(2)
}
