package coingecko

import "github.com/shopspring/decimal"

// simplePriceResponse mirrors the /simple/price payload:
// {"bitcoin":{"usd":12345.67}}
type simplePriceResponse map[string]map[string]decimal.Decimal

// rate extracts the bitcoin/usd quote. ok is false when the payload does
// not carry it.
func (r simplePriceResponse) rate() (decimal.Decimal, bool) {
	quotes, ok := r["bitcoin"]
	if !ok {
		return decimal.Decimal{}, false
	}
	usd, ok := quotes["usd"]
	return usd, ok
}
