package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where a rate quote came from.
type RateSource string

const (
	// RateSourceExternal means the rate was fetched live from the upstream API.
	RateSourceExternal RateSource = "external"
	// RateSourceCache means the rate was served from the fresh cache slot.
	RateSourceCache RateSource = "cache"
	// RateSourceFallback means the upstream failed and a stale-but-bounded
	// cached rate was served instead.
	RateSourceFallback RateSource = "fallback"
)

func (s RateSource) String() string { return string(s) }

func (s RateSource) IsValid() bool {
	switch s {
	case RateSourceExternal, RateSourceCache, RateSourceFallback:
		return true
	}
	return false
}

// RateQuote is an observed BTC/USD exchange rate. Quotes are ephemeral:
// they live only in the rate cache and are never persisted.
type RateQuote struct {
	Rate   decimal.Decimal
	AsOf   time.Time
	Source RateSource

	// AgeSeconds is the elapsed time since the rate was originally observed.
	// Zero for live fetches.
	AgeSeconds int
}
