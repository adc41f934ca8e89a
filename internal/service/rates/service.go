// Package rates serves the current BTC/USD rate from a two-tier in-process
// cache over the upstream quote provider.
//
// The fresh slot bounds how often the upstream is called (every FreshTTL at
// most); the fallback slot bounds how stale a quote may get when the
// upstream is down (FallbackMaxAge). Fallback is consulted only on actual
// upstream failure, never proactively.
package rates

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/skinstore/backend/internal/config"
	"github.com/skinstore/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type rateProvider interface {
	FetchRate(ctx context.Context) (decimal.Decimal, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// slot is one cached observation. observedAt is when the upstream reported
// the rate; storedAt is when it entered the cache. Expiry is measured from
// storedAt, the age reported to callers from observedAt.
type slot struct {
	rate       decimal.Decimal
	observedAt time.Time
	storedAt   time.Time
}

// Service implements rate retrieval with caching and bounded fallback.
type Service struct {
	provider rateProvider
	clock    clockwork.Clock
	cfg      config.RatesConfig
	log      *slog.Logger

	mu       sync.Mutex
	fresh    *slot
	fallback *slot
}

// NewService creates a new rates service.
func NewService(log *slog.Logger, provider rateProvider, clock clockwork.Clock, cfg config.RatesConfig) *Service {
	return &Service{
		provider: provider,
		clock:    clock,
		cfg:      cfg,
		log:      log.With("service", "rates"),
	}
}

// GetCurrentRate returns the rate to price a purchase with.
//
// Resolution order: fresh cache slot (within FreshTTL) tagged cache;
// otherwise a live upstream fetch tagged external, which repopulates both
// slots; on upstream failure the fallback slot tagged fallback, if its
// quote is still within FallbackMaxAge. When all three fail the error is a
// *domain.ExternalServiceError wrapping the upstream cause. Context
// cancellation passes through untranslated.
func (s *Service) GetCurrentRate(ctx context.Context) (*domain.RateQuote, error) {
	now := s.clock.Now()

	if q := s.fromFresh(now); q != nil {
		s.log.DebugContext(ctx, "rate served from cache",
			slog.String("rate", q.Rate.String()), slog.Int("age_seconds", q.AgeSeconds))
		return q, nil
	}

	rate, err := s.provider.FetchRate(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return s.fromFallback(ctx, now, err)
	}

	s.store(rate, now)

	s.log.DebugContext(ctx, "rate fetched from upstream", slog.String("rate", rate.String()))

	return &domain.RateQuote{
		Rate:   rate,
		AsOf:   now,
		Source: domain.RateSourceExternal,
	}, nil
}

// fromFresh returns a quote from the fresh slot, or nil on miss/expiry.
func (s *Service) fromFresh(now time.Time) *domain.RateQuote {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fresh == nil || now.Sub(s.fresh.storedAt) >= s.cfg.FreshTTL {
		return nil
	}

	return &domain.RateQuote{
		Rate:       s.fresh.rate,
		AsOf:       s.fresh.observedAt,
		Source:     domain.RateSourceCache,
		AgeSeconds: int(now.Sub(s.fresh.observedAt).Seconds()),
	}
}

// fromFallback serves the fallback slot after an upstream failure, or
// translates the failure when the slot is empty or too old.
func (s *Service) fromFallback(ctx context.Context, now time.Time, cause error) (*domain.RateQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fallback == nil || now.Sub(s.fallback.observedAt) >= s.cfg.FallbackMaxAge {
		s.log.ErrorContext(ctx, "rate upstream failed with no usable fallback",
			slog.String("error", cause.Error()))
		return nil, &domain.ExternalServiceError{Service: "coingecko", Err: cause}
	}

	age := int(now.Sub(s.fallback.observedAt).Seconds())
	s.log.WarnContext(ctx, "rate served from stale fallback",
		slog.String("rate", s.fallback.rate.String()),
		slog.Int("age_seconds", age),
		slog.String("upstream_error", cause.Error()))

	return &domain.RateQuote{
		Rate:       s.fallback.rate,
		AsOf:       s.fallback.observedAt,
		Source:     domain.RateSourceFallback,
		AgeSeconds: age,
	}, nil
}

// store populates both cache slots with a freshly observed rate.
func (s *Service) store(rate decimal.Decimal, observedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := slot{rate: rate, observedAt: observedAt, storedAt: observedAt}
	s.fresh = &entry
	fallbackEntry := entry
	s.fallback = &fallbackEntry
}
