package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/skinstore/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedSkin inserts an available, non-deleted skin and returns it.
func SeedSkin(t *testing.T, pool *pgxpool.Pool) domain.Skin {
	t.Helper()
	return SeedSkinWith(t, pool, func(*domain.Skin) {})
}

// SeedSkinWith inserts a skin after applying mutate to the default values.
// Use it to seed unavailable or soft-deleted skins.
func SeedSkinWith(t *testing.T, pool *pgxpool.Pool, mutate func(*domain.Skin)) domain.Skin {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	skin := domain.Skin{
		ID:           uuid.New(),
		Name:         "Test Skin " + uniqueSuffix(),
		BasePriceUSD: decimal.RequireFromString("9.99"),
		IsAvailable:  true,
		CreatedAt:    now,
		Version:      1,
	}
	mutate(&skin)

	_, err := pool.Exec(ctx,
		`INSERT INTO skins (id, name, base_price_usd, is_available, is_deleted, deleted_at, created_at, updated_at, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		skin.ID, skin.Name, skin.BasePriceUSD, skin.IsAvailable, skin.IsDeleted(), skin.DeletedAt,
		skin.CreatedAt, skin.UpdatedAt, skin.Version,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSkin insert: %v", err)
	}

	return skin
}

// SeedPurchase inserts a purchase row for the given skin and returns it.
// The final price is computed from the skin's base price and the rate, the
// same way the ledger does it.
func SeedPurchase(t *testing.T, pool *pgxpool.Pool, skin domain.Skin, buyerID string, key *string) domain.Purchase {
	t.Helper()
	return SeedPurchaseAt(t, pool, skin, buyerID, key, time.Now().UTC().Truncate(time.Microsecond))
}

// SeedPurchaseAt is SeedPurchase with an explicit purchase timestamp, used by
// ordering and time-range tests.
func SeedPurchaseAt(t *testing.T, pool *pgxpool.Pool, skin domain.Skin, buyerID string, key *string, at time.Time) domain.Purchase {
	t.Helper()
	ctx := context.Background()

	rate := decimal.NewFromInt(43000)
	p := domain.Purchase{
		ID:             uuid.New(),
		SkinID:         skin.ID,
		PriceUSDFinal:  domain.FinalPrice(skin.BasePriceUSD, rate),
		BTCUSDRate:     rate,
		RateSource:     domain.RateSourceExternal,
		PurchasedAt:    at,
		BuyerID:        buyerID,
		IdempotencyKey: key,
		Version:        1,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO purchases (id, skin_id, price_usd_final, btc_usd_rate, rate_source, purchased_at, buyer_id, idempotency_key, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.SkinID, p.PriceUSDFinal, p.BTCUSDRate, p.RateSource.String(), p.PurchasedAt, p.BuyerID, p.IdempotencyKey, p.Version,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPurchase insert: %v", err)
	}

	return p
}
