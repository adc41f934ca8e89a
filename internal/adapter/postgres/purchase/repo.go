// Package purchase implements the purchase ledger repository using
// PostgreSQL. The ledger is append-only: rows are inserted once and never
// updated or deleted.
package purchase

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/skinstore/backend/internal/adapter/postgres"
	"github.com/skinstore/backend/internal/domain"
)

// Repo provides purchase persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new purchase repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO purchases (id, skin_id, price_usd_final, btc_usd_rate, rate_source, purchased_at, buyer_id, idempotency_key, version)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, skin_id, price_usd_final, btc_usd_rate, rate_source, purchased_at, buyer_id, idempotency_key, version`

// joinedColumns selects the purchase together with its skin row. The join
// deliberately ignores is_deleted: a purchase of a since-deleted skin is
// still a valid historical record.
const joinedColumns = `
	p.id, p.skin_id, p.price_usd_final, p.btc_usd_rate, p.rate_source,
	p.purchased_at, p.buyer_id, p.idempotency_key, p.version,
	s.id, s.name, s.base_price_usd, s.is_available, s.created_at, s.updated_at, s.deleted_at, s.version`

const getByIDSQL = `
SELECT` + joinedColumns + `
FROM purchases p
JOIN skins s ON p.skin_id = s.id
WHERE p.id = $1`

const getByIdempotencyKeySQL = `
SELECT` + joinedColumns + `
FROM purchases p
JOIN skins s ON p.skin_id = s.id
WHERE p.idempotency_key = $1`

// Create inserts a purchase row. A duplicate idempotency key surfaces as
// domain.ErrAlreadyExists (unique partial index); the caller decides whether
// that means "replay the winner" or a genuine failure.
func (r *Repo) Create(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		p.ID, p.SkinID, p.PriceUSDFinal, p.BTCUSDRate, p.RateSource.String(),
		p.PurchasedAt, p.BuyerID, p.IdempotencyKey, p.Version,
	)

	created, err := scanPurchase(row)
	if err != nil {
		return nil, postgres.MapError(err, "purchase", p.ID)
	}

	return created, nil
}

// GetByID returns a purchase with its skin row attached.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanJoinedPurchase(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "purchase", id)
	}

	return p, nil
}

// GetByIdempotencyKey returns the purchase created under the given key,
// with its skin row attached. domain.ErrNotFound if no purchase carries it.
func (r *Repo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Purchase, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanJoinedPurchase(querier.QueryRow(ctx, getByIdempotencyKeySQL, key))
	if err != nil {
		return nil, postgres.MapError(err, "purchase", uuid.Nil)
	}

	return p, nil
}

const (
	defaultTake = 50
	maxTake     = 200
)

// List returns purchases matching the filter, newest first (purchased_at
// DESC, id DESC tiebreak).
func (r *Repo) List(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if filter.Take <= 0 {
		filter.Take = defaultTake
	}
	if filter.Take > maxTake {
		filter.Take = maxTake
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	query := postgres.Builder().
		Select(
			"p.id", "p.skin_id", "p.price_usd_final", "p.btc_usd_rate", "p.rate_source",
			"p.purchased_at", "p.buyer_id", "p.idempotency_key", "p.version",
			"s.id", "s.name", "s.base_price_usd", "s.is_available", "s.created_at", "s.updated_at", "s.deleted_at", "s.version",
		).
		From("purchases p").
		Join("skins s ON p.skin_id = s.id").
		OrderBy("p.purchased_at DESC", "p.id DESC").
		Limit(uint64(filter.Take)).
		Offset(uint64(filter.Skip))

	if filter.BuyerID != nil {
		query = query.Where(squirrel.Eq{"p.buyer_id": *filter.BuyerID})
	}
	if filter.SkinID != nil {
		query = query.Where(squirrel.Eq{"p.skin_id": *filter.SkinID})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"p.purchased_at": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"p.purchased_at": *filter.To})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list purchases query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	purchases, err := scanJoinedPurchases(rows)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	return purchases, nil
}

// scanPurchase scans a bare purchase row (no skin attached).
func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var (
		p      domain.Purchase
		source string
	)
	if err := row.Scan(
		&p.ID, &p.SkinID, &p.PriceUSDFinal, &p.BTCUSDRate, &source,
		&p.PurchasedAt, &p.BuyerID, &p.IdempotencyKey, &p.Version,
	); err != nil {
		return nil, err
	}
	p.RateSource = domain.RateSource(source)

	return &p, nil
}

// scanJoinedPurchase scans a purchase row with its skin columns.
func scanJoinedPurchase(row pgx.Row) (*domain.Purchase, error) {
	var (
		p      domain.Purchase
		s      domain.Skin
		source string
	)
	if err := row.Scan(
		&p.ID, &p.SkinID, &p.PriceUSDFinal, &p.BTCUSDRate, &source,
		&p.PurchasedAt, &p.BuyerID, &p.IdempotencyKey, &p.Version,
		&s.ID, &s.Name, &s.BasePriceUSD, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt, &s.Version,
	); err != nil {
		return nil, err
	}
	p.RateSource = domain.RateSource(source)
	p.Skin = &s

	return &p, nil
}

// scanJoinedPurchases scans multiple joined rows.
func scanJoinedPurchases(rows pgx.Rows) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	for rows.Next() {
		var (
			p      domain.Purchase
			s      domain.Skin
			source string
		)
		if err := rows.Scan(
			&p.ID, &p.SkinID, &p.PriceUSDFinal, &p.BTCUSDRate, &source,
			&p.PurchasedAt, &p.BuyerID, &p.IdempotencyKey, &p.Version,
			&s.ID, &s.Name, &s.BasePriceUSD, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt, &s.Version,
		); err != nil {
			return nil, err
		}
		p.RateSource = domain.RateSource(source)
		p.Skin = &s
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if purchases == nil {
		purchases = []domain.Purchase{}
	}

	return purchases, nil
}
