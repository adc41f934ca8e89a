// Package skin implements the catalog skin repository using PostgreSQL.
// Fixed-shape queries are raw SQL constants; the dynamic listing filter is
// built with squirrel.
package skin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/skinstore/backend/internal/adapter/postgres"
	"github.com/skinstore/backend/internal/domain"
)

// Repo provides skin persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new skin repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const skinColumns = `id, name, base_price_usd, is_available, created_at, updated_at, deleted_at, version`

const getByIDSQL = `
SELECT ` + skinColumns + `
FROM skins
WHERE id = $1 AND is_deleted = FALSE`

const getForUpdateSQL = getByIDSQL + `
FOR UPDATE`

const createSQL = `
INSERT INTO skins (id, name, base_price_usd, is_available, created_at, version)
VALUES ($1, $2, $3, $4, $5, 1)
RETURNING ` + skinColumns

const touchVersionSQL = `
UPDATE skins
SET updated_at = now(), version = version + 1
WHERE id = $1 AND version = $2 AND is_deleted = FALSE`

const softDeleteSQL = `
UPDATE skins
SET is_deleted = TRUE, deleted_at = now(), updated_at = now(), version = version + 1
WHERE id = $1 AND is_deleted = FALSE`

// GetByID returns a skin by primary key. Soft-deleted skins are invisible:
// the result is domain.ErrNotFound, same as a row that never existed.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Skin, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSkin(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "skin", id)
	}

	return s, nil
}

// GetForUpdate returns a skin by primary key with a row lock held until the
// surrounding transaction ends. Callers must run inside RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Skin, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSkin(querier.QueryRow(ctx, getForUpdateSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "skin", id)
	}

	return s, nil
}

// Create inserts a new skin and returns the persisted row.
func (r *Repo) Create(ctx context.Context, name string, basePriceUSD decimal.Decimal, isAvailable bool) (*domain.Skin, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	s, err := scanSkin(querier.QueryRow(ctx, createSQL, id, name, basePriceUSD, isAvailable, now))
	if err != nil {
		return nil, postgres.MapError(err, "skin", id)
	}

	return s, nil
}

// Update applies a partial update guarded by the version token. It returns
// domain.ErrConflict if the row changed since the caller read it, and
// domain.ErrNotFound if the skin does not exist or is soft-deleted.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.SkinUpdate) (*domain.Skin, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := postgres.Builder().
		Update("skins").
		Set("updated_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": id, "version": params.Version, "is_deleted": false}).
		Suffix("RETURNING " + skinColumns)

	if params.Name != nil {
		update = update.Set("name", *params.Name)
	}
	if params.BasePriceUSD != nil {
		update = update.Set("base_price_usd", *params.BasePriceUSD)
	}
	if params.IsAvailable != nil {
		update = update.Set("is_available", *params.IsAvailable)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update skin query: %w", err)
	}

	s, err := scanSkin(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMiss(ctx, id)
		}
		return nil, postgres.MapError(err, "skin", id)
	}

	return s, nil
}

// TouchVersion bumps the version of a skin the caller has already loaded,
// proving nothing changed in between. Zero rows affected means a concurrent
// update won: domain.ErrConflict.
func (r *Repo) TouchVersion(ctx context.Context, id uuid.UUID, version int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, touchVersionSQL, id, version)
	if err != nil {
		return postgres.MapError(err, "skin", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("skin %s: %w", id, domain.ErrConflict)
	}

	return nil
}

// SoftDelete marks a skin as deleted. Already-deleted and missing skins both
// return domain.ErrNotFound.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, softDeleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "skin", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("skin %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List returns non-deleted skins matching the filter, ordered by creation
// time (newest first) with id as tiebreak.
func (r *Repo) List(ctx context.Context, filter domain.SkinFilter) ([]domain.Skin, error) {
	filter = normalizeFilter(filter)
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := postgres.Builder().
		Select("id", "name", "base_price_usd", "is_available", "created_at", "updated_at", "deleted_at", "version").
		From("skins").
		Where(squirrel.Eq{"is_deleted": false}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query = applyFilter(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list skins query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list skins: %w", err)
	}
	defer rows.Close()

	skins, err := scanSkins(rows)
	if err != nil {
		return nil, fmt.Errorf("list skins: %w", err)
	}

	return skins, nil
}

// Count returns the number of non-deleted skins matching the filter,
// ignoring pagination.
func (r *Repo) Count(ctx context.Context, filter domain.SkinFilter) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := postgres.Builder().
		Select("count(*)").
		From("skins").
		Where(squirrel.Eq{"is_deleted": false})

	query = applyFilter(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count skins query: %w", err)
	}

	var count int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count skins: %w", err)
	}

	return count, nil
}

// applyFilter adds the optional predicates shared by List and Count.
func applyFilter(query squirrel.SelectBuilder, filter domain.SkinFilter) squirrel.SelectBuilder {
	if filter.AvailableOnly {
		query = query.Where(squirrel.Eq{"is_available": true})
	}
	if hasSearch(filter) {
		query = query.Where(squirrel.ILike{"name": "%" + *filter.Search + "%"})
	}
	return query
}

// classifyMiss decides whether a zero-row version-guarded update means the
// skin is gone or merely changed underneath the caller.
func (r *Repo) classifyMiss(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("skin %s: %w", id, domain.ErrConflict)
}

// scanSkin scans a single skin row.
func scanSkin(row pgx.Row) (*domain.Skin, error) {
	var s domain.Skin
	if err := row.Scan(
		&s.ID, &s.Name, &s.BasePriceUSD, &s.IsAvailable,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt, &s.Version,
	); err != nil {
		return nil, err
	}

	return &s, nil
}

// scanSkins scans multiple rows into a domain.Skin slice.
func scanSkins(rows pgx.Rows) ([]domain.Skin, error) {
	var skins []domain.Skin
	for rows.Next() {
		var s domain.Skin
		if err := rows.Scan(
			&s.ID, &s.Name, &s.BasePriceUSD, &s.IsAvailable,
			&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt, &s.Version,
		); err != nil {
			return nil, err
		}
		skins = append(skins, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if skins == nil {
		skins = []domain.Skin{}
	}

	return skins, nil
}
