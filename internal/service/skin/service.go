// Package skin implements catalog management: create, update, soft-delete
// and listing of purchasable skins.
package skin

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skinstore/backend/internal/config"
	"github.com/skinstore/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type skinRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Skin, error)
	Create(ctx context.Context, name string, basePriceUSD decimal.Decimal, isAvailable bool) (*domain.Skin, error)
	Update(ctx context.Context, id uuid.UUID, params domain.SkinUpdate) (*domain.Skin, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.SkinFilter) ([]domain.Skin, error)
	Count(ctx context.Context, filter domain.SkinFilter) (int, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the catalog business logic.
type Service struct {
	skins skinRepo
	cfg   config.CatalogConfig
	log   *slog.Logger
}

// NewService creates a new catalog service.
func NewService(log *slog.Logger, skins skinRepo, cfg config.CatalogConfig) *Service {
	return &Service{
		skins: skins,
		cfg:   cfg,
		log:   log.With("service", "skin"),
	}
}

// GetByID returns a skin by ID. Soft-deleted skins are not found.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Skin, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.skins.GetByID(ctx, id)
}

// Create adds a new skin to the catalog.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Skin, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.skins.Create(ctx, input.Name, input.BasePriceUSD, input.IsAvailable)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "skin created",
		slog.String("skin_id", created.ID.String()),
		slog.String("name", created.Name))

	return created, nil
}

// Update applies a partial, version-checked update. domain.ErrConflict means
// the caller's version token is stale and the update was not applied.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Skin, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.skins.Update(ctx, id, domain.SkinUpdate{
		Name:         input.Name,
		BasePriceUSD: input.BasePriceUSD,
		IsAvailable:  input.IsAvailable,
		Version:      input.Version,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "skin updated",
		slog.String("skin_id", updated.ID.String()),
		slog.Int64("version", updated.Version))

	return updated, nil
}

// SoftDelete removes a skin from every normal read path. Historical
// purchases keep referencing it.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.skins.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "skin soft-deleted", slog.String("skin_id", id.String()))

	return nil
}

// List returns catalog skins matching the filter, newest first, with the
// total match count for pagination.
func (s *Service) List(ctx context.Context, filter domain.SkinFilter) ([]domain.Skin, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.DefaultPageSize
	}
	if filter.Limit > s.cfg.MaxPageSize {
		filter.Limit = s.cfg.MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	skins, err := s.skins.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.skins.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return skins, total, nil
}
