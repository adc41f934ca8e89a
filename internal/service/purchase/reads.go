package purchase

import (
	"context"

	"github.com/google/uuid"

	"github.com/skinstore/backend/internal/domain"
)

// GetByID returns a purchase by primary key, with its skin attached.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.purchases.GetByID(ctx, id)
}

// GetByIdempotencyKey returns the purchase created under the given key.
func (s *Service) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Purchase, error) {
	if key == "" {
		return nil, domain.NewValidationError("idempotency_key", "required")
	}
	return s.purchases.GetByIdempotencyKey(ctx, key)
}

// List returns purchases matching the filter, newest first. Page size is
// clamped to the configured maximum; a snapshot per query, not consistent
// with concurrent writes.
func (s *Service) List(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, error) {
	if filter.Take <= 0 {
		filter.Take = s.cfg.DefaultPageSize
	}
	if filter.Take > s.cfg.MaxPageSize {
		filter.Take = s.cfg.MaxPageSize
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	return s.purchases.List(ctx, filter)
}
