// Package purchase implements the purchase ledger: idempotent, transactional
// creation of purchase records and the read operations over them.
package purchase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skinstore/backend/internal/config"
	"github.com/skinstore/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type skinRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Skin, error)
	TouchVersion(ctx context.Context, id uuid.UUID, version int64) error
}

type purchaseRepo interface {
	Create(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Purchase, error)
	List(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the purchase ledger business logic.
type Service struct {
	skins     skinRepo
	purchases purchaseRepo
	tx        txManager
	cfg       config.CatalogConfig
	log       *slog.Logger
}

// NewService creates a new purchase service.
func NewService(log *slog.Logger, skins skinRepo, purchases purchaseRepo, tx txManager, cfg config.CatalogConfig) *Service {
	return &Service{
		skins:     skins,
		purchases: purchases,
		tx:        tx,
		cfg:       cfg,
		log:       log.With("service", "purchase"),
	}
}
