package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Skin is a purchasable catalog item. Skins are never physically removed:
// deletion only sets DeletedAt, and every normal read excludes deleted rows.
type Skin struct {
	ID           uuid.UUID
	Name         string
	BasePriceUSD decimal.Decimal
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time

	// Version changes on every update and is used to detect concurrent
	// modification during purchase creation.
	Version int64
}

// SkinUpdate holds the fields a catalog update may change. nil fields are
// left untouched. Version is the version token the caller last observed;
// the update applies only if it still matches.
type SkinUpdate struct {
	Name         *string
	BasePriceUSD *decimal.Decimal
	IsAvailable  *bool
	Version      int64
}

// SkinFilter contains filtering and pagination parameters for listing
// catalog skins. Zero-valued fields are ignored.
type SkinFilter struct {
	AvailableOnly bool
	Search        *string
	Limit         int
	Offset        int
}

// IsDeleted returns true if the skin has been soft-deleted.
func (s *Skin) IsDeleted() bool {
	return s.DeletedAt != nil
}

// Purchasable returns true if the skin can be bought right now.
func (s *Skin) Purchasable() bool {
	return !s.IsDeleted() && s.IsAvailable
}
