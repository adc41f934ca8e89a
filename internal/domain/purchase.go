package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an append-only record of a completed sale. The final price is
// snapshotted at purchase time, so later catalog changes never affect it.
// No operation updates or deletes a purchase after creation.
type Purchase struct {
	ID            uuid.UUID
	SkinID        uuid.UUID
	PriceUSDFinal decimal.Decimal
	BTCUSDRate    decimal.Decimal
	RateSource    RateSource
	PurchasedAt   time.Time
	BuyerID       string

	// IdempotencyKey scopes "same logical operation" across client retries.
	// When present it is unique across all purchases, enforced by a partial
	// unique index in the store.
	IdempotencyKey *string

	Version int64

	// Skin is the catalog row referenced by SkinID, attached on reads
	// for convenience.
	Skin *Skin
}

// PurchaseFilter contains filtering and pagination parameters for listing
// purchases. Zero-valued fields are ignored.
type PurchaseFilter struct {
	BuyerID *string
	SkinID  *uuid.UUID
	From    *time.Time
	To      *time.Time
	Skip    int
	Take    int
}
