package purchase

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skinstore/backend/internal/domain"
)

const (
	maxBuyerIDLen        = 256
	maxIdempotencyKeyLen = 128
)

// CreateInput holds parameters for purchase creation. The rate and its
// source come from the rates service; the ledger snapshots them as-is.
type CreateInput struct {
	SkinID         uuid.UUID
	BuyerID        string
	Rate           decimal.Decimal
	RateSource     domain.RateSource
	IdempotencyKey *string
}

// Validate validates the purchase creation input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.SkinID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "skin_id", Message: "required"})
	}

	if i.BuyerID == "" {
		errs = append(errs, domain.FieldError{Field: "buyer_id", Message: "required"})
	} else if len(i.BuyerID) > maxBuyerIDLen {
		errs = append(errs, domain.FieldError{Field: "buyer_id", Message: "too long"})
	}

	if !i.Rate.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "rate", Message: "must be positive"})
	}

	if !i.RateSource.IsValid() {
		errs = append(errs, domain.FieldError{Field: "rate_source", Message: "unknown source"})
	}

	if i.IdempotencyKey != nil {
		if *i.IdempotencyKey == "" {
			errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "must not be empty when present"})
		} else if len(*i.IdempotencyKey) > maxIdempotencyKeyLen {
			errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "too long"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
