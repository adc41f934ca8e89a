package skin

import (
	"github.com/shopspring/decimal"

	"github.com/skinstore/backend/internal/domain"
)

const maxNameLen = 200

// CreateInput holds parameters for adding a skin to the catalog.
type CreateInput struct {
	Name         string
	BasePriceUSD decimal.Decimal
	IsAvailable  bool
}

// Validate validates the creation input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	errs = append(errs, validatePrice(i.BasePriceUSD)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for a partial catalog update. nil fields are
// left unchanged; at least one must be set.
type UpdateInput struct {
	Name         *string
	BasePriceUSD *decimal.Decimal
	IsAvailable  *bool
	Version      int64
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == nil && i.BasePriceUSD == nil && i.IsAvailable == nil {
		errs = append(errs, domain.FieldError{Field: "update", Message: "no fields to update"})
	}

	if i.Name != nil {
		if *i.Name == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
		} else if len(*i.Name) > maxNameLen {
			errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
		}
	}

	if i.BasePriceUSD != nil {
		errs = append(errs, validatePrice(*i.BasePriceUSD)...)
	}

	if i.Version < 1 {
		errs = append(errs, domain.FieldError{Field: "version", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validatePrice checks that a price is non-negative with at most two
// decimal places (the persisted precision).
func validatePrice(price decimal.Decimal) []domain.FieldError {
	var errs []domain.FieldError

	if price.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "base_price_usd", Message: "must not be negative"})
	}
	if price.Exponent() < -2 {
		errs = append(errs, domain.FieldError{Field: "base_price_usd", Message: "at most 2 decimal places"})
	}

	return errs
}
