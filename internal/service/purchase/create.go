package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skinstore/backend/internal/domain"
)

// Create records a purchase exactly once per idempotency key.
//
// The whole operation runs in one transaction: replay lookup, skin load
// under a row lock, availability check, version touch, insert. Two
// concurrent calls with the same key can both miss the replay lookup;
// the unique index on idempotency_key then rejects the loser's insert,
// and Create resolves that by re-reading the winner after rollback. The
// caller always gets the single durable purchase for its key.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Purchase, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *domain.Purchase
	var replayed bool

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if input.IdempotencyKey != nil {
			existing, err := s.purchases.GetByIdempotencyKey(ctx, *input.IdempotencyKey)
			if err == nil {
				result = existing
				replayed = true
				return nil
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
		}

		skin, err := s.skins.GetForUpdate(ctx, input.SkinID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.SkinUnavailableError{SkinID: input.SkinID, Reason: domain.ReasonNotFound}
			}
			return err
		}
		if !skin.IsAvailable {
			return &domain.SkinUnavailableError{SkinID: input.SkinID, Reason: domain.ReasonNotAvailable}
		}

		if err := s.skins.TouchVersion(ctx, skin.ID, skin.Version); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return &domain.SkinUnavailableError{SkinID: input.SkinID, Reason: domain.ReasonConflict}
			}
			return err
		}

		created, err := s.purchases.Create(ctx, &domain.Purchase{
			ID:             uuid.New(),
			SkinID:         skin.ID,
			PriceUSDFinal:  domain.FinalPrice(skin.BasePriceUSD, input.Rate),
			BTCUSDRate:     input.Rate,
			RateSource:     input.RateSource,
			PurchasedAt:    time.Now().UTC().Truncate(time.Microsecond),
			BuyerID:        input.BuyerID,
			IdempotencyKey: input.IdempotencyKey,
			Version:        1,
		})
		if err != nil {
			return err
		}

		created.Skin = skin
		result = created
		return nil
	})
	if err != nil {
		// A concurrent call with the same key committed first. The tx has
		// rolled back; the winner's row is durable, so return it.
		if input.IdempotencyKey != nil && errors.Is(err, domain.ErrAlreadyExists) {
			winner, qerr := s.purchases.GetByIdempotencyKey(ctx, *input.IdempotencyKey)
			if qerr != nil {
				return nil, fmt.Errorf("resolve idempotency conflict: %w", qerr)
			}
			s.log.InfoContext(ctx, "purchase replayed after losing key race",
				slog.String("purchase_id", winner.ID.String()))
			return winner, nil
		}
		return nil, err
	}

	if replayed {
		s.log.InfoContext(ctx, "purchase replayed by idempotency key",
			slog.String("purchase_id", result.ID.String()))
		return result, nil
	}

	s.log.InfoContext(ctx, "purchase created",
		slog.String("purchase_id", result.ID.String()),
		slog.String("skin_id", result.SkinID.String()),
		slog.String("price_usd", result.PriceUSDFinal.String()),
		slog.String("rate_source", result.RateSource.String()))

	return result, nil
}
