package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skinstore/backend/internal/domain"
)

// skinGetter is the catalog read needed for price quotes.
type skinGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Skin, error)
}

// RateHandler serves the current BTC/USD rate and per-skin price quotes.
type RateHandler struct {
	rates rateService
	skins skinGetter
	log   *slog.Logger
}

// NewRateHandler creates a RateHandler.
func NewRateHandler(rates rateService, skins skinGetter, logger *slog.Logger) *RateHandler {
	return &RateHandler{rates: rates, skins: skins, log: logger.With("handler", "rates")}
}

type rateResponse struct {
	Rate       string    `json:"rate"`
	AsOf       time.Time `json:"asOf"`
	Source     string    `json:"source"`
	AgeSeconds int       `json:"ageSeconds"`
}

type quoteResponse struct {
	SkinID          string       `json:"skinId"`
	BasePriceUSD    string       `json:"basePriceUsd"`
	FinalPrice      string       `json:"finalPrice"`
	PromoFinalPrice string       `json:"promoFinalPrice"`
	Rate            rateResponse `json:"rate"`
}

// Current handles GET /rates/current.
func (h *RateHandler) Current(w http.ResponseWriter, r *http.Request) {
	quote, err := h.rates.GetCurrentRate(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRateResponse(quote))
}

// Quote handles GET /skins/{id}/quote: the price the skin would sell for
// right now, with and without the promo discount.
func (h *RateHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skin id")
		return
	}

	skin, err := h.skins.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	quote, err := h.rates.GetCurrentRate(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		SkinID:          skin.ID.String(),
		BasePriceUSD:    skin.BasePriceUSD.StringFixed(2),
		FinalPrice:      domain.FinalPrice(skin.BasePriceUSD, quote.Rate).StringFixed(2),
		PromoFinalPrice: domain.PromoFinalPrice(skin.BasePriceUSD, quote.Rate).StringFixed(2),
		Rate:            toRateResponse(quote),
	})
}

func (h *RateHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var external *domain.ExternalServiceError

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "skin not found")
	case errors.As(err, &external):
		writeError(w, http.StatusServiceUnavailable, external.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toRateResponse(q *domain.RateQuote) rateResponse {
	return rateResponse{
		Rate:       q.Rate.String(),
		AsOf:       q.AsOf,
		Source:     q.Source.String(),
		AgeSeconds: q.AgeSeconds,
	}
}
