package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/skinstore/backend/internal/domain"
	"github.com/skinstore/backend/internal/service/purchase"
)

// purchaseService defines the minimal interface needed by PurchaseHandler.
type purchaseService interface {
	Create(ctx context.Context, input purchase.CreateInput) (*domain.Purchase, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Purchase, error)
	List(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, error)
}

// rateService defines the rate lookup needed for purchase pricing.
type rateService interface {
	GetCurrentRate(ctx context.Context) (*domain.RateQuote, error)
}

// PurchaseHandler serves purchase REST endpoints.
type PurchaseHandler struct {
	svc   purchaseService
	rates rateService
	log   *slog.Logger
}

// NewPurchaseHandler creates a PurchaseHandler.
func NewPurchaseHandler(svc purchaseService, rates rateService, logger *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{svc: svc, rates: rates, log: logger.With("handler", "purchases")}
}

type createPurchaseRequest struct {
	SkinID  string `json:"skinId"`
	BuyerID string `json:"buyerId"`
}

type purchaseListResponse struct {
	Items []purchaseResponse `json:"items"`
}

type purchaseResponse struct {
	ID             string        `json:"id"`
	SkinID         string        `json:"skinId"`
	PriceUSDFinal  string        `json:"priceUsdFinal"`
	BTCUSDRate     string        `json:"btcUsdRate"`
	RateSource     string        `json:"rateSource"`
	PurchasedAt    time.Time     `json:"purchasedAt"`
	BuyerID        string        `json:"buyerId"`
	IdempotencyKey *string       `json:"idempotencyKey,omitempty"`
	Skin           *skinResponse `json:"skin,omitempty"`
}

// Create handles POST /purchases. An Idempotency-Key header makes the call
// safe to retry: the same key always yields the same purchase.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	skinID, err := uuid.Parse(req.SkinID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skinId")
		return
	}

	var key *string
	if v := r.Header.Get("Idempotency-Key"); v != "" {
		key = &v
	}

	quote, err := h.rates.GetCurrentRate(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), purchase.CreateInput{
		SkinID:         skinID,
		BuyerID:        req.BuyerID,
		Rate:           quote.Rate,
		RateSource:     quote.Source,
		IdempotencyKey: key,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPurchaseResponse(created))
}

// GetByID handles GET /purchases/{id}.
func (h *PurchaseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPurchaseResponse(p))
}

// GetByKey handles GET /purchases/by-key/{key}.
func (h *PurchaseHandler) GetByKey(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByIdempotencyKey(r.Context(), r.PathValue("key"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPurchaseResponse(p))
}

// List handles GET /purchases with optional buyerId, skinId, from, to,
// skip and take query parameters.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePurchaseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	purchases, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items := make([]purchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, toPurchaseResponse(&purchases[i]))
	}

	writeJSON(w, http.StatusOK, purchaseListResponse{Items: items})
}

func parsePurchaseFilter(q url.Values) (domain.PurchaseFilter, error) {
	var filter domain.PurchaseFilter

	if v := q.Get("buyerId"); v != "" {
		filter.BuyerID = &v
	}
	if v := q.Get("skinId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errors.New("invalid skinId")
		}
		filter.SkinID = &id
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("invalid from timestamp")
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("invalid to timestamp")
		}
		filter.To = &t
	}
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.New("invalid skip")
		}
		filter.Skip = n
	}
	if v := q.Get("take"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.New("invalid take")
		}
		filter.Take = n
	}

	return filter, nil
}

func (h *PurchaseHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var unavailable *domain.SkinUnavailableError
	var external *domain.ExternalServiceError

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unavailable):
		status := http.StatusConflict
		if unavailable.Reason == domain.ReasonNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, unavailable.Error())
	case errors.As(err, &external):
		writeError(w, http.StatusServiceUnavailable, external.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "purchase not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "duplicate purchase")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toPurchaseResponse(p *domain.Purchase) purchaseResponse {
	resp := purchaseResponse{
		ID:             p.ID.String(),
		SkinID:         p.SkinID.String(),
		PriceUSDFinal:  p.PriceUSDFinal.StringFixed(2),
		BTCUSDRate:     p.BTCUSDRate.String(),
		RateSource:     p.RateSource.String(),
		PurchasedAt:    p.PurchasedAt,
		BuyerID:        p.BuyerID,
		IdempotencyKey: p.IdempotencyKey,
	}
	if p.Skin != nil {
		skin := toSkinResponse(p.Skin)
		resp.Skin = &skin
	}
	return resp
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
