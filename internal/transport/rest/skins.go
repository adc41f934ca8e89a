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
	"github.com/shopspring/decimal"

	"github.com/skinstore/backend/internal/domain"
	skinservice "github.com/skinstore/backend/internal/service/skin"
)

// skinService defines the catalog operations needed by SkinHandler.
type skinService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Skin, error)
	Create(ctx context.Context, input skinservice.CreateInput) (*domain.Skin, error)
	Update(ctx context.Context, id uuid.UUID, input skinservice.UpdateInput) (*domain.Skin, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.SkinFilter) ([]domain.Skin, int, error)
}

// SkinHandler serves catalog REST endpoints.
type SkinHandler struct {
	svc skinService
	log *slog.Logger
}

// NewSkinHandler creates a SkinHandler.
func NewSkinHandler(svc skinService, logger *slog.Logger) *SkinHandler {
	return &SkinHandler{svc: svc, log: logger.With("handler", "skins")}
}

type createSkinRequest struct {
	Name         string `json:"name"`
	BasePriceUSD string `json:"basePriceUsd"`
	IsAvailable  *bool  `json:"isAvailable"`
}

type updateSkinRequest struct {
	Name         *string `json:"name"`
	BasePriceUSD *string `json:"basePriceUsd"`
	IsAvailable  *bool   `json:"isAvailable"`
	Version      int64   `json:"version"`
}

type skinResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	BasePriceUSD string     `json:"basePriceUsd"`
	IsAvailable  bool       `json:"isAvailable"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
	Version      int64      `json:"version"`
}

type skinListResponse struct {
	Items []skinResponse `json:"items"`
	Total int            `json:"total"`
}

// Create handles POST /skins.
func (h *SkinHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := decimal.NewFromString(req.BasePriceUSD)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid basePriceUsd")
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	skin, err := h.svc.Create(r.Context(), skinservice.CreateInput{
		Name:         req.Name,
		BasePriceUSD: price,
		IsAvailable:  available,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSkinResponse(skin))
}

// GetByID handles GET /skins/{id}.
func (h *SkinHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skin id")
		return
	}

	skin, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSkinResponse(skin))
}

// Update handles PATCH /skins/{id}. The request must carry the version the
// caller last observed; a stale version yields 409.
func (h *SkinHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skin id")
		return
	}

	var req updateSkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := skinservice.UpdateInput{
		Name:        req.Name,
		IsAvailable: req.IsAvailable,
		Version:     req.Version,
	}
	if req.BasePriceUSD != nil {
		price, err := decimal.NewFromString(*req.BasePriceUSD)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid basePriceUsd")
			return
		}
		input.BasePriceUSD = &price
	}

	skin, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSkinResponse(skin))
}

// Delete handles DELETE /skins/{id}.
func (h *SkinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skin id")
		return
	}

	if err := h.svc.SoftDelete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /skins with optional available, search, limit and offset
// query parameters.
func (h *SkinHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSkinFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	skins, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items := make([]skinResponse, 0, len(skins))
	for i := range skins {
		items = append(items, toSkinResponse(&skins[i]))
	}

	writeJSON(w, http.StatusOK, skinListResponse{Items: items, Total: total})
}

func parseSkinFilter(q url.Values) (domain.SkinFilter, error) {
	var filter domain.SkinFilter

	if v := q.Get("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errors.New("invalid available")
		}
		filter.AvailableOnly = b
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.New("invalid offset")
		}
		filter.Offset = n
	}

	return filter, nil
}

func (h *SkinHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "skin not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "skin was modified concurrently")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toSkinResponse(s *domain.Skin) skinResponse {
	return skinResponse{
		ID:           s.ID.String(),
		Name:         s.Name,
		BasePriceUSD: s.BasePriceUSD.StringFixed(2),
		IsAvailable:  s.IsAvailable,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		DeletedAt:    s.DeletedAt,
		Version:      s.Version,
	}
}
