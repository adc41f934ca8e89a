package rest

import "net/http"

// Handlers groups the handler set mounted by NewRouter.
type Handlers struct {
	Health    *HealthHandler
	Skins     *SkinHandler
	Purchases *PurchaseHandler
	Rates     *RateHandler
}

// NewRouter builds the HTTP route table.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /skins", h.Skins.List)
	mux.HandleFunc("POST /skins", h.Skins.Create)
	mux.HandleFunc("GET /skins/{id}", h.Skins.GetByID)
	mux.HandleFunc("PATCH /skins/{id}", h.Skins.Update)
	mux.HandleFunc("DELETE /skins/{id}", h.Skins.Delete)
	mux.HandleFunc("GET /skins/{id}/quote", h.Rates.Quote)

	mux.HandleFunc("GET /rates/current", h.Rates.Current)

	mux.HandleFunc("POST /purchases", h.Purchases.Create)
	mux.HandleFunc("GET /purchases", h.Purchases.List)
	mux.HandleFunc("GET /purchases/{id}", h.Purchases.GetByID)
	mux.HandleFunc("GET /purchases/by-key/{key}", h.Purchases.GetByKey)

	return mux
}
