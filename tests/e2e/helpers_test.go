//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/skinstore/backend/internal/adapter/postgres"
	purchaserepo "github.com/skinstore/backend/internal/adapter/postgres/purchase"
	skinrepo "github.com/skinstore/backend/internal/adapter/postgres/skin"
	"github.com/skinstore/backend/internal/adapter/postgres/testhelper"
	"github.com/skinstore/backend/internal/adapter/provider/coingecko"
	"github.com/skinstore/backend/internal/config"
	"github.com/skinstore/backend/internal/service/purchase"
	"github.com/skinstore/backend/internal/service/rates"
	"github.com/skinstore/backend/internal/service/skin"
	"github.com/skinstore/backend/internal/transport/middleware"
	"github.com/skinstore/backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL      string
	Client   *http.Client
	Pool     *pgxpool.Pool
	Upstream *fakeUpstream
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// fakeUpstream is a stand-in for the rate API. Its rate and failure mode can
// be flipped mid-test.
// ---------------------------------------------------------------------------

type fakeUpstream struct {
	srv   *httptest.Server
	rate  atomic.Value // string
	fail  atomic.Bool
	calls atomic.Int64
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()

	u := &fakeUpstream{}
	u.rate.Store("43000")

	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		if u.fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bitcoin":{"usd":` + u.rate.Load().(string) + `}}`)) //nolint:errcheck
	}))
	t.Cleanup(u.srv.Close)

	return u
}

func (u *fakeUpstream) SetRate(rate string) { u.rate.Store(rate) }
func (u *fakeUpstream) SetFailing(v bool)   { u.fail.Store(v) }
func (u *fakeUpstream) Calls() int64        { return u.calls.Load() }

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithRates(t, config.RatesConfig{
		RequestTimeout: 3 * time.Second,
		FreshTTL:       time.Minute,
		FallbackMaxAge: 10 * time.Minute,
	})
}

func setupTestServerWithRates(t *testing.T, ratesCfg config.RatesConfig) *testServer {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Repositories.
	skinRepo := skinrepo.New(pool)
	purchaseRepo := purchaserepo.New(pool)

	// 4. Fake rate upstream.
	upstream := newFakeUpstream(t)
	provider := coingecko.NewProviderWithURL(upstream.srv.URL, ratesCfg.RequestTimeout, logger)

	// 5. Services.
	catalogCfg := config.CatalogConfig{DefaultPageSize: 50, MaxPageSize: 200}
	rateService := rates.NewService(logger, provider, clockwork.NewRealClock(), ratesCfg)
	skinService := skin.NewService(logger, skinRepo, catalogCfg)
	purchaseService := purchase.NewService(logger, skinRepo, purchaseRepo, txm, catalogCfg)

	// 6. Router + middleware chain.
	router := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, "test-version"),
		Skins:     rest.NewSkinHandler(skinService, logger),
		Purchases: rest.NewPurchaseHandler(purchaseService, rateService, logger),
		Rates:     rest.NewRateHandler(rateService, skinService, logger),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Content-Type,Idempotency-Key",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
	)(router)

	// 7. httptest server.
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:      srv.URL,
		Client:   srv.Client(),
		Pool:     pool,
		Upstream: upstream,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

// doJSON sends a request with an optional JSON body and decodes the JSON
// response. headers may be nil.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, result
}

// createSkin creates a catalog skin through the API and returns its response.
func (ts *testServer) createSkin(t *testing.T, name, price string) map[string]any {
	t.Helper()

	status, resp := ts.doJSON(t, http.MethodPost, "/skins", map[string]any{
		"name":         name,
		"basePriceUsd": price,
	}, nil)
	require.Equal(t, http.StatusCreated, status, "create skin: %v", resp)
	return resp
}

func str(t *testing.T, m map[string]any, key string) string {
	t.Helper()
	v, ok := m[key].(string)
	require.True(t, ok, "expected string %q in %v", key, m)
	return v
}
