package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/skinstore/backend/internal/adapter/postgres"
	purchaserepo "github.com/skinstore/backend/internal/adapter/postgres/purchase"
	skinrepo "github.com/skinstore/backend/internal/adapter/postgres/skin"
	"github.com/skinstore/backend/internal/adapter/provider/coingecko"
	"github.com/skinstore/backend/internal/config"
	"github.com/skinstore/backend/internal/service/purchase"
	"github.com/skinstore/backend/internal/service/rates"
	"github.com/skinstore/backend/internal/service/skin"
	"github.com/skinstore/backend/internal/transport/middleware"
	"github.com/skinstore/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services and handlers, and serves HTTP
// until ctx is cancelled. Shutdown is graceful within the configured timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	skinRepo := skinrepo.New(pool)
	purchaseRepo := purchaserepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	rateProvider := coingecko.NewProviderWithURL(cfg.Rates.BaseURL, cfg.Rates.RequestTimeout, logger)

	rateService := rates.NewService(logger, rateProvider, clockwork.NewRealClock(), cfg.Rates)
	skinService := skin.NewService(logger, skinRepo, cfg.Catalog)
	purchaseService := purchase.NewService(logger, skinRepo, purchaseRepo, txManager, cfg.Catalog)

	router := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Skins:     rest.NewSkinHandler(skinService, logger),
		Purchases: rest.NewPurchaseHandler(purchaseService, rateService, logger),
		Rates:     rest.NewRateHandler(rateService, skinService, logger),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
