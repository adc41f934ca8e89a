// Command seeder inserts the starter skin catalog. It is idempotent: rows
// that already exist are left untouched. Intended for local development and
// fresh deployments, not as part of the main server.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skinstore/backend/internal/adapter/postgres"
	"github.com/skinstore/backend/internal/app"
	"github.com/skinstore/backend/internal/config"
)

type seedSkin struct {
	name         string
	basePriceUSD string
	isAvailable  bool
}

var starterCatalog = []seedSkin{
	{"Creeper Classic", "9.99", true},
	{"Enderman Elite", "14.99", true},
	{"Dragon Scale", "19.99", true},
	{"Piglin Warrior", "12.99", false},
}

const insertSkinSQL = `
INSERT INTO skins (id, name, base_price_usd, is_available, created_at, version)
SELECT $1, $2, $3, $4, now(), 1
WHERE NOT EXISTS (
    SELECT 1 FROM skins WHERE name = $2 AND is_deleted = FALSE
)`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	var inserted int64
	for _, s := range starterCatalog {
		price, err := decimal.NewFromString(s.basePriceUSD)
		if err != nil {
			logger.Error("invalid seed price", slog.String("skin", s.name), slog.String("error", err.Error()))
			os.Exit(1)
		}

		tag, err := pool.Exec(ctx, insertSkinSQL, uuid.New(), s.name, price, s.isAvailable)
		if err != nil {
			logger.Error("insert skin", slog.String("skin", s.name), slog.String("error", err.Error()))
			os.Exit(1)
		}
		inserted += tag.RowsAffected()
	}

	logger.Info("seeding complete",
		slog.Int64("inserted", inserted),
		slog.Int("catalog_size", len(starterCatalog)),
	)
}
