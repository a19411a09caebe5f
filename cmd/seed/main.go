// seed is a one-shot tool that loads a small demo catalog into the database.
// Existing rows are left alone; it only inserts when the catalog is empty.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"apparel-ledger/internal/core"
	"apparel-ledger/internal/store/postgres"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	sizes, err := core.ParseSizeSet(os.Getenv("SIZE_LABELS"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid SIZE_LABELS")
	}
	store := postgres.NewProductStore(pool, sizes)

	existing, err := store.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list products")
	}
	if len(existing) > 0 {
		log.Info().Int("products", len(existing)).Msg("catalog not empty, nothing to do")
		return
	}

	demo := []core.ProductFields{
		{
			Name:        "Basic Tee",
			Description: "Plain cotton tee",
			Price:       decimal.NewFromFloat(49.90),
			Sizes:       map[core.Size]int{"P": 10, "M": 15, "G": 15, "GG": 10, "XG": 5, "XGG": 5},
		},
		{
			Name:        "Logo Hoodie",
			Description: "Fleece hoodie with embroidered logo",
			Price:       decimal.NewFromFloat(149.90),
			Sizes:       map[core.Size]int{"P": 4, "M": 8, "G": 8, "GG": 6, "XG": 2, "XGG": 2},
		},
		{
			Name:        "Track Shorts",
			Description: "Lightweight running shorts",
			Price:       decimal.NewFromFloat(79.90),
			Sizes:       map[core.Size]int{"P": 6, "M": 12, "G": 10, "GG": 6, "XG": 3, "XGG": 1},
		},
	}

	for _, fields := range demo {
		product, err := store.Insert(ctx, fields)
		if err != nil {
			log.Fatal().Err(err).Str("name", fields.Name).Msg("failed to insert product")
		}
		log.Info().Str("id", product.ID).Str("name", product.Name).Msg("seeded product")
	}
	log.Info().Int("products", len(demo)).Msg("demo catalog seeded")
}
