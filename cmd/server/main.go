package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	webAdapter "apparel-ledger/internal/adapters/web"
	"apparel-ledger/internal/app"
	"apparel-ledger/internal/core"
	"apparel-ledger/internal/store/memory"
	"apparel-ledger/internal/store/postgres"
)

func main() {
	demo := flag.Bool("demo", false, "run against in-memory stores instead of Postgres")
	flag.Parse()

	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("LOG_PRETTY") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	sizes, err := core.ParseSizeSet(os.Getenv("SIZE_LABELS"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid SIZE_LABELS")
	}

	ctx := context.Background()

	var products core.ProductStore
	var sales core.SaleStore
	if *demo {
		log.Info().Msg("demo mode: using in-memory stores")
		products = memory.NewProductStore()
		sales = memory.NewSaleStore()
	} else {
		pool, err := postgres.NewPool(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("database")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
		products = postgres.NewProductStore(pool, sizes)
		sales = postgres.NewSaleStore(pool)
	}

	lowStock, _ := strconv.Atoi(os.Getenv("LOW_STOCK_THRESHOLD"))
	stock := core.NewStockService(products, sales, sizes)
	reporting := core.NewReportingService(products, sales, lowStock)
	svc := app.NewAppService(stock, reporting, sizes)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	handler := webAdapter.NewHandler(svc, os.Getenv("ALLOWED_ORIGINS"))

	log.Info().Str("port", port).Str("sizes", sizes.String()).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
