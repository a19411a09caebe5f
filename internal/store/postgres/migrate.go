package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Migrate creates the products and sales tables if they do not exist.
// products carries one column per default size label; sales has no foreign
// key to products so sale rows can outlive their referent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price       NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
			image       TEXT NOT NULL DEFAULT '',
			size_p      INT NOT NULL DEFAULT 0 CHECK (size_p   >= 0),
			size_m      INT NOT NULL DEFAULT 0 CHECK (size_m   >= 0),
			size_g      INT NOT NULL DEFAULT 0 CHECK (size_g   >= 0),
			size_gg     INT NOT NULL DEFAULT 0 CHECK (size_gg  >= 0),
			size_xg     INT NOT NULL DEFAULT 0 CHECK (size_xg  >= 0),
			size_xgg    INT NOT NULL DEFAULT 0 CHECK (size_xgg >= 0),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS sales (
			id              UUID PRIMARY KEY,
			product_id      UUID NOT NULL,
			product_name    TEXT NOT NULL,
			size            TEXT NOT NULL,
			quantity        INT NOT NULL CHECK (quantity > 0),
			unit_price      NUMERIC NOT NULL CHECK (unit_price > 0),
			total_price     NUMERIC NOT NULL,
			royalty_percent NUMERIC,
			royalty_amount  NUMERIC,
			customer_name   TEXT,
			customer_phone  TEXT,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_sales_product_id ON sales (product_id);
		CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales (created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info().Msg("schema migrated")
	return nil
}
