package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"apparel-ledger/internal/core"
)

const saleColumns = `id, product_id, product_name, size, quantity, unit_price, total_price,
	royalty_percent, royalty_amount, COALESCE(customer_name, ''), COALESCE(customer_phone, ''), created_at`

// SaleStore is a pgx-backed core.SaleStore.
type SaleStore struct {
	pool *pgxpool.Pool
}

func NewSaleStore(pool *pgxpool.Pool) *SaleStore {
	return &SaleStore{pool: pool}
}

func scanSale(row pgx.Row) (*core.Sale, error) {
	var sale core.Sale
	err := row.Scan(
		&sale.ID, &sale.ProductID, &sale.ProductName, &sale.Size, &sale.Quantity,
		&sale.UnitPrice, &sale.TotalPrice, &sale.RoyaltyPercent, &sale.RoyaltyAmount,
		&sale.CustomerName, &sale.CustomerPhone, &sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *SaleStore) List(ctx context.Context) ([]core.Sale, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM sales
		ORDER BY created_at, id
	`, saleColumns))
	if err != nil {
		return nil, &core.StoreError{Op: "sales.list", Err: err}
	}
	defer rows.Close()

	var sales []core.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, &core.StoreError{Op: "sales.list", Err: fmt.Errorf("failed to scan sale: %w", err)}
		}
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: "sales.list", Err: err}
	}
	return sales, nil
}

func (s *SaleStore) GetByID(ctx context.Context, id string) (*core.Sale, error) {
	sale, err := scanSale(s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM sales
		WHERE id = $1
	`, saleColumns), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &core.NotFoundError{Kind: "sale", ID: id}
		}
		return nil, &core.StoreError{Op: "sales.get", Err: err}
	}
	return sale, nil
}

func (s *SaleStore) Insert(ctx context.Context, fields core.SaleFields) (*core.Sale, error) {
	sale := core.Sale{
		ID:             uuid.NewString(),
		ProductID:      fields.ProductID,
		ProductName:    fields.ProductName,
		Size:           fields.Size,
		Quantity:       fields.Quantity,
		UnitPrice:      fields.UnitPrice,
		TotalPrice:     fields.TotalPrice,
		RoyaltyPercent: fields.RoyaltyPercent,
		RoyaltyAmount:  fields.RoyaltyAmount,
		CustomerName:   fields.CustomerName,
		CustomerPhone:  fields.CustomerPhone,
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO sales (id, product_id, product_name, size, quantity, unit_price, total_price,
			royalty_percent, royalty_amount, customer_name, customer_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''))
		RETURNING created_at
	`, sale.ID, sale.ProductID, sale.ProductName, sale.Size, sale.Quantity,
		sale.UnitPrice, sale.TotalPrice, sale.RoyaltyPercent, sale.RoyaltyAmount,
		sale.CustomerName, sale.CustomerPhone,
	).Scan(&sale.CreatedAt)
	if err != nil {
		return nil, &core.StoreError{Op: "sales.insert", Err: err}
	}
	return &sale, nil
}

// Update replaces all mutable columns; created_at is never touched.
func (s *SaleStore) Update(ctx context.Context, id string, fields core.SaleFields) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE sales
		SET product_id = $1, product_name = $2, size = $3, quantity = $4,
		    unit_price = $5, total_price = $6, royalty_percent = $7, royalty_amount = $8,
		    customer_name = NULLIF($9, ''), customer_phone = NULLIF($10, '')
		WHERE id = $11
	`, fields.ProductID, fields.ProductName, fields.Size, fields.Quantity,
		fields.UnitPrice, fields.TotalPrice, fields.RoyaltyPercent, fields.RoyaltyAmount,
		fields.CustomerName, fields.CustomerPhone, id)
	if err != nil {
		return &core.StoreError{Op: "sales.update", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{Kind: "sale", ID: id}
	}
	return nil
}

func (s *SaleStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return &core.StoreError{Op: "sales.delete", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{Kind: "sale", ID: id}
	}
	return nil
}
