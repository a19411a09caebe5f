package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"apparel-ledger/internal/core"
)

// sizeColumn maps a size label to its products column. The tabular layout is
// fixed to the default label set; deployments with a different SIZE_LABELS
// configuration need the memory store or a matching schema.
func sizeColumn(s core.Size) string {
	return "size_" + strings.ToLower(string(s))
}

// ProductStore is a pgx-backed core.ProductStore.
type ProductStore struct {
	pool  *pgxpool.Pool
	sizes core.SizeSet
}

// NewProductStore constructs a ProductStore. sizes must match the table's
// size columns; pass nil for the default set.
func NewProductStore(pool *pgxpool.Pool, sizes core.SizeSet) *ProductStore {
	if len(sizes) == 0 {
		sizes = core.DefaultSizes
	}
	return &ProductStore{pool: pool, sizes: sizes}
}

func (s *ProductStore) sizeColumns() string {
	cols := make([]string, len(s.sizes))
	for i, label := range s.sizes {
		cols[i] = sizeColumn(label)
	}
	return strings.Join(cols, ", ")
}

func (s *ProductStore) List(ctx context.Context) ([]core.Product, error) {
	q := fmt.Sprintf(`
		SELECT id, name, description, price, image, %s, created_at
		FROM products
		ORDER BY created_at, id
	`, s.sizeColumns())

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, &core.StoreError{Op: "products.list", Err: err}
	}
	defer rows.Close()

	var products []core.Product
	for rows.Next() {
		var p core.Product
		quantities := make([]int, len(s.sizes))
		dest := []any{&p.ID, &p.Name, &p.Description, &p.Price, &p.Image}
		for i := range quantities {
			dest = append(dest, &quantities[i])
		}
		dest = append(dest, &p.CreatedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, &core.StoreError{Op: "products.list", Err: fmt.Errorf("failed to scan product: %w", err)}
		}
		p.Sizes = make(map[core.Size]int, len(s.sizes))
		for i, label := range s.sizes {
			p.Sizes[label] = quantities[i]
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: "products.list", Err: err}
	}
	return products, nil
}

func (s *ProductStore) Insert(ctx context.Context, fields core.ProductFields) (*core.Product, error) {
	cols := []string{"id", "name", "description", "price", "image"}
	args := []any{uuid.NewString(), fields.Name, fields.Description, fields.Price, fields.Image}
	for _, label := range s.sizes {
		cols = append(cols, sizeColumn(label))
		args = append(args, fields.Sizes[label])
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf(`
		INSERT INTO products (%s)
		VALUES (%s)
		RETURNING id, created_at
	`, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	p := core.Product{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Image:       fields.Image,
		Sizes:       make(map[core.Size]int, len(s.sizes)),
	}
	for _, label := range s.sizes {
		p.Sizes[label] = fields.Sizes[label]
	}
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, &core.StoreError{Op: "products.insert", Err: err}
	}
	return &p, nil
}

func (s *ProductStore) Update(ctx context.Context, id string, patch core.ProductPatch) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Image != nil {
		add("image", *patch.Image)
	}
	if patch.Sizes != nil {
		for _, label := range s.sizes {
			if qty, ok := patch.Sizes[label]; ok {
				add(sizeColumn(label), qty)
			}
		}
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	q := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return &core.StoreError{Op: "products.update", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{Kind: "product", ID: id}
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return &core.StoreError{Op: "products.delete", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{Kind: "product", ID: id}
	}
	return nil
}
