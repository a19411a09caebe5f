// Package memory provides in-memory ProductStore and SaleStore
// implementations. They back unit tests and the server's demo mode, and keep
// the same contract as the postgres stores: copies in, copies out, insertion
// order preserved, *core.NotFoundError on missing ids.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"apparel-ledger/internal/core"
)

// ProductStore is a mutex-guarded in-memory core.ProductStore.
type ProductStore struct {
	mu       sync.Mutex
	products []core.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{}
}

func (s *ProductStore) List(ctx context.Context) ([]core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Product, len(s.products))
	for i := range s.products {
		out[i] = cloneProduct(&s.products[i])
	}
	return out, nil
}

func (s *ProductStore) Insert(ctx context.Context, fields core.ProductFields) (*core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := core.Product{
		ID:          uuid.NewString(),
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Image:       fields.Image,
		Sizes:       cloneSizes(fields.Sizes),
		CreatedAt:   time.Now(),
	}
	s.products = append(s.products, p)
	out := cloneProduct(&p)
	return &out, nil
}

func (s *ProductStore) Update(ctx context.Context, id string, patch core.ProductPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Image != nil {
			p.Image = *patch.Image
		}
		if patch.Sizes != nil {
			p.Sizes = cloneSizes(patch.Sizes)
		}
		return nil
	}
	return &core.NotFoundError{Kind: "product", ID: id}
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return &core.NotFoundError{Kind: "product", ID: id}
}

// SaleStore is a mutex-guarded in-memory core.SaleStore.
type SaleStore struct {
	mu    sync.Mutex
	sales []core.Sale
}

func NewSaleStore() *SaleStore {
	return &SaleStore{}
}

func (s *SaleStore) List(ctx context.Context) ([]core.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Sale, len(s.sales))
	for i := range s.sales {
		out[i] = cloneSale(&s.sales[i])
	}
	return out, nil
}

func (s *SaleStore) GetByID(ctx context.Context, id string) (*core.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sales {
		if s.sales[i].ID == id {
			out := cloneSale(&s.sales[i])
			return &out, nil
		}
	}
	return nil, &core.NotFoundError{Kind: "sale", ID: id}
}

func (s *SaleStore) Insert(ctx context.Context, fields core.SaleFields) (*core.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale := core.Sale{
		ID:             uuid.NewString(),
		ProductID:      fields.ProductID,
		ProductName:    fields.ProductName,
		Size:           fields.Size,
		Quantity:       fields.Quantity,
		UnitPrice:      fields.UnitPrice,
		TotalPrice:     fields.TotalPrice,
		RoyaltyPercent: cloneDecimalPtr(fields.RoyaltyPercent),
		RoyaltyAmount:  cloneDecimalPtr(fields.RoyaltyAmount),
		CustomerName:   fields.CustomerName,
		CustomerPhone:  fields.CustomerPhone,
		CreatedAt:      time.Now(),
	}
	s.sales = append(s.sales, sale)
	out := cloneSale(&sale)
	return &out, nil
}

// Update replaces all mutable fields; ID and CreatedAt are preserved.
func (s *SaleStore) Update(ctx context.Context, id string, fields core.SaleFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sales {
		if s.sales[i].ID != id {
			continue
		}
		sale := &s.sales[i]
		sale.ProductID = fields.ProductID
		sale.ProductName = fields.ProductName
		sale.Size = fields.Size
		sale.Quantity = fields.Quantity
		sale.UnitPrice = fields.UnitPrice
		sale.TotalPrice = fields.TotalPrice
		sale.RoyaltyPercent = cloneDecimalPtr(fields.RoyaltyPercent)
		sale.RoyaltyAmount = cloneDecimalPtr(fields.RoyaltyAmount)
		sale.CustomerName = fields.CustomerName
		sale.CustomerPhone = fields.CustomerPhone
		return nil
	}
	return &core.NotFoundError{Kind: "sale", ID: id}
}

func (s *SaleStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sales {
		if s.sales[i].ID == id {
			s.sales = append(s.sales[:i], s.sales[i+1:]...)
			return nil
		}
	}
	return &core.NotFoundError{Kind: "sale", ID: id}
}

// ── copy helpers ──────────────────────────────────────────────────────────────

func cloneProduct(p *core.Product) core.Product {
	out := *p
	out.Sizes = cloneSizes(p.Sizes)
	return out
}

func cloneSale(sale *core.Sale) core.Sale {
	out := *sale
	out.RoyaltyPercent = cloneDecimalPtr(sale.RoyaltyPercent)
	out.RoyaltyAmount = cloneDecimalPtr(sale.RoyaltyAmount)
	return out
}

func cloneDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneSizes(sizes map[core.Size]int) map[core.Size]int {
	out := make(map[core.Size]int, len(sizes))
	for s, qty := range sizes {
		out[s] = qty
	}
	return out
}
