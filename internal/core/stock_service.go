package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// StockService owns both collections and keeps Product.Sizes consistent with
// the net effect of the sale ledger: every ledger mutation carries a
// compensating stock mutation. All validation runs before the first store
// write, so a rejected operation leaves zero net stock change.
type StockService interface {
	// Catalog
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, fields ProductFields) (*Product, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*Product, error)
	// DeleteProduct removes a product. Existing sales keep their denormalized
	// product name and dangling product id.
	DeleteProduct(ctx context.Context, id string) error

	// Ledger
	ListSales(ctx context.Context) ([]Sale, error)
	// RegisterSale appends a sale and decrements the product's size quantity.
	// Fails with *InsufficientStockError when quantity exceeds the live stock.
	RegisterSale(ctx context.Context, input SaleInput) (*Sale, error)
	// UpdateSale replaces a sale's mutable fields and applies the two-sided
	// stock delta: the old (product, size, quantity) is restored, then the new
	// one deducted. ID and CreatedAt are preserved. Availability checks treat
	// the edited sale as already returned when product and size are unchanged.
	UpdateSale(ctx context.Context, saleID string, input SaleInput) (*Sale, error)
	// DeleteSale removes a sale and restores the product's stock. Restoration
	// is a logged no-op when the product no longer exists.
	DeleteSale(ctx context.Context, saleID string) error
}

type stockService struct {
	products ProductStore
	sales    SaleStore
	sizes    SizeSet

	// Serializes stock mutation sequences. The app assumes a single writer
	// session; the mutex keeps the restore-then-apply pair whole if a second
	// caller ever appears.
	mu sync.Mutex
}

// NewStockService constructs a StockService over the given stores. sizes is
// the active label set; a nil or empty set falls back to DefaultSizes.
func NewStockService(products ProductStore, sales SaleStore, sizes SizeSet) StockService {
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	return &stockService{products: products, sales: sales, sizes: sizes}
}

// ── Catalog ───────────────────────────────────────────────────────────────────

func (s *stockService) ListProducts(ctx context.Context) ([]Product, error) {
	return s.products.List(ctx)
}

func (s *stockService) CreateProduct(ctx context.Context, fields ProductFields) (*Product, error) {
	if fields.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if fields.Price.IsNegative() {
		return nil, fmt.Errorf("product price cannot be negative, got %s", fields.Price)
	}
	if err := s.checkSizes(fields.Sizes); err != nil {
		return nil, err
	}
	// Absent labels start at zero so every configured size has a quantity.
	sizes := make(map[Size]int, len(s.sizes))
	for _, label := range s.sizes {
		sizes[label] = fields.Sizes[label]
	}
	fields.Sizes = sizes
	return s.products.Insert(ctx, fields)
}

func (s *stockService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, fmt.Errorf("product price cannot be negative, got %s", patch.Price)
	}
	if patch.Sizes != nil {
		if err := s.checkSizes(patch.Sizes); err != nil {
			return nil, err
		}
	}
	if err := s.products.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.findProduct(ctx, id)
}

func (s *stockService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// checkSizes rejects unknown labels and negative quantities.
func (s *stockService) checkSizes(sizes map[Size]int) error {
	for label, qty := range sizes {
		if !s.sizes.Contains(label) {
			return fmt.Errorf("%w: %s (configured: %s)", ErrInvalidSize, label, s.sizes)
		}
		if qty < 0 {
			return fmt.Errorf("stock quantity for size %s cannot be negative, got %d", label, qty)
		}
	}
	return nil
}

// ── Ledger ────────────────────────────────────────────────────────────────────

func (s *stockService) ListSales(ctx context.Context) ([]Sale, error) {
	return s.sales.List(ctx)
}

func (s *stockService) RegisterSale(ctx context.Context, input SaleInput) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateSaleInput(input); err != nil {
		return nil, err
	}

	product, err := s.findProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	available := product.Sizes[input.Size]
	if input.Quantity > available {
		return nil, &InsufficientStockError{
			ProductID: input.ProductID,
			Size:      input.Size,
			Available: available,
			Requested: input.Quantity,
		}
	}

	// Ledger write first. A store failure here aborts the whole operation
	// before any stock adjustment is attempted.
	sale, err := s.sales.Insert(ctx, s.buildFields(input, product.Name))
	if err != nil {
		return nil, err
	}

	if err := s.adjustStock(ctx, product, input.Size, -input.Quantity); err != nil {
		// Ledger row exists but the stock write failed. The insert is not
		// rolled back; the error names the sale so an operator can reconcile.
		return nil, fmt.Errorf("sale %s recorded but stock adjustment failed: %w", sale.ID, err)
	}
	return sale, nil
}

func (s *stockService) UpdateSale(ctx context.Context, saleID string, input SaleInput) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := s.validateSaleInput(input); err != nil {
		return nil, err
	}

	product, err := s.findProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	// When the edit keeps the same product and size, the sale's own units
	// count as available again. Otherwise the new target is checked against
	// its live quantity alone and the old target is restored separately.
	available := product.Sizes[input.Size]
	if old.ProductID == input.ProductID && old.Size == input.Size {
		available += old.Quantity
	}
	if input.Quantity > available {
		return nil, &InsufficientStockError{
			ProductID: input.ProductID,
			Size:      input.Size,
			Available: available,
			Requested: input.Quantity,
		}
	}

	if err := s.sales.Update(ctx, saleID, s.buildFields(input, product.Name)); err != nil {
		return nil, err
	}

	// Restore the old deduction, then apply the new one. Each write is
	// clamped at zero independently.
	s.restoreStock(ctx, old)
	fresh, err := s.findProduct(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("sale %s updated but product reload failed: %w", saleID, err)
	}
	if err := s.adjustStock(ctx, fresh, input.Size, -input.Quantity); err != nil {
		return nil, fmt.Errorf("sale %s updated but stock adjustment failed: %w", saleID, err)
	}

	return s.sales.GetByID(ctx, saleID)
}

func (s *stockService) DeleteSale(ctx context.Context, saleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, err := s.sales.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if err := s.sales.Delete(ctx, saleID); err != nil {
		return err
	}
	s.restoreStock(ctx, sale)
	return nil
}

// ── Internals ─────────────────────────────────────────────────────────────────

func (s *stockService) validateSaleInput(input SaleInput) error {
	if input.Quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, input.Quantity)
	}
	if !s.sizes.Contains(input.Size) {
		return fmt.Errorf("%w: %s (configured: %s)", ErrInvalidSize, input.Size, s.sizes)
	}
	if !input.UnitPrice.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidPrice, input.UnitPrice)
	}
	if d := input.DiscountPercent; d != nil && (d.IsNegative() || d.GreaterThan(oneHundred)) {
		return fmt.Errorf("%w: got %s", ErrInvalidDiscount, d)
	}
	if r := input.RoyaltyPercent; r != nil && (r.IsNegative() || r.GreaterThan(oneHundred)) {
		return fmt.Errorf("%w: got %s", ErrInvalidRoyalty, r)
	}
	return nil
}

// buildFields derives the persisted sale row from validated input.
// TotalPrice = quantity × unitPrice; royalty fields are set only for a
// positive royalty percent.
func (s *stockService) buildFields(input SaleInput, productName string) SaleFields {
	total := input.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
	fields := SaleFields{
		ProductID:     input.ProductID,
		ProductName:   productName,
		Size:          input.Size,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		TotalPrice:    total,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
	}
	if r := input.RoyaltyPercent; r != nil && r.IsPositive() {
		amount := total.Mul(*r).Div(oneHundred)
		fields.RoyaltyPercent = r
		fields.RoyaltyAmount = &amount
	}
	return fields
}

// findProduct resolves a product by id from the catalog snapshot.
func (s *stockService) findProduct(ctx context.Context, id string) (*Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "product", ID: id}
}

// adjustStock writes product's quantity for size changed by delta, clamped at
// zero. The clamp is a safety net; preconditions are the validation path.
func (s *stockService) adjustStock(ctx context.Context, product *Product, size Size, delta int) error {
	sizes := product.CloneSizes()
	qty := sizes[size] + delta
	if qty < 0 {
		qty = 0
	}
	sizes[size] = qty
	return s.products.Update(ctx, product.ID, ProductPatch{Sizes: sizes})
}

// restoreStock returns a sale's units to its product. A missing product means
// the referent was deleted after the sale was recorded: nothing to restore.
func (s *stockService) restoreStock(ctx context.Context, sale *Sale) {
	product, err := s.findProduct(ctx, sale.ProductID)
	if err != nil {
		if IsNotFound(err) {
			log.Warn().
				Str("sale_id", sale.ID).
				Str("product_id", sale.ProductID).
				Msg("stock restore skipped: product no longer exists")
			return
		}
		log.Error().Err(err).
			Str("sale_id", sale.ID).
			Str("product_id", sale.ProductID).
			Msg("stock restore failed: product lookup error")
		return
	}
	if err := s.adjustStock(ctx, product, sale.Size, sale.Quantity); err != nil {
		log.Error().Err(err).
			Str("sale_id", sale.ID).
			Str("product_id", sale.ProductID).
			Msg("stock restore failed")
	}
}
