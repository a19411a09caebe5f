package app

import (
	"context"

	"apparel-ledger/internal/core"
)

// ApplicationService is the single interface UI adapters call. It decouples
// presentation from the stock coordinator and reporting layer; implementations
// contain no display logic.
type ApplicationService interface {
	// Catalog
	ListProducts(ctx context.Context) (*ProductListResult, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error)
	// UpdateProduct applies a partial update; zero-valued request fields are
	// left untouched.
	UpdateProduct(ctx context.Context, id string, req ProductPatchRequest) (*ProductResult, error)
	DeleteProduct(ctx context.Context, id string) error

	// Ledger
	ListSales(ctx context.Context) (*SaleListResult, error)
	// RegisterSale records a sale and deducts stock for its product/size.
	RegisterSale(ctx context.Context, req SaleRequest) (*SaleResult, error)
	// UpdateSale edits a sale, adjusting stock by the delta between the old
	// and new (product, size, quantity).
	UpdateSale(ctx context.Context, id string, req SaleRequest) (*SaleResult, error)
	// DeleteSale removes a sale and restores its stock deduction.
	DeleteSale(ctx context.Context, id string) error

	// Reporting
	GetDashboard(ctx context.Context) (*core.DashboardSummary, error)
	GetSalesReport(ctx context.Context, days, topN int) (*core.SalesReport, error)

	// SizeLabels returns the active size label set, for form rendering.
	SizeLabels(ctx context.Context) core.SizeSet
}
