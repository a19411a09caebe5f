package app

import (
	"context"

	"apparel-ledger/internal/core"
)

type appService struct {
	stock     core.StockService
	reporting core.ReportingService
	sizes     core.SizeSet
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(stock core.StockService, reporting core.ReportingService, sizes core.SizeSet) ApplicationService {
	if len(sizes) == 0 {
		sizes = core.DefaultSizes
	}
	return &appService{stock: stock, reporting: reporting, sizes: sizes}
}

// ── Catalog ───────────────────────────────────────────────────────────────────

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.stock.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error) {
	product, err := s.stock.CreateProduct(ctx, core.ProductFields{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Sizes:       req.Sizes,
	})
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func (s *appService) UpdateProduct(ctx context.Context, id string, req ProductPatchRequest) (*ProductResult, error) {
	product, err := s.stock.UpdateProduct(ctx, id, core.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Sizes:       req.Sizes,
	})
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func (s *appService) DeleteProduct(ctx context.Context, id string) error {
	return s.stock.DeleteProduct(ctx, id)
}

// ── Ledger ────────────────────────────────────────────────────────────────────

func (s *appService) ListSales(ctx context.Context) (*SaleListResult, error) {
	sales, err := s.stock.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	return &SaleListResult{Sales: sales}, nil
}

func (s *appService) RegisterSale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	sale, err := s.stock.RegisterSale(ctx, saleInput(req))
	if err != nil {
		return nil, err
	}
	return &SaleResult{Sale: sale}, nil
}

func (s *appService) UpdateSale(ctx context.Context, id string, req SaleRequest) (*SaleResult, error) {
	sale, err := s.stock.UpdateSale(ctx, id, saleInput(req))
	if err != nil {
		return nil, err
	}
	return &SaleResult{Sale: sale}, nil
}

func (s *appService) DeleteSale(ctx context.Context, id string) error {
	return s.stock.DeleteSale(ctx, id)
}

func saleInput(req SaleRequest) core.SaleInput {
	return core.SaleInput{
		ProductID:       req.ProductID,
		Size:            req.Size,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		DiscountPercent: req.DiscountPercent,
		RoyaltyPercent:  req.RoyaltyPercent,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
	}
}

// ── Reporting ─────────────────────────────────────────────────────────────────

func (s *appService) GetDashboard(ctx context.Context) (*core.DashboardSummary, error) {
	return s.reporting.Dashboard(ctx)
}

func (s *appService) GetSalesReport(ctx context.Context, days, topN int) (*core.SalesReport, error) {
	return s.reporting.BuildSalesReport(ctx, days, topN)
}

func (s *appService) SizeLabels(ctx context.Context) core.SizeSet {
	return s.sizes
}
