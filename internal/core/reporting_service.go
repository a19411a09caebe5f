package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// defaultLowStockThreshold marks a product "running low" when its total
// across sizes drops under this many units.
const defaultLowStockThreshold = 10

// DashboardSummary is the headline metric block for the dashboard view.
type DashboardSummary struct {
	TotalProducts int             `json:"total_products"`
	TotalStock    int             `json:"total_stock"`
	TotalSales    int             `json:"total_sales"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	LowStock      []Product       `json:"low_stock"`
	OutOfStock    []Product       `json:"out_of_stock"`
}

// SalesReport is the full report view: totals, ranking, size distribution,
// and the daily rollup for the trailing window.
type SalesReport struct {
	GeneratedAt    time.Time           `json:"generated_at"`
	Days           int                 `json:"days"`
	TotalSales     int                 `json:"total_sales"`
	TotalRevenue   decimal.Decimal     `json:"total_revenue"`
	TotalRoyalties decimal.Decimal     `json:"total_royalties"`
	AverageTicket  decimal.Decimal     `json:"average_ticket"`
	TopProducts    []ProductSalesTotal `json:"top_products"`
	BySize         []SizeSalesTotal    `json:"by_size"`
	Daily          []DaySalesTotal     `json:"daily"`
}

// ReportingService derives dashboard and report views from the current
// catalog and ledger snapshots. It holds no state of its own: every call
// re-reads the stores and folds.
type ReportingService interface {
	Dashboard(ctx context.Context) (*DashboardSummary, error)
	// BuildSalesReport builds the report with a daily rollup covering the
	// last days calendar dates including today. days <= 0 defaults to 7,
	// topN <= 0 defaults to 5.
	BuildSalesReport(ctx context.Context, days, topN int) (*SalesReport, error)
}

type reportingService struct {
	products          ProductStore
	sales             SaleStore
	lowStockThreshold int
	now               func() time.Time
}

// NewReportingService constructs a ReportingService over the given stores.
// lowStockThreshold <= 0 selects the default of 10 units.
func NewReportingService(products ProductStore, sales SaleStore, lowStockThreshold int) ReportingService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = defaultLowStockThreshold
	}
	return &reportingService{
		products:          products,
		sales:             sales,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

func (s *reportingService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalProducts: len(products),
		TotalStock:    TotalStock(products),
		TotalSales:    len(sales),
		TotalRevenue:  TotalRevenue(sales),
		LowStock:      LowStock(products, s.lowStockThreshold),
		OutOfStock:    OutOfStock(products),
	}, nil
}

func (s *reportingService) BuildSalesReport(ctx context.Context, days, topN int) (*SalesReport, error) {
	if days <= 0 {
		days = 7
	}
	if topN <= 0 {
		topN = 5
	}

	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &SalesReport{
		GeneratedAt:    now,
		Days:           days,
		TotalSales:     len(sales),
		TotalRevenue:   TotalRevenue(sales),
		TotalRoyalties: TotalRoyalties(sales),
		AverageTicket:  AverageTicket(sales),
		TopProducts:    TopSellingProducts(sales, topN),
		BySize:         SalesBySize(sales),
		Daily:          DailySales(sales, days, now),
	}, nil
}
