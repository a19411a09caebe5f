package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// The aggregation functions in this file are deterministic folds over the
// current collection snapshots. They never fail on empty input and never
// mutate their arguments; callers recompute on every read because the
// underlying collections can change between calls.

// ProductSalesTotal is one row of the top-selling-products ranking.
type ProductSalesTotal struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// SizeSalesTotal is the quantity/revenue distribution for one size label.
// Percent is this size's share of all units sold, 0 when nothing was sold.
type SizeSalesTotal struct {
	Size     Size            `json:"size"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Percent  float64         `json:"percent"`
}

// DaySalesTotal is the rollup for one calendar date (YYYY-MM-DD).
type DaySalesTotal struct {
	Date     string          `json:"date"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// TotalStock sums quantity on hand over all products and all sizes.
func TotalStock(products []Product) int {
	total := 0
	for i := range products {
		total += products[i].TotalStock()
	}
	return total
}

// LowStock returns products whose total across sizes is above zero but below
// threshold, in catalog order.
func LowStock(products []Product, threshold int) []Product {
	var low []Product
	for _, p := range products {
		if total := p.TotalStock(); total > 0 && total < threshold {
			low = append(low, p)
		}
	}
	return low
}

// OutOfStock returns products with zero units across all sizes.
func OutOfStock(products []Product) []Product {
	var out []Product
	for _, p := range products {
		if p.TotalStock() == 0 {
			out = append(out, p)
		}
	}
	return out
}

// TotalRevenue sums TotalPrice across all sales.
func TotalRevenue(sales []Sale) decimal.Decimal {
	total := decimal.Zero
	for i := range sales {
		total = total.Add(sales[i].TotalPrice)
	}
	return total
}

// TotalRoyalties sums RoyaltyAmount across all sales, treating absent as zero.
func TotalRoyalties(sales []Sale) decimal.Decimal {
	total := decimal.Zero
	for i := range sales {
		if sales[i].RoyaltyAmount != nil {
			total = total.Add(*sales[i].RoyaltyAmount)
		}
	}
	return total
}

// AverageTicket is total revenue divided by the number of sales, zero when
// the ledger is empty.
func AverageTicket(sales []Sale) decimal.Decimal {
	if len(sales) == 0 {
		return decimal.Zero
	}
	return TotalRevenue(sales).Div(decimal.NewFromInt(int64(len(sales))))
}

// TopSellingProducts groups sales by product, sums quantity and revenue, and
// returns the first n products ordered by quantity descending. Ties keep
// first-appearance order in the ledger, so the ranking is deterministic.
func TopSellingProducts(sales []Sale, n int) []ProductSalesTotal {
	index := make(map[string]int)
	var totals []ProductSalesTotal
	for i := range sales {
		sale := &sales[i]
		at, ok := index[sale.ProductID]
		if !ok {
			at = len(totals)
			index[sale.ProductID] = at
			totals = append(totals, ProductSalesTotal{
				ProductID:   sale.ProductID,
				ProductName: sale.ProductName,
				Revenue:     decimal.Zero,
			})
		}
		totals[at].Quantity += sale.Quantity
		totals[at].Revenue = totals[at].Revenue.Add(sale.TotalPrice)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Quantity > totals[j].Quantity
	})
	if n >= 0 && n < len(totals) {
		totals = totals[:n]
	}
	return totals
}

// SalesBySize groups sales by size label with each size's percentage share of
// units sold. Sizes are ordered by quantity descending, ties by
// first appearance.
func SalesBySize(sales []Sale) []SizeSalesTotal {
	index := make(map[Size]int)
	var totals []SizeSalesTotal
	soldUnits := 0
	for i := range sales {
		sale := &sales[i]
		at, ok := index[sale.Size]
		if !ok {
			at = len(totals)
			index[sale.Size] = at
			totals = append(totals, SizeSalesTotal{Size: sale.Size, Revenue: decimal.Zero})
		}
		totals[at].Quantity += sale.Quantity
		totals[at].Revenue = totals[at].Revenue.Add(sale.TotalPrice)
		soldUnits += sale.Quantity
	}

	if soldUnits > 0 {
		for i := range totals {
			totals[i].Percent = float64(totals[i].Quantity) / float64(soldUnits) * 100
		}
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Quantity > totals[j].Quantity
	})
	return totals
}

// DailySales rolls sales up per calendar day for the last days dates ending
// at now (inclusive), oldest first. Dates are evaluated in now's location.
// Days with no sales yield explicit zero rows, never omission.
func DailySales(sales []Sale, days int, now time.Time) []DaySalesTotal {
	if days <= 0 {
		return nil
	}

	byDay := make(map[string]*DaySalesTotal, days)
	result := make([]DaySalesTotal, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i-days+1).Format("2006-01-02")
		result[i] = DaySalesTotal{Date: date, Revenue: decimal.Zero}
		byDay[date] = &result[i]
	}

	for i := range sales {
		sale := &sales[i]
		day, ok := byDay[sale.CreatedAt.In(now.Location()).Format("2006-01-02")]
		if !ok {
			continue // outside the window
		}
		day.Quantity += sale.Quantity
		day.Revenue = day.Revenue.Add(sale.TotalPrice)
	}
	return result
}
