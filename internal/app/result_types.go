package app

import "apparel-ledger/internal/core"

// ProductResult is returned by single-product operations.
type ProductResult struct {
	Product *core.Product `json:"product"`
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// SaleResult is returned by RegisterSale and UpdateSale.
type SaleResult struct {
	Sale *core.Sale `json:"sale"`
}

// SaleListResult is returned by ListSales.
type SaleListResult struct {
	Sales []core.Sale `json:"sales"`
}
