package app

import (
	"github.com/shopspring/decimal"

	"apparel-ledger/internal/core"
)

// ProductRequest carries the fields for creating a product.
type ProductRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Image       string            `json:"image"`
	Sizes       map[core.Size]int `json:"sizes"`
}

// ProductPatchRequest carries a partial product update. Nil fields are not
// modified; a nil Sizes map leaves all quantities alone.
type ProductPatchRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Price       *decimal.Decimal  `json:"price"`
	Image       *string           `json:"image"`
	Sizes       map[core.Size]int `json:"sizes"`
}

// SaleRequest carries the fields for registering or editing a sale.
// UnitPrice is the effective price charged; DiscountPercent is validated but
// not stored. RoyaltyPercent nil means no royalty.
type SaleRequest struct {
	ProductID       string           `json:"product_id"`
	Size            core.Size        `json:"size"`
	Quantity        int              `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	RoyaltyPercent  *decimal.Decimal `json:"royalty_percent"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
}
