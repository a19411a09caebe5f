package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Size is a single garment size label (e.g. "M", "GG").
type Size string

// SizeSet is the ordered, closed set of size labels the catalog operates on.
// Which labels are active is a deployment choice (SIZE_LABELS env), not a
// structural property of the model.
type SizeSet []Size

// DefaultSizes is the label set used when SIZE_LABELS is not configured.
var DefaultSizes = SizeSet{"P", "M", "G", "GG", "XG", "XGG"}

// Contains reports whether s is one of the configured labels.
func (set SizeSet) Contains(s Size) bool {
	for _, label := range set {
		if label == s {
			return true
		}
	}
	return false
}

func (set SizeSet) String() string {
	labels := make([]string, len(set))
	for i, s := range set {
		labels[i] = string(s)
	}
	return strings.Join(labels, ",")
}

// ParseSizeSet parses a comma-separated label list ("P,M,G,GG,XG,XGG").
// Empty input yields DefaultSizes. Blank or duplicate labels are rejected.
func ParseSizeSet(raw string) (SizeSet, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultSizes, nil
	}
	var set SizeSet
	seen := make(map[Size]bool)
	for _, part := range strings.Split(raw, ",") {
		label := Size(strings.ToUpper(strings.TrimSpace(part)))
		if label == "" {
			return nil, fmt.Errorf("size label list contains a blank entry: %q", raw)
		}
		if seen[label] {
			return nil, fmt.Errorf("duplicate size label %s", label)
		}
		seen[label] = true
		set = append(set, label)
	}
	return set, nil
}

// Product is a catalog entry with quantity-on-hand tracked per size.
// Every size quantity stays >= 0 after every operation.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Sizes       map[Size]int    `json:"sizes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TotalStock is the sum of quantity on hand across all sizes.
func (p *Product) TotalStock() int {
	total := 0
	for _, qty := range p.Sizes {
		total += qty
	}
	return total
}

// CloneSizes returns an independent copy of the size map.
func (p *Product) CloneSizes() map[Size]int {
	sizes := make(map[Size]int, len(p.Sizes))
	for s, qty := range p.Sizes {
		sizes[s] = qty
	}
	return sizes
}

// Sale is one ledger row. ProductName is a snapshot taken at sale time and
// survives renames or deletion of the referenced product. RoyaltyPercent nil
// means no royalty applies, which is distinct from an explicit zero.
type Sale struct {
	ID             string           `json:"id"`
	ProductID      string           `json:"product_id"`
	ProductName    string           `json:"product_name"`
	Size           Size             `json:"size"`
	Quantity       int              `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	TotalPrice     decimal.Decimal  `json:"total_price"`
	RoyaltyPercent *decimal.Decimal `json:"royalty_percent,omitempty"`
	RoyaltyAmount  *decimal.Decimal `json:"royalty_amount,omitempty"`
	CustomerName   string           `json:"customer_name,omitempty"`
	CustomerPhone  string           `json:"customer_phone,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// SaleInput carries the caller-supplied fields for registering or editing a
// sale. UnitPrice is the effective price actually charged; DiscountPercent is
// validated and may be used by callers to derive UnitPrice, but is never
// persisted as its own field.
type SaleInput struct {
	ProductID       string           `json:"product_id"`
	Size            Size             `json:"size"`
	Quantity        int              `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	RoyaltyPercent  *decimal.Decimal `json:"royalty_percent,omitempty"`
	CustomerName    string           `json:"customer_name,omitempty"`
	CustomerPhone   string           `json:"customer_phone,omitempty"`
}

// ProductFields carries the caller-supplied fields for creating a product.
type ProductFields struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Sizes       map[Size]int    `json:"sizes"`
}

// ProductPatch is a partial product update: nil fields are left untouched.
// The stock coordinator issues patches with only Sizes set.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Sizes       map[Size]int     `json:"sizes,omitempty"`
}

// SaleFields carries the persistable fields of a sale, minus the
// store-assigned ID and CreatedAt.
type SaleFields struct {
	ProductID      string
	ProductName    string
	Size           Size
	Quantity       int
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
	RoyaltyPercent *decimal.Decimal
	RoyaltyAmount  *decimal.Decimal
	CustomerName   string
	CustomerPhone  string
}
