package domain

import "github.com/shopspring/decimal"

// StockStatus is the bucket a product falls into based on its quantity.
type StockStatus string

const (
	StockOut StockStatus = "out-of-stock"
	StockLow StockStatus = "low-stock"
	StockIn  StockStatus = "in-stock"
)

// LowStockThreshold is the highest quantity still reported as low stock.
const LowStockThreshold = 5

// StockStatusOf buckets a quantity:
//
//	0     → out-of-stock
//	1..5  → low-stock
//	> 5   → in-stock
func StockStatusOf(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// Product mirrors the backend product resource. CategoryDetails is a
// read-only snapshot of the referenced category.
type Product struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	SoldQuantity    int             `json:"sold_quantity"`
	Category        *int64          `json:"category"`
	CategoryDetails *Category       `json:"category_details"`
}

// StockStatus returns the product's stock bucket.
func (p Product) StockStatus() StockStatus {
	return StockStatusOf(p.Quantity)
}

// InCategory reports whether the product references the given category id.
func (p Product) InCategory(id int64) bool {
	return p.Category != nil && *p.Category == id
}

// ProductInput is the create/update payload for products.
type ProductInput struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	SoldQuantity int             `json:"sold_quantity"`
	Category     *int64          `json:"category"`
}
