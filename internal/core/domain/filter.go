package domain

import (
	"strconv"
	"strings"
)

// StockFilter selects products by stock bucket.
type StockFilter string

const (
	StockFilterAll        StockFilter = "all"
	StockFilterInStock    StockFilter = "in-stock"
	StockFilterLowStock   StockFilter = "low-stock"
	StockFilterOutOfStock StockFilter = "out-of-stock"
)

// ParseStockFilter falls back to StockFilterAll for anything unrecognised.
func ParseStockFilter(s string) StockFilter {
	switch f := StockFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case StockFilterInStock, StockFilterLowStock, StockFilterOutOfStock:
		return f
	default:
		return StockFilterAll
	}
}

// Admits reports whether a product with the given quantity passes the filter.
func (f StockFilter) Admits(quantity int) bool {
	switch f {
	case StockFilterInStock:
		return StockStatusOf(quantity) == StockIn
	case StockFilterLowStock:
		return StockStatusOf(quantity) == StockLow
	case StockFilterOutOfStock:
		return StockStatusOf(quantity) == StockOut
	default:
		return true
	}
}

// SortOrder names the ordering applied to the product list.
// Values outside the known set are kept and leave the order untouched.
type SortOrder string

const (
	SortByName       SortOrder = "name"
	SortPriceAsc     SortOrder = "price_asc"
	SortPriceDesc    SortOrder = "price_desc"
	SortQuantityAsc  SortOrder = "quantity_asc"
	SortQuantityDesc SortOrder = "quantity_desc"
)

// ViewFilterState is the set of list controls of one product list mount.
// A nil CategoryID admits every category.
type ViewFilterState struct {
	SearchTerm  string      `json:"search_term"`
	StockFilter StockFilter `json:"stock_filter"`
	CategoryID  *int64      `json:"category_filter"`
	SortOrder   SortOrder   `json:"sort_order"`
}

// DefaultViewFilterState is the state of a freshly mounted list.
func DefaultViewFilterState() ViewFilterState {
	return ViewFilterState{StockFilter: StockFilterAll, SortOrder: SortByName}
}

// ParseCategoryFilter turns "all", "" or a malformed id into nil.
func ParseCategoryFilter(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
