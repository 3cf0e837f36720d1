package service

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// ApplyFilters runs the list pipeline in fixed order: name search, stock
// bucket, category, then a stable sort. The input slice is not modified.
func ApplyFilters(products []domain.Product, f domain.ViewFilterState) []domain.Product {
	term := strings.ToLower(f.SearchTerm)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if !f.StockFilter.Admits(p.Quantity) {
			continue
		}
		if f.CategoryID != nil && !p.InCategory(*f.CategoryID) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, f.SortOrder)
	return out
}

func sortProducts(products []domain.Product, order domain.SortOrder) {
	var less func(a, b domain.Product) int
	switch order {
	case domain.SortByName:
		// Collator keeps internal buffers, one per call.
		col := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b domain.Product) int { return col.CompareString(a.Name, b.Name) }
	case domain.SortPriceAsc:
		less = func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case domain.SortPriceDesc:
		less = func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case domain.SortQuantityAsc:
		less = func(a, b domain.Product) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case domain.SortQuantityDesc:
		less = func(a, b domain.Product) int { return cmp.Compare(b.Quantity, a.Quantity) }
	default:
		return
	}
	slices.SortStableFunc(products, less)
}
