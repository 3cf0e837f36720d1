package devbackend

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

const topProductsLimit = 5

var timeNow = time.Now

type evolutionPoint struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

type categoryShare struct {
	CategoryName *string         `json:"category__name"`
	Value        decimal.Decimal `json:"value"`
}

type topProduct struct {
	Name         string `json:"name"`
	SoldQuantity int    `json:"sold_quantity"`
}

type statsResponse struct {
	Metrics struct {
		TotalStockValue string `json:"total_stock_value"`
		TotalProducts   int    `json:"total_products"`
		LowStockCount   int    `json:"low_stock_count"`
		OutOfStockCount int    `json:"out_of_stock_count"`
	} `json:"metrics"`
	Charts struct {
		StockEvolution       []evolutionPoint `json:"stock_evolution"`
		CategoryDistribution []categoryShare  `json:"category_distribution"`
		TopProducts          []topProduct     `json:"top_products"`
	} `json:"charts"`
}

// computeStats aggregates the dashboard figures. The store keeps no history,
// so the evolution series holds only the current month.
func computeStats(products []domain.Product, categories []domain.Category, now time.Time) statsResponse {
	var out statsResponse
	total := decimal.Zero
	byCategory := make(map[int64]decimal.Decimal)
	uncategorized := decimal.Zero

	for _, p := range products {
		value := p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
		total = total.Add(value)
		switch p.StockStatus() {
		case domain.StockOut:
			out.Metrics.OutOfStockCount++
		case domain.StockLow:
			out.Metrics.LowStockCount++
		}
		if p.Category != nil {
			byCategory[*p.Category] = byCategory[*p.Category].Add(value)
		} else {
			uncategorized = uncategorized.Add(value)
		}
	}

	out.Metrics.TotalStockValue = total.StringFixed(2)
	out.Metrics.TotalProducts = len(products)
	out.Charts.StockEvolution = []evolutionPoint{{Month: now.Format("Jan"), Value: total.Round(2)}}

	out.Charts.CategoryDistribution = []categoryShare{}
	for _, c := range categories {
		if v, ok := byCategory[c.ID]; ok {
			name := c.Name
			out.Charts.CategoryDistribution = append(out.Charts.CategoryDistribution, categoryShare{CategoryName: &name, Value: v.Round(2)})
		}
	}
	if !uncategorized.IsZero() {
		out.Charts.CategoryDistribution = append(out.Charts.CategoryDistribution, categoryShare{Value: uncategorized.Round(2)})
	}

	ranked := slices.Clone(products)
	slices.SortStableFunc(ranked, func(a, b domain.Product) int { return cmp.Compare(b.SoldQuantity, a.SoldQuantity) })
	out.Charts.TopProducts = []topProduct{}
	for _, p := range ranked[:min(topProductsLimit, len(ranked))] {
		out.Charts.TopProducts = append(out.Charts.TopProducts, topProduct{Name: p.Name, SoldQuantity: p.SoldQuantity})
	}
	return out
}
