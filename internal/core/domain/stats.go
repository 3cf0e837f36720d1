package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Stats is the dashboard aggregate computed by the backend.
type Stats struct {
	Metrics StatsMetrics `json:"metrics"`
	Charts  StatsCharts  `json:"charts"`
}

// StatsMetrics holds the headline numbers shown on the dashboard cards.
type StatsMetrics struct {
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	TotalProducts   int             `json:"total_products"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
}

// StatsCharts carries the chart series untouched; the console never interprets them.
type StatsCharts struct {
	StockEvolution       json.RawMessage `json:"stock_evolution"`
	CategoryDistribution json.RawMessage `json:"category_distribution"`
	TopProducts          json.RawMessage `json:"top_products"`
}
