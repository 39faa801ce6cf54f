package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedLabel is the grouping key for products without a
// category. It is the same sentinel across every category breakdown.
const UncategorizedLabel = "Uncategorized"

// ReportFilter holds the product report filter options. All conditions
// compose with AND; a zero field imposes no constraint.
type ReportFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	Category    string // "" or "all" matches everything
	StockStatus StockStatus
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	NameSearch  string
}

// DateWindow returns the effective inclusive date bounds. DateTo is
// extended to the end of its day so an order placed any time on the
// boundary date is included.
func (f ReportFilter) DateWindow() (from, to *time.Time) {
	from = f.DateFrom
	if f.DateTo != nil {
		t := time.Date(f.DateTo.Year(), f.DateTo.Month(), f.DateTo.Day(),
			23, 59, 59, int(time.Second-time.Nanosecond), f.DateTo.Location())
		to = &t
	}
	return from, to
}

// HasCategory reports whether the filter constrains the category.
func (f ReportFilter) HasCategory() bool {
	return f.Category != "" && f.Category != "all"
}

// EnrichedProduct is a catalog row augmented with sales totals computed
// over the date-filtered order lines. Built fresh on every report run,
// never persisted.
type EnrichedProduct struct {
	Product
	TotalSold int             `json:"totalSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type SummaryMetrics struct {
	TotalProducts       int             `json:"totalProducts"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	AvgPrice            decimal.Decimal `json:"avgPrice"`
	LowStockCount       int             `json:"lowStockCount"`
	OutOfStockCount     int             `json:"outOfStockCount"`
	TotalSold           int             `json:"totalSold"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
}

// CategoryValue is one bar of a category breakdown chart.
type CategoryValue struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

type TopSeller struct {
	ProductID     int             `json:"productId"`
	ProductName   string          `json:"productName"`
	TotalSold     int             `json:"totalSold"`
	Revenue       decimal.Decimal `json:"revenue"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
}

type CategoryStat struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"totalValue"`
	AvgPrice   decimal.Decimal `json:"avgPrice"`
}

// TrendPoint is one calendar-month bucket of the sales trend. Period is
// rendered MM/YYYY. GrowthRate is the revenue change against the
// previous month in percent; nil when there is no previous month or its
// revenue was zero.
type TrendPoint struct {
	Period       string          `json:"period"`
	SoldQuantity int             `json:"soldQuantity"`
	Revenue      decimal.Decimal `json:"revenue"`
	AvgPrice     decimal.Decimal `json:"avgPrice"`
	GrowthRate   *float64        `json:"growthRate,omitempty"`
}

// ProductReport bundles every derived output of one aggregation run.
type ProductReport struct {
	Summary         SummaryMetrics    `json:"summary"`
	SalesByCategory []CategoryValue   `json:"salesByCategory"`
	StockByCategory []CategoryValue   `json:"stockByCategory"`
	TopSellers      []TopSeller       `json:"topSellers"`
	CategoryStats   []CategoryStat    `json:"categoryStats"`
	MonthlyTrend    []TrendPoint      `json:"monthlyTrend"`
	Products        []EnrichedProduct `json:"products"`
	// Categories lists the distinct categories of the enriched set
	// before the category filter, for populating filter options.
	Categories []string `json:"categories"`
	// SalesDataIncomplete is set when the order-line fetch failed and
	// sales figures degraded to zero instead of aborting the run.
	SalesDataIncomplete bool      `json:"salesDataIncomplete,omitempty"`
	Warning             string    `json:"warning,omitempty"`
	GeneratedAt         time.Time `json:"generatedAt"`
}
