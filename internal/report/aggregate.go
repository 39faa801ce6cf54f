package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailops/backoffice/internal/entity"
)

type salesTotals struct {
	totalSold int
	revenue   decimal.Decimal
}

// accumulateSales folds order lines into per-product sales totals over
// the given date window. Bounds are inclusive; when either bound is set,
// lines without an order date fall outside the window and are skipped.
func accumulateSales(lines []entity.OrderLineWithDate, from, to *time.Time) map[int]salesTotals {
	totals := make(map[int]salesTotals)
	bounded := from != nil || to != nil
	for _, l := range lines {
		if bounded {
			if l.OrderDate == nil {
				continue
			}
			if from != nil && l.OrderDate.Before(*from) {
				continue
			}
			if to != nil && l.OrderDate.After(*to) {
				continue
			}
		}
		t := totals[l.ProductID]
		t.totalSold += l.Quantity
		t.revenue = t.revenue.Add(l.Subtotal)
		totals[l.ProductID] = t
	}
	return totals
}

// enrich joins catalog rows with their sales totals. Products without
// sales get zero totals rather than being dropped.
func enrich(products []entity.Product, totals map[int]salesTotals) []entity.EnrichedProduct {
	enriched := make([]entity.EnrichedProduct, 0, len(products))
	for _, p := range products {
		t := totals[p.ID]
		enriched = append(enriched, entity.EnrichedProduct{
			Product:   p,
			TotalSold: t.totalSold,
			Revenue:   t.revenue,
		})
	}
	return enriched
}

func filterByCategory(products []entity.EnrichedProduct, filter entity.ReportFilter) []entity.EnrichedProduct {
	if !filter.HasCategory() {
		return products
	}
	filtered := make([]entity.EnrichedProduct, 0, len(products))
	for _, p := range products {
		if p.Category != nil && *p.Category == filter.Category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// distinctCategories lists the categories present in the set, sorted,
// for populating filter options.
func distinctCategories(products []entity.EnrichedProduct) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if p.Category == nil || *p.Category == "" {
			continue
		}
		if !seen[*p.Category] {
			seen[*p.Category] = true
			categories = append(categories, *p.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

func categoryLabel(p entity.EnrichedProduct) string {
	if p.Category == nil || *p.Category == "" {
		return entity.UncategorizedLabel
	}
	return *p.Category
}

func inventoryValue(p entity.EnrichedProduct) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

func computeSummary(products []entity.EnrichedProduct) entity.SummaryMetrics {
	s := entity.SummaryMetrics{
		TotalProducts: len(products),
	}
	priceSum := decimal.Zero
	for _, p := range products {
		s.TotalInventoryValue = s.TotalInventoryValue.Add(inventoryValue(p))
		priceSum = priceSum.Add(p.Price)
		switch {
		case p.StockQuantity == 0:
			s.OutOfStockCount++
		case p.StockQuantity <= entity.LowStockThreshold:
			s.LowStockCount++
		}
		s.TotalSold += p.TotalSold
		s.TotalRevenue = s.TotalRevenue.Add(p.Revenue)
	}
	if len(products) > 0 {
		s.AvgPrice = priceSum.Div(decimal.NewFromInt(int64(len(products)))).Round(2)
	}
	return s
}

// categoryBreakdown groups products by category, sums the given value
// and keeps the top 6 by descending total.
func categoryBreakdown(products []entity.EnrichedProduct, value func(entity.EnrichedProduct) decimal.Decimal) []entity.CategoryValue {
	sums := make(map[string]decimal.Decimal)
	for _, p := range products {
		label := categoryLabel(p)
		sums[label] = sums[label].Add(value(p))
	}

	breakdown := make([]entity.CategoryValue, 0, len(sums))
	for category, total := range sums {
		breakdown = append(breakdown, entity.CategoryValue{Category: category, Value: total})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Value.Equal(breakdown[j].Value) {
			return breakdown[i].Value.GreaterThan(breakdown[j].Value)
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	if len(breakdown) > 6 {
		breakdown = breakdown[:6]
	}
	return breakdown
}

func salesByCategory(products []entity.EnrichedProduct) []entity.CategoryValue {
	return categoryBreakdown(products, func(p entity.EnrichedProduct) decimal.Decimal {
		return p.Revenue
	})
}

func stockByCategory(products []entity.EnrichedProduct) []entity.CategoryValue {
	return categoryBreakdown(products, inventoryValue)
}

// topSellers keeps the 10 best-selling products by quantity sold.
func topSellers(products []entity.EnrichedProduct) []entity.TopSeller {
	ranked := make([]entity.EnrichedProduct, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSold > ranked[j].TotalSold
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	sellers := make([]entity.TopSeller, 0, len(ranked))
	for _, p := range ranked {
		sellers = append(sellers, entity.TopSeller{
			ProductID:     p.ID,
			ProductName:   p.Name,
			TotalSold:     p.TotalSold,
			Revenue:       p.Revenue,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
			ImageURL:      p.ImageURL,
		})
	}
	return sellers
}

// categoryStats computes per-category count, inventory value and mean
// price. Sorted by count descending, not capped.
func categoryStats(products []entity.EnrichedProduct) []entity.CategoryStat {
	type acc struct {
		count      int
		totalValue decimal.Decimal
		priceSum   decimal.Decimal
	}
	byCategory := make(map[string]acc)
	for _, p := range products {
		label := categoryLabel(p)
		a := byCategory[label]
		a.count++
		a.totalValue = a.totalValue.Add(inventoryValue(p))
		a.priceSum = a.priceSum.Add(p.Price)
		byCategory[label] = a
	}

	stats := make([]entity.CategoryStat, 0, len(byCategory))
	for category, a := range byCategory {
		stats = append(stats, entity.CategoryStat{
			Category:   category,
			Count:      a.count,
			TotalValue: a.totalValue,
			AvgPrice:   a.priceSum.Div(decimal.NewFromInt(int64(a.count))).Round(2),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// monthlyTrend buckets date-filtered order lines by calendar month and
// keeps the most recent 6 buckets in chronological order. GrowthRate is
// the revenue change against the previous bucket in percent; it stays
// nil for the first bucket and whenever the previous revenue was zero.
func monthlyTrend(lines []entity.OrderLineWithDate, from, to *time.Time) []entity.TrendPoint {
	type acc struct {
		sold    int
		revenue decimal.Decimal
	}
	months := make(map[string]acc)
	for _, l := range lines {
		if l.OrderDate == nil {
			continue
		}
		if from != nil && l.OrderDate.Before(*from) {
			continue
		}
		if to != nil && l.OrderDate.After(*to) {
			continue
		}
		key := l.OrderDate.Format("2006-01")
		a := months[key]
		a.sold += l.Quantity
		a.revenue = a.revenue.Add(l.Subtotal)
		months[key] = a
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Growth is computed over the full history before the window is
	// cut, so the first kept month still compares against the month
	// preceding it.
	trend := make([]entity.TrendPoint, 0, len(keys))
	var prevRevenue *decimal.Decimal
	for _, k := range keys {
		a := months[k]
		point := entity.TrendPoint{
			Period:       fmt.Sprintf("%s/%s", k[5:7], k[0:4]),
			SoldQuantity: a.sold,
			Revenue:      a.revenue,
		}
		if a.sold > 0 {
			point.AvgPrice = a.revenue.Div(decimal.NewFromInt(int64(a.sold))).Round(2)
		}
		if prevRevenue != nil && prevRevenue.IsPositive() {
			growth, _ := a.revenue.Sub(*prevRevenue).Div(*prevRevenue).Mul(decimal.NewFromInt(100)).Float64()
			point.GrowthRate = &growth
		}
		rev := a.revenue
		prevRevenue = &rev
		trend = append(trend, point)
	}
	if len(trend) > 6 {
		trend = trend[len(trend)-6:]
	}
	return trend
}
