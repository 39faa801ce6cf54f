package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backoffice/internal/entity"
)

func strPtr(s string) *string { return &s }

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &ts
}

func product(id int, name string, price float64, stock int, category string) entity.Product {
	p := entity.Product{
		ID:            id,
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		StockQuantity: stock,
	}
	if category != "" {
		p.Category = strPtr(category)
	}
	return p
}

func line(t *testing.T, productID, quantity int, subtotal float64, date string) entity.OrderLineWithDate {
	l := entity.OrderLineWithDate{
		OrderLine: entity.OrderLine{
			ProductID: productID,
			Quantity:  quantity,
			Subtotal:  decimal.NewFromFloat(subtotal),
		},
	}
	if date != "" {
		l.OrderDate = datePtr(t, date)
	}
	return l
}

func TestAccumulateSales(t *testing.T) {
	lines := []entity.OrderLineWithDate{
		line(t, 1, 2, 200, "2024-01-10"),
		line(t, 1, 1, 100, "2024-02-15"),
		line(t, 2, 5, 50, "2024-03-01"),
		line(t, 3, 4, 80, ""),
	}

	t.Run("no bounds sums everything including dateless lines", func(t *testing.T) {
		totals := accumulateSales(lines, nil, nil)
		assert.Equal(t, 3, totals[1].totalSold)
		assert.True(t, totals[1].revenue.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, 5, totals[2].totalSold)
		assert.Equal(t, 4, totals[3].totalSold)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		totals := accumulateSales(lines, datePtr(t, "2024-01-10"), datePtr(t, "2024-02-15"))
		assert.Equal(t, 3, totals[1].totalSold)
		assert.Zero(t, totals[2].totalSold)
	})

	t.Run("dateless lines fall outside any bounded window", func(t *testing.T) {
		totals := accumulateSales(lines, datePtr(t, "2020-01-01"), nil)
		_, ok := totals[3]
		assert.False(t, ok)
	})

	t.Run("missing product yields zero value", func(t *testing.T) {
		totals := accumulateSales(lines, nil, nil)
		assert.Zero(t, totals[99].totalSold)
		assert.True(t, totals[99].revenue.IsZero())
	})
}

func TestEnrichKeepsEveryProduct(t *testing.T) {
	products := []entity.Product{
		product(1, "Mug", 10, 3, "Kitchen"),
		product(2, "Lamp", 40, 7, "Home"),
	}
	totals := map[int]salesTotals{
		1: {totalSold: 6, revenue: decimal.NewFromInt(60)},
	}

	enriched := enrich(products, totals)
	require.Len(t, enriched, 2)
	assert.Equal(t, 6, enriched[0].TotalSold)
	assert.Zero(t, enriched[1].TotalSold)
	assert.True(t, enriched[1].Revenue.IsZero())
}

func TestFilterByCategory(t *testing.T) {
	enriched := enrich([]entity.Product{
		product(1, "Mug", 10, 3, "Kitchen"),
		product(2, "Lamp", 40, 7, "Home"),
		product(3, "Mystery", 5, 1, ""),
	}, nil)

	t.Run("all passes through", func(t *testing.T) {
		assert.Len(t, filterByCategory(enriched, entity.ReportFilter{Category: "all"}), 3)
		assert.Len(t, filterByCategory(enriched, entity.ReportFilter{}), 3)
	})

	t.Run("exact match only removes", func(t *testing.T) {
		filtered := filterByCategory(enriched, entity.ReportFilter{Category: "Kitchen"})
		require.Len(t, filtered, 1)
		assert.Equal(t, 1, filtered[0].ID)
	})

	t.Run("unknown category empties the set", func(t *testing.T) {
		assert.Empty(t, filterByCategory(enriched, entity.ReportFilter{Category: "Garage"}))
	})
}

func TestDistinctCategories(t *testing.T) {
	enriched := enrich([]entity.Product{
		product(1, "Mug", 10, 3, "Kitchen"),
		product(2, "Lamp", 40, 7, "Home"),
		product(3, "Plate", 8, 2, "Kitchen"),
		product(4, "Mystery", 5, 1, ""),
	}, nil)

	assert.Equal(t, []string{"Home", "Kitchen"}, distinctCategories(enriched))
}

func TestComputeSummary(t *testing.T) {
	t.Run("empty set is all zeros", func(t *testing.T) {
		s := computeSummary(nil)
		assert.Zero(t, s.TotalProducts)
		assert.True(t, s.AvgPrice.IsZero())
		assert.True(t, s.TotalInventoryValue.IsZero())
	})

	t.Run("mean price rounds to cents", func(t *testing.T) {
		s := computeSummary(enrich([]entity.Product{
			product(1, "A", 10, 1, ""),
			product(2, "B", 10, 1, ""),
			product(3, "C", 10.01, 1, ""),
		}, nil))
		assert.Equal(t, "10.00", s.AvgPrice.StringFixed(2))
	})

	t.Run("stock buckets are disjoint", func(t *testing.T) {
		s := computeSummary(enrich([]entity.Product{
			product(1, "Empty", 10, 0, ""),
			product(2, "Low", 10, 10, ""),
			product(3, "Edge", 10, 1, ""),
			product(4, "Full", 10, 11, ""),
		}, nil))
		assert.Equal(t, 1, s.OutOfStockCount)
		assert.Equal(t, 2, s.LowStockCount)
	})
}

func TestCategoryBreakdownTopSix(t *testing.T) {
	var products []entity.Product
	for i := 1; i <= 8; i++ {
		products = append(products, product(i, fmt.Sprintf("P%d", i), float64(i*10), 1, fmt.Sprintf("C%d", i)))
	}
	products = append(products, product(9, "NoCat", 100, 2, ""))

	breakdown := stockByCategory(enrich(products, nil))
	require.Len(t, breakdown, 6)
	assert.Equal(t, entity.UncategorizedLabel, breakdown[0].Category)
	assert.True(t, breakdown[0].Value.Equal(decimal.NewFromInt(200)))
	for i := 1; i < len(breakdown); i++ {
		assert.True(t, breakdown[i].Value.LessThanOrEqual(breakdown[i-1].Value))
	}
}

func TestSalesByCategoryGroupsRevenue(t *testing.T) {
	totals := map[int]salesTotals{
		1: {totalSold: 2, revenue: decimal.NewFromInt(200)},
		2: {totalSold: 1, revenue: decimal.NewFromInt(50)},
		3: {totalSold: 3, revenue: decimal.NewFromInt(90)},
	}
	enriched := enrich([]entity.Product{
		product(1, "Mug", 100, 1, "Kitchen"),
		product(2, "Plate", 50, 1, "Kitchen"),
		product(3, "Lamp", 30, 1, "Home"),
	}, totals)

	breakdown := salesByCategory(enriched)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Kitchen", breakdown[0].Category)
	assert.True(t, breakdown[0].Value.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "Home", breakdown[1].Category)
}

func TestTopSellers(t *testing.T) {
	var products []entity.Product
	totals := map[int]salesTotals{}
	for i := 1; i <= 12; i++ {
		products = append(products, product(i, fmt.Sprintf("P%d", i), 10, 5, ""))
		totals[i] = salesTotals{totalSold: i, revenue: decimal.NewFromInt(int64(i * 10))}
	}

	sellers := topSellers(enrich(products, totals))
	require.Len(t, sellers, 10)
	assert.Equal(t, 12, sellers[0].TotalSold)
	for i := 1; i < len(sellers); i++ {
		assert.GreaterOrEqual(t, sellers[i-1].TotalSold, sellers[i].TotalSold)
	}
}

func TestCategoryStatsCountsCoverEveryProduct(t *testing.T) {
	enriched := enrich([]entity.Product{
		product(1, "Mug", 10, 3, "Kitchen"),
		product(2, "Plate", 20, 2, "Kitchen"),
		product(3, "Lamp", 40, 7, "Home"),
		product(4, "Mystery", 5, 1, ""),
	}, nil)

	stats := categoryStats(enriched)
	require.Len(t, stats, 3)
	assert.Equal(t, "Kitchen", stats[0].Category)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, "15.00", stats[0].AvgPrice.StringFixed(2))

	total := 0
	for _, s := range stats {
		total += s.Count
	}
	assert.Equal(t, len(enriched), total)
}

func TestMonthlyTrend(t *testing.T) {
	t.Run("chronological with growth", func(t *testing.T) {
		lines := []entity.OrderLineWithDate{
			line(t, 1, 2, 100, "2024-02-10"),
			line(t, 1, 1, 50, "2024-01-05"),
			line(t, 1, 3, 150, "2024-02-20"),
		}
		trend := monthlyTrend(lines, nil, nil)
		require.Len(t, trend, 2)
		assert.Equal(t, "01/2024", trend[0].Period)
		assert.Nil(t, trend[0].GrowthRate)
		assert.Equal(t, "02/2024", trend[1].Period)
		assert.Equal(t, 5, trend[1].SoldQuantity)
		require.NotNil(t, trend[1].GrowthRate)
		assert.InDelta(t, 400.0, *trend[1].GrowthRate, 0.001)
	})

	t.Run("keeps the last six months", func(t *testing.T) {
		var lines []entity.OrderLineWithDate
		for m := 1; m <= 8; m++ {
			lines = append(lines, line(t, 1, 1, float64(m*100), fmt.Sprintf("2024-%02d-15", m)))
		}
		trend := monthlyTrend(lines, nil, nil)
		require.Len(t, trend, 6)
		assert.Equal(t, "03/2024", trend[0].Period)
		assert.Equal(t, "08/2024", trend[5].Period)
		// the cut does not erase the comparison against the month
		// preceding the window
		require.NotNil(t, trend[0].GrowthRate)
		assert.InDelta(t, 50.0, *trend[0].GrowthRate, 0.001)
	})

	t.Run("zero prior revenue leaves growth unset", func(t *testing.T) {
		lines := []entity.OrderLineWithDate{
			line(t, 1, 1, 0, "2024-01-05"),
			line(t, 1, 2, 100, "2024-02-10"),
		}
		trend := monthlyTrend(lines, nil, nil)
		require.Len(t, trend, 2)
		assert.Nil(t, trend[1].GrowthRate)
	})

	t.Run("month with zero quantity keeps avg price at zero", func(t *testing.T) {
		lines := []entity.OrderLineWithDate{
			line(t, 1, 0, 0, "2024-01-05"),
		}
		trend := monthlyTrend(lines, nil, nil)
		require.Len(t, trend, 1)
		assert.True(t, trend[0].AvgPrice.IsZero())
	})

	t.Run("empty lines yield empty trend", func(t *testing.T) {
		assert.Empty(t, monthlyTrend(nil, nil, nil))
	})
}

func TestTwoProductScenario(t *testing.T) {
	products := []entity.Product{
		product(1, "Alpha", 100, 5, "A"),
		product(2, "Beta", 200, 0, "B"),
	}
	lines := []entity.OrderLineWithDate{
		line(t, 1, 2, 200, "2024-01-10"),
	}

	totals := accumulateSales(lines, nil, nil)
	enriched := enrich(products, totals)
	summary := computeSummary(enriched)

	assert.Equal(t, 2, summary.TotalProducts)
	assert.True(t, summary.TotalInventoryValue.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, summary.OutOfStockCount)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 2, summary.TotalSold)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(200)))

	sellers := topSellers(enriched)
	require.Len(t, sellers, 2)
	assert.Equal(t, 1, sellers[0].ProductID)
	assert.Equal(t, 2, sellers[0].TotalSold)
	assert.Equal(t, 2, sellers[1].ProductID)
	assert.Zero(t, sellers[1].TotalSold)

	trend := monthlyTrend(lines, nil, nil)
	require.Len(t, trend, 1)
	assert.Equal(t, "01/2024", trend[0].Period)
	assert.Equal(t, 2, trend[0].SoldQuantity)
	assert.True(t, trend[0].Revenue.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "100.00", trend[0].AvgPrice.StringFixed(2))
	assert.Nil(t, trend[0].GrowthRate)
}

func TestDateWindowExcludingAllLines(t *testing.T) {
	products := []entity.Product{
		product(1, "Alpha", 100, 5, "A"),
		product(2, "Beta", 200, 0, "B"),
	}
	lines := []entity.OrderLineWithDate{
		line(t, 1, 2, 200, "2024-01-10"),
		line(t, 2, 1, 200, "2024-03-01"),
	}

	from := datePtr(t, "2030-01-01")
	totals := accumulateSales(lines, from, nil)
	enriched := enrich(products, totals)

	require.Len(t, enriched, len(products))
	for _, p := range enriched {
		assert.Zero(t, p.TotalSold)
		assert.True(t, p.Revenue.IsZero())
	}
	assert.Empty(t, monthlyTrend(lines, from, nil))
}

func TestDateWindowEndOfDay(t *testing.T) {
	filter := entity.ReportFilter{
		DateFrom: datePtr(t, "2024-01-01"),
		DateTo:   datePtr(t, "2024-01-31"),
	}
	from, to := filter.DateWindow()

	late := time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC)
	lines := []entity.OrderLineWithDate{
		{OrderLine: entity.OrderLine{ProductID: 1, Quantity: 1, Subtotal: decimal.NewFromInt(10)}, OrderDate: &late},
	}
	totals := accumulateSales(lines, from, to)
	assert.Equal(t, 1, totals[1].totalSold)
}
