package pdf

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backoffice/internal/entity"
)

func TestExportProducesValidPDF(t *testing.T) {
	e := New(Config{CompanyName: "Acme Retail"})

	report := &entity.ProductReport{
		Summary: entity.SummaryMetrics{
			TotalProducts:       3,
			TotalInventoryValue: decimal.NewFromInt(1500),
			AvgPrice:            decimal.NewFromFloat(49.99),
			LowStockCount:       1,
			TotalSold:           12,
			TotalRevenue:        decimal.NewFromInt(600),
		},
		CategoryStats: []entity.CategoryStat{
			{Category: "Kitchen", Count: 2, TotalValue: decimal.NewFromInt(1000), AvgPrice: decimal.NewFromInt(50)},
			{Category: "Home", Count: 1, TotalValue: decimal.NewFromInt(500), AvgPrice: decimal.NewFromInt(50)},
		},
		TopSellers: []entity.TopSeller{
			{ProductID: 1, ProductName: "Mug", TotalSold: 8, Revenue: decimal.NewFromInt(400), StockQuantity: 5},
			{ProductID: 2, ProductName: "Plate", TotalSold: 4, Revenue: decimal.NewFromInt(200), StockQuantity: 20},
		},
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	out, err := e.Export(report, entity.ReportFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestExportEmptyReport(t *testing.T) {
	e := New(Config{})

	out, err := e.Export(&entity.ProductReport{GeneratedAt: time.Now()}, entity.ReportFilter{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPeriodLine(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Period: all time", periodLine(entity.ReportFilter{}))
	assert.Equal(t, "Period: from Jan 01, 2024", periodLine(entity.ReportFilter{DateFrom: &from}))
	assert.Equal(t, "Period: through Jun 30, 2024", periodLine(entity.ReportFilter{DateTo: &to}))
	assert.Equal(t, "Period: from Jan 01, 2024 to Jun 30, 2024",
		periodLine(entity.ReportFilter{DateFrom: &from, DateTo: &to}))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short"))

	long := strings.Repeat("x", 60)
	got := truncateName(long)
	assert.Len(t, got, maxNameLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}
