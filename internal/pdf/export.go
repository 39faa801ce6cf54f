// Package pdf renders the product report as a downloadable document.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/retailops/backoffice/internal/entity"
)

// Config holds the document branding options.
type Config struct {
	CompanyName string `mapstructure:"company_name"`
}

// Exporter renders product reports to PDF. It is stateless and safe
// for concurrent use.
type Exporter struct {
	companyName string
}

func New(cfg Config) *Exporter {
	name := cfg.CompanyName
	if name == "" {
		name = "Retail Back-Office"
	}
	return &Exporter{companyName: name}
}

const maxNameLen = 40

var (
	darkGray   = color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
)

func truncateName(name string) string {
	if len(name) <= maxNameLen {
		return name
	}
	return name[:maxNameLen-3] + "..."
}

// periodLine describes the date window of the report for the header.
func periodLine(filter entity.ReportFilter) string {
	const layout = "Jan 02, 2006"
	switch {
	case filter.DateFrom != nil && filter.DateTo != nil:
		return fmt.Sprintf("Period: from %s to %s", filter.DateFrom.Format(layout), filter.DateTo.Format(layout))
	case filter.DateFrom != nil:
		return fmt.Sprintf("Period: from %s", filter.DateFrom.Format(layout))
	case filter.DateTo != nil:
		return fmt.Sprintf("Period: through %s", filter.DateTo.Format(layout))
	default:
		return "Period: all time"
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Export renders the report into PDF bytes. The input report is never
// mutated.
func (e *Exporter) Export(report *entity.ProductReport, filter entity.ReportFilter) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("PRODUCT REPORT", props.Text{
				Size:  24,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(e.companyName, props.Text{
				Size:  14,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(periodLine(filter), props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("Jan 02, 2006 15:04")), props.Text{
				Size:  9,
				Color: mediumGray,
				Align: consts.Right,
			})
		})
	})

	if report.Warning != "" {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("Warning: %s", report.Warning), props.Text{
					Size:  9,
					Style: consts.Bold,
					Color: darkGray,
				})
			})
		})
	}

	m.Row(8, func() {})

	e.summarySection(m, report.Summary)
	m.Row(8, func() {})
	e.categoryStatsSection(m, report.CategoryStats)
	m.Row(8, func() {})
	e.topSellersSection(m, report.TopSellers)

	m.Row(16, func() {})

	// signature block
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("_______________________", props.Text{
				Size:  10,
				Color: darkGray,
			})
		})
	})
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("Prepared by", props.Text{
				Size:  8,
				Color: mediumGray,
			})
		})
	})

	m.Row(10, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("%s - internal use only", e.companyName), props.Text{
				Size:  8,
				Color: mediumGray,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) summarySection(m pdf.Maroto, s entity.SummaryMetrics) {
	e.sectionTitle(m, "Summary")

	rows := []struct {
		label string
		value string
	}{
		{"Total products", fmt.Sprintf("%d", s.TotalProducts)},
		{"Total inventory value", money(s.TotalInventoryValue)},
		{"Average price", money(s.AvgPrice)},
		{"Low stock products", fmt.Sprintf("%d", s.LowStockCount)},
		{"Out of stock products", fmt.Sprintf("%d", s.OutOfStockCount)},
		{"Units sold", fmt.Sprintf("%d", s.TotalSold)},
		{"Total revenue", money(s.TotalRevenue)},
	}
	for _, r := range rows {
		r := r
		m.Row(5, func() {
			m.Col(6, func() {
				m.Text(r.label, props.Text{
					Size:  9,
					Color: mediumGray,
				})
			})
			m.Col(6, func() {
				m.Text(r.value, props.Text{
					Size:  9,
					Color: darkGray,
					Align: consts.Right,
				})
			})
		})
	}
}

func (e *Exporter) categoryStatsSection(m pdf.Maroto, stats []entity.CategoryStat) {
	e.sectionTitle(m, "Categories")

	m.Row(6, func() {
		m.Col(5, func() {
			m.Text("Category", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(2, func() {
			m.Text("Products", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(3, func() {
			m.Text("Inventory value", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text("Avg price", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})

	for _, s := range stats {
		s := s
		m.Row(5, func() {
			m.Col(5, func() {
				m.Text(truncateName(s.Category), props.Text{Size: 9, Color: darkGray})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%d", s.Count), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			m.Col(3, func() {
				m.Text(money(s.TotalValue), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			m.Col(2, func() {
				m.Text(money(s.AvgPrice), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
		})
	}
}

func (e *Exporter) topSellersSection(m pdf.Maroto, sellers []entity.TopSeller) {
	e.sectionTitle(m, "Top Sellers")

	if len(sellers) > 5 {
		sellers = sellers[:5]
	}

	m.Row(6, func() {
		m.Col(6, func() {
			m.Text("Product", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(2, func() {
			m.Text("Sold", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text("Revenue", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text("In stock", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})

	for _, s := range sellers {
		s := s
		m.Row(5, func() {
			m.Col(6, func() {
				m.Text(truncateName(s.ProductName), props.Text{Size: 9, Color: darkGray})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%d", s.TotalSold), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			m.Col(2, func() {
				m.Text(money(s.Revenue), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%d", s.StockQuantity), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
		})
	}
}

func (e *Exporter) sectionTitle(m pdf.Maroto, title string) {
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{
				Size:  12,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})
}
