// Package report computes the product report: catalog rows enriched
// with sales totals plus the derived summary, breakdowns, top sellers,
// category stats and monthly trend.
package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/retailops/backoffice/internal/dependency"
	"github.com/retailops/backoffice/internal/entity"
)

// SalesDataWarning is attached to reports whose sales figures degraded
// to zero because the order lines could not be fetched.
const SalesDataWarning = "sales data unavailable, sold quantities and revenue are reported as zero"

// Service runs report aggregations. Starting a run cancels the one
// still in flight, so a slow earlier request can never overwrite the
// result of a newer one.
type Service struct {
	repo dependency.ReportSource

	mu         sync.Mutex
	cancelPrev context.CancelFunc
}

func New(repo dependency.ReportSource) *Service {
	return &Service{repo: repo}
}

func (s *Service) begin(ctx context.Context) (context.Context, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancelPrev = cancel
	return ctx, cancel
}

// Run executes one aggregation over the current store state.
//
// A product fetch failure aborts the run. An order-line fetch failure
// does not: the report is built with zero sales totals and flagged
// incomplete.
func (s *Service) Run(ctx context.Context, filter entity.ReportFilter) (*entity.ProductReport, error) {
	ctx, cancel := s.begin(ctx)
	defer cancel()

	products, err := s.repo.Products().GetReportProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var incomplete bool
	lines, err := s.repo.Orders().GetOrderLinesWithDate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Default().ErrorContext(ctx, "order lines unavailable, sales totals degrade to zero",
			slog.String("err", err.Error()),
		)
		incomplete = true
		lines = nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	from, to := filter.DateWindow()
	totals := accumulateSales(lines, from, to)
	enriched := enrich(products, totals)
	categories := distinctCategories(enriched)
	enriched = filterByCategory(enriched, filter)

	r := &entity.ProductReport{
		Summary:             computeSummary(enriched),
		SalesByCategory:     salesByCategory(enriched),
		StockByCategory:     stockByCategory(enriched),
		TopSellers:          topSellers(enriched),
		CategoryStats:       categoryStats(enriched),
		MonthlyTrend:        monthlyTrend(lines, from, to),
		Products:            enriched,
		Categories:          categories,
		SalesDataIncomplete: incomplete,
		GeneratedAt:         time.Now(),
	}
	if incomplete {
		r.Warning = SalesDataWarning
	}
	return r, nil
}
