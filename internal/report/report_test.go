package report

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backoffice/internal/dependency"
	"github.com/retailops/backoffice/internal/entity"
)

type stubProducts struct {
	dependency.Products
	products []entity.Product
	err      error
}

func (s *stubProducts) GetReportProducts(ctx context.Context, filter entity.ReportFilter) ([]entity.Product, error) {
	return s.products, s.err
}

type stubOrders struct {
	dependency.Orders
	lines []entity.OrderLineWithDate
	err   error
	fn    func(ctx context.Context) ([]entity.OrderLineWithDate, error)
}

func (s *stubOrders) GetOrderLinesWithDate(ctx context.Context) ([]entity.OrderLineWithDate, error) {
	if s.fn != nil {
		return s.fn(ctx)
	}
	return s.lines, s.err
}

type stubSource struct {
	products *stubProducts
	orders   *stubOrders
}

func (s *stubSource) Products() dependency.Products { return s.products }
func (s *stubSource) Orders() dependency.Orders     { return s.orders }

func TestRunAbortsOnProductFetchError(t *testing.T) {
	svc := New(&stubSource{
		products: &stubProducts{err: errors.New("connection refused")},
		orders:   &stubOrders{},
	})

	report, err := svc.Run(context.Background(), entity.ReportFilter{})
	assert.Nil(t, report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch products")
}

func TestRunDegradesOnLineFetchError(t *testing.T) {
	svc := New(&stubSource{
		products: &stubProducts{products: []entity.Product{
			product(1, "Mug", 10, 3, "Kitchen"),
		}},
		orders: &stubOrders{err: errors.New("timeout")},
	})

	report, err := svc.Run(context.Background(), entity.ReportFilter{})
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, report.SalesDataIncomplete)
	assert.Equal(t, SalesDataWarning, report.Warning)
	require.Len(t, report.Products, 1)
	assert.Zero(t, report.Products[0].TotalSold)
	assert.Empty(t, report.MonthlyTrend)
	assert.Equal(t, 1, report.Summary.TotalProducts)
}

func TestRunBuildsFullReport(t *testing.T) {
	svc := New(&stubSource{
		products: &stubProducts{products: []entity.Product{
			product(1, "Mug", 10, 3, "Kitchen"),
			product(2, "Lamp", 40, 0, "Home"),
		}},
		orders: &stubOrders{lines: []entity.OrderLineWithDate{
			line(t, 1, 4, 40, "2024-05-02"),
		}},
	})

	report, err := svc.Run(context.Background(), entity.ReportFilter{})
	require.NoError(t, err)
	assert.False(t, report.SalesDataIncomplete)
	assert.Empty(t, report.Warning)
	assert.Equal(t, 2, report.Summary.TotalProducts)
	assert.Equal(t, 4, report.Summary.TotalSold)
	assert.Equal(t, []string{"Home", "Kitchen"}, report.Categories)
	require.Len(t, report.MonthlyTrend, 1)
	assert.Equal(t, "05/2024", report.MonthlyTrend[0].Period)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestRunCategoriesPrecedeCategoryFilter(t *testing.T) {
	svc := New(&stubSource{
		products: &stubProducts{products: []entity.Product{
			product(1, "Mug", 10, 3, "Kitchen"),
			product(2, "Lamp", 40, 1, "Home"),
		}},
		orders: &stubOrders{},
	})

	report, err := svc.Run(context.Background(), entity.ReportFilter{Category: "Kitchen"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.TotalProducts)
	assert.Equal(t, []string{"Home", "Kitchen"}, report.Categories)
}

func TestRunCancelsPreviousRun(t *testing.T) {
	started := make(chan struct{})
	var calls atomic.Int32
	orders := &stubOrders{}
	orders.fn = func(ctx context.Context) ([]entity.OrderLineWithDate, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []entity.OrderLineWithDate{line(t, 1, 1, 10, "2024-05-02")}, nil
	}
	svc := New(&stubSource{
		products: &stubProducts{products: []entity.Product{
			product(1, "Mug", 10, 3, "Kitchen"),
		}},
		orders: orders,
	})

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background(), entity.ReportFilter{})
		firstDone <- err
	}()
	<-started

	// the second run supersedes the blocked first one
	report, err := svc.Run(context.Background(), entity.ReportFilter{})
	require.NoError(t, err)
	require.NotNil(t, report)

	err = <-firstDone
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
