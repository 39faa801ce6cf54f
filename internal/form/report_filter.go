// Package form parses and validates incoming request payloads.
package form

import (
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailops/backoffice/internal/entity"
)

const dateLayout = "2006-01-02"

// ParseReportFilter builds a report filter from query parameters.
// Absent parameters leave the matching filter field unset.
func ParseReportFilter(values url.Values) (entity.ReportFilter, error) {
	var f entity.ReportFilter

	if v := values.Get("dateFrom"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, fmt.Errorf("invalid dateFrom %q: expected YYYY-MM-DD", v)
		}
		f.DateFrom = &t
	}
	if v := values.Get("dateTo"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, fmt.Errorf("invalid dateTo %q: expected YYYY-MM-DD", v)
		}
		f.DateTo = &t
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return f, fmt.Errorf("dateTo precedes dateFrom")
	}

	f.Category = values.Get("category")

	if v := values.Get("stockStatus"); v != "" {
		status := entity.StockStatus(v)
		if !entity.IsValidStockStatus(status) {
			return f, fmt.Errorf("invalid stockStatus %q", v)
		}
		f.StockStatus = status
	}

	if v := values.Get("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return f, fmt.Errorf("invalid minPrice %q", v)
		}
		f.MinPrice = &d
	}
	if v := values.Get("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return f, fmt.Errorf("invalid maxPrice %q", v)
		}
		f.MaxPrice = &d
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MaxPrice.LessThan(*f.MinPrice) {
		return f, fmt.Errorf("maxPrice below minPrice")
	}

	f.NameSearch = values.Get("search")

	return f, nil
}
