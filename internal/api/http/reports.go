package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/retailops/backoffice/internal/form"
)

func (s *Server) getProductReport(w http.ResponseWriter, r *http.Request) {
	filter, err := form.ParseReportFilter(r.URL.Query())
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	rep, err := s.reports.Run(r.Context(), filter)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// superseded by a newer request
			w.WriteHeader(http.StatusNoContent)
			return
		}
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Render(w, r, &ReportResponse{Report: rep})
}

func (s *Server) getProductReportPDF(w http.ResponseWriter, r *http.Request) {
	filter, err := form.ParseReportFilter(r.URL.Query())
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	rep, err := s.reports.Run(r.Context(), filter)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	out, err := s.exporter.Export(rep, filter)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(fmt.Errorf("failed to export report: %w", err)))
		return
	}

	filename := fmt.Sprintf("product_report_%s.pdf", rep.GeneratedAt.Format("20060102_1504"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
