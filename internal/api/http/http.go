// Package httpapi exposes the JSON HTTP API of the back-office.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/retailops/backoffice/internal/dependency"
	"github.com/retailops/backoffice/internal/report"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs       *http.Server
	c        *Config
	db       dependency.Repository
	reports  *report.Service
	exporter dependency.ReportExporter
	done     chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	origins := s.c.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Get("/products", s.getProductReport)
			r.Get("/products/pdf", s.getProductReportPDF)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.createOrder)
			r.Get("/", s.listOrders)
			r.Route("/{number}", func(r chi.Router) {
				r.Get("/", s.getOrder)
				r.Route("/shipment", func(r chi.Router) {
					r.Post("/", s.upsertShipment)
					r.Get("/", s.getShipment)
					r.Put("/status", s.setShipmentStatus)
				})
			})
		})

		r.Route("/returns", func(r chi.Router) {
			r.Post("/", s.createReturn)
			r.Get("/", s.listReturns)
			r.Put("/{id}/status", s.setReturnStatus)
		})
	})

	return r
}

// Start starts the server in a separate goroutine.
func (s *Server) Start(ctx context.Context, db dependency.Repository, reports *report.Service, exporter dependency.ReportExporter) error {
	s.db = db
	s.reports = reports
	s.exporter = exporter

	s.hs = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.c.Address, s.c.Port),
		Handler: s.router(),
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "http server listening",
			slog.String("addr", s.hs.Addr),
		)
		if err := s.hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()),
			)
		}
	}()

	return nil
}

// Stop shuts the server down, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) {
	if s.hs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.hs.Shutdown(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "http server shutdown",
			slog.String("err", err.Error()),
		)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		render.Render(w, r, ErrServiceUnavailable(err))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
