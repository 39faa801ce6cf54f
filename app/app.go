package app

import (
	"context"

	"log/slog"

	httpapi "github.com/retailops/backoffice/internal/api/http"
	"github.com/retailops/backoffice/internal/dependency"
	"github.com/retailops/backoffice/internal/pdf"
	"github.com/retailops/backoffice/internal/report"
	"github.com/retailops/backoffice/internal/store"

	"github.com/retailops/backoffice/config"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting back-office service")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	reports := report.New(a.db)
	exporter := pdf.New(a.c.PDF)

	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, a.db, reports, exporter); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		a.hs.Stop(ctx)
	}
	a.db.Close()
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
