// Package server wires and runs the reference ideas API: the chi HTTP server
// backed by PostgreSQL and the gRPC health service. Both stop gracefully when
// the run context is cancelled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/logging"
	"github.com/dmitrijs2005/ideaboard/internal/server/config"
	"github.com/dmitrijs2005/ideaboard/internal/server/handlers"
	"github.com/dmitrijs2005/ideaboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ideaboard/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/ideaboard/internal/server/grpc"
)

const healthInterval = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *http.Server
	health *gs.HealthServer
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	app := newApp(c, logger, db, rm)
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewDBStatsCollector(db, "ideas"))

	h := handlers.New(
		services.NewIdeaService(db, rm),
		services.NewProfileService(db, rm),
		services.NewImageService(c),
		db.PingContext,
		[]byte(c.SessionSecret),
		logger,
	)

	app := &App{
		config: c,
		logger: logger,
		db:     db,
		http: &http.Server{
			Addr:              c.HTTPAddr,
			Handler:           h.Routes(reg, reg),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	if c.HealthAddr != "" {
		app.health = gs.NewHealthServer(c.HealthAddr, logger, db.PingContext, healthInterval)
	}
	return app
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.http.ListenAndServe()
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.http.Addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
		return
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "Stopping HTTP server...")

	sctx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.http.Shutdown(sctx); err != nil {
		app.logger.Error(sctx, "http shutdown", "error", err)
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or one of the servers fails, then
// closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHealthServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "closing database", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
