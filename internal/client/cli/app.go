package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/client/client"
	"github.com/dmitrijs2005/ideaboard/internal/client/config"
	"github.com/dmitrijs2005/ideaboard/internal/client/delivery"
	"github.com/dmitrijs2005/ideaboard/internal/client/feed"
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories"
	"github.com/dmitrijs2005/ideaboard/internal/client/services"
	"github.com/dmitrijs2005/ideaboard/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	remote   client.Client
	accounts services.AccountService
	ideas    services.IdeaService
	profiles services.ProfileService

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens the local store and builds every service from cfg.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	remote, err := client.NewHTTPClient(client.Options{
		APIBaseURL:        cfg.APIBaseURL,
		FormSubmissionURL: cfg.FormSubmissionURL,
		HealthAddr:        cfg.HealthAddr,
		Timeout:           cfg.RequestTimeout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var sender delivery.Sender = delivery.NewConsoleSender(os.Stdout, logger)
	if cfg.SMTP.Enabled() {
		smtp, err := delivery.NewSMTPSender(cfg.SMTP)
		if err != nil {
			_ = remote.Close()
			_ = db.Close()
			return nil, fmt.Errorf("smtp sender: %w", err)
		}
		sender = smtp
	}

	var alternate feed.Source
	if cfg.FeedFile != "" {
		alternate = feed.NewFileSource(cfg.FeedFile)
	}

	repos := repositories.NewKVManager()

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		remote: remote,
		accounts: services.NewAccountService(db, repos, remote, sender, logger, services.AccountOptions{
			SessionSecret: []byte(cfg.SessionSecret),
			SessionTTL:    cfg.SessionTTL,
			CodeTTL:       cfg.CodeTTL,
		}),
		ideas:    services.NewIdeaService(db, repos, remote, alternate, logger),
		profiles: services.NewProfileService(db, repos, remote, logger),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run blocks in the REPL until the user exits or ctx is done, then releases
// the store and the remote client.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	a.accounts.Wait()
	if err := a.remote.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing remote client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing local store", "error", err)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", mode)
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.remote.Ping(pctx); err != nil {
		a.logger.Debug(ctx, "ping failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
