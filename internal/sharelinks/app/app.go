package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/domain"
	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/service"
	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/store"
	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/store/drivers/sqlite"
	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/store/file"
	"github.com/aussiebroadwan/sharelinks/pkg/slogx"
	"github.com/aussiebroadwan/sharelinks/pkg/spotify"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the share-link service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      *sqlite.Store
	links   store.Links
	creds   store.Credentials
	client  *spotify.Client
	capture *service.RedirectCapture

	// Services
	tokens   *service.TokenManager
	resolver *service.Resolver
}

// New creates an Application with all dependencies initialized. The side
// channel source and the authorize hand-off come from the binary: the core
// never assumes a clipboard or a browser.
func New(cfg Config, source service.TextSource, authorize service.AuthorizeFunc) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "sharelinks",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.creds = file.NewCredentialStore(cfg.TokenFile, app.logger)
	app.client = spotify.NewClient(cfg.ClientID)
	app.capture = service.NewRedirectCapture(source, cfg.PollInterval, app.logger)

	app.tokens = service.NewTokenManager(service.TokenManagerConfig{
		Client:      app.client,
		Credentials: app.creds,
		Capture:     app.capture,
		Authorize:   authorize,
		RedirectURI: cfg.RedirectURI,
		WaitBudget:  cfg.AuthWait,
		Logger:      app.logger,
	})

	app.resolver = service.NewResolver(service.ResolverConfig{
		Client:  app.client,
		Tokens:  app.tokens,
		Target:  domain.ParseTargetPreference(cfg.LinkTarget),
		History: app.links,
		Logger:  app.logger,
	})

	return app, nil
}

// Logger exposes the application logger for the binary's own messages.
func (app *Application) Logger() *slog.Logger { return app.logger }

// Login forces a credential to exist, refreshing or re-authorizing as
// needed. Useful to complete the consent flow ahead of the first resolve.
func (app *Application) Login(ctx context.Context) (domain.Credential, error) {
	return app.tokens.EnsureValidToken(ctx)
}

// Logout drops the cached and persisted credential.
func (app *Application) Logout(ctx context.Context) error {
	return app.tokens.Invalidate(ctx)
}

// Resolve turns a track ID into a share-ready link record and prunes the
// history to the configured size.
func (app *Application) Resolve(ctx context.Context, trackID string) (domain.LinkRecord, error) {
	record, err := app.resolver.ResolveTrack(ctx, trackID)
	if err != nil {
		return domain.LinkRecord{}, err
	}

	if err := app.links.Prune(ctx, app.cfg.HistoryKeep); err != nil {
		app.logger.Warn("failed to prune link history", "error", err)
	}

	return record, nil
}

// Recent returns up to limit previously resolved links, newest first.
func (app *Application) Recent(ctx context.Context, limit int) ([]domain.LinkRecord, error) {
	return app.links.Recent(ctx, limit)
}

// Close releases the database connection.
func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db
	app.links = db.Links()

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}
