package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/akbarovz/gadgethub/assets"
	"github.com/akbarovz/gadgethub/internal"
	"github.com/akbarovz/gadgethub/internal/auth"
	authdb "github.com/akbarovz/gadgethub/internal/auth/db"
	"github.com/akbarovz/gadgethub/internal/contact"
	contactdb "github.com/akbarovz/gadgethub/internal/contact/db"
	"github.com/akbarovz/gadgethub/internal/db"
	"github.com/akbarovz/gadgethub/internal/krypto"
	"github.com/akbarovz/gadgethub/internal/market"
	marketdb "github.com/akbarovz/gadgethub/internal/market/db"
	"github.com/akbarovz/gadgethub/internal/migrate"
	"github.com/akbarovz/gadgethub/internal/todo"
	tododb "github.com/akbarovz/gadgethub/internal/todo/db"
	"github.com/akbarovz/gadgethub/internal/web"
	"github.com/akbarovz/gadgethub/internal/web/sessions"
	"github.com/akbarovz/gadgethub/internal/web/view"
	"github.com/akbarovz/gadgethub/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A .env file is optional, the environment itself takes precedence.
	_ = godotenv.Load()

	os.Exit(run(ctx, os.Stderr))
}

func run(ctx context.Context, w io.Writer) int {
	logger := slog.New(slog.NewTextHandler(w, nil))

	cfg, err := configFromEnv()
	if err != nil {
		logger.Error("failed to get config from environment", "error", err)
		return 1
	}

	sqlDB, err := db.OpenSQLite(cfg.db.filename, true)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return 1
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.db.migrate {
		logger.Info("attempting to migrate database", "filename", cfg.db.filename)

		migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		ran, err := migrate.RunFS(migrateCtx, sqlDB, migrations.FS, migrate.Metadata{
			AppVersion: internal.BuildRevision,
			Timestamp:  time.Now(),
		})
		if err != nil {
			logger.Error("failed to migrate database", "error", err)
			return 1
		}

		for _, m := range ran {
			logger.Info("migration ran", "sequence", m.Sequence, "filename", m.Filename)
		}
	}

	viewRenderer, err := newRenderer(logger, cfg)
	if err != nil {
		logger.Error("failed to create view renderer", "error", err)
		return 1
	}

	// The session and CSRF keys are generated fresh at startup, sessions
	// don't survive a restart.
	keys := make([]krypto.Key, 3)
	for i := range keys {
		keys[i], err = krypto.GenerateKey()
		if err != nil {
			logger.Error("failed to generate key", "error", err)
			return 1
		}
	}

	authService, err := auth.NewService(authdb.New(sqlDB))
	if err != nil {
		logger.Error("failed to create auth service", "error", err)
		return 1
	}

	srv := &http.Server{
		Addr:         cfg.http.addr,
		ReadTimeout:  cfg.http.readTimeout,
		WriteTimeout: cfg.http.writeTimeout,
		IdleTimeout:  cfg.http.idleTimeout,
		Handler: web.NewServer(&web.ServerDeps{
			Logger:         logger,
			ViewRenderer:   viewRenderer,
			AuthService:    authService,
			TaskService:    todo.NewService(tododb.New(sqlDB)),
			MarketService:  market.NewService(marketdb.New(sqlDB)),
			ContactService: contact.NewService(contactdb.New(sqlDB)),
			SessionStore:   sessions.NewCookieStore(keys[0], keys[1], cfg.http.secureCookie),
			DistFS:         http.FS(assets.DistFS),
		}, web.ServerConfig{
			CSRFKey:      keys[2],
			SecureCookie: cfg.http.secureCookie,
		}),
	}

	// We need to run two tasks concurrently:
	// - Listen and serving of the HTTP server.
	// - Waiting for a signal to stop the server.

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server",
			"addr", cfg.http.addr,
			"buildRevision", internal.BuildRevision,
			"buildRevisionTime", internal.BuildRevisionTime,
			"buildLocalModified", internal.BuildLocalModified,
		)
		// ListenAndServe always returns a non-nil error,
		// g will cancel gCtx when an error is returned, so
		// this will also stop the other goroutine.
		return srv.ListenAndServe()
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("stopping http server")

		shutCtx, cancel := context.WithTimeout(context.Background(), cfg.http.shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutCtx)
	})

	err = g.Wait()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("http server stopped with error", "error", err)
		return 1
	}

	logger.Info("http server stopped successfully")

	return 0
}

// newRenderer creates the view renderer. By default the embedded
// templates are parsed once up-front. With HTTP_VIEW_DIR set the
// templates are loaded from disk on every request, for development.
func newRenderer(logger *slog.Logger, cfg config) (web.ViewRenderer, error) {
	if cfg.http.viewDir != "" {
		logger.Info("loading templates from disk", "dir", cfg.http.viewDir)
		return view.NewFSRenderer(os.DirFS(cfg.http.viewDir)), nil
	}

	return view.NewMemRenderer(assets.TemplateFS)
}
