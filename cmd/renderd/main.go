package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/renderd/renderd/internal/assets"
	"github.com/renderd/renderd/internal/config"
	"github.com/renderd/renderd/internal/graph"
	"github.com/renderd/renderd/internal/handlers"
	"github.com/renderd/renderd/internal/livereload"
	"github.com/renderd/renderd/internal/middleware"
	"github.com/renderd/renderd/internal/render"
	"github.com/renderd/renderd/internal/routes"
	"github.com/renderd/renderd/internal/supervisor"
	"github.com/renderd/renderd/internal/web"
	"github.com/renderd/renderd/pkg/cookie"
	"github.com/renderd/renderd/pkg/jwt"
	"github.com/renderd/renderd/pkg/logger"
	"github.com/renderd/renderd/pkg/oauth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		level = slog.LevelInfo
	}
	log := logger.NewWithSentry(logger.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		MinLevel:    slog.LevelError,
	}, level, middleware.RequestIDExtractor())

	// In cluster mode the parent process only supervises; each worker
	// is a re-exec of this binary and takes the serve path below.
	if cfg.Cluster.Enabled && !supervisor.IsWorker() {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := supervisor.New(
			supervisor.WithWorkers(cfg.Cluster.Workers),
			supervisor.WithLogger(log),
		)
		if err := s.Run(ctx); err != nil {
			log.Error("supervisor failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config, log *slog.Logger) error {
	manifest, err := assets.Load(cfg.Assets.Manifest)
	if err != nil {
		return err
	}

	tokens, err := jwt.NewFromString(cfg.Session.JWTSecret)
	if err != nil {
		return err
	}

	cookieOpts := []cookie.Option{
		cookie.WithSecure(!cfg.Dev),
	}
	if cfg.Session.CookieSecret != "" {
		cookieOpts = append(cookieOpts, cookie.WithSecret(cfg.Session.CookieSecret))
	}
	if cfg.Session.CookieDomain != "" {
		cookieOpts = append(cookieOpts, cookie.WithDomain(cfg.Session.CookieDomain))
	}
	cookies := cookie.New(cookieOpts...)

	providers, err := buildProviders(cfg)
	if err != nil {
		return err
	}
	authHandler := handlers.NewAuthHandler(tokens, providers...)

	table := routes.Default(authHandler.ProviderNames())
	if err := manifest.Validate(table.Chunks()...); err != nil {
		return err
	}

	schema, err := graph.NewSchema()
	if err != nil {
		return err
	}

	appHandlers := []web.Handler{
		authHandler,
		handlers.NewGraphQLHandler(schema, cfg.Dev),
		handlers.NewDiagnosticsHandler(log),
		handlers.NewPagesHandler(table, render.NewRenderer(), render.NewAssembler(manifest, cfg.Server.APIURL)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *livereload.Hub
	if cfg.Dev {
		hub = livereload.NewHub(log)
		appHandlers = append(appHandlers, hub)

		go func() {
			err := manifest.Watch(ctx, log, func() {
				hub.Broadcast("reload")
			})
			if err != nil && ctx.Err() == nil {
				log.Error("manifest watch failed", "error", err)
			}
		}()
	}

	app := web.New(
		web.WithLogger(log),
		web.WithCookieManager(cookies),
		web.WithMiddleware(
			middleware.RequestID(),
			middleware.Recover(),
			middleware.Timeout(middleware.DefaultTimeout),
			middleware.Auth(tokens),
		),
		web.WithHandlers(appHandlers...),
		web.WithStaticDir("/assets/*", cfg.Assets.Dir),
		web.WithErrorHandler(handlers.HandleError),
		web.WithNotFoundHandler(handlers.HandleNotFound),
	)

	runOpts := []web.RunOption{
		web.Logger(log),
		web.WithContext(ctx),
	}
	if cfg.Server.TLSEnabled() {
		runOpts = append(runOpts, web.TLS(cfg.Server.TLSCert, cfg.Server.TLSKey))
	}

	return app.Run(cfg.Server.Addr(), runOpts...)
}

// buildProviders enables each identity provider that has credentials.
func buildProviders(cfg *config.Config) ([]oauth.Provider, error) {
	var providers []oauth.Provider

	if fb := cfg.OAuth.Facebook; fb.Configured() {
		p, err := oauth.NewFacebookProvider(oauth.FacebookConfig{
			ClientID:     fb.ClientID,
			ClientSecret: fb.ClientSecret,
			RedirectURL:  fb.RedirectURL,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	if g := cfg.OAuth.Google; g.Configured() {
		p, err := oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     g.ClientID,
			ClientSecret: g.ClientSecret,
			RedirectURL:  g.RedirectURL,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	return providers, nil
}
