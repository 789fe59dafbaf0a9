package main

import (
	"context"
	"errors"
	"flag"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/rustguide-web/internal/cms"
	"finitefield.org/rustguide-web/internal/config"
	"finitefield.org/rustguide-web/internal/handlers"
	"finitefield.org/rustguide-web/internal/i18n"
	mw "finitefield.org/rustguide-web/internal/middleware"
	"finitefield.org/rustguide-web/internal/nav"
	"finitefield.org/rustguide-web/internal/observability"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode reparses templates on every request (DOCS_WEB_DEV)
	devMode   bool
	tmplCache *template.Template

	siteCfg       config.Config
	registry      *nav.Registry
	i18nBundle    *i18n.Bundle
	contentClient *cms.Client
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var addr, contentPath string
	flag.StringVar(&addr, "addr", cfg.Server.Addr, "HTTP listen address")
	flag.StringVar(&cfg.Paths.Templates, "templates", cfg.Paths.Templates, "templates directory")
	flag.StringVar(&cfg.Paths.Public, "public", cfg.Paths.Public, "public assets directory")
	flag.StringVar(&contentPath, "content", cfg.Paths.Content, "markdown content directory")
	flag.Parse()
	cfg.Server.Addr = addr
	cfg.Paths.Content = contentPath

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := setup(cfg, logger); err != nil {
		logger.Fatal("setup failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		logger.Info("web listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("dev_mode", devMode),
			zap.String("default_locale", cfg.Site.DefaultLocale.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

// setup loads the registry, UI strings, content client and templates into
// the package state used by the handlers.
func setup(cfg config.Config, logger *zap.Logger) error {
	siteCfg = cfg
	templatesDir = cfg.Paths.Templates
	publicDir = cfg.Paths.Public
	devMode = cfg.Site.DevMode

	var err error
	if cfg.Paths.Navigation != "" {
		registry, err = nav.LoadFile(cfg.Paths.Navigation)
	} else {
		registry, err = nav.Default()
	}
	if err != nil {
		return err
	}
	for _, w := range registry.Warnings() {
		logger.Warn("navigation differs from reference locale",
			zap.String("locale", w.Locale.String()),
			zap.String("reference", w.Reference.String()),
			zap.String("kind", string(w.Kind)),
			zap.String("href", w.Href),
			zap.Int("position", w.Position),
			zap.Int("reference_position", w.ReferencePosition),
		)
	}

	i18nBundle, err = i18n.Load(cfg.Paths.Locales, cfg.Site.DefaultLocale)
	if err != nil {
		return err
	}
	for l, keys := range i18nBundle.MissingKeys() {
		logger.Warn("ui strings missing", zap.String("locale", l.String()), zap.Strings("keys", keys))
	}

	contentClient = cms.NewClient(cfg.Paths.Content, cfg.Site.DefaultLocale)
	contentClient.SetCacheDuration(cfg.Site.ContentCacheTTL)
	if devMode {
		contentClient.SetCacheDuration(0)
	}

	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			return err
		}
		tmplCache = tc
	}
	return nil
}

func newRouter(logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(mw.Locale(mw.LocaleOptions{
		Default:      siteCfg.Site.DefaultLocale,
		Negotiate:    siteCfg.Site.NegotiateLocale,
		CookieName:   siteCfg.Site.CookieName,
		CookieSecure: siteCfg.Site.CookieSecure,
	}))
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	r.Handle("/assets/*", mw.AssetsWithCache("/assets", filepath.Join(publicDir, "assets")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/nav", NavHandler)
		r.Get("/nav/consistency", NavConsistencyHandler)
		r.Get("/nav/{locale}", NavLocaleHandler)
		r.Get("/locale", LocaleHandler)
	})

	r.Get("/", DocHandler)
	r.Get("/docs/*", DocHandler)
	r.NotFound(NotFoundHandler)
	return r
}

func site() handlers.Site {
	return handlers.Site{
		Name:      siteCfg.Site.Name,
		BaseURL:   siteCfg.Site.BaseURL,
		Analytics: siteCfg.Analytics,
		Registry:  registry,
		Bundle:    i18nBundle,
	}
}
