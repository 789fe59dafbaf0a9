package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finitefield.org/rustguide-web/internal/locale"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultSiteName     = "Rust Learning Guide"
	defaultCookieName   = "lang"
	defaultCacheTTL     = 5 * time.Minute
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Paths     PathConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SiteConfig holds site identity and locale behaviour.
type SiteConfig struct {
	Name    string
	BaseURL string
	// DefaultLocale is used when neither the route, the lang cookie nor
	// Accept-Language yields a locale.
	DefaultLocale locale.Locale
	// NegotiateLocale lets Accept-Language pick the fallback before DefaultLocale.
	NegotiateLocale bool
	CookieName      string
	CookieSecure    bool
	ContentCacheTTL time.Duration
	DevMode         bool
}

// PathConfig locates on-disk assets.
type PathConfig struct {
	Templates string
	Public    string
	Content   string
	Locales   string
	// Navigation optionally replaces the compiled-in table of contents.
	Navigation string
}

// AnalyticsConfig holds client instrumentation configuration surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	Debug            bool
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration fields are invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves configuration with precedence dotenv < OS env < explicit env map.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := options.envMap[key]; ok {
			return v, true
		}
		if options.useSystemEnv {
			if v, ok := os.LookupEnv(key); ok {
				return v, true
			}
		}
		v, ok := dotEnv[key]
		return v, ok
	}

	// Port resolution: prefer DOCS_WEB_PORT, then the platform's PORT
	port := stringWithDefault(lookup, "PORT", defaultPort)
	port = stringWithDefault(lookup, "DOCS_WEB_PORT", port)

	var invalid []string
	defaultLocale := locale.Default
	if raw, ok := lookup("DOCS_WEB_DEFAULT_LOCALE"); ok && strings.TrimSpace(raw) != "" {
		l, ok := locale.Parse(raw)
		if !ok {
			invalid = append(invalid, "DOCS_WEB_DEFAULT_LOCALE")
		}
		defaultLocale = l
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:         stringWithDefault(lookup, "DOCS_WEB_ADDR", ":"+port),
			ReadTimeout:  durationWithDefault(lookup, "DOCS_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "DOCS_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "DOCS_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Site: SiteConfig{
			Name:            stringWithDefault(lookup, "DOCS_WEB_SITE_NAME", defaultSiteName),
			BaseURL:         strings.TrimRight(stringWithDefault(lookup, "DOCS_WEB_BASE_URL", ""), "/"),
			DefaultLocale:   defaultLocale,
			NegotiateLocale: boolWithDefault(lookup, "DOCS_WEB_NEGOTIATE_LOCALE", true),
			CookieName:      stringWithDefault(lookup, "DOCS_WEB_LOCALE_COOKIE", defaultCookieName),
			CookieSecure:    strings.EqualFold(stringWithDefault(lookup, "DOCS_WEB_ENV", ""), "prod"),
			ContentCacheTTL: durationWithDefault(lookup, "DOCS_WEB_CONTENT_CACHE_TTL", defaultCacheTTL),
			DevMode:         boolWithDefault(lookup, "DOCS_WEB_DEV", false),
		},
		Paths: PathConfig{
			Templates:  stringWithDefault(lookup, "DOCS_WEB_TEMPLATES_DIR", "templates"),
			Public:     stringWithDefault(lookup, "DOCS_WEB_PUBLIC_DIR", "public"),
			Content:    stringWithDefault(lookup, "DOCS_WEB_CONTENT_DIR", "content"),
			Locales:    stringWithDefault(lookup, "DOCS_WEB_LOCALES_DIR", "locales"),
			Navigation: stringWithDefault(lookup, "DOCS_WEB_NAVIGATION_FILE", ""),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "DOCS_WEB_GA_MEASUREMENT_ID", ""),
			Debug:            boolWithDefault(lookup, "DOCS_WEB_ANALYTICS_DEBUG", false),
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", "info"),
		},
	}

	invalid = append(invalid, validate(cfg)...)
	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

func validate(cfg Config) []string {
	var fields []string
	if cfg.Server.ReadTimeout <= 0 {
		fields = append(fields, "DOCS_WEB_READ_TIMEOUT")
	}
	if cfg.Server.WriteTimeout <= 0 {
		fields = append(fields, "DOCS_WEB_WRITE_TIMEOUT")
	}
	if strings.TrimSpace(cfg.Site.CookieName) == "" || strings.ContainsAny(cfg.Site.CookieName, " ;=,") {
		fields = append(fields, "DOCS_WEB_LOCALE_COOKIE")
	}
	if cfg.Site.ContentCacheTTL < 0 {
		fields = append(fields, "DOCS_WEB_CONTENT_CACHE_TTL")
	}
	return fields
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	value, ok := lookup(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
