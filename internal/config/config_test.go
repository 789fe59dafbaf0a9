package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finitefield.org/rustguide-web/internal/locale"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.DefaultLocale != locale.ZhCN {
		t.Errorf("expected zh-CN default locale, got %s", cfg.Site.DefaultLocale)
	}
	if !cfg.Site.NegotiateLocale {
		t.Errorf("expected locale negotiation on by default")
	}
	if cfg.Site.CookieName != "lang" {
		t.Errorf("unexpected cookie name %s", cfg.Site.CookieName)
	}
	if cfg.Site.CookieSecure {
		t.Errorf("cookies must not be secure outside prod")
	}
	if cfg.Paths.Templates != "templates" || cfg.Paths.Content != "content" {
		t.Errorf("unexpected paths %+v", cfg.Paths)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unexpected log level %s", cfg.Log.Level)
	}
}

func TestLoadOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":                      "9000",
		"DOCS_WEB_DEFAULT_LOCALE":   "en",
		"DOCS_WEB_NEGOTIATE_LOCALE": "false",
		"DOCS_WEB_ENV":              "prod",
		"DOCS_WEB_BASE_URL":         "https://rust.example.org/",
		"DOCS_WEB_DEV":              "1",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected :9000, got %s", cfg.Server.Addr)
	}
	if cfg.Site.DefaultLocale != locale.English {
		t.Errorf("expected en, got %s", cfg.Site.DefaultLocale)
	}
	if cfg.Site.NegotiateLocale {
		t.Errorf("expected negotiation disabled")
	}
	if !cfg.Site.CookieSecure || !cfg.Site.DevMode {
		t.Errorf("unexpected site flags %+v", cfg.Site)
	}
	if cfg.Site.BaseURL != "https://rust.example.org" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Site.BaseURL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	env := map[string]string{
		"DOCS_WEB_DEFAULT_LOCALE": "fr",
		"DOCS_WEB_LOCALE_COOKIE":  "bad name",
		"DOCS_WEB_READ_TIMEOUT":   "-1s",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := len(verr.Fields()); got != 3 {
		t.Fatalf("expected 3 invalid fields, got %v", verr.Fields())
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport DOCS_WEB_SITE_NAME=\"Rust Notes\"\nDOCS_WEB_DEFAULT_LOCALE=es\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(WithEnvFile(path), WithoutSystemEnv(), WithEnvMap(map[string]string{"DOCS_WEB_DEFAULT_LOCALE": "en"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.Name != "Rust Notes" {
		t.Errorf("expected name from dotenv, got %s", cfg.Site.Name)
	}
	if cfg.Site.DefaultLocale != locale.English {
		t.Errorf("explicit env map must win over dotenv, got %s", cfg.Site.DefaultLocale)
	}
}
