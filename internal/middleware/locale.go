package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"finitefield.org/rustguide-web/internal/locale"
)

const cookieMaxAge = 365 * 24 * time.Hour

// CookieStore persists the selected locale in a cookie. Reads see the
// request cookie until Set is called; Set writes a Set-Cookie header.
type CookieStore struct {
	w      http.ResponseWriter
	name   string
	secure bool
	value  string
	set    bool
}

// NewCookieStore binds a store to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request, name string, secure bool) *CookieStore {
	cs := &CookieStore{w: w, name: name, secure: secure}
	if c, err := r.Cookie(name); err == nil && c.Value != "" {
		cs.value = c.Value
		cs.set = true
	}
	return cs
}

func (c *CookieStore) Get() (string, bool) { return c.value, c.set }

func (c *CookieStore) Set(value string) {
	c.value = value
	c.set = true
	http.SetCookie(c.w, &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// LocaleOptions configures the Locale middleware.
type LocaleOptions struct {
	Default      locale.Locale
	Negotiate    bool
	CookieName   string
	CookieSecure bool
}

// Locale resolves the request locale. A leading /<locale> segment is the
// route locale and is stripped before routing; otherwise the cookie, then
// Accept-Language (when enabled), then Default decide. ?hl= is an explicit
// selection and is persisted.
func Locale(opts LocaleOptions) func(http.Handler) http.Handler {
	if !opts.Default.Valid() {
		opts.Default = locale.Default
	}
	if opts.CookieName == "" {
		opts.CookieName = "lang"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKeyOrigPath, r.URL.Path)

			route, rest, prefixed := locale.SplitPath(r.URL.Path)
			if prefixed {
				r.URL.Path = rest
				r.URL.RawPath = ""
				if rctx := chi.RouteContext(ctx); rctx != nil {
					rctx.RoutePath = rest
				}
				ctx = context.WithValue(ctx, ctxKeyRouteLocale, route)
			}

			fallback := opts.Default
			if opts.Negotiate {
				if l, ok := locale.Negotiate(r.Header.Get("Accept-Language")); ok {
					fallback = l
				}
			}
			ctx = context.WithValue(ctx, ctxKeyFallback, fallback)

			sel := locale.NewSelection(
				NewCookieStore(w, r, opts.CookieName, opts.CookieSecure),
				locale.WithFallback(fallback),
				locale.WithObserver(func(l locale.Locale) {
					w.Header().Set("Content-Language", l.String())
				}),
			)
			sel.Mount(route.String())
			if hl := r.URL.Query().Get("hl"); hl != "" {
				sel.SelectTag(hl)
			}
			defer sel.Unmount()

			w.Header().Add("Vary", "Accept-Language")
			w.Header().Add("Vary", "Cookie")
			next.ServeHTTP(w, r.WithContext(WithSelection(ctx, sel)))
		})
	}
}
