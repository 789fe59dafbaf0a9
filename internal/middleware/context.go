package middleware

import (
	"context"
	"net/http"

	"finitefield.org/rustguide-web/internal/locale"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeySelection   ctxKey = "locale_selection"
	ctxKeyRouteLocale ctxKey = "route_locale"
	ctxKeyFallback    ctxKey = "locale_fallback"
	ctxKeyOrigPath    ctxKey = "orig_path"
)

// WithSelection stores the request's locale selection in context.
func WithSelection(ctx context.Context, s *locale.Selection) context.Context {
	return context.WithValue(ctx, ctxKeySelection, s)
}

// SelectionFromContext returns the request's locale selection, if any.
func SelectionFromContext(ctx context.Context) *locale.Selection {
	s, _ := ctx.Value(ctxKeySelection).(*locale.Selection)
	return s
}

// RouteLocale returns the locale taken from the URL prefix, if the request had one.
func RouteLocale(r *http.Request) (locale.Locale, bool) {
	l, ok := r.Context().Value(ctxKeyRouteLocale).(locale.Locale)
	return l, ok && l != ""
}

// Lang returns the resolved locale for the request. Requests that never
// passed the Locale middleware get the package default.
func Lang(r *http.Request) locale.Locale {
	if s := SelectionFromContext(r.Context()); s != nil {
		if l, ok := s.Current(); ok {
			return l
		}
	}
	if fb, ok := r.Context().Value(ctxKeyFallback).(locale.Locale); ok && fb != "" {
		return fb
	}
	return locale.Default
}

// OriginalPath returns the request path before the locale prefix was stripped.
func OriginalPath(r *http.Request) string {
	if p, ok := r.Context().Value(ctxKeyOrigPath).(string); ok {
		return p
	}
	return r.URL.Path
}
