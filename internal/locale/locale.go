package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the site's supported display languages.
type Locale string

const (
	ZhCN    Locale = "zh-CN"
	English Locale = "en"
	Spanish Locale = "es"
)

// Default is the locale served without a path prefix.
const Default = ZhCN

var supported = []Locale{ZhCN, English, Spanish}

var names = map[Locale]string{
	ZhCN:    "简体中文",
	English: "English",
	Spanish: "Español",
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(supported))
	for _, l := range supported {
		tags = append(tags, language.MustParse(string(l)))
	}
	return language.NewMatcher(tags)
}()

// Supported returns the supported locales in switcher order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Parse matches raw against the canonical identifiers, ignoring case and
// surrounding whitespace. Anything else is rejected.
func Parse(raw string) (Locale, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, l := range supported {
		if strings.EqualFold(raw, string(l)) {
			return l, true
		}
	}
	return "", false
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, s := range supported {
		if l == s {
			return true
		}
	}
	return false
}

func (l Locale) String() string { return string(l) }

// Name returns the native display name, or the identifier for unknown values.
func (l Locale) Name() string {
	if n, ok := names[l]; ok {
		return n
	}
	return string(l)
}

// Negotiate picks the best supported locale for an Accept-Language header.
// It reports false when the header is empty, malformed, or only matches
// with low confidence.
func Negotiate(acceptLanguage string) (Locale, bool) {
	if strings.TrimSpace(acceptLanguage) == "" {
		return "", false
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf < language.High {
		return "", false
	}
	return supported[idx], true
}

// SplitPath extracts a leading locale segment from an URL path. The
// remaining path always starts with "/".
//
//	SplitPath("/en/docs/x") => ("en", "/docs/x", true)
//	SplitPath("/docs/x")    => ("", "/docs/x", false)
func SplitPath(p string) (Locale, string, bool) {
	trimmed := strings.TrimPrefix(p, "/")
	seg, rest, _ := strings.Cut(trimmed, "/")
	l, ok := Parse(seg)
	if !ok || seg != string(l) {
		if p == "" {
			p = "/"
		}
		return "", p, false
	}
	return l, "/" + rest, true
}

// PathFor prefixes p with l unless l is the default locale.
func PathFor(l Locale, p string) string {
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	if l == Default || !l.Valid() {
		return p
	}
	if p == "/" {
		return "/" + string(l)
	}
	return "/" + string(l) + p
}
