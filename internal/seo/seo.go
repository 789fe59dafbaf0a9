package seo

import (
	"strings"

	"finitefield.org/rustguide-web/internal/locale"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is one hreflang link for the same document in another locale.
type Alternate struct {
	Hreflang string
	Href     string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
}

// Build assembles page metadata for path rendered in lang. baseURL may be
// empty, in which case links stay root-relative.
func Build(baseURL, siteName, title, description, path string, lang locale.Locale) Meta {
	baseURL = strings.TrimRight(baseURL, "/")
	full := title
	if full == "" {
		full = siteName
	} else if siteName != "" && title != siteName {
		full = title + " | " + siteName
	}
	canonical := baseURL + locale.PathFor(lang, path)
	return Meta{
		Title:       full,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Type:        "article",
			Locale:      strings.ReplaceAll(lang.String(), "-", "_"),
		},
		Twitter:    Twitter{Card: "summary"},
		Alternates: Alternates(baseURL, path),
	}
}

// Alternates lists every supported locale for path plus an x-default entry
// pointing at the unprefixed default-locale URL.
func Alternates(baseURL, path string) []Alternate {
	baseURL = strings.TrimRight(baseURL, "/")
	out := make([]Alternate, 0, len(locale.Supported())+1)
	for _, l := range locale.Supported() {
		out = append(out, Alternate{Hreflang: l.String(), Href: baseURL + locale.PathFor(l, path)})
	}
	out = append(out, Alternate{Hreflang: "x-default", Href: baseURL + locale.PathFor(locale.Default, path)})
	return out
}
