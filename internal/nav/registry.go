// Package nav holds the site's localized table of contents and the view
// helpers that turn it into sidebar, breadcrumb and pager models.
package nav

import (
	"errors"
	"fmt"
	"strings"

	"finitefield.org/rustguide-web/internal/locale"
)

// ErrLocaleNotFound is returned for lookups of locales absent from the registry.
var ErrLocaleNotFound = errors.New("nav: locale not found")

// LocaleNotFoundError describes a failed lookup and unwraps to ErrLocaleNotFound.
type LocaleNotFoundError struct {
	Locale string
}

func (e *LocaleNotFoundError) Error() string {
	if strings.TrimSpace(e.Locale) == "" {
		return "nav: locale not found"
	}
	return fmt.Sprintf("nav: locale %q not found", e.Locale)
}

func (e *LocaleNotFoundError) Unwrap() error { return ErrLocaleNotFound }

// BuildError reports malformed registry content.
type BuildError struct {
	Locale string
	Reason string
}

func (e *BuildError) Error() string {
	if e.Locale == "" {
		return "nav: " + e.Reason
	}
	return fmt.Sprintf("nav: locale %q: %s", e.Locale, e.Reason)
}

// Link is a leaf entry. Href is shared by every locale; Title is not.
type Link struct {
	Title string `yaml:"title" json:"title"`
	Href  string `yaml:"href" json:"href"`
}

// Section is a titled group of links rendered in slice order.
type Section struct {
	Title string `yaml:"title" json:"title"`
	Links []Link `yaml:"links" json:"links"`
}

// Entry is the content of one locale as supplied to NewRegistry.
type Entry struct {
	Locale   string    `yaml:"locale"`
	Sections []Section `yaml:"sections"`
}

// Registry is an immutable locale-keyed table of contents.
type Registry struct {
	order    []locale.Locale
	sections map[locale.Locale][]Section
	warnings []ConsistencyWarning
}

// NewRegistry validates entries and builds a registry. The first entry is
// the reference locale for parity checks. Divergence between locales is
// recorded as warnings, not returned as an error.
func NewRegistry(entries []Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, &BuildError{Reason: "registry has no locales"}
	}
	r := &Registry{
		order:    make([]locale.Locale, 0, len(entries)),
		sections: make(map[locale.Locale][]Section, len(entries)),
	}
	for _, e := range entries {
		l, ok := locale.Parse(e.Locale)
		if !ok {
			return nil, &BuildError{Locale: e.Locale, Reason: "unsupported locale"}
		}
		if _, dup := r.sections[l]; dup {
			return nil, &BuildError{Locale: e.Locale, Reason: "duplicate locale"}
		}
		if len(e.Sections) == 0 {
			return nil, &BuildError{Locale: e.Locale, Reason: "no sections"}
		}
		for i, s := range e.Sections {
			for j, link := range s.Links {
				if strings.TrimSpace(link.Href) == "" {
					return nil, &BuildError{Locale: e.Locale, Reason: fmt.Sprintf("section %d link %d has an empty href", i, j)}
				}
			}
		}
		r.order = append(r.order, l)
		r.sections[l] = cloneSections(e.Sections)
	}
	ref := r.order[0]
	for _, l := range r.order[1:] {
		r.warnings = append(r.warnings, CheckParity(ref, r.sections[ref], l, r.sections[l])...)
	}
	return r, nil
}

// Sections returns a copy of the sections registered for l.
func (r *Registry) Sections(l locale.Locale) ([]Section, error) {
	s, ok := r.sections[l]
	if !ok {
		return nil, &LocaleNotFoundError{Locale: string(l)}
	}
	return cloneSections(s), nil
}

// SectionsFor is Sections for a raw identifier.
func (r *Registry) SectionsFor(tag string) ([]Section, error) {
	l, ok := locale.Parse(tag)
	if !ok {
		return nil, &LocaleNotFoundError{Locale: tag}
	}
	return r.Sections(l)
}

// Locales lists registered locales in registration order.
func (r *Registry) Locales() []locale.Locale {
	out := make([]locale.Locale, len(r.order))
	copy(out, r.order)
	return out
}

// Reference is the locale other locales are compared against.
func (r *Registry) Reference() locale.Locale { return r.order[0] }

// Warnings returns the parity problems found at construction.
func (r *Registry) Warnings() []ConsistencyWarning {
	out := make([]ConsistencyWarning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Consistent reports whether all locales share the same href sequence.
func (r *Registry) Consistent() bool { return len(r.warnings) == 0 }

// Find locates the section and link for href in l.
func (r *Registry) Find(l locale.Locale, href string) (Section, Link, bool) {
	for _, s := range r.sections[l] {
		for _, link := range s.Links {
			if link.Href == href {
				return cloneSection(s), link, true
			}
		}
	}
	return Section{}, Link{}, false
}

// Hrefs flattens sections into their href sequence.
func Hrefs(sections []Section) []string {
	var out []string
	for _, s := range sections {
		for _, link := range s.Links {
			out = append(out, link.Href)
		}
	}
	return out
}

func cloneSections(in []Section) []Section {
	out := make([]Section, len(in))
	for i, s := range in {
		out[i] = cloneSection(s)
	}
	return out
}

func cloneSection(s Section) Section {
	links := make([]Link, len(s.Links))
	copy(links, s.Links)
	return Section{Title: s.Title, Links: links}
}
