package handlers

import (
	"errors"
	"html/template"
	"time"

	"finitefield.org/rustguide-web/internal/cms"
	"finitefield.org/rustguide-web/internal/components"
	"finitefield.org/rustguide-web/internal/config"
	"finitefield.org/rustguide-web/internal/format"
	"finitefield.org/rustguide-web/internal/i18n"
	"finitefield.org/rustguide-web/internal/locale"
	"finitefield.org/rustguide-web/internal/nav"
	"finitefield.org/rustguide-web/internal/seo"
)

// Site carries the request-independent inputs shared by every page.
type Site struct {
	Name      string
	BaseURL   string
	Analytics config.AnalyticsConfig
	Registry  *nav.Registry
	Bundle    *i18n.Bundle
}

// LocaleOption is one entry of the language switcher.
type LocaleOption struct {
	Locale locale.Locale
	Name   string
	Href   string
	Icon   components.IconKind
	Active bool
}

// PageData is the view model for pages using the shared layout.
type PageData struct {
	SiteName  string
	Title     string
	Lang      locale.Locale
	SEO       seo.Meta
	JSONLD    []template.JS
	Analytics config.AnalyticsConfig

	// Path is the unprefixed request path; links in Nav, Breadcrumbs and
	// the pager are already prefixed for Lang.
	Path        string
	Nav         []nav.RenderedSection
	Breadcrumbs []nav.Crumb
	Prev        *nav.Link
	Next        *nav.Link
	Locales     []LocaleOption
	LinkCount   string

	Doc     *cms.DocPage
	Updated string
	// NavLocale differs from Lang when the registry has no sections for Lang.
	NavLocale locale.Locale

	bundle *i18n.Bundle
}

// T looks up a UI string for the page locale.
func (p PageData) T(key string) string {
	if p.bundle == nil {
		return key
	}
	return p.bundle.T(p.Lang, key)
}

// BuildPageData assembles the layout view model for path rendered in lang.
// doc may be nil for pages without markdown content.
func BuildPageData(site Site, lang locale.Locale, path string, doc *cms.DocPage) (PageData, error) {
	navLocale := lang
	sections, err := site.Registry.Sections(lang)
	if errors.Is(err, nav.ErrLocaleNotFound) {
		navLocale = site.Registry.Reference()
		sections, err = site.Registry.Sections(navLocale)
	}
	if err != nil {
		return PageData{}, err
	}

	title := ""
	description := ""
	if site.Bundle != nil {
		description = site.Bundle.T(lang, "site.description")
	}
	if doc != nil {
		title = doc.Title
		if doc.Description != "" {
			description = doc.Description
		}
	} else if _, link, ok := site.Registry.Find(navLocale, path); ok {
		title = link.Title
	}

	crumbs := nav.Breadcrumbs(sections, path)
	prev, next := nav.Pager(sections, path)
	pd := PageData{
		SiteName:    site.Name,
		Title:       title,
		Lang:        lang,
		SEO:         seo.Build(site.BaseURL, site.Name, title, description, path, lang),
		Analytics:   site.Analytics,
		Path:        path,
		Nav:         localizeNav(nav.Build(sections, path), lang),
		Breadcrumbs: localizeCrumbs(crumbs, lang),
		Prev:        localizeLink(prev, lang),
		Next:        localizeLink(next, lang),
		Locales:     switcher(lang, path),
		LinkCount:   format.FmtCount(len(nav.Hrefs(sections)), lang),
		Doc:         doc,
		NavLocale:   navLocale,
		bundle:      site.Bundle,
	}
	if doc != nil {
		pd.Updated = format.FmtDate(doc.UpdatedAt, lang)
	}
	pd.JSONLD = jsonLD(site, pd)
	return pd, nil
}

func switcher(current locale.Locale, path string) []LocaleOption {
	out := make([]LocaleOption, 0, len(locale.Supported()))
	for _, l := range locale.Supported() {
		icon, err := components.LangIcon(l)
		if err != nil {
			continue
		}
		out = append(out, LocaleOption{
			Locale: l,
			Name:   l.Name(),
			Href:   locale.PathFor(l, path) + "?hl=" + l.String(),
			Icon:   icon,
			Active: l == current,
		})
	}
	return out
}

func localizeNav(sections []nav.RenderedSection, lang locale.Locale) []nav.RenderedSection {
	for i := range sections {
		for j := range sections[i].Links {
			sections[i].Links[j].Href = locale.PathFor(lang, sections[i].Links[j].Href)
		}
	}
	return sections
}

func localizeCrumbs(crumbs []nav.Crumb, lang locale.Locale) []nav.Crumb {
	for i := range crumbs {
		if crumbs[i].Href != "" {
			crumbs[i].Href = locale.PathFor(lang, crumbs[i].Href)
		}
	}
	return crumbs
}

func localizeLink(l *nav.Link, lang locale.Locale) *nav.Link {
	if l == nil {
		return nil
	}
	out := *l
	out.Href = locale.PathFor(lang, out.Href)
	return &out
}

func jsonLD(site Site, pd PageData) []template.JS {
	items := make([]seo.BreadcrumbItem, 0, len(pd.Breadcrumbs))
	for _, c := range pd.Breadcrumbs {
		item := seo.BreadcrumbItem{Name: c.Label}
		if c.Href != "" {
			item.Item = site.BaseURL + c.Href
		}
		items = append(items, item)
	}
	out := []template.JS{
		seo.Script(seo.WebSite(site.Name, site.BaseURL+locale.PathFor(pd.Lang, "/"), pd.Lang.String())),
		seo.Script(seo.BreadcrumbList(items)),
	}
	if pd.Doc != nil {
		modified := ""
		if !pd.Doc.UpdatedAt.IsZero() {
			modified = pd.Doc.UpdatedAt.Format(time.DateOnly)
		}
		out = append(out, seo.Script(seo.TechArticle(pd.Doc.Title, pd.SEO.Canonical, pd.Doc.Lang.String(), modified)))
	}
	return out
}
