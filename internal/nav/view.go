package nav

import (
	"path"
	"strings"
)

// RenderedLink is a view model for sidebar templates.
type RenderedLink struct {
	Title  string
	Href   string
	Active bool
}

// RenderedSection groups rendered links under a section title.
type RenderedSection struct {
	Title  string
	Links  []RenderedLink
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Build renders sections with active state given the current path.
func Build(sections []Section, currentPath string) []RenderedSection {
	currentPath = normalizePath(currentPath)
	out := make([]RenderedSection, 0, len(sections))
	for _, s := range sections {
		rs := RenderedSection{Title: s.Title, Links: make([]RenderedLink, 0, len(s.Links))}
		for _, link := range s.Links {
			active := isActive(link.Href, currentPath)
			if active {
				rs.Active = true
			}
			rs.Links = append(rs.Links, RenderedLink{Title: link.Title, Href: link.Href, Active: active})
		}
		out = append(out, rs)
	}
	return out
}

func isActive(itemPath, currentPath string) bool {
	// "/" is the introduction page, not a prefix of every page
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with the first link of the table of contents (home)
// - Known pages get their section and page titles
// - Unknown paths fall back to prettified segments
func Breadcrumbs(sections []Section, currentPath string) []Crumb {
	currentPath = normalizePath(currentPath)
	home := Crumb{Href: "/", Label: "/", Active: currentPath == "/"}
	if len(sections) > 0 && len(sections[0].Links) > 0 {
		home.Label = sections[0].Links[0].Title
	}
	crumbs := []Crumb{home}
	if currentPath == "/" {
		return crumbs
	}

	for _, s := range sections {
		for _, link := range s.Links {
			if link.Href != currentPath {
				continue
			}
			// sections have no page of their own
			return append(crumbs,
				Crumb{Label: s.Title},
				Crumb{Href: link.Href, Label: link.Title, Active: true},
			)
		}
	}

	parts := strings.Split(strings.TrimPrefix(currentPath, "/"), "/")
	href := ""
	for i, seg := range parts {
		href += "/" + seg
		crumbs = append(crumbs, Crumb{Href: href, Label: titleFromSegment(seg), Active: i == len(parts)-1})
	}
	return crumbs
}

// Pager returns the links before and after the current page in reading order.
func Pager(sections []Section, currentPath string) (prev, next *Link) {
	currentPath = normalizePath(currentPath)
	var flat []Link
	for _, s := range sections {
		flat = append(flat, s.Links...)
	}
	for i, link := range flat {
		if link.Href != currentPath {
			continue
		}
		if i > 0 {
			p := flat[i-1]
			prev = &p
		}
		if i < len(flat)-1 {
			n := flat[i+1]
			next = &n
		}
		return prev, next
	}
	return nil, nil
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	clean := path.Clean("/" + p)
	return clean
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize first letter
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
