// Package cms serves the site's localized documentation pages from
// markdown files with YAML front matter.
package cms

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"finitefield.org/rustguide-web/internal/locale"
)

// ErrNotFound is returned when no locale has a page for the requested path.
var ErrNotFound = errors.New("cms: not found")

// Heading is a table-of-contents entry.
type Heading struct {
	ID    string
	Text  string
	Level int
}

// DocPage is a rendered documentation page.
type DocPage struct {
	Path        string
	Lang        locale.Locale // locale actually served
	Requested   locale.Locale
	Title       string
	Description string
	Body        template.HTML
	TOC         []Heading
	UpdatedAt   time.Time
}

// Fallback reports whether the page is served in another locale than requested.
func (p DocPage) Fallback() bool { return p.Lang != p.Requested }

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	UpdatedAt   string `yaml:"updated_at"`
}

const (
	defaultContentDir = "content"
	defaultCacheTTL   = 5 * time.Minute
)

type cacheEntry struct {
	page    DocPage
	expires time.Time
}

// Client loads and renders pages from <dir>/<locale>/<path>.md.
type Client struct {
	contentDir string
	fallback   locale.Locale
	md         goldmark.Markdown
	policy     *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]cacheEntry
	ttl   time.Duration
}

// NewClient returns a Client reading from dir. Missing translations fall
// back to the fallback locale, then to the remaining supported locales.
func NewClient(dir string, fallback locale.Locale) *Client {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	if !fallback.Valid() {
		fallback = locale.Default
	}
	return &Client{
		contentDir: dir,
		fallback:   fallback,
		md:         newMarkdown(),
		policy:     newPolicy(),
		cache:      map[string]cacheEntry{},
		ttl:        defaultCacheTTL,
	}
}

// SetCacheDuration overrides the in-memory cache duration. Zero disables caching.
func (c *Client) SetCacheDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	c.ttl = d
	c.cache = map[string]cacheEntry{}
	c.mu.Unlock()
}

// ContentDir returns the configured directory.
func (c *Client) ContentDir() string { return c.contentDir }

// Page fetches the page at urlPath for lang.
func (c *Client) Page(ctx context.Context, urlPath string, lang locale.Locale) (DocPage, error) {
	rel, ok := relativeFile(urlPath)
	if !ok {
		return DocPage{}, ErrNotFound
	}
	if !lang.Valid() {
		lang = c.fallback
	}
	cacheKey := string(lang) + "|" + rel
	if page, ok := c.cached(cacheKey); ok {
		return page, nil
	}

	for _, candidate := range c.priority(lang) {
		if err := ctx.Err(); err != nil {
			return DocPage{}, err
		}
		page, err := c.readPage(candidate, rel)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			// parse or render problems stop the search
			return DocPage{}, err
		}
		page.Path = cleanURLPath(urlPath)
		page.Requested = lang
		c.store(cacheKey, page)
		return clonePage(page), nil
	}
	return DocPage{}, ErrNotFound
}

func (c *Client) priority(lang locale.Locale) []locale.Locale {
	out := []locale.Locale{lang}
	if lang != c.fallback {
		out = append(out, c.fallback)
	}
	for _, l := range locale.Supported() {
		if l != lang && l != c.fallback {
			out = append(out, l)
		}
	}
	return out
}

func (c *Client) readPage(lang locale.Locale, rel string) (DocPage, error) {
	file := filepath.Join(c.contentDir, string(lang), filepath.FromSlash(rel))
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DocPage{}, ErrNotFound
		}
		return DocPage{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return DocPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	rendered, err := c.render(body)
	if err != nil {
		return DocPage{}, fmt.Errorf("cms: render %s: %w", file, err)
	}
	toc, err := extractTOC(rendered)
	if err != nil {
		return DocPage{}, fmt.Errorf("cms: table of contents %s: %w", file, err)
	}
	page := DocPage{
		Lang:        lang,
		Title:       strings.TrimSpace(front.Title),
		Description: strings.TrimSpace(front.Description),
		Body:        rendered,
		TOC:         toc,
		UpdatedAt:   parseContentDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		// fall back to slug prettified
		page.Title = prettifySlug(strings.TrimSuffix(path.Base(rel), ".md"))
	}
	return page, nil
}

// relativeFile maps "/" to index.md and "/docs/a/b" to docs/a/b.md.
func relativeFile(urlPath string) (string, bool) {
	if strings.Contains(urlPath, "..") || strings.ContainsRune(urlPath, '\\') {
		return "", false
	}
	clean := strings.Trim(cleanURLPath(urlPath), "/")
	if clean == "" {
		return "index.md", true
	}
	for _, seg := range strings.Split(clean, "/") {
		if seg == "" || strings.HasPrefix(seg, ".") {
			return "", false
		}
	}
	return clean + ".md", true
}

func cleanURLPath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" || slug == "index" {
		return ""
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func (c *Client) cached(key string) (DocPage, bool) {
	now := time.Now()
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok || now.After(entry.expires) {
		return DocPage{}, false
	}
	return clonePage(entry.page), true
}

func (c *Client) store(key string, page DocPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl == 0 {
		return
	}
	c.cache[key] = cacheEntry{
		page:    clonePage(page),
		expires: time.Now().Add(c.ttl),
	}
}

func clonePage(src DocPage) DocPage {
	cp := src
	if src.TOC != nil {
		cp.TOC = make([]Heading, len(src.TOC))
		copy(cp.TOC, src.TOC)
	}
	return cp
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
