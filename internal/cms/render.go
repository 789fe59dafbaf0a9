package cms

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"finitefield.org/rustguide-web/internal/components"
)

// Content may embed markdoc-style tags:
//
//	{% callout type="warning" title="Careful" %} markdown {% /callout %}
//	{% mindmap url="/assets/maps/ownership.xmind" /%}
var (
	openTagRe  = regexp.MustCompile(`\{%\s*(callout|mindmap)((?:\s+\w+="[^"]*")*)\s*(/?)%\}`)
	closeTagRe = regexp.MustCompile(`\{%\s*/callout\s*%\}`)
	attrRe     = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w-]+$`)).OnElements("code")
	return p
}

// render turns markdown with embedded tags into safe HTML. Markdown is
// sanitized segment by segment; component markup is trusted.
func (c *Client) render(src string) (template.HTML, error) {
	var out strings.Builder
	rest := src
	for {
		loc := openTagRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		seg, err := c.markdown(rest[:loc[0]])
		if err != nil {
			return "", err
		}
		out.WriteString(string(seg))

		name := rest[loc[2]:loc[3]]
		attrs := parseAttrs(rest[loc[4]:loc[5]])
		selfClosing := rest[loc[6]:loc[7]] == "/"
		rest = rest[loc[1]:]

		switch name {
		case "mindmap":
			if !selfClosing {
				return "", fmt.Errorf("mindmap tag must be self-closing")
			}
			frag, err := components.MindMap(attrs["url"])
			if err != nil {
				return "", err
			}
			out.WriteString(string(frag))
		case "callout":
			if selfClosing {
				return "", fmt.Errorf("callout tag needs a body")
			}
			end := closeTagRe.FindStringIndex(rest)
			if end == nil {
				return "", fmt.Errorf("unterminated callout")
			}
			kind, err := components.ParseCalloutKind(attrs["type"])
			if err != nil {
				return "", err
			}
			inner, err := c.markdown(rest[:end[0]])
			if err != nil {
				return "", err
			}
			frag, err := components.Callout(kind, attrs["title"], inner)
			if err != nil {
				return "", err
			}
			out.WriteString(string(frag))
			rest = rest[end[1]:]
		}
	}
	seg, err := c.markdown(rest)
	if err != nil {
		return "", err
	}
	out.WriteString(string(seg))
	return template.HTML(out.String()), nil
}

func (c *Client) markdown(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(c.policy.SanitizeBytes(buf.Bytes())), nil
}

func parseAttrs(raw string) map[string]string {
	out := map[string]string{}
	for _, m := range attrRe.FindAllStringSubmatch(raw, -1) {
		out[m[1]] = m[2]
	}
	return out
}

// extractTOC collects h2 and h3 headings that carry an id.
func extractTOC(body template.HTML) ([]Heading, error) {
	nodes, err := html.ParseFragment(strings.NewReader(string(body)), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err != nil {
		return nil, err
	}
	var toc []Heading
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.H2 || n.DataAtom == atom.H3) {
			if id := attr(n, "id"); id != "" {
				level := 2
				if n.DataAtom == atom.H3 {
					level = 3
				}
				toc = append(toc, Heading{ID: id, Text: strings.TrimSpace(textContent(n)), Level: level})
			}
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return toc, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		sb.WriteString(textContent(ch))
	}
	return sb.String()
}
