package components

import (
	"html/template"
	"net/url"
)

// ProseClass is the class list applied to rendered markdown.
const ProseClass = "prose prose-slate max-w-none"

// Prose wraps safe HTML in a prose container. Tag defaults to div.
func Prose(tag, extraClass string, body template.HTML) (template.HTML, error) {
	switch tag {
	case "":
		tag = "div"
	case "div", "article", "section":
	default:
		return "", unknown("prose tag", tag)
	}
	// tag comes from the closed list above
	open := "<" + tag + ` class="` + template.HTMLEscapeString(classes(extraClass, ProseClass)) + `">`
	return template.HTML(open + string(body) + "</" + tag + ">"), nil
}

var mindMapTmpl = template.Must(template.New("mindmap").Parse(
	`<div class="mindmap-container"><div class="mindmap-viewer" data-mindmap-src="{{.}}" data-region="cn"></div></div>`))

// MindMap renders the container the client-side mind-map viewer mounts into.
// Only http(s) and site-relative sources are accepted.
func MindMap(src string) (template.HTML, error) {
	u, err := url.Parse(src)
	if err != nil || src == "" {
		return "", unknown("mind map source", src)
	}
	switch {
	case u.Scheme == "http" || u.Scheme == "https":
	case u.Scheme == "" && u.Host == "" && len(u.Path) > 0 && u.Path[0] == '/':
	default:
		return "", unknown("mind map source", src)
	}
	return execute(mindMapTmpl, u.String())
}
