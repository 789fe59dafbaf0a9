// Package components renders the site's small presentational building
// blocks. Every variant set is closed: names are parsed once into typed
// values and unknown names are rejected up front.
package components

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrUnknownVariant is returned when a variant name is not part of a closed set.
var ErrUnknownVariant = errors.New("components: unknown variant")

func unknown(set, name string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownVariant, set, name)
}

// classes joins non-empty class lists.
func classes(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func execute(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("components: render %s: %w", t.Name(), err)
	}
	return template.HTML(buf.String()), nil
}
