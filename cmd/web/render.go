package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"finitefield.org/rustguide-web/internal/components"
	"finitefield.org/rustguide-web/internal/locale"
	"finitefield.org/rustguide-web/internal/observability"
)

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":     time.Now,
		"pathFor": locale.PathFor,
		"icon": func(name, class string) (template.HTML, error) {
			k, err := components.ParseIcon(name)
			if err != nil {
				return "", err
			}
			return components.Icon(k, class)
		},
		"iconKind": components.Icon,
		"button": func(variant, label, href string) (template.HTML, error) {
			v, err := components.ParseButtonVariant(variant)
			if err != nil {
				return "", err
			}
			return components.ButtonLink(v, label, href, "")
		},
		"prose": func(body template.HTML) (template.HTML, error) {
			return components.Prose("article", "", body)
		},
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// render executes the base layout with content from the named page
// template. In dev mode, templates are reparsed on each request.
func render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	logger := observability.FromContext(r.Context())
	var t *template.Template
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			logger.Error("template parse", zap.Error(err))
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	} else {
		t = tmplCache
	}
	if t == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return
	}
	t, err := t.Clone()
	if err == nil {
		_, err = t.New("content").Parse(`{{template "` + page + `" .}}`)
	}
	if err != nil {
		logger.Error("template clone", zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	// buffer so a failing template does not leave a half-written 200
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		logger.Error("template exec", zap.String("page", page), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
