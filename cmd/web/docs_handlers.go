package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"finitefield.org/rustguide-web/internal/cms"
	"finitefield.org/rustguide-web/internal/handlers"
	mw "finitefield.org/rustguide-web/internal/middleware"
	"finitefield.org/rustguide-web/internal/observability"
)

// DocHandler renders a markdown guide page in the request locale. Missing
// translations are served from another locale and flagged in the page.
func DocHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	doc, err := contentClient.Page(r.Context(), r.URL.Path, lang)
	if errors.Is(err, cms.ErrNotFound) {
		NotFoundHandler(w, r)
		return
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("load page", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	vm, err := handlers.BuildPageData(site(), lang, doc.Path, &doc)
	if err != nil {
		observability.FromContext(r.Context()).Error("build page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	render(w, r, http.StatusOK, "doc", vm)
}

// NotFoundHandler renders the localized 404 page with the full table of contents.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	vm, err := handlers.BuildPageData(site(), lang, r.URL.Path, nil)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	vm.Title = vm.T("page.notfound")
	vm.SEO.Title = vm.Title
	render(w, r, http.StatusNotFound, "notfound", vm)
}
