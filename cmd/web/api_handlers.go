package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"finitefield.org/rustguide-web/internal/locale"
	mw "finitefield.org/rustguide-web/internal/middleware"
	"finitefield.org/rustguide-web/internal/nav"
)

type navResponse struct {
	Locale   locale.Locale `json:"locale"`
	Sections []nav.Section `json:"sections"`
}

type consistencyResponse struct {
	Reference  locale.Locale            `json:"reference"`
	Locales    []locale.Locale          `json:"locales"`
	Consistent bool                     `json:"consistent"`
	Warnings   []nav.ConsistencyWarning `json:"warnings"`
}

type localeResponse struct {
	Locale    locale.Locale   `json:"locale"`
	State     string          `json:"state"`
	Route     locale.Locale   `json:"route,omitempty"`
	Supported []locale.Locale `json:"supported"`
}

// NavHandler returns the table of contents for the request locale.
func NavHandler(w http.ResponseWriter, r *http.Request) {
	writeSections(w, mw.Lang(r).String())
}

// NavLocaleHandler returns the table of contents for the locale in the URL.
func NavLocaleHandler(w http.ResponseWriter, r *http.Request) {
	writeSections(w, chi.URLParam(r, "locale"))
}

func writeSections(w http.ResponseWriter, tag string) {
	sections, err := registry.SectionsFor(tag)
	var nf *nav.LocaleNotFoundError
	if errors.As(err, &nf) {
		mw.WriteError(w, http.StatusNotFound, nf.Error())
		return
	}
	if err != nil {
		mw.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	l, _ := locale.Parse(tag)
	mw.WriteJSON(w, http.StatusOK, navResponse{Locale: l, Sections: sections})
}

// NavConsistencyHandler reports cross-locale navigation divergence.
func NavConsistencyHandler(w http.ResponseWriter, r *http.Request) {
	mw.WriteJSON(w, http.StatusOK, consistencyResponse{
		Reference:  registry.Reference(),
		Locales:    registry.Locales(),
		Consistent: registry.Consistent(),
		Warnings:   registry.Warnings(),
	})
}

// LocaleHandler reports the locale selection for this request.
func LocaleHandler(w http.ResponseWriter, r *http.Request) {
	resp := localeResponse{State: locale.Unselected.String(), Supported: locale.Supported()}
	if sel := mw.SelectionFromContext(r.Context()); sel != nil {
		resp.State = sel.State().String()
		resp.Locale, _ = sel.Current()
	}
	if route, ok := mw.RouteLocale(r); ok {
		resp.Route = route
	}
	mw.WriteJSON(w, http.StatusOK, resp)
}
