package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/rustguide-web/internal/locale"
)

func TestDefaultRegistryIsTotal(t *testing.T) {
	t.Parallel()

	reg, err := Default()
	require.NoError(t, err)
	for _, l := range locale.Supported() {
		sections, err := reg.Sections(l)
		require.NoError(t, err, "locale %s", l)
		require.NotEmpty(t, sections, "locale %s", l)
		for _, s := range sections {
			require.NotEmpty(t, s.Title)
			require.NotEmpty(t, s.Links)
		}
	}
	require.Equal(t, []locale.Locale{locale.ZhCN, locale.English, locale.Spanish}, reg.Locales())
	require.Equal(t, locale.ZhCN, reg.Reference())
}

func TestDefaultRegistryHrefParity(t *testing.T) {
	t.Parallel()

	reg, err := Default()
	require.NoError(t, err)
	require.True(t, reg.Consistent(), "warnings: %v", reg.Warnings())

	want, err := reg.Sections(reg.Reference())
	require.NoError(t, err)
	for _, l := range reg.Locales() {
		got, err := reg.Sections(l)
		require.NoError(t, err)
		require.Equal(t, Hrefs(want), Hrefs(got), "locale %s", l)
	}
}

func TestEnglishStartsWithGetStarted(t *testing.T) {
	t.Parallel()

	reg, err := Default()
	require.NoError(t, err)
	sections, err := reg.SectionsFor("en")
	require.NoError(t, err)
	require.Equal(t, "Get Started", sections[0].Title)
	require.Equal(t, "/", sections[0].Links[0].Href)
	require.Equal(t, "Introduction", sections[0].Links[0].Title)
}

func TestUnsupportedLocaleFails(t *testing.T) {
	t.Parallel()

	reg, err := Default()
	require.NoError(t, err)

	sections, err := reg.SectionsFor("fr")
	require.Nil(t, sections)
	require.ErrorIs(t, err, ErrLocaleNotFound)
	var nf *LocaleNotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "fr", nf.Locale)

	_, err = reg.Sections(locale.Locale("fr"))
	require.ErrorIs(t, err, ErrLocaleNotFound)
}

func TestRegisteredSubsetReportsMissingLocale(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry([]Entry{{
		Locale:   "en",
		Sections: []Section{{Title: "Get Started", Links: []Link{{Title: "Introduction", Href: "/"}}}},
	}})
	require.NoError(t, err)
	_, err = reg.Sections(locale.Spanish)
	require.ErrorIs(t, err, ErrLocaleNotFound)
}

func TestSectionsReturnsCopies(t *testing.T) {
	t.Parallel()

	reg, err := Default()
	require.NoError(t, err)
	first, err := reg.Sections(locale.English)
	require.NoError(t, err)
	first[0].Title = "mutated"
	first[0].Links[0].Href = "/mutated"

	again, err := reg.Sections(locale.English)
	require.NoError(t, err)
	require.Equal(t, "Get Started", again[0].Title)
	require.Equal(t, "/", again[0].Links[0].Href)
}

func TestNewRegistryRejectsMalformedContent(t *testing.T) {
	t.Parallel()

	ok := []Section{{Title: "A", Links: []Link{{Title: "a", Href: "/"}}}}
	cases := map[string][]Entry{
		"empty":       nil,
		"unsupported": {{Locale: "fr", Sections: ok}},
		"duplicate":   {{Locale: "en", Sections: ok}, {Locale: "EN", Sections: ok}},
		"no sections": {{Locale: "en"}},
		"empty href":  {{Locale: "en", Sections: []Section{{Title: "A", Links: []Link{{Title: "a", Href: " "}}}}}},
	}
	for name, entries := range cases {
		_, err := NewRegistry(entries)
		var be *BuildError
		require.True(t, errors.As(err, &be), "%s: got %v", name, err)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	reg, err := Default()
	require.NoError(t, err)
	section, link, ok := reg.Find(locale.Spanish, "/docs/core-concept/traits")
	require.True(t, ok)
	require.Equal(t, "Concepto principal", section.Title)
	require.Equal(t, "Rasgos", link.Title)

	_, _, ok = reg.Find(locale.Spanish, "/docs/nope")
	require.False(t, ok)
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("locales: [::"))
	require.Error(t, err)
}
