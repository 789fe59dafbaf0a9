package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/rustguide-web/internal/cms"
	"finitefield.org/rustguide-web/internal/i18n"
	"finitefield.org/rustguide-web/internal/locale"
	"finitefield.org/rustguide-web/internal/nav"
)

func testSite(t *testing.T) Site {
	t.Helper()
	reg, err := nav.Default()
	require.NoError(t, err)
	bundle, err := i18n.Load("../../locales", locale.ZhCN)
	require.NoError(t, err)
	return Site{Name: "Rust Guide", BaseURL: "https://rust.example.org", Registry: reg, Bundle: bundle}
}

func TestBuildPageDataLocalizesLinks(t *testing.T) {
	site := testSite(t)
	pd, err := BuildPageData(site, locale.English, "/docs/get-started/features", nil)
	require.NoError(t, err)

	require.Equal(t, "Features", pd.Title)
	require.Equal(t, locale.English, pd.NavLocale)
	require.Equal(t, "Get Started", pd.Nav[0].Title)
	require.True(t, pd.Nav[0].Active)
	require.Equal(t, "/en", pd.Nav[0].Links[0].Href)
	require.Equal(t, "/en/docs/get-started/features", pd.Nav[0].Links[1].Href)
	require.True(t, pd.Nav[0].Links[1].Active)

	require.Len(t, pd.Breadcrumbs, 3)
	require.Equal(t, "Introduction", pd.Breadcrumbs[0].Label)
	require.Equal(t, "/en", pd.Breadcrumbs[0].Href)

	require.NotNil(t, pd.Prev)
	require.Equal(t, "/en", pd.Prev.Href)
	require.NotNil(t, pd.Next)
	require.Equal(t, "/en/docs/get-started/installation", pd.Next.Href)

	require.Equal(t, "https://rust.example.org/en/docs/get-started/features", pd.SEO.Canonical)
	require.Equal(t, "Home", pd.T("nav.home"))
	require.Equal(t, "no.such.key", pd.T("no.such.key"))
	require.Len(t, pd.JSONLD, 2)
	require.Contains(t, string(pd.JSONLD[1]), "https://rust.example.org/en")
	require.NotContains(t, string(pd.JSONLD[1]), "/en/en")
}

func TestBuildPageDataSwitcher(t *testing.T) {
	pd, err := BuildPageData(testSite(t), locale.Spanish, "/docs/core-concept/traits", nil)
	require.NoError(t, err)
	require.Len(t, pd.Locales, 3)

	hrefs := map[locale.Locale]string{}
	for _, o := range pd.Locales {
		hrefs[o.Locale] = o.Href
		require.Equal(t, o.Locale == locale.Spanish, o.Active)
	}
	require.Equal(t, "/docs/core-concept/traits?hl=zh-CN", hrefs[locale.ZhCN])
	require.Equal(t, "/en/docs/core-concept/traits?hl=en", hrefs[locale.English])
	require.Equal(t, "Español", pd.Locales[2].Name)
}

func TestBuildPageDataWithDoc(t *testing.T) {
	doc := &cms.DocPage{
		Path:        "/",
		Lang:        locale.ZhCN,
		Requested:   locale.Spanish,
		Title:       "Rust 学习指南",
		Description: "desc",
		UpdatedAt:   time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
	}
	pd, err := BuildPageData(testSite(t), locale.Spanish, "/", doc)
	require.NoError(t, err)
	require.Equal(t, "Rust 学习指南", pd.Title)
	require.Equal(t, "desc", pd.SEO.Description)
	require.Equal(t, "2 may 2024", pd.Updated)
	require.Len(t, pd.JSONLD, 3)
	require.True(t, strings.Contains(string(pd.JSONLD[2]), `"inLanguage":"zh-CN"`))
	require.True(t, pd.Doc.Fallback())
}

func TestBuildPageDataFallsBackToReferenceNav(t *testing.T) {
	reg, err := nav.NewRegistry([]nav.Entry{{
		Locale:   "zh-CN",
		Sections: []nav.Section{{Title: "快速开始", Links: []nav.Link{{Title: "简单介绍", Href: "/"}}}},
	}})
	require.NoError(t, err)
	pd, err := BuildPageData(Site{Name: "x", Registry: reg}, locale.English, "/", nil)
	require.NoError(t, err)
	require.Equal(t, locale.ZhCN, pd.NavLocale)
	require.Equal(t, "/en", pd.Nav[0].Links[0].Href)
}
