package format

import (
	"testing"
	"time"

	"finitefield.org/rustguide-web/internal/locale"
)

func TestFmtDate(t *testing.T) {
	d := time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)
	cases := map[locale.Locale]string{
		locale.ZhCN:    "2024年3月9日",
		locale.English: "Mar 9, 2024",
		locale.Spanish: "9 mar 2024",
	}
	for lang, want := range cases {
		if got := FmtDate(d, lang); got != want {
			t.Errorf("FmtDate(%s) = %q, want %q", lang, got, want)
		}
	}
	if got := FmtDate(time.Time{}, locale.English); got != "" {
		t.Errorf("zero time should render empty, got %q", got)
	}
}

func TestFmtCount(t *testing.T) {
	if got := FmtCount(12345, locale.English); got != "12,345" {
		t.Errorf("en grouping = %q", got)
	}
	if got := FmtCount(12345, locale.Spanish); got != "12.345" {
		t.Errorf("es grouping = %q", got)
	}
}
