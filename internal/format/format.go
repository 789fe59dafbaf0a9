package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"finitefield.org/rustguide-web/internal/locale"
)

var spanishMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// FmtDate formats t in a locale-friendly short form. The zero time renders empty.
func FmtDate(t time.Time, lang locale.Locale) string {
	if t.IsZero() {
		return ""
	}
	switch lang {
	case locale.ZhCN:
		return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	case locale.Spanish:
		return fmt.Sprintf("%d %s %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FmtCount renders n with the locale's digit grouping.
// Example: FmtCount(12345, locale.Spanish) => "12.345"
func FmtCount(n int, lang locale.Locale) string {
	tag, err := language.Parse(lang.String())
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf("%d", n)
}
