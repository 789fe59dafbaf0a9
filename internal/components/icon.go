package components

import (
	"fmt"
	"html/template"

	"finitefield.org/rustguide-web/internal/locale"
)

// IconKind names an icon in the site sprite sheet.
type IconKind int

const (
	IconLightbulb IconKind = iota + 1
	IconWarning
	IconQuestion
	IconDashboard
	IconLangZhCN
	IconLangEn
	IconLangEs
)

var iconNames = map[IconKind]string{
	IconLightbulb: "lightbulb",
	IconWarning:   "warning",
	IconQuestion:  "question",
	IconDashboard: "dashboard",
	IconLangZhCN:  "lang-zh-cn",
	IconLangEn:    "lang-en",
	IconLangEs:    "lang-es",
}

// ParseIcon maps a sprite name to its IconKind.
func ParseIcon(name string) (IconKind, error) {
	for k, n := range iconNames {
		if n == name {
			return k, nil
		}
	}
	return 0, unknown("icon", name)
}

func (k IconKind) String() string { return iconNames[k] }

// LangIcon returns the switcher icon for l.
func LangIcon(l locale.Locale) (IconKind, error) {
	switch l {
	case locale.ZhCN:
		return IconLangZhCN, nil
	case locale.English:
		return IconLangEn, nil
	case locale.Spanish:
		return IconLangEs, nil
	}
	return 0, unknown("locale icon", string(l))
}

var iconTmpl = template.Must(template.New("icon").Parse(
	`<svg aria-hidden="true" class="{{.Class}}"><use href="/assets/icons.svg#{{.Name}}"></use></svg>`))

// Icon renders a sprite reference.
func Icon(k IconKind, class string) (template.HTML, error) {
	name, ok := iconNames[k]
	if !ok {
		return "", unknown("icon", fmt.Sprint(int(k)))
	}
	return execute(iconTmpl, struct{ Name, Class string }{name, class})
}
