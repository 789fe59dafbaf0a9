package components

import (
	"fmt"
	"html/template"
)

// CalloutKind selects the look of a callout box.
type CalloutKind int

const (
	CalloutNote CalloutKind = iota + 1
	CalloutWarning
	CalloutQuestion
)

// ParseCalloutKind maps a callout type name. An empty name is a note.
func ParseCalloutKind(name string) (CalloutKind, error) {
	switch name {
	case "", "note":
		return CalloutNote, nil
	case "warning":
		return CalloutWarning, nil
	case "question":
		return CalloutQuestion, nil
	}
	return 0, unknown("callout", name)
}

func (k CalloutKind) String() string {
	switch k {
	case CalloutNote:
		return "note"
	case CalloutWarning:
		return "warning"
	case CalloutQuestion:
		return "question"
	}
	return "invalid"
}

type calloutStyle struct {
	Container string
	Title     string
	Body      string
	Icon      IconKind
}

func (k CalloutKind) style() (calloutStyle, error) {
	switch k {
	case CalloutNote:
		return calloutStyle{Container: "callout callout-note", Title: "callout-title", Body: "callout-body", Icon: IconLightbulb}, nil
	case CalloutWarning:
		return calloutStyle{Container: "callout callout-warning", Title: "callout-title", Body: "callout-body", Icon: IconWarning}, nil
	case CalloutQuestion:
		return calloutStyle{Container: "callout callout-question", Title: "callout-title", Body: "callout-body", Icon: IconQuestion}, nil
	}
	return calloutStyle{}, unknown("callout", fmt.Sprint(int(k)))
}

var calloutTmpl = template.Must(template.New("callout").Parse(
	`<div class="{{.Style.Container}}" data-callout="{{.Kind}}">` +
		`<div class="callout-head">{{.Icon}}<p class="{{.Style.Title}}">{{.Title}}</p></div>` +
		`<div class="{{.Style.Body}}">{{.Body}}</div></div>`))

// Callout renders a callout box around body, which must already be safe HTML.
func Callout(k CalloutKind, title string, body template.HTML) (template.HTML, error) {
	st, err := k.style()
	if err != nil {
		return "", err
	}
	icon, err := Icon(st.Icon, "callout-icon")
	if err != nil {
		return "", err
	}
	return execute(calloutTmpl, struct {
		Kind  string
		Style calloutStyle
		Icon  template.HTML
		Title string
		Body  template.HTML
	}{k.String(), st, icon, title, body})
}
