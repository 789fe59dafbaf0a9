package components

import (
	"fmt"
	"html/template"
)

// ButtonVariant selects a button look.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota + 1
	ButtonSecondary
)

// ParseButtonVariant maps a variant name. An empty name is primary.
func ParseButtonVariant(name string) (ButtonVariant, error) {
	switch name {
	case "", "primary":
		return ButtonPrimary, nil
	case "secondary":
		return ButtonSecondary, nil
	}
	return 0, unknown("button", name)
}

// Class returns the class list for v.
func (v ButtonVariant) Class() (string, error) {
	switch v {
	case ButtonPrimary:
		return "btn btn-primary", nil
	case ButtonSecondary:
		return "btn btn-secondary", nil
	}
	return "", unknown("button", fmt.Sprint(int(v)))
}

var (
	buttonTmpl     = template.Must(template.New("button").Parse(`<button type="button" class="{{.Class}}">{{.Label}}</button>`))
	buttonLinkTmpl = template.Must(template.New("button-link").Parse(`<a href="{{.Href}}" class="{{.Class}}">{{.Label}}</a>`))
)

// Button renders a <button>.
func Button(v ButtonVariant, label, extraClass string) (template.HTML, error) {
	class, err := v.Class()
	if err != nil {
		return "", err
	}
	return execute(buttonTmpl, struct{ Class, Label string }{classes(class, extraClass), label})
}

// ButtonLink renders a link styled as a button.
func ButtonLink(v ButtonVariant, label, href, extraClass string) (template.HTML, error) {
	class, err := v.Class()
	if err != nil {
		return "", err
	}
	return execute(buttonLinkTmpl, struct{ Class, Label, Href string }{classes(class, extraClass), label, href})
}
