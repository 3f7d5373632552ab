package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// InputType returns the lower-cased type of an input element, defaulting to
// "text" like browsers do. Non-input elements report their tag name.
func InputType(n *html.Node) string {
	if !IsElement(n) {
		return ""
	}
	if !IsElement(n, "input") {
		return strings.ToLower(n.Data)
	}
	kind := strings.ToLower(strings.TrimSpace(AttrOr(n, "type", "text")))
	return kind
}

// Value returns the current value of a form control: the value attribute for
// inputs, the text for textareas and the selected option for selects.
func Value(n *html.Node) string {
	switch {
	case IsElement(n, "textarea"):
		return TextContent(n)
	case IsElement(n, "select"):
		return selectValue(n)
	case IsElement(n, "option"):
		return optionValue(n)
	default:
		value, _ := Attr(n, "value")
		return value
	}
}

// SetValue assigns the value of a form control. For selects the option with
// the matching value becomes the single selected option; an unknown value
// clears the selection.
func SetValue(n *html.Node, value string) {
	switch {
	case IsElement(n, "textarea"):
		SetText(n, value)
	case IsElement(n, "select"):
		for _, option := range Options(n) {
			SetBool(option, "selected", optionValue(option) == value)
		}
	default:
		SetAttr(n, "value", value)
	}
}

// Checked reports whether a checkbox or radio carries the checked attribute.
func Checked(n *html.Node) bool {
	return HasAttr(n, "checked")
}

// Options returns the option elements of a select, including those nested in
// optgroups.
func Options(sel *html.Node) []*html.Node {
	if sel == nil {
		return nil
	}
	return Find(sel, ".//option")
}

func selectValue(sel *html.Node) string {
	options := Options(sel)
	if len(options) == 0 {
		return ""
	}
	for _, option := range options {
		if HasAttr(option, "selected") {
			return optionValue(option)
		}
	}
	if HasAttr(sel, "multiple") {
		return ""
	}
	return optionValue(options[0])
}

func optionValue(option *html.Node) string {
	if value, ok := Attr(option, "value"); ok {
		return value
	}
	return strings.TrimSpace(TextContent(option))
}
