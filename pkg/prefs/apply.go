package prefs

import (
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
)

// ThemeAttribute is the Bootstrap colour-mode attribute.
const ThemeAttribute = "data-bs-theme"

// themedComponents receive the attribute directly so components rendered
// outside the body's cascade (modals, dropdowns) follow the theme.
var themedComponents = func() string {
	classes := []string{"card", "modal", "dropdown-menu", "alert", "form-control", "form-select", "table"}
	predicates := make([]string, len(classes))
	for i, class := range classes {
		predicates[i] = dom.ClassPredicate(class)
	}
	return ".//*[" + strings.Join(predicates, " or ") + "]"
}()

// Apply writes the theme onto a page: the html and body elements, the first
// navbar and every themed component. Theme radios are checked to match.
func Apply(root *html.Node, p Preferences) {
	if root == nil || p.Theme == "" {
		return
	}
	for _, tag := range []string{"html", "body"} {
		if n := dom.FindOne(root, "descendant-or-self::"+tag); n != nil {
			dom.SetAttr(n, ThemeAttribute, p.Theme)
		}
	}

	if navbar := dom.FindOne(root, ".//*["+dom.ClassPredicate("navbar")+"]"); navbar != nil {
		dom.RemoveClass(navbar, "navbar-dark", "navbar-light", "bg-dark", "bg-light")
		if p.Theme == ThemeDark {
			dom.AddClass(navbar, "navbar-dark", "bg-dark")
		} else {
			dom.AddClass(navbar, "navbar-light", "bg-light")
		}
	}

	for _, component := range dom.Find(root, themedComponents) {
		dom.SetAttr(component, ThemeAttribute, p.Theme)
	}
	SyncRadios(root, p.Theme)
}

// SyncRadios checks the input[name=theme] radio whose value is theme and
// unchecks the others.
func SyncRadios(root *html.Node, theme string) {
	for _, radio := range dom.Find(root, ".//input[@name='theme']") {
		dom.SetBool(radio, "checked", dom.AttrOr(radio, "value", "") == theme)
	}
}

// Change handles a theme switch: the value is validated, stored, applied to
// root and echoed in the cookie.
func Change(root *html.Node, store Store, w http.ResponseWriter, raw string) (Preferences, error) {
	theme, err := ParseTheme(raw)
	if err != nil {
		return Preferences{}, err
	}
	p := Preferences{Theme: theme}
	if store != nil {
		store.SetTheme(theme)
	}
	Apply(root, p)
	WriteCookie(w, p)
	return p, nil
}
