// Package tableconfig implements the behaviour of the table and field
// configuration screens: technical-name derivation, option list cleanup,
// form checks, delete confirmations and field reordering.
package tableconfig

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-scoutforms/pkg/dom"
)

var (
	nonNameChars   = regexp.MustCompile(`[^a-z0-9_]`)
	underscoreRuns = regexp.MustCompile(`_+`)
	// combining diacritical marks block
	combiningMarks = runes.In(&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}}})
)

// TechnicalName derives a technical name from a display name: lower case,
// accents folded, anything outside [a-z0-9_] replaced by "_", runs collapsed
// and the outer underscores trimmed. "Date d'arrivée" becomes
// "date_d_arrivee".
func TechnicalName(display string) string {
	name := nonNameChars.ReplaceAllString(foldAccents(strings.ToLower(display)), "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.TrimPrefix(name, "_")
	return strings.TrimSuffix(name, "_")
}

func foldAccents(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(combiningMarks)), s)
	if err != nil {
		return s
	}
	return folded
}

// NameSync keeps the technical name input of a creation form in step with
// its display name input.
type NameSync struct {
	display *html.Node
	name    *html.Node
	active  bool
}

// BindNameSync looks up input[name=display_name] and input[name=name] under
// root. Syncing is only active when the name input starts empty, so editing
// an existing table or field never rewrites its technical name. It returns
// nil when either input is missing.
func BindNameSync(root *html.Node) *NameSync {
	display := dom.FindOne(root, ".//input[@name='display_name']")
	name := dom.FindOne(root, ".//input[@name='name']")
	if display == nil || name == nil {
		return nil
	}
	return &NameSync{display: display, name: name, active: dom.Value(name) == ""}
}

// Active reports whether display name edits rewrite the technical name.
func (s *NameSync) Active() bool {
	return s != nil && s.active
}

// DisplayNameInput records a new display name value and, when active,
// rewrites the technical name. It returns the technical name input value.
func (s *NameSync) DisplayNameInput(value string) string {
	if s == nil {
		return ""
	}
	dom.SetValue(s.display, value)
	if s.active {
		dom.SetValue(s.name, TechnicalName(value))
	}
	return dom.Value(s.name)
}
