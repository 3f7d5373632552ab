package tableconfig

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// NormalizeOptions splits a textarea value into option lines: trimmed, blank
// lines dropped, duplicates removed keeping the first occurrence. deduped
// reports whether duplicates were found.
func NormalizeOptions(text string) (options []string, deduped bool) {
	seen := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			deduped = true
			continue
		}
		seen[line] = struct{}{}
		options = append(options, line)
	}
	return options, deduped
}

// OptionsBlur rewrites the options textarea with its normalised lines and
// warns through n when duplicates were dropped.
func OptionsBlur(textarea *html.Node, n notify.Notifier, localizer render.Localizer) []string {
	if textarea == nil {
		return nil
	}
	options, deduped := NormalizeOptions(dom.Value(textarea))
	if deduped && n != nil {
		n.Notify(notify.LevelWarning, localizer.Text(render.MsgOptionsDeduped))
	}
	dom.SetValue(textarea, strings.Join(options, "\n"))
	return options
}

// ToggleOptionsGroup shows #optionsGroup only while #fieldTypeSelect is set
// to dropdown. It returns the resulting visibility; missing elements are
// ignored.
func ToggleOptionsGroup(root *html.Node) bool {
	sel := dom.ByID(root, "fieldTypeSelect")
	group := dom.ByID(root, "optionsGroup")
	if sel == nil || group == nil {
		return false
	}
	visible := dom.Value(sel) == string(field.KindDropdown)
	setDisplay(group, visible)
	return visible
}

func setDisplay(n *html.Node, visible bool) {
	display := "none"
	if visible {
		display = "block"
	}

	var kept []string
	for _, decl := range strings.Split(dom.AttrOr(n, "style", ""), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		property, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(property), "display") {
			continue
		}
		kept = append(kept, decl)
	}
	kept = append(kept, "display: "+display)
	dom.SetAttr(n, "style", strings.Join(kept, "; ")+";")
}
