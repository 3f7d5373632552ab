package enhance

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// FormatDateCells rewrites every td[data-date] under root to dd/mm/yyyy.
// Cells with unparsable dates keep their content. It returns the number of
// cells rewritten.
func FormatDateCells(root *html.Node) int {
	rewritten := 0
	for _, cell := range dom.Find(root, ".//td[@data-date]") {
		raw, _ := dom.Attr(cell, "data-date")
		parsed, ok := ParseDate(raw)
		if !ok {
			continue
		}
		dom.SetText(cell, parsed.Format(LayoutDisplay))
		rewritten++
	}
	return rewritten
}

// MarkActiveNav adds "active" to navbar links matching currentPath: exact
// matches, or prefix matches for links other than "/". A link inside a
// dropdown also activates the dropdown toggle.
func MarkActiveNav(root *html.Node, currentPath string) []*html.Node {
	var active []*html.Node
	expr := ".//*[" + dom.ClassPredicate("navbar-nav") + "]//*[" + dom.ClassPredicate("nav-link") + "]"
	for _, link := range dom.Find(root, expr) {
		href, ok := dom.Attr(link, "href")
		if !ok || href == "" {
			continue
		}
		if currentPath != href && (href == "/" || !strings.HasPrefix(currentPath, href)) {
			continue
		}
		dom.AddClass(link, "active")
		active = append(active, link)

		if dropdown := closestWithClass(link, "dropdown"); dropdown != nil {
			if toggle := dom.FindOne(dropdown, ".//*["+dom.ClassPredicate("dropdown-toggle")+"]"); toggle != nil {
				dom.AddClass(toggle, "active")
			}
		}
	}
	return active
}

// ConfirmMessage returns the confirmation prompt for an element carrying
// data-confirm. ok is false when the element needs no confirmation.
func ConfirmMessage(n *html.Node, localizer render.Localizer) (message string, ok bool) {
	raw, present := dom.Attr(n, "data-confirm")
	if !present {
		return "", false
	}
	if strings.TrimSpace(raw) != "" {
		return raw, true
	}
	return localizer.Text(render.MsgConfirm), true
}

// AdjustTables toggles the compact table-sm class on responsive tables for
// narrow viewports.
func AdjustTables(root *html.Node, mobile bool) {
	for _, table := range dom.Find(root, ".//*["+dom.ClassPredicate("table-responsive")+"]//table") {
		dom.ToggleClass(table, "table-sm", mobile)
	}
}

// MobileBreakpoint is the viewport width below which AdjustTables should be
// called with mobile=true.
const MobileBreakpoint = 768

func closestWithClass(n *html.Node, class string) *html.Node {
	for current := n.Parent; current != nil; current = current.Parent {
		if dom.IsElement(current) && dom.HasClass(current, class) {
			return current
		}
	}
	return nil
}
