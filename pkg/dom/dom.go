// Package dom wraps golang.org/x/net/html nodes with the handful of element
// operations the form engine needs: attribute and class edits, text content,
// form-control values, XPath lookups and serialisation.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element creates a detached element. attrs are read as key/value pairs; a
// trailing key without a value becomes a boolean attribute.
func Element(tag string, attrs ...string) *html.Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i < len(attrs); i += 2 {
		value := ""
		if i+1 < len(attrs) {
			value = attrs[i+1]
		}
		SetAttr(node, attrs[i], value)
	}
	return node
}

// Text creates a detached text node.
func Text(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// Append adds children to parent in order and returns parent. Nil children
// are skipped; attached children are moved.
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	if parent == nil {
		return nil
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.Parent != nil {
			child.Parent.RemoveChild(child)
		}
		parent.AppendChild(child)
	}
	return parent
}

// IsElement reports whether n is an element with one of the given tags. With
// no tags it reports whether n is any element.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if strings.EqualFold(n.Data, tag) {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, key) {
			return attr.Val, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or fallback when it is missing or blank.
func AttrOr(n *html.Node, key, fallback string) string {
	if value, ok := Attr(n, key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// HasAttr reports whether the attribute is present, regardless of value.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr adds or replaces an attribute.
func SetAttr(n *html.Node, key, value string) {
	if n == nil {
		return
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// SetBool toggles a boolean attribute such as required or disabled.
func SetBool(n *html.Node, key string, on bool) {
	if on {
		SetAttr(n, key, "")
		return
	}
	RemoveAttr(n, key)
}

// RemoveAttr drops every occurrence of the attribute.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, key) {
			continue
		}
		kept = append(kept, attr)
	}
	n.Attr = kept
}

// ID returns the id attribute.
func ID(n *html.Node) string {
	id, _ := Attr(n, "id")
	return id
}

// Classes returns the class list in document order without duplicates.
func Classes(n *html.Node) []string {
	raw, _ := Attr(n, "class")
	fields := strings.Fields(raw)
	out := fields[:0]
	seen := make(map[string]struct{}, len(fields))
	for _, class := range fields {
		if _, dup := seen[class]; dup {
			continue
		}
		seen[class] = struct{}{}
		out = append(out, class)
	}
	return out
}

// HasClass reports whether class is in the class list.
func HasClass(n *html.Node, class string) bool {
	for _, existing := range Classes(n) {
		if existing == class {
			return true
		}
	}
	return false
}

// AddClass appends classes that are not already present.
func AddClass(n *html.Node, classes ...string) {
	if n == nil {
		return
	}
	current := Classes(n)
	changed := false
	for _, class := range classes {
		for _, part := range strings.Fields(class) {
			if containsString(current, part) {
				continue
			}
			current = append(current, part)
			changed = true
		}
	}
	if changed {
		SetAttr(n, "class", strings.Join(current, " "))
	}
}

// RemoveClass drops classes from the class list. The class attribute is kept
// even when it ends up empty, matching classList.remove.
func RemoveClass(n *html.Node, classes ...string) {
	if n == nil || !HasAttr(n, "class") {
		return
	}
	current := Classes(n)
	kept := make([]string, 0, len(current))
	for _, class := range current {
		if containsString(classes, class) {
			continue
		}
		kept = append(kept, class)
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass adds class when on is true and removes it otherwise.
func ToggleClass(n *html.Node, class string, on bool) {
	if on {
		AddClass(n, class)
		return
	}
	RemoveClass(n, class)
}

// Clear removes every child of n.
func Clear(n *html.Node) {
	if n == nil {
		return
	}
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		n.RemoveChild(child)
		child = next
	}
}

// Remove detaches n from its parent. Detached nodes are left alone.
func Remove(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	if n == nil {
		return
	}
	Clear(n)
	n.AppendChild(Text(text))
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	return htmlquery.InnerText(n)
}

// Closest walks up from n (inclusive) and returns the first element with the
// given tag.
func Closest(n *html.Node, tag string) *html.Node {
	for current := n; current != nil; current = current.Parent {
		if IsElement(current, tag) {
			return current
		}
	}
	return nil
}

// Root returns the top-most ancestor of n.
func Root(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Render serialises n including its own tag.
func Render(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", fmt.Errorf("dom: render: %w", err)
	}
	return sb.String(), nil
}

// RenderChildren serialises the children of n, the equivalent of innerHTML.
func RenderChildren(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&sb, child); err != nil {
			return "", fmt.Errorf("dom: render: %w", err)
		}
	}
	return sb.String(), nil
}

// MustRender is Render for nodes built in code, where serialisation cannot
// fail short of a writer error.
func MustRender(n *html.Node) string {
	out, err := Render(n)
	if err != nil {
		panic(err)
	}
	return out
}

// ParseDocument parses a full HTML document.
func ParseDocument(r io.Reader) (*html.Node, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return doc, nil
}

// Parse parses an HTML fragment in a <body> context and returns the detached
// top-level nodes.
func Parse(fragment string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	return nodes, nil
}

// Clone returns a deep copy of n.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		clone.AppendChild(Clone(child))
	}
	return clone
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
