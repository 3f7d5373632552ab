package dom

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// QueryAll evaluates an XPath expression against root. A nil root yields no
// nodes.
func QueryAll(root *html.Node, expr string) ([]*html.Node, error) {
	if root == nil {
		return nil, nil
	}
	nodes, err := htmlquery.QueryAll(root, expr)
	if err != nil {
		return nil, fmt.Errorf("dom: query %q: %w", expr, err)
	}
	return nodes, nil
}

// Query returns the first node matching expr, or nil.
func Query(root *html.Node, expr string) (*html.Node, error) {
	if root == nil {
		return nil, nil
	}
	node, err := htmlquery.Query(root, expr)
	if err != nil {
		return nil, fmt.Errorf("dom: query %q: %w", expr, err)
	}
	return node, nil
}

// Find is QueryAll for expressions built in code. It panics on malformed
// XPath, which is always a programming error.
func Find(root *html.Node, expr string) []*html.Node {
	nodes, err := QueryAll(root, expr)
	if err != nil {
		panic(err)
	}
	return nodes
}

// FindOne is Query for expressions built in code.
func FindOne(root *html.Node, expr string) *html.Node {
	node, err := Query(root, expr)
	if err != nil {
		panic(err)
	}
	return node
}

// ByID returns the element under root (inclusive) carrying the id.
func ByID(root *html.Node, id string) *html.Node {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	if ID(root) == id && IsElement(root) {
		return root
	}
	return FindOne(root, ".//*[@id="+Literal(id)+"]")
}

// ChildrenWithClass returns the direct element children of n that carry class.
func ChildrenWithClass(n *html.Node, class string) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if IsElement(child) && HasClass(child, class) {
			out = append(out, child)
		}
	}
	return out
}

// ClassPredicate returns an XPath predicate body matching elements whose
// class list contains class.
func ClassPredicate(class string) string {
	return "contains(concat(' ', normalize-space(@class), ' '), " + Literal(" "+class+" ") + ")"
}

// Literal quotes s as an XPath 1.0 string literal.
func Literal(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+part+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
