package render

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
)

// HiddenField is a hidden input emitted before the visible controls of a
// form, typically a CSRF token or a record version.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken carries the anti-forgery token under the name the backend
// expects ("csrf_token" for the Flask-WTF forms of the records screens).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField carries the record version for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns the fields sorted by name for deterministic
// output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	if len(clean) == 0 {
		return nil
	}
	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}

// HiddenInputs builds one <input type="hidden"> per field, sorted by name.
func HiddenInputs(fields map[string]string) []*html.Node {
	sorted := SortedHiddenFields(fields)
	nodes := make([]*html.Node, 0, len(sorted))
	for _, field := range sorted {
		nodes = append(nodes, dom.Element("input", "type", "hidden", "name", field.Name, "value", field.Value))
	}
	return nodes
}
