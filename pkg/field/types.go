package field

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind is the closed set of field kinds a table can declare.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindDropdown Kind = "dropdown"
)

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindText, KindNumber, KindDate, KindDropdown}
}

// ParseKind maps a raw type string onto a Kind. Unknown or empty values
// resolve to KindText; known reports whether the input named a real kind.
func ParseKind(raw string) (kind Kind, known bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindText:
		return KindText, true
	case KindNumber:
		return KindNumber, true
	case KindDate:
		return KindDate, true
	case KindDropdown:
		return KindDropdown, true
	default:
		return KindText, false
	}
}

// Label returns the French label used by the field configuration screens.
func (k Kind) Label() string {
	switch k {
	case KindNumber:
		return "Nombre"
	case KindDate:
		return "Date"
	case KindDropdown:
		return "Liste déroulante"
	default:
		return "Texte"
	}
}

// Definition describes one column of a managed table. It is supplied by the
// server and treated as immutable while a form is rendered.
type Definition struct {
	ID             int64    `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	DisplayName    string   `json:"display_name" yaml:"display_name"`
	Kind           Kind     `json:"type" yaml:"type"`
	Required       bool     `json:"required" yaml:"required"`
	Unique         bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Options        []string `json:"options,omitempty" yaml:"options,omitempty"`
	Order          int      `json:"order,omitempty" yaml:"order,omitempty"`
	Pattern        string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	PatternMessage string   `json:"pattern_message,omitempty" yaml:"pattern_message,omitempty"`
	ErrorMessage   string   `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	MaxLength      int      `json:"max_length,omitempty" yaml:"max_length,omitempty"`
}

// UnmarshalJSON accepts both `type` and the server-side `field_type` key and
// normalises the kind.
func (d *Definition) UnmarshalJSON(data []byte) error {
	type plain Definition
	var payload struct {
		plain
		FieldType string `json:"field_type"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	*d = Definition(payload.plain)
	raw := string(d.Kind)
	if raw == "" {
		raw = payload.FieldType
	}
	d.Kind, _ = ParseKind(raw)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (d *Definition) UnmarshalYAML(unmarshal func(any) error) error {
	type plain Definition
	var payload struct {
		plain     `yaml:",inline"`
		FieldType string `yaml:"field_type"`
	}
	if err := unmarshal(&payload); err != nil {
		return err
	}
	*d = Definition(payload.plain)
	raw := string(d.Kind)
	if raw == "" {
		raw = payload.FieldType
	}
	d.Kind, _ = ParseKind(raw)
	return nil
}

// ControlName returns the id/name shared by the rendered control.
func (d Definition) ControlName() string {
	return ControlName(d.ID)
}

// Label returns the display name, falling back to the technical name.
func (d Definition) Label() string {
	if label := strings.TrimSpace(d.DisplayName); label != "" {
		return label
	}
	return d.Name
}

// ControlName derives the element id and name for a field id.
func ControlName(id int64) string {
	return "field_" + strconv.FormatInt(id, 10)
}

// ParseControlName extracts the field id from a control name produced by
// ControlName.
func ParseControlName(name string) (int64, bool) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(name), "field_")
	if !ok || raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// SortByOrder returns a copy of defs ordered by Order, then ID.
func SortByOrder(defs []Definition) []Definition {
	out := make([]Definition, len(defs))
	copy(out, defs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Find returns the definition with the given control name.
func Find(defs []Definition, controlName string) (Definition, bool) {
	id, ok := ParseControlName(controlName)
	if !ok {
		return Definition{}, false
	}
	for _, def := range defs {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// ValueMap carries the current values of a record keyed by technical name.
type ValueMap map[string]any

// Lookup returns the raw value for name. Nil values report as absent.
func (v ValueMap) Lookup(name string) (any, bool) {
	if v == nil {
		return nil, false
	}
	value, ok := v[name]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// StringValue formats the value stored under name for an input's value
// attribute. Absent and nil values report ok=false.
func (v ValueMap) StringValue(name string) (string, bool) {
	value, ok := v.Lookup(name)
	if !ok {
		return "", false
	}
	return FormatValue(value), true
}

// FormatValue renders a scalar value the way a browser would coerce it into
// an input value.
func FormatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
