package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-scoutforms/pkg/field"
)

// ErrorMapping splits a server error payload into control-level messages
// keyed by control name (field_<id>) and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level message slices, trimming whitespace
// and dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload resolves the keys of a server error payload onto the
// rendered controls. A key may be a control name ("field_3"), a technical
// name ("montant") or a JSON pointer / dotted path wrapping either
// ("/body/values/montant", "data.fields[3]"). Keys that match no definition
// become form-level messages so nothing is lost.
func MapErrorPayload(defs []field.Definition, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	index := newControlIndex(defs)
	for _, rawPath := range sortedKeys(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		control, ok := index.resolve(rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[control] = normalizeMessages(append(mapping.Fields[control], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

type controlIndex struct {
	byControl map[string]string
	byName    map[string]string
	byID      map[string]string
}

func newControlIndex(defs []field.Definition) controlIndex {
	index := controlIndex{
		byControl: make(map[string]string, len(defs)),
		byName:    make(map[string]string, len(defs)),
		byID:      make(map[string]string, len(defs)),
	}
	for _, def := range defs {
		control := def.ControlName()
		index.byControl[control] = control
		index.byID[strconv.FormatInt(def.ID, 10)] = control
		if name := strings.TrimSpace(def.Name); name != "" {
			index.byName[name] = control
		}
	}
	return index
}

// resolve scans the path segments left to right. Control names and technical
// names match anywhere; bare numeric ids only match right after a "fields"
// segment, since numbers elsewhere are array indexes.
func (idx controlIndex) resolve(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	segments := parsePathSegments(trimmed)
	for i, segment := range segments {
		if control, ok := idx.byControl[segment]; ok {
			return control, true
		}
		if control, ok := idx.byName[segment]; ok {
			return control, true
		}
		if i > 0 && strings.EqualFold(segments[i-1], "fields") {
			if control, ok := idx.byID[segment]; ok {
				return control, true
			}
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func sortedKeys(payload map[string][]string) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
