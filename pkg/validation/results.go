package validation

import "sort"

// Rule names the check that produced a Result.
type Rule string

const (
	RuleRequired Rule = "required"
	RulePattern  Rule = "pattern"
	RuleKind     Rule = "kind"
)

// Result is the outcome of validating one control.
type Result struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Rule    Rule   `json:"rule,omitempty"`
	Message string `json:"message,omitempty"`
}

// Results maps control names to their latest outcome.
type Results map[string]Result

// Valid reports whether every recorded control passed.
func (r Results) Valid() bool {
	for _, result := range r {
		if !result.Valid {
			return false
		}
	}
	return true
}

// Invalid returns the names of failing controls, sorted.
func (r Results) Invalid() []string {
	var names []string
	for name, result := range r {
		if !result.Valid {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Errors returns the failing messages keyed by control name, the shape
// accepted by formbuilder.WithErrors and render.RenderOptions.
func (r Results) Errors() map[string][]string {
	var out map[string][]string
	for name, result := range r {
		if result.Valid {
			continue
		}
		if out == nil {
			out = make(map[string][]string)
		}
		out[name] = []string{result.Message}
	}
	return out
}

// record stores res unless the control already failed an earlier check.
func (r Results) record(res Result) {
	if res.Field == "" {
		return
	}
	if existing, ok := r[res.Field]; ok && !existing.Valid && res.Valid {
		return
	}
	r[res.Field] = res
}
