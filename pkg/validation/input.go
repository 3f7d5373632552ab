// Package validation checks submitted form controls, both on a parsed
// document (inline feedback nodes, invalid markers) and on raw submitted
// values.
package validation

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

const (
	invalidClass  = "is-invalid"
	feedbackClass = "invalid-feedback"
)

// ValidateInput runs the required check on input and updates its inline
// feedback. Repeated calls never stack feedback nodes. A nil input is valid.
func ValidateInput(input *html.Node, opts ...Option) bool {
	cfg := newConfig(opts)
	return cfg.checkRequired(input).Valid
}

// ValidatePattern tests the value of input against its pattern attribute
// and updates its inline feedback. Inputs without a pattern, or with one that
// does not compile, are valid.
func ValidatePattern(input *html.Node, opts ...Option) bool {
	cfg := newConfig(opts)
	return cfg.checkPattern(input).Valid
}

func (c config) checkRequired(input *html.Node) Result {
	if input == nil {
		return Result{Valid: true}
	}
	result := Result{Field: controlKey(input), Valid: hasValue(input), Rule: RuleRequired}
	if !result.Valid {
		result.Message = dom.AttrOr(input, "data-error-message", "")
		if result.Message == "" {
			result.Message = c.localizer().Text(render.MsgRequired)
		}
	}
	applyFeedback(input, result)
	return result
}

func (c config) checkPattern(input *html.Node) Result {
	if input == nil {
		return Result{Valid: true}
	}
	result := Result{Field: controlKey(input), Valid: true, Rule: RulePattern}
	pattern, ok := dom.Attr(input, "pattern")
	if !ok {
		return result
	}

	matched, err := MatchPattern(pattern, dom.Value(input))
	if err != nil {
		c.logger.Warn("pattern check skipped",
			zap.String("field", result.Field),
			zap.String("pattern", pattern),
			zap.Error(err),
		)
		matched = true
	}
	result.Valid = matched
	if !result.Valid {
		result.Message = dom.AttrOr(input, "data-pattern-message", "")
		if result.Message == "" {
			result.Message = c.localizer().Text(render.MsgPattern)
		}
	}
	applyFeedback(input, result)
	return result
}

func hasValue(input *html.Node) bool {
	if dom.IsElement(input, "select") {
		return dom.Value(input) != ""
	}
	switch dom.InputType(input) {
	case "checkbox", "radio":
		return groupChecked(input)
	}
	return strings.TrimSpace(dom.Value(input)) != ""
}

// groupChecked reports whether any input sharing input's name is checked
// within the owning form, or the whole tree when there is none.
func groupChecked(input *html.Node) bool {
	name, ok := dom.Attr(input, "name")
	if !ok || name == "" {
		return dom.Checked(input)
	}
	scope := dom.Closest(input, "form")
	if scope == nil {
		scope = dom.Root(input)
	}
	for _, candidate := range dom.Find(scope, ".//input[@name="+dom.Literal(name)+"]") {
		if dom.Checked(candidate) {
			return true
		}
	}
	return false
}

func applyFeedback(input *html.Node, result Result) {
	if parent := input.Parent; parent != nil {
		for _, existing := range dom.Find(parent, ".//*["+dom.ClassPredicate(feedbackClass)+"]") {
			dom.Remove(existing)
		}
	}

	if result.Valid {
		dom.RemoveClass(input, invalidClass)
		return
	}
	dom.AddClass(input, invalidClass)
	if input.Parent == nil {
		return
	}
	feedback := dom.Element("div", "class", feedbackClass)
	dom.SetText(feedback, result.Message)
	dom.Append(input.Parent, feedback)
}

// controlKey identifies a control in Results: its name, else its id.
func controlKey(input *html.Node) string {
	if name := dom.AttrOr(input, "name", ""); name != "" {
		return name
	}
	return dom.ID(input)
}
