package validation

import (
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/kinds"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// ValidateValues applies the document rules to submitted values keyed by
// control name, without a document. On top of the required and pattern
// checks every non-empty value must fit its kind: numbers parse, dates are
// yyyy-mm-dd, dropdown values belong to the options.
func ValidateValues(defs []field.Definition, values url.Values, opts ...Option) Results {
	cfg := newConfig(opts)
	localizer := cfg.localizer()
	results := make(Results, len(defs))

	for _, def := range defs {
		name := def.ControlName()
		raw := values.Get(name)
		results.record(cfg.checkValue(localizer, def, name, raw))
	}
	return results
}

func (c config) checkValue(localizer render.Localizer, def field.Definition, name, raw string) Result {
	empty := strings.TrimSpace(raw) == ""
	if def.Kind == field.KindDropdown {
		empty = raw == ""
	}

	if empty {
		if !def.Required {
			return Result{Field: name, Valid: true}
		}
		message := def.ErrorMessage
		if message == "" {
			message = localizer.Text(render.MsgRequired)
		}
		return Result{Field: name, Rule: RuleRequired, Message: message}
	}

	if def.Pattern != "" {
		matched, err := MatchPattern(def.Pattern, raw)
		if err != nil {
			c.logger.Warn("pattern check skipped",
				zap.String("field", name),
				zap.String("pattern", def.Pattern),
				zap.Error(err),
			)
			matched = true
		}
		if !matched {
			message := def.PatternMessage
			if message == "" {
				message = localizer.Text(render.MsgPattern)
			}
			return Result{Field: name, Rule: RulePattern, Message: message}
		}
	}

	if check := c.registry.Descriptor(def.Kind).Check; check != nil {
		if err := check(def, raw); err != nil {
			key := render.MsgInvalidNumber
			var checkErr *kinds.CheckError
			if errors.As(err, &checkErr) {
				key = checkErr.Key
			}
			return Result{Field: name, Rule: RuleKind, Message: localizer.Text(key)}
		}
	}
	return Result{Field: name, Valid: true}
}
