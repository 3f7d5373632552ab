// Package formbuilder turns field definitions into Bootstrap form controls
// inside an existing container node.
package formbuilder

import (
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/kinds"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// CreateDynamicForm replaces the children of container with one form group
// per definition, in the given order, followed by the action row. A nil
// container is ignored. In read-only mode every control is disabled and the
// action row is omitted.
func CreateDynamicForm(container *html.Node, defs []field.Definition, values field.ValueMap, readOnly bool, opts ...Option) {
	if container == nil {
		return
	}
	cfg := newConfig(opts)
	localizer := cfg.localizer()

	dom.Clear(container)
	dom.Append(container, render.HiddenInputs(cfg.hidden)...)

	for _, def := range defs {
		dom.Append(container, buildGroup(cfg, localizer, def, values, readOnly))
	}
	if !readOnly {
		dom.Append(container, actionRow(localizer))
	}

	cfg.logger.Debug("dynamic form built",
		zap.Int("fields", len(defs)),
		zap.Bool("read_only", readOnly),
	)
}

func buildGroup(cfg config, localizer render.Localizer, def field.Definition, values field.ValueMap, readOnly bool) *html.Node {
	controlName := def.ControlName()
	descriptor := cfg.registry.Descriptor(def.Kind)

	ctx := kinds.RenderContext{Localizer: localizer}
	if descriptor.Prefill != nil {
		ctx.Value, ctx.Present = descriptor.Prefill(values, def.Name)
	}

	group := dom.Element("div", "class", "mb-3")
	dom.Append(group, Label(def))

	control := descriptor.Render(def, ctx)
	if control == nil {
		cfg.logger.Warn("kind renderer returned no control",
			zap.String("field", def.Name),
			zap.String("kind", string(def.Kind)),
		)
		return group
	}
	applyCommonAttributes(control, def, readOnly)
	dom.Append(group, control)

	if messages := cfg.errors[controlName]; len(messages) > 0 {
		dom.AddClass(control, "is-invalid")
		for _, message := range messages {
			feedback := dom.Element("div", "class", "invalid-feedback")
			dom.SetText(feedback, message)
			dom.Append(group, feedback)
		}
	}
	return group
}

// Label builds the label of a definition: the display name, followed by a red
// asterisk when the field is required.
func Label(def field.Definition) *html.Node {
	label := dom.Element("label", "for", def.ControlName(), "class", "form-label")
	dom.Append(label, dom.Text(def.Label()))
	if def.Required {
		star := dom.Element("span", "class", "text-danger")
		dom.SetText(star, "*")
		dom.Append(label, dom.Text(" "), star)
	}
	return label
}

func applyCommonAttributes(control *html.Node, def field.Definition, readOnly bool) {
	controlName := def.ControlName()
	dom.SetAttr(control, "id", controlName)
	dom.SetAttr(control, "name", controlName)
	dom.SetBool(control, "required", def.Required)
	dom.SetBool(control, "disabled", readOnly)

	if def.Pattern != "" {
		dom.SetAttr(control, "pattern", def.Pattern)
		if def.PatternMessage != "" {
			dom.SetAttr(control, "data-pattern-message", def.PatternMessage)
		}
	}
	if def.ErrorMessage != "" {
		dom.SetAttr(control, "data-error-message", def.ErrorMessage)
	}
	if def.MaxLength > 0 {
		dom.SetAttr(control, "maxlength", strconv.Itoa(def.MaxLength))
	}
}

func actionRow(localizer render.Localizer) *html.Node {
	row := dom.Element("div", "class", "d-flex justify-content-end mt-4")

	cancel := dom.Element("a",
		"href", "#",
		"class", "btn btn-outline-secondary me-2",
		"data-action", "back",
		"onclick", "history.back(); return false;",
	)
	dom.SetText(cancel, localizer.Text(render.MsgCancel))

	save := dom.Element("button", "type", "submit", "class", "btn btn-primary")
	dom.Append(save,
		dom.Element("i", "class", "fas fa-save me-1"),
		dom.Text(localizer.Text(render.MsgSave)),
	)

	return dom.Append(row, cancel, save)
}
