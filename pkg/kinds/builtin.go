package kinds

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// DateLayout is the wire format of date inputs.
const DateLayout = "2006-01-02"

// CheckError reports a value that does not fit its kind. Key is the catalog
// message describing the problem.
type CheckError struct {
	Kind  field.Kind
	Value string
	Key   string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("kinds: %s: invalid value %q", e.Kind, e.Value)
}

// PrefillTruthy accepts values a browser script would treat as truthy: no
// empty strings, zeros or false.
func PrefillTruthy(values field.ValueMap, name string) (string, bool) {
	raw, ok := values.Lookup(name)
	if !ok || !truthy(raw) {
		return "", false
	}
	return field.FormatValue(raw), true
}

// PrefillPresent accepts any non-nil value, so a stored zero still shows.
func PrefillPresent(values field.ValueMap, name string) (string, bool) {
	return values.StringValue(name)
}

func truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case string:
		return typed != ""
	case bool:
		return typed
	case float64:
		return typed != 0 && !math.IsNaN(typed)
	case float32:
		return typed != 0 && !math.IsNaN(float64(typed))
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case int32:
		return typed != 0
	default:
		formatted := field.FormatValue(typed)
		if f, err := strconv.ParseFloat(formatted, 64); err == nil {
			return f != 0
		}
		return formatted != ""
	}
}

func input(kind string, ctx RenderContext, attrs ...string) *html.Node {
	node := dom.Element("input", append([]string{"type", kind, "class", "form-control"}, attrs...)...)
	if ctx.Present {
		dom.SetAttr(node, "value", ctx.Value)
	}
	return node
}

func textDescriptor() Descriptor {
	return Descriptor{
		Kind: field.KindText,
		Render: func(_ field.Definition, ctx RenderContext) *html.Node {
			return input("text", ctx)
		},
		Prefill: PrefillTruthy,
	}
}

func numberDescriptor() Descriptor {
	return Descriptor{
		Kind: field.KindNumber,
		Render: func(_ field.Definition, ctx RenderContext) *html.Node {
			return input("number", ctx, "step", "any")
		},
		Prefill: PrefillPresent,
		Check:   checkNumber,
	}
}

func dateDescriptor() Descriptor {
	return Descriptor{
		Kind: field.KindDate,
		Render: func(_ field.Definition, ctx RenderContext) *html.Node {
			return input("date", ctx)
		},
		Prefill: PrefillTruthy,
		Check:   checkDate,
	}
}

func dropdownDescriptor() Descriptor {
	return Descriptor{
		Kind:    field.KindDropdown,
		Render:  renderDropdown,
		Prefill: PrefillPresent,
		Check:   checkOption,
	}
}

func renderDropdown(def field.Definition, ctx RenderContext) *html.Node {
	sel := dom.Element("select", "class", "form-select")
	placeholder := dom.Element("option", "value", "")
	dom.SetText(placeholder, ctx.Localizer.Text(render.MsgSelectPlaceholder))
	dom.Append(sel, placeholder)

	for _, option := range def.Options {
		node := dom.Element("option", "value", option)
		dom.SetText(node, option)
		if ctx.Present && ctx.Value == option {
			dom.SetBool(node, "selected", true)
		}
		dom.Append(sel, node)
	}
	return sel
}

func checkNumber(def field.Definition, value string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return &CheckError{Kind: field.KindNumber, Value: value, Key: render.MsgInvalidNumber}
	}
	return nil
}

func checkDate(def field.Definition, value string) error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(value)); err != nil {
		return &CheckError{Kind: field.KindDate, Value: value, Key: render.MsgInvalidDate}
	}
	return nil
}

func checkOption(def field.Definition, value string) error {
	for _, option := range def.Options {
		if option == value {
			return nil
		}
	}
	return &CheckError{Kind: field.KindDropdown, Value: value, Key: render.MsgInvalidOption}
}
