package formbuilder

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// MethodOverrideField carries the real verb when a form submits a method
// browsers cannot send natively.
const MethodOverrideField = "_method"

// BuildForm returns a detached <form> holding the generated controls, with
// form-level errors shown in an alert above them.
func BuildForm(defs []field.Definition, ro render.RenderOptions, opts ...Option) *html.Node {
	method, override := formMethod(ro.Method)

	form := dom.Element("form", "method", strings.ToLower(method), "novalidate")
	if ro.Action != "" {
		dom.SetAttr(form, "action", ro.Action)
	}

	hidden := make(map[string]string, len(ro.HiddenFields)+1)
	for name, value := range ro.HiddenFields {
		hidden[name] = value
	}
	if override != "" {
		hidden[MethodOverrideField] = override
	}

	all := []Option{
		WithTranslator(ro.Translator),
		WithLocale(ro.Locale),
		WithMissingTranslationHandler(ro.OnMissing),
		WithErrors(ro.Errors),
		WithHiddenFields(hidden),
	}
	all = append(all, opts...)
	CreateDynamicForm(form, defs, ro.Values, ro.ReadOnly, all...)

	if formErrors := render.MergeFormErrors(ro.FormErrors); len(formErrors) > 0 {
		alert := dom.Element("div", "class", "alert alert-danger", "role", "alert")
		for i, message := range formErrors {
			if i > 0 {
				dom.Append(alert, dom.Element("br"))
			}
			dom.Append(alert, dom.Text(message))
		}
		form.InsertBefore(alert, form.FirstChild)
	}
	return form
}

// RenderForm renders BuildForm to HTML.
func RenderForm(ctx context.Context, defs []field.Definition, ro render.RenderOptions, opts ...Option) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("formbuilder: render form: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, BuildForm(defs, ro, opts...)); err != nil {
		return nil, fmt.Errorf("formbuilder: render form: %w", err)
	}
	return buf.Bytes(), nil
}

func formMethod(raw string) (method, override string) {
	method = strings.ToUpper(strings.TrimSpace(raw))
	switch method {
	case "", http.MethodPost:
		return http.MethodPost, ""
	case http.MethodGet:
		return http.MethodGet, ""
	default:
		return http.MethodPost, method
	}
}
