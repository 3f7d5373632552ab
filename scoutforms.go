// Package scoutforms generates, enhances and validates the record forms of
// the scout management application from field definitions.
package scoutforms

import (
	"context"
	"io/fs"
	"net/url"

	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/fieldsource"
	"github.com/goliatone/go-scoutforms/pkg/formbuilder"
	"github.com/goliatone/go-scoutforms/pkg/render"
	"github.com/goliatone/go-scoutforms/pkg/renderers/bootstrap"
	"github.com/goliatone/go-scoutforms/pkg/validation"
)

// Definition describes one field of a user-defined table.
type Definition = field.Definition

// ValueMap holds a record keyed by technical field name.
type ValueMap = field.ValueMap

// Document is a definition document: table metadata, fields and a record.
type Document = fieldsource.Document

// RenderOptions describes per-request data: values, server errors, method,
// action and locale.
type RenderOptions = render.RenderOptions

// Page describes a full record page.
type Page = bootstrap.Page

// GenerateForm renders the <form> for defs.
func GenerateForm(ctx context.Context, defs []Definition, ro RenderOptions, options ...formbuilder.Option) ([]byte, error) {
	return formbuilder.RenderForm(ctx, defs, ro, options...)
}

// GeneratePage renders a complete Bootstrap page around the form.
func GeneratePage(ctx context.Context, page Page, ro RenderOptions, options ...bootstrap.Option) ([]byte, error) {
	renderer, err := bootstrap.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, page, ro)
}

// Validate checks submitted values keyed by control name (field_<id>).
func Validate(defs []Definition, values url.Values, options ...validation.Option) validation.Results {
	return validation.ValidateValues(defs, values, options...)
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return bootstrap.TemplatesFS()
}

// AssetsFS exposes the page stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(scoutforms.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return bootstrap.AssetsFS()
}
