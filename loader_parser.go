package scoutforms

import (
	"context"

	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/fieldsource"
)

// NewLoader constructs a definition loader for files, an fs.FS or HTTP.
func NewLoader(options ...fieldsource.Option) *fieldsource.Loader {
	return fieldsource.NewLoader(options...)
}

// LoadDefinitions reads the definition document at location.
func LoadDefinitions(ctx context.Context, location string, options ...fieldsource.Option) (Document, error) {
	return fieldsource.NewLoader(options...).Load(ctx, location)
}

// ParseOpenAPI maps a component schema of an OpenAPI document to field
// definitions. An empty schemaName requires the document to hold exactly one
// schema.
func ParseOpenAPI(ctx context.Context, data []byte, schemaName string) ([]field.Definition, error) {
	return fieldsource.FromOpenAPI(ctx, data, schemaName)
}
