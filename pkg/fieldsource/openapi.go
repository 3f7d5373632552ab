package fieldsource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scoutforms/pkg/enhance"
	"github.com/goliatone/go-scoutforms/pkg/field"
)

// Vendor extensions read from OpenAPI properties.
const (
	ExtensionOrder          = "x-order"
	ExtensionPatternMessage = "x-pattern-message"
	ExtensionErrorMessage   = "x-error-message"
)

// ErrSchemaNotFound is returned when the requested component schema is
// missing or ambiguous.
var ErrSchemaNotFound = errors.New("fieldsource: schema not found")

// LooksLikeOpenAPI reports whether data is a JSON or YAML document with a
// top-level openapi key.
func LooksLikeOpenAPI(data []byte) bool {
	var probe struct {
		OpenAPI string `json:"openapi" yaml:"openapi"`
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		if json.Unmarshal(trimmed, &probe) != nil {
			return false
		}
	} else if yaml.Unmarshal(trimmed, &probe) != nil {
		return false
	}
	return probe.OpenAPI != ""
}

// FromOpenAPI maps the properties of a component schema onto definitions.
// An empty schemaName selects the only schema of the document.
//
// string maps to text, string+date to date, number and integer to number
// and any enum to dropdown. Other property types are skipped. Properties are
// ordered by x-order, then by name; ids follow that order from 1.
func FromOpenAPI(ctx context.Context, data []byte, schemaName string) ([]field.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("fieldsource: load openapi: %w", err)
	}

	name, schema, err := pickSchema(spec, schemaName)
	if err != nil {
		return nil, err
	}

	required := make(map[string]bool, len(schema.Required))
	for _, prop := range schema.Required {
		required[prop] = true
	}

	type candidate struct {
		def   field.Definition
		order float64
		set   bool
	}
	var candidates []candidate
	for prop, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		def, ok := propertyDefinition(prop, ref.Value)
		if !ok {
			continue
		}
		def.Required = required[prop]
		order, set := enhance.ToFloat(ref.Value.Extensions[ExtensionOrder])
		candidates = append(candidates, candidate{def: def, order: order, set: set})
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("fieldsource: schema %q has no usable properties", name)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.set != b.set {
			return a.set
		}
		if a.set && a.order != b.order {
			return a.order < b.order
		}
		return a.def.Name < b.def.Name
	})

	defs := make([]field.Definition, len(candidates))
	for i, c := range candidates {
		c.def.ID = int64(i + 1)
		c.def.Order = i + 1
		defs[i] = c.def
	}
	if err := field.ValidateAll(defs); err != nil {
		return nil, fmt.Errorf("fieldsource: schema %q: %w", name, err)
	}
	return defs, nil
}

func pickSchema(spec *openapi3.T, name string) (string, *openapi3.Schema, error) {
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return "", nil, fmt.Errorf("%w: document has no component schemas", ErrSchemaNotFound)
	}
	schemas := spec.Components.Schemas
	if name == "" {
		if len(schemas) != 1 {
			names := make([]string, 0, len(schemas))
			for key := range schemas {
				names = append(names, key)
			}
			sort.Strings(names)
			return "", nil, fmt.Errorf("%w: pick one of %s", ErrSchemaNotFound, strings.Join(names, ", "))
		}
		for key := range schemas {
			name = key
		}
	}
	ref, ok := schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return "", nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	return name, ref.Value, nil
}

func propertyDefinition(name string, schema *openapi3.Schema) (field.Definition, bool) {
	def := field.Definition{
		Name:           name,
		DisplayName:    strings.TrimSpace(schema.Title),
		Pattern:        schema.Pattern,
		PatternMessage: stringExtension(schema.Extensions, ExtensionPatternMessage),
		ErrorMessage:   stringExtension(schema.Extensions, ExtensionErrorMessage),
	}
	if def.DisplayName == "" {
		def.DisplayName = name
	}
	if schema.MaxLength != nil {
		def.MaxLength = int(*schema.MaxLength)
	}

	switch {
	case len(schema.Enum) > 0:
		def.Kind = field.KindDropdown
		for _, value := range schema.Enum {
			def.Options = append(def.Options, field.FormatValue(value))
		}
		def.Pattern = ""
	case schema.Type.Is(openapi3.TypeNumber), schema.Type.Is(openapi3.TypeInteger):
		def.Kind = field.KindNumber
	case schema.Type.Is(openapi3.TypeString) && schema.Format == "date":
		def.Kind = field.KindDate
	case schema.Type.Is(openapi3.TypeString), schema.Type == nil:
		def.Kind = field.KindText
	default:
		return field.Definition{}, false
	}
	return def, true
}

func stringExtension(extensions map[string]any, key string) string {
	value, ok := extensions[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
