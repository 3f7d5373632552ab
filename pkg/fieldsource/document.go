// Package fieldsource loads field definitions from JSON or YAML documents and
// from OpenAPI component schemas.
package fieldsource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatOpenAPI Format = "openapi"
)

// ErrEmptyDocument is returned for blank input.
var ErrEmptyDocument = errors.New("fieldsource: document is empty")

// Document is a table definition: its fields plus an optional record used to
// prefill a form.
type Document struct {
	Table       string             `json:"table,omitempty" yaml:"table,omitempty"`
	DisplayName string             `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Fields      []field.Definition `json:"fields" yaml:"fields"`
	Values      field.ValueMap     `json:"values,omitempty" yaml:"values,omitempty"`
}

// Title is the display name, or the table name when there is none.
func (d Document) Title() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Table
}

// RenderOptions seeds render options with the document record, in the
// locale of l.
func (d Document) RenderOptions(l render.Localizer) render.RenderOptions {
	return render.RenderOptions{
		Locale:     l.Locale,
		Translator: l.Translator,
		OnMissing:  l.OnMissing,
		Values:     d.Values,
	}
}

// FormatFromPath picks the format from a file extension; anything that is not
// YAML is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a definition document. A bare list of fields is accepted as
// a document without table metadata. Fields are returned sorted by order and
// validated.
func Decode(data []byte, format Format) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, ErrEmptyDocument
	}

	var (
		doc Document
		err error
	)
	switch format {
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatJSON, "":
		doc, err = decodeJSON(data)
	default:
		return Document{}, fmt.Errorf("fieldsource: unsupported format %q", format)
	}
	if err != nil {
		return Document{}, err
	}
	return finish(doc)
}

func decodeJSON(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' {
		var fields []field.Definition
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return Document{}, fmt.Errorf("fieldsource: decode json: %w", err)
		}
		return Document{Fields: fields}, nil
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Document{}, fmt.Errorf("fieldsource: decode json: %w", err)
	}
	return doc, nil
}

func decodeYAML(data []byte) (Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Document{}, fmt.Errorf("fieldsource: decode yaml: %w", err)
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var fields []field.Definition
		if err := node.Decode(&fields); err != nil {
			return Document{}, fmt.Errorf("fieldsource: decode yaml: %w", err)
		}
		return Document{Fields: fields}, nil
	}
	var doc Document
	if err := node.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("fieldsource: decode yaml: %w", err)
	}
	return doc, nil
}

func finish(doc Document) (Document, error) {
	if len(doc.Fields) == 0 {
		return Document{}, errors.New("fieldsource: document declares no fields")
	}
	doc.Fields = field.SortByOrder(doc.Fields)
	if err := field.ValidateAll(doc.Fields); err != nil {
		return Document{}, fmt.Errorf("fieldsource: invalid definitions: %w", err)
	}
	return doc, nil
}
