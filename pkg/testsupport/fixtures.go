package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/field"
)

// MustLoadDefinitions reads a JSON array of field definitions.
func MustLoadDefinitions(t *testing.T, path string) []field.Definition {
	t.Helper()

	defs, err := LoadDefinitions(path)
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	return defs
}

// LoadDefinitions returns definitions without requiring testing.T, so setup
// code outside a test can share fixtures.
func LoadDefinitions(path string) ([]field.Definition, error) {
	if path == "" {
		return nil, errors.New("testsupport: definitions path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read definitions: %w", err)
	}
	var defs []field.Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal definitions: %w", err)
	}
	return defs, nil
}

// MustParseFragment parses markup and returns its first top-level node.
func MustParseFragment(t *testing.T, markup string) *html.Node {
	t.Helper()

	nodes, err := dom.Parse(strings.TrimSpace(markup))
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	if len(nodes) == 0 {
		t.Fatalf("parse fragment: no nodes in %q", markup)
	}
	return nodes[0]
}

// MustParseDocument parses a full HTML document.
func MustParseDocument(t *testing.T, markup string) *html.Node {
	t.Helper()

	doc, err := dom.ParseDocument(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// MustRender serialises n, failing the test on error.
func MustRender(t *testing.T, n *html.Node) string {
	t.Helper()

	out, err := dom.Render(n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written and the test should stop comparing.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs a render function that writes to an io.Writer
// and returns both the returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
