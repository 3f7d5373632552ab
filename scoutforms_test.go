package scoutforms

import (
	"context"
	"io/fs"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-scoutforms/pkg/render"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "scoutforms.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".char-counter") {
		t.Fatalf("expected stylesheet to style the character counter")
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template to be readable: %v", err)
	}
}

func TestLoadGenerateValidate(t *testing.T) {
	ctx := context.Background()
	doc, err := LoadDefinitions(ctx, "pkg/fieldsource/testdata/membres.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	form, err := GenerateForm(ctx, doc.Fields, doc.RenderOptions(render.Localizer{}))
	if err != nil {
		t.Fatalf("generate form: %v", err)
	}
	if !strings.Contains(string(form), `name="field_7"`) {
		t.Fatalf("expected dropdown control in %s", form)
	}

	page, err := GeneratePage(ctx, Page{Title: doc.Title(), Definitions: doc.Fields}, RenderOptions{})
	if err != nil {
		t.Fatalf("generate page: %v", err)
	}
	if !strings.Contains(string(page), "<title>Membres</title>") {
		t.Fatal("expected page title")
	}

	results := Validate(doc.Fields, url.Values{"field_5": {"Alice"}})
	if results.Valid() || len(results.Invalid()) != 1 || results.Invalid()[0] != "field_7" {
		t.Fatalf("expected only the required dropdown to fail, got %v", results.Invalid())
	}
}
