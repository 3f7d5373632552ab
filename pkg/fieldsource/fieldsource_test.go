package fieldsource_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/fieldsource"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

func TestLoadFile_YAML(t *testing.T) {
	doc, err := fieldsource.LoadFile(context.Background(), "testdata/membres.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Table != "membres" || doc.DisplayName != "Membres" {
		t.Fatalf("unexpected table metadata %q / %q", doc.Table, doc.DisplayName)
	}

	names := make([]string, len(doc.Fields))
	for i, def := range doc.Fields {
		names[i] = def.Name
	}
	if diff := cmp.Diff([]string{"nom", "naissance", "unite"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	unite := doc.Fields[2]
	if unite.Kind != field.KindDropdown || !unite.Required || len(unite.Options) != 3 {
		t.Fatalf("unexpected dropdown %+v", unite)
	}
	if doc.Fields[1].Kind != field.KindDate {
		t.Fatalf("expected date kind, got %q", doc.Fields[1].Kind)
	}
	if got, _ := doc.Values.StringValue("unite"); got != "Louveteaux" {
		t.Fatalf("unexpected value %q", got)
	}
	if doc.Title() != "Membres" {
		t.Fatalf("unexpected title %q", doc.Title())
	}
	ro := doc.RenderOptions(render.Localizer{Locale: "en"})
	if ro.Locale != "en" || ro.Values["unite"] != "Louveteaux" {
		t.Fatalf("unexpected render options %+v", ro)
	}
}

func TestLoadFS_JSON(t *testing.T) {
	data, err := os.ReadFile("testdata/membres.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	files := fstest.MapFS{"defs/membres.json": &fstest.MapFile{Data: data}}

	doc, err := fieldsource.LoadFS(context.Background(), files, "/defs/membres.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Fields[0].Name != "nom" || doc.Fields[1].Kind != field.KindNumber {
		t.Fatalf("unexpected fields %+v", doc.Fields)
	}
	if got, _ := doc.Values.StringValue("age"); got != "9" {
		t.Fatalf("unexpected age %q", got)
	}
}

func TestDecode(t *testing.T) {
	doc, err := fieldsource.Decode([]byte(`[{"id": 1, "name": "nom", "display_name": "Nom"}]`), fieldsource.FormatJSON)
	if err != nil {
		t.Fatalf("decode bare list: %v", err)
	}
	if doc.Table != "" || len(doc.Fields) != 1 || doc.Fields[0].Kind != field.KindText {
		t.Fatalf("unexpected document %+v", doc)
	}

	doc, err = fieldsource.Decode([]byte("- id: 1\n  name: nom\n  display_name: Nom\n  type: number\n"), fieldsource.FormatYAML)
	if err != nil {
		t.Fatalf("decode yaml list: %v", err)
	}
	if doc.Fields[0].Kind != field.KindNumber {
		t.Fatalf("unexpected kind %q", doc.Fields[0].Kind)
	}

	cases := map[string]struct {
		data   string
		format fieldsource.Format
	}{
		"empty":          {"  ", fieldsource.FormatJSON},
		"no fields":      {`{"table": "x"}`, fieldsource.FormatJSON},
		"bad name":       {`[{"id": 1, "name": "Nom", "display_name": "Nom"}]`, fieldsource.FormatJSON},
		"duplicate id":   {`[{"id": 1, "name": "a", "display_name": "A"}, {"id": 1, "name": "b", "display_name": "B"}]`, fieldsource.FormatJSON},
		"dropdown":       {"- {id: 1, name: u, display_name: U, type: dropdown}\n", fieldsource.FormatYAML},
		"unknown format": {`[]`, fieldsource.Format("toml")},
		"malformed json": {`{`, fieldsource.FormatJSON},
	}
	for name, tc := range cases {
		if _, err := fieldsource.Decode([]byte(tc.data), tc.format); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestFromOpenAPI(t *testing.T) {
	data, err := os.ReadFile("testdata/camp.openapi.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if !fieldsource.LooksLikeOpenAPI(data) {
		t.Fatal("expected openapi document to be recognised")
	}

	defs, err := fieldsource.FromOpenAPI(context.Background(), data, "")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	want := []field.Definition{
		{ID: 1, Order: 1, Name: "nom", DisplayName: "Nom", Kind: field.KindText, Required: true, Pattern: "^[A-Za-z ]+$", PatternMessage: "Lettres uniquement", MaxLength: 40},
		{ID: 2, Order: 2, Name: "unite", DisplayName: "Unité", Kind: field.KindDropdown, Required: true, Options: []string{"Castors", "Louveteaux"}},
		{ID: 3, Order: 3, Name: "age", DisplayName: "Âge", Kind: field.KindNumber},
		{ID: 4, Order: 4, Name: "arrivee", DisplayName: "Arrivée", Kind: field.KindDate},
	}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}

	if _, err := fieldsource.FromOpenAPI(context.Background(), data, "Missing"); !errors.Is(err, fieldsource.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}

func TestLoader_OpenAPIFile(t *testing.T) {
	loader := fieldsource.NewLoader(fieldsource.WithSchema("Inscription"))
	doc, err := loader.Load(context.Background(), "testdata/camp.openapi.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Table != "Inscription" || len(doc.Fields) != 4 {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestLoader_HTTP(t *testing.T) {
	data, err := os.ReadFile("testdata/membres.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/defs/membres.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)

	if _, err := fieldsource.NewLoader().Load(context.Background(), srv.URL+"/defs/membres.json"); err == nil {
		t.Fatal("expected http to be disabled by default")
	}

	loader := fieldsource.NewLoader(fieldsource.WithHTTP(srv.Client(), 2*time.Second))
	if loader.Kind(srv.URL) != fieldsource.SourceURL {
		t.Fatal("expected url source kind")
	}
	doc, err := loader.Load(context.Background(), srv.URL+"/defs/membres.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(doc.Fields))
	}

	if _, err := loader.Load(context.Background(), srv.URL+"/missing.json"); err == nil {
		t.Fatal("expected 404 to fail")
	}
}
