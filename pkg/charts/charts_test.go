package charts_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-scoutforms/pkg/charts"
	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

func TestParseStats(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	stats := charts.ParseStats([]byte(`[{"name":"Membres","count":3},{"name":"Camps","count":1}]`), logger)
	want := []charts.TableStat{{Name: "Membres", Count: 3}, {Name: "Camps", Count: 1}}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	if got := charts.ParseStats([]byte(`{not json`), logger); got != nil {
		t.Fatalf("expected nil stats for malformed input, got %v", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
	if got := charts.ParseStats(nil, nil); got != nil {
		t.Fatalf("expected nil stats for empty input, got %v", got)
	}
}

func TestTableStatsPie(t *testing.T) {
	if _, ok := charts.TableStatsPie(nil); ok {
		t.Fatal("expected no chart without stats")
	}

	cfg, ok := charts.TableStatsPie([]charts.TableStat{{Name: "A", Count: 3}, {Name: "B", Count: 1}})
	if !ok {
		t.Fatal("expected a chart")
	}
	if cfg.Type != "pie" {
		t.Fatalf("expected pie, got %q", cfg.Type)
	}
	dataset := cfg.Data.Datasets[0]
	fills, _ := dataset.BackgroundColor.([]string)
	if diff := cmp.Diff(charts.Palette[:2], fills); diff != "" {
		t.Fatalf("fills mismatch (-want +got):\n%s", diff)
	}
	borders, _ := dataset.BorderColor.([]string)
	if len(borders) != len(charts.Palette) || borders[0] != "rgba(54, 162, 235, 1)" {
		t.Fatalf("unexpected borders %v", borders)
	}
	if cfg.Options.Plugins.Legend.Position != "right" {
		t.Fatalf("expected legend on the right, got %q", cfg.Options.Plugins.Legend.Position)
	}
}

func TestSliceLabel(t *testing.T) {
	data := []float64{3, 1}
	if got := charts.SliceLabel("A", 3, data); got != "A: 3 (75%)" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := charts.SliceLabel("Z", 0, []float64{0}); got != "Z: 0 (0%)" {
		t.Fatalf("unexpected label for empty total %q", got)
	}
}

func TestBarDefaults(t *testing.T) {
	cfg := charts.Bar([]charts.Point{{Name: "x", Value: 2}}, charts.BarOptions{})
	dataset := cfg.Data.Datasets[0]
	if dataset.Label != "Données" || cfg.Options.Plugins.Title.Text != "Données" {
		t.Fatalf("expected default title, got %q", dataset.Label)
	}
	if dataset.BackgroundColor != charts.BlueColor || dataset.BorderColor != "rgba(54, 162, 235, 1)" {
		t.Fatalf("unexpected colours %v / %v", dataset.BackgroundColor, dataset.BorderColor)
	}
	if display := cfg.Options.Plugins.Legend.Display; display == nil || *display {
		t.Fatal("expected legend hidden")
	}
	if !cfg.Options.Scales["y"].BeginAtZero {
		t.Fatal("expected y axis to begin at zero")
	}
}

func TestLineDateAxis(t *testing.T) {
	cfg := charts.Line([]charts.Point{
		{Name: "2024-03-02", Value: 2},
		{Name: "bogus", Value: 9},
		{Name: "2024-01-15", Value: 1},
	}, charts.LineOptions{DateAxis: true})

	if diff := cmp.Diff([]string{"15/01/24", "02/03/24", "bogus"}, cfg.Data.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 9}, cfg.Data.Datasets[0].Data); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if cfg.Data.Datasets[0].Label != "Tendance" || !cfg.Data.Datasets[0].Fill {
		t.Fatalf("unexpected dataset %+v", cfg.Data.Datasets[0])
	}
}

func analyticsFixture() ([]charts.Record, []field.Definition) {
	defs := []field.Definition{
		{ID: 1, Name: "nom", DisplayName: "Nom", Kind: field.KindText},
		{ID: 2, Name: "age", DisplayName: "Âge", Kind: field.KindNumber},
		{ID: 3, Name: "unite", DisplayName: "Unité", Kind: field.KindDropdown, Options: []string{"Castors", "Louveteaux", "Pionniers"}},
	}
	records := []charts.Record{
		{ID: 3, CreatedAt: "2024-07-14", Values: field.ValueMap{"age": 9.0, "unite": "Louveteaux"}},
		{ID: 2, CreatedAt: "2024-07-01", Values: field.ValueMap{"age": "7", "unite": "Castors"}},
		{ID: 1, CreatedAt: "2024-06-20", Values: field.ValueMap{"unite": "Louveteaux"}},
		{ID: 0, CreatedAt: "2024-06-01", Values: field.ValueMap{"unite": "Inconnu"}},
	}
	return records, defs
}

func TestTableAnalytics(t *testing.T) {
	records, defs := analyticsFixture()
	a := charts.TableAnalytics(records, defs, render.Localizer{})

	wantStats := charts.Stats{Title: "Statistiques", RecordCount: 4, LastRecord: "14/07/24"}
	if diff := cmp.Diff(wantStats, a.Stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	if a.Values == nil {
		t.Fatal("expected a numeric panel")
	}
	if a.Values.CanvasID != charts.NumericCanvasID || a.Values.Chart.Data.Datasets[0].Label != "Âge" {
		t.Fatalf("unexpected numeric panel %+v", a.Values)
	}
	if diff := cmp.Diff([]float64{9, 7, 0, 0}, a.Values.Chart.Data.Datasets[0].Data); diff != "" {
		t.Fatalf("numeric values mismatch (-want +got):\n%s", diff)
	}

	if len(a.Distributions) != 1 {
		t.Fatalf("expected one distribution, got %d", len(a.Distributions))
	}
	dist := a.Distributions[0]
	if dist.CanvasID != "dropdown_3_chart" || dist.Title != "Distribution de Unité" {
		t.Fatalf("unexpected distribution panel %q / %q", dist.CanvasID, dist.Title)
	}
	if diff := cmp.Diff([]float64{1, 2, 0}, dist.Chart.Data.Datasets[0].Data); diff != "" {
		t.Fatalf("distribution mismatch (-want +got):\n%s", diff)
	}
}

func TestTableAnalytics_Empty(t *testing.T) {
	a := charts.TableAnalytics(nil, []field.Definition{{ID: 1, Name: "nom", Kind: field.KindText}}, render.Localizer{})
	if a.Stats.LastRecord != "N/A" || a.Values != nil || len(a.Distributions) != 0 {
		t.Fatalf("unexpected analytics %+v", a)
	}
}

func TestRender(t *testing.T) {
	records, defs := analyticsFixture()
	a := charts.TableAnalytics(records, defs, render.Localizer{})

	container := dom.Element("div", "id", "analytics")
	dom.Append(container, dom.Element("p"))
	if err := charts.Render(container, a, render.Localizer{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if dom.FindOne(container, ".//p") != nil {
		t.Fatal("expected previous content to be cleared")
	}
	canvases := dom.Find(container, ".//canvas")
	if len(canvases) != 2 {
		t.Fatalf("expected two canvases, got %d", len(canvases))
	}
	if dom.ID(canvases[0]) != charts.NumericCanvasID || dom.ID(canvases[1]) != "dropdown_3_chart" {
		t.Fatalf("unexpected canvas order %q, %q", dom.ID(canvases[0]), dom.ID(canvases[1]))
	}

	raw, _ := dom.Attr(canvases[1], "data-chart")
	var cfg charts.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("decode data-chart: %v", err)
	}
	if diff := cmp.Diff([]string{"Castors", "Louveteaux", "Pionniers"}, cfg.Data.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	badges := dom.Find(container, ".//div[contains(@class,'badge')]")
	if len(badges) != 2 || dom.TextContent(badges[0]) != "4" || dom.TextContent(badges[1]) != "14/07/24" {
		t.Fatalf("unexpected badges")
	}
	if err := charts.Render(nil, a, render.Localizer{}); err != nil {
		t.Fatalf("nil container: %v", err)
	}
}
