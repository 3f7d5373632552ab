package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SCOUTFORMS_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSlug(t *testing.T) {
	out, err := run(t, "slug", "Date", "d'arrivée")
	require.NoError(t, err)
	assert.Equal(t, "date_d_arrivee\n", out)
}

func TestValidate_Values(t *testing.T) {
	out, err := run(t, "validate", "testdata/membres.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	out, err = run(t, "validate", "testdata/membres.yaml", "nom=R2D2", "field_7=")
	require.ErrorIs(t, err, errInvalid)
	assert.Equal(t, "field_5: Lettres uniquement\nfield_7: Ce champ est requis.\n", out)

	_, err = run(t, "validate", "testdata/membres.yaml", "age=3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInvalid)
}

func TestValidate_HTMLPage(t *testing.T) {
	out, err := run(t, "validate", "--html", "testdata/page.html", "--locale", "en")
	require.ErrorIs(t, err, errInvalid)
	assert.Equal(t, "record.field_5: This field is required.\nrecord.field_8: Invalid format.\n", out)

	_, err = run(t, "validate")
	require.Error(t, err)
}

func TestValidate_HTMLPageKeepsEachFormResult(t *testing.T) {
	out, err := run(t, "validate", "--html", "testdata/two_forms.html", "--locale", "en")
	require.ErrorIs(t, err, errInvalid)
	assert.Equal(t, "create.field_1: This field is required.\n", out)

	out, err = run(t, "validate", "--html", "testdata/two_forms.html", "--json")
	require.ErrorIs(t, err, errInvalid)
	var results map[string]struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.False(t, results["create.field_1"].Valid)
	assert.True(t, results["edit.field_1"].Valid)
	assert.True(t, results["form3.field_1"].Valid)
}

func TestRender(t *testing.T) {
	out, err := run(t, "render", "--fragment", "testdata/membres.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<form method="post"`), out)
	assert.Contains(t, out, `id="field_5"`)
	assert.Contains(t, out, `value="Alice"`)

	out, err = run(t, "render", "--theme", "light", "testdata/membres.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Membres</title>")
	assert.Contains(t, out, `data-bs-theme="light"`)

	_, err = run(t, "render", "--theme", "sepia", "testdata/membres.yaml")
	require.Error(t, err)
}

func TestChart(t *testing.T) {
	out, err := run(t, "chart", "stats", "testdata/stats.json")
	require.NoError(t, err)
	var pie map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &pie))
	assert.Equal(t, "pie", pie["type"])

	out, err = run(t, "chart", "table", "--html", "testdata/membres.yaml", "testdata/records.json")
	require.NoError(t, err)
	assert.Contains(t, out, `id="dropdown_7_chart"`)
	assert.Contains(t, out, "14/07/24")
}

func TestPrint(t *testing.T) {
	out, err := run(t, "print", "--date", "2024-07-14", "--no-auto-print", "testdata/print.yaml", "testdata/content.html")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Fiche membre</title>")
	assert.Contains(t, out, "Imprimé le 14/07/2024")
	assert.Contains(t, out, "<td>Alice</td>")
	assert.NotContains(t, out, "<script>alert")
	assert.NotContains(t, out, "window.print()")
}

func TestReorder(t *testing.T) {
	var received map[string]map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/manage_tables/3/fields/order" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success": true}`)
	}))
	t.Cleanup(srv.Close)

	out, err := run(t, "reorder", "--base-url", srv.URL, "3", "5=1", "6=2")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"5": 1, "6": 2}, received["fields"])
	assert.Contains(t, out, "mis à jour avec succès")

	_, err = run(t, "reorder", "--base-url", srv.URL, "3", "5:1")
	require.Error(t, err)
}
