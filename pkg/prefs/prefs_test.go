package prefs_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/prefs"
	"github.com/goliatone/go-scoutforms/pkg/testsupport"
)

func TestReconcile(t *testing.T) {
	cases := []struct {
		name           string
		stored, cookie string
		want           prefs.Preferences
		sync           prefs.Sync
	}{
		{"store wins", "light", "dark", prefs.Preferences{Theme: "light"}, prefs.Sync{Cookie: true}},
		{"cookie fallback", "", "light", prefs.Preferences{Theme: "light"}, prefs.Sync{Store: true}},
		{"default", "", "", prefs.Preferences{Theme: "dark"}, prefs.Sync{Store: true, Cookie: true}},
		{"in step", "dark", "dark", prefs.Preferences{Theme: "dark"}, prefs.Sync{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, sync := prefs.Reconcile(tc.stored, tc.cookie)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("preferences mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.sync, sync); diff != "" {
				t.Fatalf("sync mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTheme(t *testing.T) {
	if got, err := prefs.ParseTheme(" Light "); err != nil || got != "light" {
		t.Fatalf("unexpected %q, %v", got, err)
	}
	if _, err := prefs.ParseTheme("sepia"); !errors.Is(err, prefs.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	prefs.WriteCookie(rec, prefs.Preferences{Theme: "light"})

	header := rec.Header().Get("Set-Cookie")
	for _, part := range []string{"theme=light", "Path=/", "Max-Age=31536000", "SameSite=Strict"} {
		if !strings.Contains(header, part) {
			t.Fatalf("cookie %q missing %q", header, part)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "session=x; theme=light")
	if got := prefs.ReadCookie(req); got != "light" {
		t.Fatalf("expected light, got %q", got)
	}
	if got := prefs.ReadCookie(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Fatalf("expected no cookie, got %q", got)
	}
}

func TestLoad(t *testing.T) {
	store := prefs.NewMemoryStore()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "theme=light")
	rec := httptest.NewRecorder()

	p := prefs.Load(store, req, rec)
	if p.Theme != "light" {
		t.Fatalf("expected cookie theme, got %q", p.Theme)
	}
	if stored, ok := store.Theme(); !ok || stored != "light" {
		t.Fatalf("expected store to be filled, got %q", stored)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Fatal("cookie already in step, nothing to write")
	}
}

const page = `<!DOCTYPE html><html><head></head><body>
<nav class="navbar navbar-expand-lg navbar-dark bg-dark"></nav>
<div class="card"><table class="table"></table></div>
<div class="cardish"></div>
<input type="radio" name="theme" value="dark" checked>
<input type="radio" name="theme" value="light">
</body></html>`

func TestApply(t *testing.T) {
	doc := testsupport.MustParseDocument(t, page)
	prefs.Apply(doc, prefs.Preferences{Theme: "light"})

	for _, expr := range []string{"//html", "//body", "//div[@class='card']", "//table"} {
		if got := dom.AttrOr(dom.FindOne(doc, expr), prefs.ThemeAttribute, ""); got != "light" {
			t.Fatalf("%s: expected light, got %q", expr, got)
		}
	}
	if dom.HasAttr(dom.FindOne(doc, "//div[@class='cardish']"), prefs.ThemeAttribute) {
		t.Fatal("class match must be exact")
	}

	navbar := dom.FindOne(doc, "//nav")
	if diff := cmp.Diff([]string{"navbar", "navbar-expand-lg", "navbar-light", "bg-light"}, dom.Classes(navbar)); diff != "" {
		t.Fatalf("navbar classes mismatch (-want +got):\n%s", diff)
	}

	radios := dom.Find(doc, "//input[@name='theme']")
	if dom.HasAttr(radios[0], "checked") || !dom.HasAttr(radios[1], "checked") {
		t.Fatal("expected the light radio to be checked")
	}
}

func TestChange(t *testing.T) {
	doc := testsupport.MustParseDocument(t, page)
	store := prefs.NewMemoryStore()
	rec := httptest.NewRecorder()

	if _, err := prefs.Change(doc, store, rec, "neon"); err == nil {
		t.Fatal("expected unknown theme to be rejected")
	}
	if _, ok := store.Theme(); ok {
		t.Fatal("rejected change must not touch the store")
	}

	p, err := prefs.Change(doc, store, rec, "dark")
	if err != nil {
		t.Fatalf("change: %v", err)
	}
	if stored, _ := store.Theme(); stored != p.Theme {
		t.Fatalf("store out of step: %q", stored)
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "theme=dark") {
		t.Fatal("expected cookie to be written")
	}
	if !dom.HasClass(dom.FindOne(doc, "//nav"), "navbar-dark") {
		t.Fatal("expected dark navbar")
	}
}

func TestThemeResolver(t *testing.T) {
	resolver := prefs.NewThemeResolver()

	cfg, err := resolver.RendererConfig(prefs.Preferences{Theme: "light"})
	if err != nil {
		t.Fatalf("renderer config: %v", err)
	}
	if cfg.Theme != prefs.ManifestName || cfg.Variant != "light" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.CSSVars["--scout-body-bg"] != "#ffffff" {
		t.Fatalf("unexpected css vars %v", cfg.CSSVars)
	}

	doc := testsupport.MustParseDocument(t, page)
	if err := resolver.Apply(doc, prefs.Preferences{Theme: "dark"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	htmlNode := dom.FindOne(doc, "//html")
	if dom.AttrOr(htmlNode, prefs.ThemeAttribute, "") != "dark" {
		t.Fatal("expected dark theme on html")
	}
	if style := dom.AttrOr(htmlNode, "style", ""); !strings.HasPrefix(style, "--scout-body-bg: #212529;") {
		t.Fatalf("unexpected style %q", style)
	}

	untouched := testsupport.MustParseDocument(t, page)
	if err := resolver.Apply(untouched, prefs.Preferences{Theme: "sepia"}); err == nil {
		t.Fatal("expected unknown variant to fail")
	}
	if dom.HasAttr(dom.FindOne(untouched, "//html"), prefs.ThemeAttribute) {
		t.Fatal("failed resolution must leave the page untouched")
	}
}

type stubSelector struct {
	calls []string
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, name+"/"+variant)
	return &theme.Selection{Theme: name, Variant: variant}, nil
}

func TestThemeResolver_CustomSelector(t *testing.T) {
	selector := &stubSelector{}
	resolver := prefs.NewThemeResolver(prefs.WithSelector(selector), prefs.WithThemeName("acme"))

	selection, err := resolver.Resolve(prefs.Preferences{Theme: "light"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if selection.Theme != "acme" {
		t.Fatalf("unexpected theme %q", selection.Theme)
	}
	if diff := cmp.Diff([]string{"acme/light"}, selector.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	cfg, err := resolver.RendererConfig(prefs.Preferences{Theme: "light"})
	if err != nil || cfg.Tokens != nil {
		t.Fatalf("expected config without tokens, got %+v, %v", cfg, err)
	}
}
