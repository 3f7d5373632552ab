package formbuilder_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/formbuilder"
	"github.com/goliatone/go-scoutforms/pkg/render"
	"github.com/goliatone/go-scoutforms/pkg/testsupport"
)

func TestRenderForm_MethodOverrideAndErrors(t *testing.T) {
	defs := loadFixture(t)

	out, err := formbuilder.RenderForm(testsupport.Context(), defs, render.RenderOptions{
		Method:       "patch",
		Action:       "/tables/3/records/12",
		Values:       fixtureValues,
		HiddenFields: map[string]string{"csrf_token": "abc"},
		FormErrors:   []string{"Enregistrement verrouillé", " ", "Enregistrement verrouillé"},
		Errors:       map[string][]string{"field_1": {"Nom déjà utilisé"}},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}

	form := testsupport.MustParseFragment(t, string(out))
	if form.Data != "form" {
		t.Fatalf("expected a form element, got %q", form.Data)
	}
	if got := dom.AttrOr(form, "method", ""); got != "post" {
		t.Fatalf("method = %q", got)
	}
	if got := dom.AttrOr(form, "action", ""); got != "/tables/3/records/12" {
		t.Fatalf("action = %q", got)
	}

	override := dom.FindOne(form, ".//input[@name='_method']")
	if got := dom.AttrOr(override, "value", ""); got != "PATCH" {
		t.Fatalf("_method = %q", got)
	}
	if dom.FindOne(form, ".//input[@name='csrf_token']") == nil {
		t.Fatalf("csrf token missing")
	}

	alert := dom.FindOne(form, "./div["+dom.ClassPredicate("alert-danger")+"]")
	if alert == nil || form.FirstChild != alert {
		t.Fatalf("form errors should be rendered first")
	}
	if got := dom.TextContent(alert); got != "Enregistrement verrouillé" {
		t.Fatalf("alert text = %q", got)
	}

	if !strings.Contains(string(out), `<div class="invalid-feedback">Nom déjà utilisé</div>`) {
		t.Fatalf("field error not rendered inline:\n%s", out)
	}
}

func TestRenderForm_GetHasNoOverride(t *testing.T) {
	out, err := formbuilder.RenderForm(context.Background(), loadFixture(t), render.RenderOptions{Method: "GET", ReadOnly: true})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	form := testsupport.MustParseFragment(t, string(out))
	if got := dom.AttrOr(form, "method", ""); got != "get" {
		t.Fatalf("method = %q", got)
	}
	if dom.FindOne(form, ".//input[@type='hidden']") != nil {
		t.Fatalf("GET form should not carry hidden inputs")
	}
}

func TestRenderForm_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := formbuilder.RenderForm(ctx, loadFixture(t), render.RenderOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
