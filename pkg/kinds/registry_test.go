package kinds_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/kinds"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

func TestRegistry_DefaultKinds(t *testing.T) {
	got := kinds.NewRegistry().Kinds()
	if diff := cmp.Diff(field.Kinds(), got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_UnknownKindFallsBackToText(t *testing.T) {
	reg := kinds.NewRegistry()
	descriptor := reg.Descriptor(field.Kind("checkbox"))
	if descriptor.Kind != field.KindText {
		t.Fatalf("expected text fallback, got %q", descriptor.Kind)
	}
}

func TestRegistry_RegisterRejectsUnknownAndNil(t *testing.T) {
	reg := kinds.NewRegistry()
	textarea := func(field.Definition, kinds.RenderContext) *html.Node { return dom.Element("textarea") }

	if err := reg.Register(kinds.Descriptor{Kind: "textarea", Render: textarea}); err == nil {
		t.Fatalf("expected unknown kind to be rejected")
	}
	if err := reg.Register(kinds.Descriptor{Kind: field.KindText}); err == nil {
		t.Fatalf("expected nil renderer to be rejected")
	}
}

func TestRegistry_CloneIsolatesOverrides(t *testing.T) {
	base := kinds.NewRegistry()
	clone := base.Clone()
	clone.MustRegister(kinds.Descriptor{
		Kind: field.KindText,
		Render: func(field.Definition, kinds.RenderContext) *html.Node {
			return dom.Element("textarea", "class", "form-control")
		},
	})

	def := field.Definition{ID: 1, Kind: field.KindText}
	if got := clone.Descriptor(field.KindText).Render(def, kinds.RenderContext{}).Data; got != "textarea" {
		t.Fatalf("override not applied, got %q", got)
	}
	if got := base.Descriptor(field.KindText).Render(def, kinds.RenderContext{}).Data; got != "input" {
		t.Fatalf("base registry changed, got %q", got)
	}
	if clone.Descriptor(field.KindText).Prefill == nil {
		t.Fatalf("override should keep the built-in prefill")
	}
}

func TestPrefill(t *testing.T) {
	values := field.ValueMap{"zero": 0.0, "empty": "", "name": "Louveteaux", "off": false, "missing": nil}
	cases := []struct {
		name        string
		prefill     kinds.Prefiller
		key         string
		wantValue   string
		wantPresent bool
	}{
		{"truthy string", kinds.PrefillTruthy, "name", "Louveteaux", true},
		{"truthy zero", kinds.PrefillTruthy, "zero", "", false},
		{"truthy empty", kinds.PrefillTruthy, "empty", "", false},
		{"truthy false", kinds.PrefillTruthy, "off", "", false},
		{"present zero", kinds.PrefillPresent, "zero", "0", true},
		{"present nil", kinds.PrefillPresent, "missing", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, present := tc.prefill(values, tc.key)
			if value != tc.wantValue || present != tc.wantPresent {
				t.Fatalf("got (%q, %v), want (%q, %v)", value, present, tc.wantValue, tc.wantPresent)
			}
		})
	}
}

func TestChecks(t *testing.T) {
	reg := kinds.Default()
	dropdown := field.Definition{Kind: field.KindDropdown, Options: []string{"Castors", "Louveteaux"}}

	cases := []struct {
		kind    field.Kind
		def     field.Definition
		value   string
		wantKey string
	}{
		{field.KindNumber, field.Definition{}, "12.5", ""},
		{field.KindNumber, field.Definition{}, "-3", ""},
		{field.KindNumber, field.Definition{}, "1-2.3.", render.MsgInvalidNumber},
		{field.KindNumber, field.Definition{}, "NaN", render.MsgInvalidNumber},
		{field.KindDate, field.Definition{}, "2024-02-29", ""},
		{field.KindDate, field.Definition{}, "2023-02-29", render.MsgInvalidDate},
		{field.KindDate, field.Definition{}, "29/02/2024", render.MsgInvalidDate},
		{field.KindDropdown, dropdown, "Castors", ""},
		{field.KindDropdown, dropdown, "castors", render.MsgInvalidOption},
	}
	for _, tc := range cases {
		err := reg.Descriptor(tc.kind).Check(tc.def, tc.value)
		if tc.wantKey == "" {
			if err != nil {
				t.Fatalf("%s %q: unexpected error %v", tc.kind, tc.value, err)
			}
			continue
		}
		var checkErr *kinds.CheckError
		if !errors.As(err, &checkErr) {
			t.Fatalf("%s %q: expected CheckError, got %v", tc.kind, tc.value, err)
		}
		if checkErr.Key != tc.wantKey {
			t.Fatalf("%s %q: key %q, want %q", tc.kind, tc.value, checkErr.Key, tc.wantKey)
		}
	}

	if reg.Descriptor(field.KindText).Check != nil {
		t.Fatalf("text has no kind check")
	}
}
