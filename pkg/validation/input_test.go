package validation_test

import (
	"testing"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/testsupport"
	"github.com/goliatone/go-scoutforms/pkg/validation"
)

func TestValidateInput_RequiredTextIsIdempotent(t *testing.T) {
	root := testsupport.MustParseFragment(t, `<div class="mb-3"><input type="text" id="field_1" name="field_1" required value="  "></div>`)
	input := dom.ByID(root, "field_1")

	if validation.ValidateInput(input) {
		t.Fatalf("blank value should be invalid")
	}
	if validation.ValidateInput(input) {
		t.Fatalf("blank value should stay invalid")
	}

	feedback := dom.Find(root, ".//div["+dom.ClassPredicate("invalid-feedback")+"]")
	if len(feedback) != 1 {
		t.Fatalf("expected exactly one feedback node, got %d", len(feedback))
	}
	if got := dom.TextContent(feedback[0]); got != "Ce champ est requis." {
		t.Fatalf("feedback = %q", got)
	}
	if !dom.HasClass(input, "is-invalid") {
		t.Fatalf("input should be marked invalid")
	}

	dom.SetValue(input, "Alice")
	if !validation.ValidateInput(input) {
		t.Fatalf("filled value should be valid")
	}
	if dom.HasClass(input, "is-invalid") {
		t.Fatalf("invalid marker should be cleared")
	}
	if len(dom.Find(root, ".//div["+dom.ClassPredicate("invalid-feedback")+"]")) != 0 {
		t.Fatalf("feedback should be removed once valid")
	}
}

func TestValidateInput_CustomMessageAndLocale(t *testing.T) {
	root := testsupport.MustParseFragment(t, `<div>
<div><input id="custom" name="a" required data-error-message="Le nom est obligatoire"></div>
<div><input id="english" name="b" required></div>
</div>`)

	validation.ValidateInput(dom.ByID(root, "custom"))
	validation.ValidateInput(dom.ByID(root, "english"), validation.WithLocale("en"))

	feedback := dom.Find(root, ".//div["+dom.ClassPredicate("invalid-feedback")+"]")
	if len(feedback) != 2 {
		t.Fatalf("expected two feedback nodes, got %d", len(feedback))
	}
	if got := dom.TextContent(feedback[0]); got != "Le nom est obligatoire" {
		t.Fatalf("custom message = %q", got)
	}
	if got := dom.TextContent(feedback[1]); got != "This field is required." {
		t.Fatalf("english message = %q", got)
	}
}

func TestValidateInput_Select(t *testing.T) {
	root := testsupport.MustParseFragment(t, `<div><select id="s" name="s" required>
<option value="">Sélectionnez une option</option><option value="A">A</option></select></div>`)
	sel := dom.ByID(root, "s")

	if validation.ValidateInput(sel) {
		t.Fatalf("placeholder selection should be invalid")
	}
	dom.SetValue(sel, "A")
	if !validation.ValidateInput(sel) {
		t.Fatalf("chosen option should be valid")
	}
}

func TestValidateInput_RadioGroupScopedToForm(t *testing.T) {
	root := testsupport.MustParseFragment(t, `<div>
<form id="one"><div><input type="radio" id="r1" name="branche" value="a"><input type="radio" name="branche" value="b"></div></form>
<form id="two"><div><input type="radio" name="branche" value="a" checked></div></form>
</div>`)
	first := dom.ByID(root, "r1")

	if validation.ValidateInput(first) {
		t.Fatalf("a checked radio in another form must not satisfy the group")
	}

	second := dom.FindOne(dom.ByID(root, "one"), ".//input[@value='b']")
	dom.SetBool(second, "checked", true)
	if !validation.ValidateInput(first) {
		t.Fatalf("checked sibling should satisfy the group")
	}
}

func TestValidatePattern(t *testing.T) {
	root := testsupport.MustParseFragment(t, `<div><input id="code" name="code" pattern="^[0-9]+$" value="12a"></div>`)
	input := dom.ByID(root, "code")

	if validation.ValidatePattern(input) {
		t.Fatalf("12a should not match ^[0-9]+$")
	}
	if !dom.HasClass(input, "is-invalid") {
		t.Fatalf("input should be marked invalid")
	}
	feedback := dom.FindOne(root, ".//div["+dom.ClassPredicate("invalid-feedback")+"]")
	if got := dom.TextContent(feedback); got != "Format invalide." {
		t.Fatalf("feedback = %q", got)
	}

	dom.SetValue(input, "123")
	if !validation.ValidatePattern(input) {
		t.Fatalf("123 should match")
	}
	if dom.HasClass(input, "is-invalid") {
		t.Fatalf("invalid marker should be cleared")
	}
}

func TestValidatePattern_UnanchoredAndInvalid(t *testing.T) {
	root := testsupport.MustParseFragment(t, `<div>
<div><input id="loose" pattern="[0-9]" value="abc1" data-pattern-message="Un chiffre"></div>
<div><input id="broken" pattern="([a-z" value="x"></div>
<div><input id="none" value="x"></div>
</div>`)

	if !validation.ValidatePattern(dom.ByID(root, "loose")) {
		t.Fatalf("unanchored pattern should match anywhere in the value")
	}
	if !validation.ValidatePattern(dom.ByID(root, "broken")) {
		t.Fatalf("uncompilable pattern should not block")
	}
	if !validation.ValidatePattern(dom.ByID(root, "none")) {
		t.Fatalf("missing pattern is valid")
	}
	if !validation.ValidateInput(nil) || !validation.ValidatePattern(nil) {
		t.Fatalf("nil input is valid")
	}
}
