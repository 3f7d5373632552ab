package tableconfig

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// FormError is the first failing rule of a configuration form. Field is the
// name of the control that should receive focus.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("tableconfig: %s: %s", e.Field, e.Message)
}

// ValidateTableForm checks the table creation form: technical name, display
// name, then the technical name format.
func ValidateTableForm(name, displayName string) error {
	if err := field.CheckNames(name, displayName); err != nil {
		return formError(err)
	}
	return nil
}

// ValidateFieldForm applies the table rules plus the dropdown rule: a
// dropdown needs at least one non-blank option line.
func ValidateFieldForm(name, displayName, kind, optionsText string) error {
	if err := ValidateTableForm(name, displayName); err != nil {
		return err
	}
	if parsed, _ := field.ParseKind(kind); parsed == field.KindDropdown {
		if options, _ := NormalizeOptions(optionsText); len(options) == 0 {
			return &FormError{Field: "options", Message: field.ErrOptionsRequired.Error()}
		}
	}
	return nil
}

func formError(err error) error {
	var defErr *field.DefinitionError
	if errors.As(err, &defErr) {
		return &FormError{Field: defErr.Attribute, Message: defErr.Err.Error()}
	}
	return &FormError{Message: err.Error()}
}

// CheckTableForm reads the table form controls, reports the first problem as
// a danger notification and marks the offending control with autofocus.
func CheckTableForm(form *html.Node, n notify.Notifier) bool {
	return checkForm(form, n, false)
}

// CheckFieldForm is CheckTableForm for the field form, which also carries
// select[name=field_type] and textarea[name=options].
func CheckFieldForm(form *html.Node, n notify.Notifier) bool {
	return checkForm(form, n, true)
}

func checkForm(form *html.Node, n notify.Notifier, withKind bool) bool {
	if form == nil {
		return true
	}
	name := dom.Value(dom.FindOne(form, ".//input[@name='name']"))
	display := dom.Value(dom.FindOne(form, ".//input[@name='display_name']"))

	var err error
	if withKind {
		kind := dom.Value(dom.FindOne(form, ".//select[@name='field_type']"))
		options := dom.Value(dom.FindOne(form, ".//textarea[@name='options']"))
		err = ValidateFieldForm(name, display, kind, options)
	} else {
		err = ValidateTableForm(name, display)
	}
	if err == nil {
		return true
	}

	var formErr *FormError
	if errors.As(err, &formErr) {
		if n != nil {
			n.Notify(notify.LevelDanger, formErr.Message)
		}
		for _, control := range dom.Find(form, ".//*[@autofocus]") {
			dom.RemoveAttr(control, "autofocus")
		}
		if target := dom.FindOne(form, ".//*[@name="+dom.Literal(formErr.Field)+"]"); target != nil {
			dom.SetBool(target, "autofocus", true)
		}
	}
	return false
}

// DeleteConfirmation returns the confirmation shown before deleting a table
// or a field. Other kinds get the generic message.
func DeleteConfirmation(kind, name string, localizer render.Localizer) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "table":
		return localizer.Text(render.MsgDeleteTable, name)
	case "field":
		return localizer.Text(render.MsgDeleteField, name)
	default:
		return localizer.Text(render.MsgDeleteGeneric)
	}
}

// DeleteConfirmationFor reads data-delete-type and data-delete-name from a
// delete button. ok is false when the node is not a delete trigger.
func DeleteConfirmationFor(button *html.Node, localizer render.Localizer) (message string, ok bool) {
	kind, ok := dom.Attr(button, "data-delete-type")
	if !ok {
		return "", false
	}
	return DeleteConfirmation(kind, dom.AttrOr(button, "data-delete-name", ""), localizer), true
}
