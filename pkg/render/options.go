package render

import "github.com/goliatone/go-scoutforms/pkg/field"

// RenderOptions describe per-request data used when a complete <form> page is
// rendered around the generated controls.
type RenderOptions struct {
	// Locale selects the message catalog; empty means DefaultLocale.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler

	// Method and Action are copied onto the <form> element. Method defaults
	// to POST; verbs other than GET/POST are sent as POST plus a hidden
	// _method input.
	Method string
	Action string

	// Values pre-populates controls, keyed by technical name.
	Values field.ValueMap
	// Errors carries server-side validation feedback keyed by control name
	// (see MapErrorPayload).
	Errors map[string][]string
	// FormErrors are shown above the controls.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs ahead of the controls.
	HiddenFields map[string]string
	// ReadOnly disables every control and omits the action row.
	ReadOnly bool
}

// Localizer returns the Localizer described by the options.
func (o RenderOptions) Localizer() Localizer {
	return Localizer{Translator: o.Translator, Locale: o.Locale, OnMissing: o.OnMissing}
}
