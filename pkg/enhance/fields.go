// Package enhance attaches the ancillary behaviours of generated forms: the
// French date echo under date inputs, number input sanitising and character
// counters under bounded textareas.
package enhance

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

const (
	dateDisplayClass = "date-display"
	counterClass     = "char-counter"
	counterForAttr   = "data-counter-for"
	warningClass     = "text-warning"
)

// Option configures InitDynamicFields.
type Option func(*config)

type config struct {
	localizer render.Localizer
	logger    *zap.Logger
}

// WithTranslator resolves the placeholder, echo and counter strings.
func WithTranslator(t render.Translator) Option {
	return func(cfg *config) {
		cfg.localizer.Translator = t
	}
}

// WithLocale selects the message locale.
func WithLocale(locale string) Option {
	return func(cfg *config) {
		cfg.localizer.Locale = locale
	}
}

// WithLogger records ignored input such as unparsable dates.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Fields holds the enhanced document and reacts to control events.
type Fields struct {
	root      *html.Node
	localizer render.Localizer
	logger    *zap.Logger
}

// InitDynamicFields decorates every date input, and every textarea with a
// maxlength, under root. Running it again on the same tree is safe: existing
// counters are refreshed rather than duplicated. A nil root yields a Fields
// whose methods do nothing.
func InitDynamicFields(root *html.Node, opts ...Option) *Fields {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	f := &Fields{root: root, localizer: cfg.localizer, logger: cfg.logger}
	if root == nil {
		return f
	}

	placeholder := f.localizer.Text(render.MsgDatePlaceholder)
	for _, input := range dom.Find(root, ".//input[@type='date']") {
		dom.SetAttr(input, "placeholder", placeholder)
	}

	for _, textarea := range dom.Find(root, ".//textarea[@maxlength]") {
		limit, ok := maxLength(textarea)
		if !ok {
			f.logger.Debug("ignoring textarea with invalid maxlength", zap.String("control", controlKey(textarea)))
			continue
		}
		counter := f.Counter(textarea)
		if counter == nil {
			if textarea.Parent == nil {
				continue
			}
			counter = dom.Element("div",
				"class", counterClass+" small text-muted text-end mt-1",
				counterForAttr, controlKey(textarea),
			)
			dom.Append(textarea.Parent, counter)
		}
		f.updateCounter(counter, utf8.RuneCountInString(dom.Value(textarea)), limit)
	}
	return f
}

// Root returns the enhanced tree.
func (f *Fields) Root() *html.Node {
	return f.root
}

// DateChanged applies a new value to a date input and writes the French
// echo below it. Empty or unparsable values update the input only.
func (f *Fields) DateChanged(input *html.Node, value string) {
	if f == nil || input == nil {
		return
	}
	dom.SetValue(input, value)
	if strings.TrimSpace(value) == "" {
		return
	}
	parsed, ok := ParseDate(value)
	if !ok {
		f.logger.Debug("date echo skipped", zap.String("value", value))
		return
	}
	parent := input.Parent
	if parent == nil {
		return
	}

	display := firstChildWithClass(parent, dateDisplayClass)
	if display == nil {
		display = dom.Element("div", "class", dateDisplayClass+" small text-muted mt-1")
		dom.Append(parent, display)
	}
	dom.SetText(display, f.localizer.Text(render.MsgDateSelected, parsed.Format(LayoutDisplay)))
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// SanitizeNumber strips every character other than digits, '.' and '-'. It
// does not check the result is a well-formed number; see
// validation.ValidateValues for that.
func SanitizeNumber(raw string) string {
	return nonNumeric.ReplaceAllString(raw, "")
}

// NumberInput sanitises raw, stores it as the input value and returns it.
func (f *Fields) NumberInput(input *html.Node, raw string) string {
	sanitized := SanitizeNumber(raw)
	if input != nil {
		dom.SetValue(input, sanitized)
	}
	return sanitized
}

// TextareaInput stores value in the textarea and refreshes its counter.
func (f *Fields) TextareaInput(textarea *html.Node, value string) {
	if f == nil || textarea == nil {
		return
	}
	dom.SetValue(textarea, value)
	limit, ok := maxLength(textarea)
	if !ok {
		return
	}
	if counter := f.Counter(textarea); counter != nil {
		f.updateCounter(counter, utf8.RuneCountInString(value), limit)
	}
}

// Counter returns the counter attached to textarea, if any.
func (f *Fields) Counter(textarea *html.Node) *html.Node {
	if textarea == nil || textarea.Parent == nil {
		return nil
	}
	key := controlKey(textarea)
	for _, candidate := range dom.ChildrenWithClass(textarea.Parent, counterClass) {
		if owner, _ := dom.Attr(candidate, counterForAttr); owner == key {
			return candidate
		}
	}
	return nil
}

func (f *Fields) updateCounter(counter *html.Node, length, limit int) {
	dom.SetText(counter, f.localizer.Text(render.MsgCharCounter, length, limit))
	dom.ToggleClass(counter, warningClass, float64(length) > float64(limit)*0.9)
}

func maxLength(n *html.Node) (int, bool) {
	raw, ok := dom.Attr(n, "maxlength")
	if !ok {
		return 0, false
	}
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit <= 0 {
		return 0, false
	}
	return limit, true
}

func controlKey(n *html.Node) string {
	if id := dom.ID(n); id != "" {
		return id
	}
	name, _ := dom.Attr(n, "name")
	return name
}

func firstChildWithClass(parent *html.Node, class string) *html.Node {
	matches := dom.ChildrenWithClass(parent, class)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}
