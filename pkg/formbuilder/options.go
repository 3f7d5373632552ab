package formbuilder

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/pkg/kinds"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// Option customises form construction.
type Option func(*config)

type config struct {
	translator render.Translator
	locale     string
	onMissing  render.MissingTranslationHandler
	registry   *kinds.Registry
	logger     *zap.Logger
	hidden     map[string]string
	errors     map[string][]string
}

func newConfig(opts []Option) config {
	cfg := config{
		locale:   render.DefaultLocale,
		registry: kinds.Default(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c config) localizer() render.Localizer {
	return render.Localizer{Translator: c.translator, Locale: c.locale, OnMissing: c.onMissing}
}

// WithTranslator sets the translator used for labels, placeholders and
// button captions.
func WithTranslator(t render.Translator) Option {
	return func(c *config) {
		c.translator = t
	}
}

// WithLocale selects the message locale. Empty keeps the default.
func WithLocale(locale string) Option {
	return func(c *config) {
		if locale != "" {
			c.locale = locale
		}
	}
}

// WithMissingTranslationHandler controls the text used when a key has no
// message in any catalog.
func WithMissingTranslationHandler(fn render.MissingTranslationHandler) Option {
	return func(c *config) {
		c.onMissing = fn
	}
}

// WithRegistry swaps the kind registry, typically a kinds.Registry clone
// with overridden descriptors.
func WithRegistry(registry *kinds.Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHiddenFields prepends hidden inputs (CSRF token, record version) to the
// container.
func WithHiddenFields(fields map[string]string) Option {
	return func(c *config) {
		extra := make([]render.HiddenField, 0, len(fields))
		for name, value := range fields {
			extra = append(extra, render.HiddenField{Name: name, Value: value})
		}
		c.hidden = render.MergeHiddenFields(c.hidden, extra...)
	}
}

// WithHidden is WithHiddenFields for render.CSRFToken / render.VersionField
// values.
func WithHidden(fields ...render.HiddenField) Option {
	return func(c *config) {
		c.hidden = render.MergeHiddenFields(c.hidden, fields...)
	}
}

// WithErrors renders server-side messages inline, keyed by control name.
func WithErrors(errs map[string][]string) Option {
	return func(c *config) {
		if len(errs) == 0 {
			return
		}
		if c.errors == nil {
			c.errors = make(map[string][]string, len(errs))
		}
		for name, messages := range errs {
			c.errors[name] = append(c.errors[name], messages...)
		}
	}
}
