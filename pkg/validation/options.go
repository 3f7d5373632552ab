package validation

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/pkg/kinds"
	"github.com/goliatone/go-scoutforms/pkg/notify"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// DefaultExcludeClass opts a form out of submit validation.
const DefaultExcludeClass = "no-validate"

// Option configures validation.
type Option func(*config)

type config struct {
	translator   render.Translator
	locale       string
	logger       *zap.Logger
	notifier     notify.Notifier
	excludeClass string
	registry     *kinds.Registry
}

func newConfig(opts []Option) config {
	cfg := config{
		locale:       render.DefaultLocale,
		logger:       zap.NewNop(),
		excludeClass: DefaultExcludeClass,
		registry:     kinds.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c config) localizer() render.Localizer {
	return render.NewLocalizer(c.translator, c.locale)
}

// WithTranslator sets the translator for default messages.
func WithTranslator(t render.Translator) Option {
	return func(c *config) {
		c.translator = t
	}
}

// WithLocale selects the message locale.
func WithLocale(locale string) Option {
	return func(c *config) {
		if locale != "" {
			c.locale = locale
		}
	}
}

// WithLogger attaches a logger. Invalid patterns are reported through it.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNotifier receives the aggregate message of a blocked submission.
func WithNotifier(n notify.Notifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithExcludeClass changes the class that opts a form out.
func WithExcludeClass(class string) Option {
	return func(c *config) {
		if class != "" {
			c.excludeClass = class
		}
	}
}

// WithRegistry sets the kind registry used by ValidateValues.
func WithRegistry(registry *kinds.Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.registry = registry
		}
	}
}
