package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/pkg/kinds"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits a JSON object keyed by technical name.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits the payload a browser would post,
	// keyed by control name.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "Label: value" line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Option configures the Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithOutputFormat selects the format used by Encode.
func WithOutputFormat(format OutputFormat) Option {
	return func(c *Collector) {
		if format != "" {
			c.outputFormat = format
		}
	}
}

// WithLocalizer sets the locale of prompts and validation messages.
func WithLocalizer(l render.Localizer) Option {
	return func(c *Collector) {
		c.localizer = l
	}
}

// WithRegistry supplies the kind registry used for prefill and value checks.
func WithRegistry(r *kinds.Registry) Option {
	return func(c *Collector) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithConfirm asks for a final confirmation before values are returned.
func WithConfirm(enabled bool) Option {
	return func(c *Collector) {
		c.confirm = enabled
	}
}

// WithReadOnly marks the form read-only; Collect then refuses to prompt.
func WithReadOnly(readOnly bool) Option {
	return func(c *Collector) {
		c.readOnly = readOnly
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}
