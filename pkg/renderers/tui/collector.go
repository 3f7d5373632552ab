// Package tui collects record values in a terminal, one prompt per field
// definition, with the same rules the browser form applies.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/kinds"
	"github.com/goliatone/go-scoutforms/pkg/render"
	"github.com/goliatone/go-scoutforms/pkg/validation"
)

// Collector prompts for the values of a record.
type Collector struct {
	driver       PromptDriver
	outputFormat OutputFormat
	localizer    render.Localizer
	registry     *kinds.Registry
	confirm      bool
	readOnly     bool
	logger       *zap.Logger
}

// New constructs a Collector with defaults (survey driver, JSON output).
func New(options ...Option) *Collector {
	c := &Collector{
		outputFormat: OutputFormatJSON,
		registry:     kinds.Default(),
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// ContentType reports the media type produced by Encode.
func (c *Collector) ContentType() string {
	switch c.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Collect prompts for every definition in order, starting from values, and
// returns the entered values keyed by technical name. Empty answers are
// omitted; numbers are returned as float64.
func (c *Collector) Collect(ctx context.Context, defs []field.Definition, values field.ValueMap) (field.ValueMap, error) {
	if c.readOnly {
		return nil, ErrReadOnly
	}
	out := make(field.ValueMap, len(defs))
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			raw string
			err error
		)
		if def.Kind == field.KindDropdown {
			raw, err = c.promptDropdown(ctx, def, values)
		} else {
			raw, err = c.promptInput(ctx, def, values)
		}
		if err != nil {
			return nil, err
		}
		if value, ok := typedValue(def, raw); ok {
			out[def.Name] = value
		}
	}

	if c.confirm {
		ok, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: c.localizer.Text(render.MsgSave) + " ?",
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}
	c.logger.Debug("values collected", zap.Int("fields", len(defs)), zap.Int("answered", len(out)))
	return out, nil
}

func (c *Collector) promptInput(ctx context.Context, def field.Definition, values field.ValueMap) (string, error) {
	var current string
	if prefill := c.registry.Descriptor(def.Kind).Prefill; prefill != nil {
		current, _ = prefill(values, def.Name)
	}
	validate := c.validator(def)

	raw, err := c.driver.Input(ctx, InputConfig{
		Message:   promptLabel(def),
		Default:   current,
		Help:      def.PatternMessage,
		Validator: validate,
	})
	if err != nil {
		return "", err
	}
	// Drivers are not required to loop on the validator.
	if err := validate(raw); err != nil {
		return "", fmt.Errorf("tui: %s: %w", def.Name, err)
	}
	return raw, nil
}

func (c *Collector) promptDropdown(ctx context.Context, def field.Definition, values field.ValueMap) (string, error) {
	options := append([]string(nil), def.Options...)
	offset := 0
	if !def.Required {
		options = append([]string{c.localizer.Text(render.MsgSelectPlaceholder)}, options...)
		offset = 1
	}

	defaultIndex := 0
	if current, ok := values.StringValue(def.Name); ok && current != "" {
		if idx := indexOf(def.Options, current); idx >= 0 {
			defaultIndex = idx + offset
		}
	}

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      promptLabel(def),
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("tui: %s: selection %d out of range", def.Name, idx)
	}
	if idx < offset {
		return "", nil
	}
	return options[idx], nil
}

// validator applies the submission rules for def to a single answer.
func (c *Collector) validator(def field.Definition) func(string) error {
	name := def.ControlName()
	return func(answer string) error {
		results := validation.ValidateValues([]field.Definition{def}, url.Values{name: {answer}},
			validation.WithTranslator(c.localizer.Translator),
			validation.WithLocale(c.localizer.Locale),
			validation.WithRegistry(c.registry),
			validation.WithLogger(c.logger),
		)
		if result := results[name]; !result.Valid {
			return errors.New(result.Message)
		}
		return nil
	}
}

// Encode serialises collected values in the configured output format.
func (c *Collector) Encode(defs []field.Definition, values field.ValueMap) ([]byte, error) {
	switch c.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, def := range defs {
			if value, ok := values.StringValue(def.Name); ok {
				form.Set(def.ControlName(), value)
			}
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, def := range defs {
			value, ok := values.StringValue(def.Name)
			if !ok || value == "" {
				value = "-"
			}
			fmt.Fprintf(&b, "%s: %s\n", def.Label(), value)
		}
		return []byte(b.String()), nil
	default:
		if values == nil {
			values = field.ValueMap{}
		}
		data, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return data, nil
	}
}

func promptLabel(def field.Definition) string {
	if def.Required {
		return def.Label() + " *"
	}
	return def.Label()
}

func typedValue(def field.Definition, raw string) (any, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}
	if def.Kind == field.KindNumber {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f, true
		}
	}
	if def.Kind == field.KindDropdown {
		return raw, true
	}
	return trimmed, true
}
