package render

import (
	"errors"
	"fmt"
	"strings"
)

// Translator resolves a message key for a locale. Implementations format args
// into the message when present.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what string is used when a key cannot be
// resolved. args carries the original arguments; a map[string]any with a
// "default" entry, when present, holds the caller's fallback text.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

var (
	// ErrMissingTranslator is passed to MissingTranslationHandler when no
	// Translator was configured.
	ErrMissingTranslator = errors.New("render: translator not configured")
	// ErrMissingMessage is returned by Catalog for unknown keys.
	ErrMissingMessage = errors.New("render: message not found")
)

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// Localizer binds a Translator to a locale so components can resolve their
// fixed strings with a single call. The zero value resolves against the
// default catalog in French.
type Localizer struct {
	Translator Translator
	Locale     string
	OnMissing  MissingTranslationHandler
}

// NewLocalizer returns a Localizer, substituting the default catalog and
// locale for empty inputs.
func NewLocalizer(t Translator, locale string) Localizer {
	return Localizer{Translator: t, Locale: locale}
}

// Text resolves key, formatting args into the message.
func (l Localizer) Text(key string, args ...any) string {
	translator := l.Translator
	if translator == nil {
		translator = DefaultCatalog()
	}
	locale := strings.TrimSpace(l.Locale)
	if locale == "" {
		locale = DefaultLocale
	}

	msg, err := translator.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}

	// A custom translator may not know the built-in keys; fall back to the
	// catalog before giving up.
	if translator != Translator(DefaultCatalog()) {
		if msg, catalogErr := DefaultCatalog().Translate(locale, key, args...); catalogErr == nil {
			return msg
		}
	}

	onMissing := l.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if err == nil {
		err = fmt.Errorf("%w: %s", ErrMissingMessage, key)
	}
	return onMissing(locale, key, args, err)
}

// Translate resolves key through t, returning fallback (or the result of
// onMissing) when the translator is absent or fails.
func Translate(t Translator, locale, key, fallback string, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	args := []any{map[string]any{"default": fallback}}

	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, args, err)
}
