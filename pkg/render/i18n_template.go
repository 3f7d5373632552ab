package render

import (
	"fmt"
	"strings"
)

// TemplateI18nConfig configures the template translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey is the map key read when a template passes its whole context
	// instead of a locale string. Defaults to "locale".
	LocaleKey string
	// FuncName renames the translate helper.
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for the template engine (see
// gotemplate.WithTemplateFunc):
//
//	translate(localeSrc, key, ...args) string
//	current_locale(localeSrc) string
//
// localeSrc is either a locale string or a map carrying one under
// cfg.LocaleKey. A nil Translator resolves against DefaultCatalog.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	return map[string]any{
		translateName: func(localeSrc any, key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			localizer := Localizer{Translator: t, Locale: resolveLocale(localeSrc, localeKey), OnMissing: cfg.OnMissing}
			return localizer.Text(key, params...)
		},
		"current_locale": func(localeSrc any) string {
			if locale := resolveLocale(localeSrc, localeKey); locale != "" {
				return locale
			}
			return DefaultLocale
		},
	}
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(data)
	case map[string]string:
		return strings.TrimSpace(data[key])
	case map[string]any:
		if value, ok := data[key]; ok && value != nil {
			return strings.TrimSpace(fmt.Sprint(value))
		}
	case interface{ LocaleCode() string }:
		return strings.TrimSpace(data.LocaleCode())
	}
	return ""
}
