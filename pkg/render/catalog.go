package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultLocale is the locale used when callers do not pick one.
const DefaultLocale = "fr"

// Message keys shared by the form, validation and configuration packages.
const (
	MsgSelectPlaceholder = "form.select_placeholder"
	MsgCancel            = "form.cancel"
	MsgSave              = "form.save"

	MsgRequired      = "validation.required"
	MsgPattern       = "validation.pattern"
	MsgFormInvalid   = "validation.form_invalid"
	MsgInvalidNumber = "validation.number"
	MsgInvalidDate   = "validation.date"
	MsgInvalidOption = "validation.option"

	MsgDatePlaceholder = "fields.date_placeholder"
	MsgDateSelected    = "fields.date_selected"
	MsgCharCounter     = "fields.char_counter"
	MsgConfirm         = "actions.confirm"
	MsgRecordSaved     = "actions.record_saved"
	MsgNavigation      = "page.navigation"

	MsgReorder          = "tables.reorder"
	MsgReorderSave      = "tables.reorder_save"
	MsgReorderHelp      = "tables.reorder_help"
	MsgReorderSaved     = "tables.reorder_saved"
	MsgReorderFailed    = "tables.reorder_failed"
	MsgOptionsDeduped   = "tables.options_deduped"
	MsgDeleteGeneric    = "tables.delete_generic"
	MsgDeleteTable      = "tables.delete_table"
	MsgDeleteField      = "tables.delete_field"
	MsgPrintBlocked     = "print.window_blocked"
	MsgStatsTitle       = "charts.stats"
	MsgStatsRecordCount = "charts.record_count"
	MsgStatsLastRecord  = "charts.last_record"
	MsgValuesTitle      = "charts.values"
	MsgDistribution     = "charts.distribution"
	MsgChartDefault     = "charts.default_title"
	MsgTrendDefault     = "charts.trend_title"
)

var frenchMessages = map[string]string{
	MsgSelectPlaceholder: "Sélectionnez une option",
	MsgCancel:            "Annuler",
	MsgSave:              "Enregistrer",
	MsgRequired:          "Ce champ est requis.",
	MsgPattern:           "Format invalide.",
	MsgFormInvalid:       "Veuillez corriger les erreurs dans le formulaire.",
	MsgInvalidNumber:     "Veuillez saisir un nombre valide.",
	MsgInvalidDate:       "Veuillez saisir une date valide (aaaa-mm-jj).",
	MsgInvalidOption:     "Veuillez sélectionner une option de la liste.",
	MsgDatePlaceholder:   "jj/mm/aaaa",
	MsgDateSelected:      "Date sélectionnée: %s",
	MsgCharCounter:       "%d/%d caractères",
	MsgConfirm:           "Êtes-vous sûr de vouloir effectuer cette action ?",
	MsgReorder:           "Réorganiser",
	MsgReorderSave:       "Enregistrer l'ordre",
	MsgReorderHelp:       "Glissez-déposez les lignes pour réorganiser les champs, puis cliquez sur \"Enregistrer l'ordre\".",
	MsgReorderSaved:      "L'ordre des champs a été mis à jour avec succès.",
	MsgReorderFailed:     "Une erreur est survenue lors de la mise à jour de l'ordre.",
	MsgOptionsDeduped:    "Les options dupliquées ont été supprimées.",
	MsgDeleteGeneric:     "Êtes-vous sûr de vouloir supprimer cet élément ?",
	MsgDeleteTable:       "Êtes-vous sûr de vouloir supprimer la table \"%s\" ? Toutes les données associées seront perdues.",
	MsgDeleteField:       "Êtes-vous sûr de vouloir supprimer le champ \"%s\" ? Toutes les valeurs associées seront perdues.",
	MsgPrintBlocked:      "Impossible d'ouvrir la fenêtre d'impression. Vérifiez les paramètres de votre navigateur.",
	MsgStatsTitle:        "Statistiques",
	MsgStatsRecordCount:  "Nombre d'enregistrements",
	MsgStatsLastRecord:   "Date du dernier enregistrement",
	MsgValuesTitle:       "Distribution des valeurs",
	MsgDistribution:      "Distribution de %s",
	MsgChartDefault:      "Données",
	MsgTrendDefault:      "Tendance",
	MsgRecordSaved:       "Enregistrement sauvegardé avec succès.",
	MsgNavigation:        "Navigation principale",
}

var englishMessages = map[string]string{
	MsgSelectPlaceholder: "Select an option",
	MsgCancel:            "Cancel",
	MsgSave:              "Save",
	MsgRequired:          "This field is required.",
	MsgPattern:           "Invalid format.",
	MsgFormInvalid:       "Please correct the errors in the form.",
	MsgInvalidNumber:     "Please enter a valid number.",
	MsgInvalidDate:       "Please enter a valid date (yyyy-mm-dd).",
	MsgInvalidOption:     "Please select an option from the list.",
	MsgDatePlaceholder:   "dd/mm/yyyy",
	MsgDateSelected:      "Selected date: %s",
	MsgCharCounter:       "%d/%d characters",
	MsgConfirm:           "Are you sure you want to perform this action?",
	MsgReorder:           "Reorder",
	MsgReorderSave:       "Save order",
	MsgReorderHelp:       "Drag and drop the rows to reorder the fields, then click \"Save order\".",
	MsgReorderSaved:      "The field order was updated successfully.",
	MsgReorderFailed:     "An error occurred while updating the order.",
	MsgOptionsDeduped:    "Duplicate options were removed.",
	MsgDeleteGeneric:     "Are you sure you want to delete this item?",
	MsgDeleteTable:       "Are you sure you want to delete the table \"%s\"? All related data will be lost.",
	MsgDeleteField:       "Are you sure you want to delete the field \"%s\"? All related values will be lost.",
	MsgPrintBlocked:      "Unable to open the print window. Check your browser settings.",
	MsgStatsTitle:        "Statistics",
	MsgStatsRecordCount:  "Number of records",
	MsgStatsLastRecord:   "Latest record date",
	MsgValuesTitle:       "Value distribution",
	MsgDistribution:      "Distribution of %s",
	MsgChartDefault:      "Data",
	MsgTrendDefault:      "Trend",
	MsgRecordSaved:       "Record saved successfully.",
	MsgNavigation:        "Main navigation",
}

// Catalog is an in-memory Translator keyed by locale. Lookups try the exact
// locale, then its base language ("fr-CA" -> "fr"), then the fallback
// locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the shared catalog carrying the built-in French and
// English messages.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = NewCatalog(DefaultLocale)
		defaultCatalog.Add("fr", frenchMessages)
		defaultCatalog.Add("en", englishMessages)
	})
	return defaultCatalog
}

// NewCatalog returns an empty catalog that falls back to fallbackLocale.
func NewCatalog(fallbackLocale string) *Catalog {
	return &Catalog{
		fallback: normalizeLocale(fallbackLocale),
		messages: make(map[string]map[string]string),
	}
}

// Add merges messages into a locale. Later calls win on key collisions.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	if locale == "" || len(messages) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket := c.messages[locale]
	if bucket == nil {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, msg := range messages {
		if key = strings.TrimSpace(key); key != "" {
			bucket[key] = msg
		}
	}
}

// Locales lists the locales with at least one message.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.candidates(locale) {
		msg, ok := c.messages[candidate][key]
		if !ok {
			continue
		}
		if formatArgs := stripDefaults(args); len(formatArgs) > 0 {
			return fmt.Sprintf(msg, formatArgs...), nil
		}
		return msg, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingMessage, key, locale)
}

func (c *Catalog) candidates(locale string) []string {
	locale = normalizeLocale(locale)
	out := make([]string, 0, 3)
	if locale != "" {
		out = append(out, locale)
		if base, _, ok := strings.Cut(locale, "-"); ok {
			out = append(out, base)
		}
	}
	if c.fallback != "" {
		out = append(out, c.fallback)
	}
	return out
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

// stripDefaults removes the {"default": ...} hint maps that Translate passes
// through so they never leak into fmt verbs.
func stripDefaults(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	out := make([]any, 0, len(args))
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if _, hint := values["default"]; hint {
				continue
			}
		}
		out = append(out, arg)
	}
	return out
}
