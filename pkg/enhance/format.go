package enhance

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display layouts used by the French screens.
const (
	LayoutISO     = "2006-01-02"
	LayoutDisplay = "02/01/2006"
	LayoutChart   = "02/01/06"
)

// dateLayouts are tried in order. The server emits plain dates for date
// fields and isoformat() timestamps for created_at columns.
var dateLayouts = []string{
	LayoutISO,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04",
}

// ParseDate parses the date formats the server emits. Only the calendar date
// is kept so display never shifts across time zones.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders raw with layout. Empty input yields "" and unparsable
// input is returned unchanged.
func FormatDate(raw, layout string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	parsed, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	if layout == "" {
		layout = LayoutDisplay
	}
	return parsed.Format(layout)
}

// DisplayDate is FormatDate with the dd/mm/yyyy layout and "-" for empty
// values, as used in record tables.
func DisplayDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "-"
	}
	return FormatDate(raw, LayoutDisplay)
}

var frenchNumbers = message.NewPrinter(language.French)

// FormatNumber renders value with exactly decimals fraction digits in the
// French convention (comma decimals, no-break space grouping). nil, NaN and
// non-numeric values render as "-".
func FormatNumber(value any, decimals int) string {
	n, ok := ToFloat(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return "-"
	}
	if decimals < 0 {
		decimals = 0
	}
	// Values that round to zero print unsigned.
	if rounded, err := strconv.ParseFloat(strconv.FormatFloat(n, 'f', decimals, 64), 64); err == nil && rounded == 0 {
		n = 0
	}
	return frenchNumbers.Sprint(number.Decimal(n, number.Scale(decimals)))
}

// ToFloat converts numeric values and numeric strings to float64.
func ToFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case nil:
		return 0, false
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case json.Number:
		parsed, err := typed.Float64()
		return parsed, err == nil
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
