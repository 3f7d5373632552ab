package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-scoutforms/pkg/enhance"
)

func registerDefaultFilters() {
	defaults := map[string]pongo2.FilterFunction{
		"trim":     filterTrim,
		"frdate":   filterFrenchDate,
		"frnumber": filterFrenchNumber,
	}
	for name, fn := range defaults {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterFrenchDate renders an ISO date as dd/mm/yyyy; the parameter, when
// given, is a Go time layout.
func filterFrenchDate(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	layout := enhance.LayoutDisplay
	if param != nil && param.IsString() && strings.TrimSpace(param.String()) != "" {
		layout = param.String()
	}
	return pongo2.AsValue(enhance.FormatDate(in.String(), layout)), nil
}

// filterFrenchNumber renders a number with French grouping and the requested
// number of decimals (2 by default).
func filterFrenchNumber(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	decimals := 2
	if param != nil && param.IsInteger() {
		decimals = param.Integer()
	}
	if in.IsNil() {
		return pongo2.AsValue(enhance.FormatNumber(nil, decimals)), nil
	}
	return pongo2.AsValue(enhance.FormatNumber(in.Interface(), decimals)), nil
}
