package charts

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-scoutforms/pkg/enhance"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// TableStat is one slice of the dashboard pie: a table and its record count.
type TableStat struct {
	Name  string  `json:"name"`
	Count float64 `json:"count"`
}

// ParseStats decodes the JSON embedded in #tableStatsData. Malformed input is
// logged and yields no stats.
func ParseStats(raw []byte, logger *zap.Logger) []TableStat {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	var stats []TableStat
	if err := json.Unmarshal(raw, &stats); err != nil {
		logger.Warn("table stats ignored", zap.Error(err))
		return nil
	}
	return stats
}

// TableStatsPie builds the dashboard pie. ok is false when there is nothing
// to draw.
func TableStatsPie(stats []TableStat) (cfg Config, ok bool) {
	if len(stats) == 0 {
		return Config{}, false
	}

	labels := make([]string, len(stats))
	values := make([]float64, len(stats))
	for i, stat := range stats {
		labels[i] = stat.Name
		values[i] = stat.Count
	}

	fills := Palette[:min(len(labels), len(Palette))]
	borders := make([]string, len(Palette))
	for i, color := range Palette {
		borders[i] = Opaque(color)
	}

	return Config{
		Type: "pie",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Data:            values,
				BackgroundColor: append([]string(nil), fills...),
				BorderColor:     borders,
				BorderWidth:     1,
			}},
		},
		Options: Options{
			Responsive:          true,
			MaintainAspectRatio: false,
			Plugins: Plugins{
				Legend: Legend{
					Position: "right",
					Labels: &LegendLabels{
						Color:         TextColor,
						Padding:       10,
						UsePointStyle: true,
						PointStyle:    "circle",
					},
				},
			},
			Animation: &Animation{AnimateScale: true, AnimateRotate: true},
		},
	}, true
}

// SliceLabel is the pie tooltip text: "label: value (pct%)", the percentage
// rounded against the dataset total.
func SliceLabel(label string, value float64, data []float64) string {
	var total float64
	for _, v := range data {
		total += v
	}
	pct := 0.0
	if total != 0 {
		pct = math.Round(value / total * 100)
	}
	return fmt.Sprintf("%s: %s (%d%%)", label, formatPlain(value), int(pct))
}

// Point is one labelled value.
type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// BarOptions customise Bar. Zero values take the defaults.
type BarOptions struct {
	Title     string
	Color     string
	Localizer render.Localizer
}

// Bar builds a single-series bar chart with a title and no legend.
func Bar(points []Point, opts BarOptions) Config {
	if opts.Title == "" {
		opts.Title = opts.Localizer.Text(render.MsgChartDefault)
	}
	if opts.Color == "" {
		opts.Color = BlueColor
	}

	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Name
		values[i] = p.Value
	}
	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           opts.Title,
				Data:            values,
				BackgroundColor: opts.Color,
				BorderColor:     Opaque(opts.Color),
				BorderWidth:     1,
			}},
		},
		Options: titledOptions(opts.Title),
	}
}

// LineOptions customise Line. DateAxis treats point names as dates: points
// are sorted chronologically and labelled dd/mm/yy.
type LineOptions struct {
	Title     string
	Color     string
	DateAxis  bool
	Localizer render.Localizer
}

// Line builds a smoothed, filled single-series line chart.
func Line(points []Point, opts LineOptions) Config {
	if opts.Title == "" {
		opts.Title = opts.Localizer.Text(render.MsgTrendDefault)
	}
	if opts.Color == "" {
		opts.Color = GreenColor
	}

	sorted := append([]Point(nil), points...)
	if opts.DateAxis {
		sort.SliceStable(sorted, func(i, j int) bool {
			a, okA := enhance.ParseDate(sorted[i].Name)
			b, okB := enhance.ParseDate(sorted[j].Name)
			if !okA || !okB {
				return okA && !okB
			}
			return a.Before(b)
		})
	}

	labels := make([]string, len(sorted))
	values := make([]float64, len(sorted))
	for i, p := range sorted {
		labels[i] = p.Name
		if opts.DateAxis {
			labels[i] = enhance.FormatDate(p.Name, enhance.LayoutChart)
		}
		values[i] = p.Value
	}
	return Config{
		Type: "line",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           opts.Title,
				Data:            values,
				BackgroundColor: opts.Color,
				BorderColor:     Opaque(opts.Color),
				Tension:         0.4,
				Fill:            true,
			}},
		},
		Options: titledOptions(opts.Title),
	}
}

func formatPlain(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
