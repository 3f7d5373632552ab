// Package charts builds Chart.js configurations for the dashboard and the
// per-table analytics panels. Configurations are plain structs meant to be
// JSON-encoded into the page.
package charts

import "strings"

// Chart.js configuration, limited to the options the dashboard uses.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset colours are either one colour for every point or one per point.
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     any       `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
}

type Options struct {
	Responsive          bool             `json:"responsive"`
	MaintainAspectRatio bool             `json:"maintainAspectRatio"`
	Plugins             Plugins          `json:"plugins"`
	Scales              map[string]Scale `json:"scales,omitempty"`
	Animation           *Animation       `json:"animation,omitempty"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
	Title  *Title `json:"title,omitempty"`
}

type Legend struct {
	Display  *bool         `json:"display,omitempty"`
	Position string        `json:"position,omitempty"`
	Labels   *LegendLabels `json:"labels,omitempty"`
}

type LegendLabels struct {
	Color         string `json:"color,omitempty"`
	Padding       int    `json:"padding,omitempty"`
	UsePointStyle bool   `json:"usePointStyle,omitempty"`
	PointStyle    string `json:"pointStyle,omitempty"`
}

type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
	Color   string `json:"color,omitempty"`
	Font    Font   `json:"font"`
}

type Font struct {
	Size int `json:"size"`
}

type Scale struct {
	BeginAtZero bool      `json:"beginAtZero,omitempty"`
	Ticks       ColorSpec `json:"ticks"`
	Grid        ColorSpec `json:"grid"`
}

type ColorSpec struct {
	Color string `json:"color"`
}

type Animation struct {
	AnimateScale  bool `json:"animateScale"`
	AnimateRotate bool `json:"animateRotate"`
}

const (
	// TextColor is used for legends, titles and ticks on the dark theme.
	TextColor = "#ffffff"
	// GridColor is the faint grid line colour.
	GridColor = "rgba(255, 255, 255, 0.1)"

	BlueColor  = "rgba(54, 162, 235, 0.7)"
	GreenColor = "rgba(75, 192, 192, 0.7)"
)

// Palette is the fill colour cycle of the table statistics pie.
var Palette = []string{
	"rgba(54, 162, 235, 0.7)",
	"rgba(255, 99, 132, 0.7)",
	"rgba(75, 192, 192, 0.7)",
	"rgba(255, 206, 86, 0.7)",
	"rgba(153, 102, 255, 0.7)",
	"rgba(255, 159, 64, 0.7)",
	"rgba(199, 199, 199, 0.7)",
	"rgba(83, 102, 255, 0.7)",
	"rgba(78, 235, 133, 0.7)",
	"rgba(255, 99, 71, 0.7)",
}

// Opaque turns a 0.7 alpha fill colour into its border colour.
func Opaque(color string) string {
	return strings.Replace(color, "0.7", "1", 1)
}

func darkScales() map[string]Scale {
	axis := func(beginAtZero bool) Scale {
		return Scale{
			BeginAtZero: beginAtZero,
			Ticks:       ColorSpec{Color: TextColor},
			Grid:        ColorSpec{Color: GridColor},
		}
	}
	return map[string]Scale{"x": axis(false), "y": axis(true)}
}

func titledOptions(title string) Options {
	hidden := false
	return Options{
		Responsive:          true,
		MaintainAspectRatio: false,
		Plugins: Plugins{
			Legend: Legend{Display: &hidden},
			Title:   &Title{Display: true, Text: title, Color: TextColor, Font: Font{Size: 16}},
		},
		Scales: darkScales(),
	}
}
