package charts

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/dom"
	"github.com/goliatone/go-scoutforms/pkg/enhance"
	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// NumericCanvasID is the canvas of the numeric values panel.
const NumericCanvasID = "numericDataChart"

// Record is a stored row as the analytics page receives it, newest first.
type Record struct {
	ID        int64          `json:"id"`
	CreatedAt string         `json:"created_at"`
	Values    field.ValueMap `json:"values"`
}

// Stats is the summary card.
type Stats struct {
	Title       string `json:"title"`
	RecordCount int    `json:"record_count"`
	LastRecord  string `json:"last_record"`
}

// Panel is one chart card.
type Panel struct {
	CanvasID string `json:"canvas_id"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	Chart    Config `json:"chart"`
}

// Analytics is everything shown for one table.
type Analytics struct {
	Stats         Stats   `json:"stats"`
	Values        *Panel  `json:"values,omitempty"`
	Distributions []Panel `json:"distributions,omitempty"`
}

// TableAnalytics summarises records: the stats card, a bar of the first
// number field against record dates, and one option distribution per
// dropdown field.
func TableAnalytics(records []Record, defs []field.Definition, localizer render.Localizer) Analytics {
	out := Analytics{
		Stats: Stats{
			Title:       localizer.Text(render.MsgStatsTitle),
			RecordCount: len(records),
			LastRecord:  "N/A",
		},
	}
	if len(records) > 0 {
		out.Stats.LastRecord = enhance.FormatDate(records[0].CreatedAt, enhance.LayoutChart)
	}

	for _, def := range defs {
		if def.Kind != field.KindNumber {
			continue
		}
		points := make([]Point, 0, len(records))
		for _, record := range records {
			value, _ := enhance.ToFloat(record.Values[def.Name])
			points = append(points, Point{
				Name:  enhance.FormatDate(record.CreatedAt, enhance.LayoutChart),
				Value: value,
			})
		}
		out.Values = &Panel{
			CanvasID: NumericCanvasID,
			Title:    localizer.Text(render.MsgValuesTitle),
			Icon:     "fas fa-chart-bar",
			Chart:    Bar(points, BarOptions{Title: def.Label(), Color: GreenColor, Localizer: localizer}),
		}
		break
	}

	for _, def := range defs {
		if def.Kind != field.KindDropdown {
			continue
		}
		title := localizer.Text(render.MsgDistribution, def.Label())
		out.Distributions = append(out.Distributions, Panel{
			CanvasID: "dropdown_" + strconv.FormatInt(def.ID, 10) + "_chart",
			Title:    title,
			Icon:     "fas fa-chart-pie",
			Chart:    Bar(Distribution(records, def), BarOptions{Title: title, Color: BlueColor, Localizer: localizer}),
		})
	}
	return out
}

// Distribution counts how many records hold each option of a dropdown, in
// option order. Values outside the options are ignored.
func Distribution(records []Record, def field.Definition) []Point {
	index := make(map[string]int, len(def.Options))
	points := make([]Point, 0, len(def.Options))
	for _, option := range def.Options {
		if _, dup := index[option]; dup {
			continue
		}
		index[option] = len(points)
		points = append(points, Point{Name: option})
	}
	for _, record := range records {
		value, ok := record.Values.StringValue(def.Name)
		if !ok || value == "" {
			continue
		}
		if i, known := index[value]; known {
			points[i].Value++
		}
	}
	return points
}

// Render replaces the children of container with the analytics cards. Each
// canvas carries its configuration in data-chart. A nil container is
// ignored.
func Render(container *html.Node, a Analytics, localizer render.Localizer) error {
	if container == nil {
		return nil
	}
	dom.Clear(container)

	row := dom.Element("div", "class", "row g-4 mb-4")
	dom.Append(row, statsCard(a.Stats, localizer))
	if a.Values != nil {
		card, err := panelCard(*a.Values, "col-md-8", true)
		if err != nil {
			return err
		}
		dom.Append(row, card)
	}
	dom.Append(container, row)

	for _, panel := range a.Distributions {
		card, err := panelCard(panel, "col-12", false)
		if err != nil {
			return err
		}
		dom.Append(container, dom.Append(dom.Element("div", "class", "row mb-4"), card))
	}
	return nil
}

func statsCard(stats Stats, localizer render.Localizer) *html.Node {
	line := func(label, badgeClass, value string) *html.Node {
		badge := dom.Element("div", "class", "badge "+badgeClass)
		dom.SetText(badge, value)
		caption := dom.Element("div")
		dom.SetText(caption, label)
		return dom.Append(dom.Element("div", "class", "d-flex justify-content-between align-items-center"), caption, badge)
	}

	body := dom.Element("div", "class", "d-flex flex-column gap-3")
	dom.Append(body,
		line(localizer.Text(render.MsgStatsRecordCount), "bg-primary", strconv.Itoa(stats.RecordCount)),
		line(localizer.Text(render.MsgStatsLastRecord), "bg-info", stats.LastRecord),
	)
	card := cardShell(stats.Title, "fas fa-chart-pie", true)
	dom.Append(dom.FindOne(card, ".//div[@class='card-body']"), body)
	return dom.Append(dom.Element("div", "class", "col-md-4"), card)
}

func panelCard(panel Panel, column string, fullHeight bool) (*html.Node, error) {
	payload, err := json.Marshal(panel.Chart)
	if err != nil {
		return nil, fmt.Errorf("charts: encode %s: %w", panel.CanvasID, err)
	}
	card := cardShell(panel.Title, panel.Icon, fullHeight)
	canvas := dom.Element("canvas", "id", panel.CanvasID, "height", "200", "data-chart", string(payload))
	dom.Append(dom.FindOne(card, ".//div[@class='card-body']"), canvas)
	return dom.Append(dom.Element("div", "class", column), card), nil
}

func cardShell(title, icon string, fullHeight bool) *html.Node {
	class := "card"
	if fullHeight {
		class = "card h-100"
	}
	heading := dom.Element("h5", "class", "mb-0")
	dom.Append(heading, dom.Element("i", "class", icon+" me-2"), dom.Text(title))

	card := dom.Element("div", "class", class)
	dom.Append(card,
		dom.Append(dom.Element("div", "class", "card-header bg-dark"), heading),
		dom.Element("div", "class", "card-body"),
	)
	return card
}
