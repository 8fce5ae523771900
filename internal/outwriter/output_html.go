package outwriter

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/huangsam/pivotrend/schema"
)

const htmlLayout = `{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; color: #1a1a2e; margin: 1rem; }
table { border-collapse: collapse; font-size: .875rem; margin-bottom: 1.5rem; }
th, td { padding: .25rem .5rem; border: 1px solid #dee2e6; }
th { background: #f8f9fa; white-space: nowrap; }
td.header { vertical-align: top; }
td.value, td.total, td.number { text-align: right; }
tr.parity-1 td.value, tr.parity-1 td.total, tr.parity-1 td.trend { background: #f1f3f5; }
tr.subtotal td, tr.total td, tr.external td { font-weight: 600; }
.increasing { color: #28a745; }
.decreasing { color: #dc3545; }
.oscillating { color: #fd7e14; }
.swatch { display: inline-block; width: .75rem; height: .75rem; margin-right: .375rem; }
footer { color: #6c757d; font-size: .75rem; }
</style>
</head>
<body>
{{if .Logo}}<img class="logo" src="{{.Logo}}" width="{{.LogoSize}}" alt="logo">
{{end}}<h1>{{.Title}}</h1>
{{end}}{{define "foot"}}<footer>Cycle {{.CycleID}}</footer>
</body>
</html>
{{end}}`

const pivotHTML = `{{template "head" .}}<table class="pivot">
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr class="{{.Class}}">{{range .Cells}}<td class="{{.Class}}"{{if gt .RowSpan 1}} rowspan="{{.RowSpan}}"{{end}}{{if gt .ColSpan 1}} colspan="{{.ColSpan}}"{{end}}>{{.Text}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{if .SummaryRows}}<table class="summary">
<thead><tr>{{range .SummaryHeader}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .SummaryRows}}<tr class="{{.Class}}">{{range .Cells}}<td class="{{.Class}}">{{.Text}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}{{template "foot" .}}`

const boxplotHTML = `{{template "head" .}}{{range .Partitions}}<h2>{{.Name}}</h2>
<table class="boxplot">
<thead><tr>{{range $.Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{if .Color}}<span class="swatch" style="background: {{.Color}}"></span>{{end}}{{.Area}}</td>{{range .Stats}}<td class="number">{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}{{if .Thresholds}}<h2>Threshold lines</h2>
<table class="thresholds">
<thead><tr><th>Color</th><th>Value</th></tr></thead>
<tbody>
{{range .Thresholds}}<tr><td><span class="swatch" style="background: {{.Color}}"></span>{{.Color}}</td><td class="number">{{.Value}}</td></tr>
{{end}}</tbody>
</table>
{{end}}{{template "foot" .}}`

const trendHTML = `{{template "head" .}}<p class="{{.Class}}">{{.Label}}</p>
<table class="series">
<thead><tr><th>Point</th><th>Value</th></tr></thead>
<tbody>
{{range $i, $v := .Values}}<tr><td>{{$i}}</td><td class="number">{{$v}}</td></tr>
{{end}}</tbody>
</table>
{{template "foot" .}}`

var (
	pivotTemplate   = template.Must(template.Must(template.New("layout").Parse(htmlLayout)).New("pivot").Parse(pivotHTML))
	boxplotTemplate = template.Must(template.Must(template.New("layout").Parse(htmlLayout)).New("boxplot").Parse(boxplotHTML))
	trendTemplate   = template.Must(template.Must(template.New("layout").Parse(htmlLayout)).New("trend").Parse(trendHTML))
)

// htmlPage holds the fields shared by the layout.
type htmlPage struct {
	Title    string
	Logo     string
	LogoSize int
	CycleID  string
}

type htmlCell struct {
	Text    string
	Class   string
	RowSpan int
	ColSpan int
}

type htmlRow struct {
	Class string
	Cells []htmlCell
}

type pivotPage struct {
	htmlPage
	Header        []string
	Rows          []htmlRow
	SummaryHeader []string
	SummaryRows   []htmlRow
}

type boxplotRow struct {
	Area  string
	Color string
	Stats []string
}

type boxplotSection struct {
	Name string
	Rows []boxplotRow
}

type boxplotPage struct {
	htmlPage
	Header     []string
	Partitions []boxplotSection
	Thresholds []schema.ThresholdLine
}

type trendPage struct {
	htmlPage
	Label  string
	Class  string
	Values []float64
}

// trendClass maps a label onto its color class.
func trendClass(label schema.TrendLabel) string {
	switch label {
	case schema.StronglyIncreasing, schema.ModeratelyIncreasing, schema.WeaklyIncreasing:
		return "increasing"
	case schema.StronglyDecreasing, schema.ModeratelyDecreasing, schema.WeaklyDecreasing:
		return "decreasing"
	case schema.OscillatingIncreasing, schema.OscillatingDecreasing:
		return "oscillating"
	default:
		return ""
	}
}

// cellClass is the CSS class list of an emitted cell.
func cellClass(cell schema.Cell) string {
	classes := []string{string(cell.Kind)}
	if cell.Kind == schema.TrendCell {
		if c := trendClass(cell.Trend); c != "" {
			classes = append(classes, c)
		}
	}
	return strings.Join(classes, " ")
}

// writePivotHTML renders the expanded grid, folding covered positions back
// into rowspan and colspan attributes.
func writePivotHTML(w io.Writer, result *schema.PivotResult, precision int) error {
	page := pivotPage{
		htmlPage: htmlPage{Title: "Pivot table", CycleID: result.CycleID},
		Header:   result.HeaderRow(),
	}
	if result.Settings.ShowLogo && result.Settings.LogoURL != "" {
		page.Logo = result.Settings.LogoURL
		page.LogoSize = result.Settings.LogoSize
	}

	grid := expandGrid(result)
	for r, row := range result.Rows {
		hr := htmlRow{Class: fmt.Sprintf("%s parity-%d", row.Kind, rowParity(row))}
		for c, g := range grid[r] {
			if g.Covered {
				continue
			}
			if g.Origin == nil {
				hr.Cells = append(hr.Cells, htmlCell{})
				continue
			}
			rows, cols := extent(grid, r, c)
			hr.Cells = append(hr.Cells, htmlCell{
				Text:    g.Text,
				Class:   cellClass(*g.Origin),
				RowSpan: rows,
				ColSpan: cols,
			})
		}
		page.Rows = append(page.Rows, hr)
	}

	if result.Summary != nil {
		page.SummaryHeader = summaryHeader(result)
		for _, line := range summaryLines(result) {
			hr := htmlRow{Class: string(line.Kind)}
			hr.Cells = append(hr.Cells, htmlCell{Text: line.Label, Class: string(schema.LabelCell)})
			for _, pv := range line.Values {
				hr.Cells = append(hr.Cells, htmlCell{Text: schema.FormatValue(pv.Value, precision), Class: string(schema.TotalCell)})
			}
			if result.Settings.ShowTrend {
				hr.Cells = append(hr.Cells, htmlCell{
					Text:  line.Trend.Display(),
					Class: strings.TrimSpace(string(schema.TrendCell) + " " + trendClass(line.Trend)),
				})
			}
			page.SummaryRows = append(page.SummaryRows, hr)
		}
	}

	if err := pivotTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

// writeBoxplotHTML renders one table per non-empty partition.
func writeBoxplotHTML(w io.Writer, result *schema.BoxplotResult, fmtFloat func(float64) string) error {
	page := boxplotPage{
		htmlPage:   htmlPage{Title: "Boxplot summary", CycleID: result.CycleID},
		Header:     boxplotHeader,
		Thresholds: result.Thresholds,
	}
	for _, part := range result.Partitions() {
		if len(part.Summaries) == 0 {
			continue
		}
		section := boxplotSection{Name: part.Name}
		for _, s := range part.Summaries {
			row := boxplotCells(s, fmtFloat)
			section.Rows = append(section.Rows, boxplotRow{Area: row[0], Color: s.Color, Stats: row[1:]})
		}
		page.Partitions = append(page.Partitions, section)
	}
	if err := boxplotTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

func writeTrendHTML(w io.Writer, result *schema.TrendResult) error {
	page := trendPage{
		htmlPage: htmlPage{Title: "Trend"},
		Label:    result.Label.Display(),
		Class:    trendClass(result.Label),
		Values:   result.Values,
	}
	if err := trendTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}
