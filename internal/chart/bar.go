// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package chart renders query results as self-contained HTML fragments for
// embedding in the assistant UI. Fragments carry their own inline styling
// and SVG markup; no external assets or scripts are referenced.
package chart

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	apperrors "snowq/cli/internal/errors"
	"snowq/cli/internal/warehouse"
)

// Fixed dark theme shared by every fragment.
const (
	backgroundColor = "#2B2C2E"
	fontColor       = "white"
	gridColor       = "#4A4B4D"
	fontFamily      = "Open Sans, verdana, arial, sans-serif"
)

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Point is a single bar: a label from the first result column and a value
// from the second.
type Point struct {
	Label string
	Value float64
}

// canvas geometry, close to the renderer defaults the assistant UI expects
const (
	chartWidth   = 700.0
	chartHeight  = 450.0
	marginLeft   = 70.0
	marginRight  = 20.0
	marginTop    = 20.0
	marginBottom = 80.0
)

// Bar renders the table as a bar-chart HTML fragment with the given title.
// The first column provides the x labels, the second the y values. Tables
// with fewer than two columns cannot be charted and yield an empty string
// with an error.
func Bar(table *warehouse.Table, title string) (string, error) {
	if table == nil || len(table.Columns) < 2 {
		return "", apperrors.New(apperrors.ChartFailed, "at least two result columns are required for a chart")
	}

	points := make([]Point, 0, len(table.Rows))
	for i, row := range table.Rows {
		if len(row) < 2 {
			return "", apperrors.New(apperrors.ChartFailed, fmt.Sprintf("row %d has fewer than two values", i))
		}
		value, err := toFloat(row[1])
		if err != nil {
			return "", apperrors.Wrap(apperrors.ChartFailed,
				fmt.Sprintf("column %q is not numeric", table.Columns[1]), err)
		}
		points = append(points, Point{Label: labelString(row[0]), Value: value})
	}

	view := buildView(points, title, table.Columns[0], table.Columns[1])

	var b strings.Builder
	if err := barTemplate.Execute(&b, view); err != nil {
		return "", apperrors.Wrap(apperrors.ChartFailed, "fragment rendering failed", err)
	}
	return b.String(), nil
}

// toFloat coerces the value types the warehouse driver produces into a
// chartable number. NULLs chart as zero-height bars.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number", x)
		}
		return f, nil
	case []byte:
		return toFloat(string(x))
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func labelString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

// barView is the fully positioned chart handed to the template. All layout
// math happens here; the template only places elements.
type barView struct {
	Title      string
	XLabel     string
	YLabel     string
	Width      float64
	Height     float64
	Background string
	FontColor  string
	FontFamily string
	GridColor  string
	PlotLeft   float64
	PlotTop    float64
	PlotRight  float64
	PlotBottom float64
	Bars       []barBox
	Ticks      []tick
	XTitleX    float64
	XTitleY    float64
	YTitleX    float64
	YTitleY    float64
}

type barBox struct {
	X, Y, W, H float64
	Color      string
	Label      string
	LabelX     float64
	LabelY     float64
	Value      string
}

type tick struct {
	Y    float64
	Text string
}

func buildView(points []Point, title, xLabel, yLabel string) barView {
	plotLeft := marginLeft
	plotTop := marginTop
	plotRight := chartWidth - marginRight
	plotBottom := chartHeight - marginBottom
	plotW := plotRight - plotLeft
	plotH := plotBottom - plotTop

	maxVal := 0.0
	for _, p := range points {
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	view := barView{
		Title:      title,
		XLabel:     xLabel,
		YLabel:     yLabel,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: backgroundColor,
		FontColor:  fontColor,
		FontFamily: fontFamily,
		GridColor:  gridColor,
		PlotLeft:   plotLeft,
		PlotTop:    plotTop,
		PlotRight:  plotRight,
		PlotBottom: plotBottom,
	}

	const tickCount = 4
	for i := 0; i <= tickCount; i++ {
		frac := float64(i) / tickCount
		view.Ticks = append(view.Ticks, tick{
			Y:    plotBottom - frac*plotH,
			Text: formatTick(maxVal * frac),
		})
	}

	if len(points) == 0 {
		return view
	}

	slot := plotW / float64(len(points))
	barW := slot * 0.7
	for i, p := range points {
		h := 0.0
		if maxVal > 0 && p.Value > 0 {
			h = p.Value / maxVal * plotH
		}
		x := plotLeft + slot*float64(i) + (slot-barW)/2
		view.Bars = append(view.Bars, barBox{
			X:      x,
			Y:      plotBottom - h,
			W:      barW,
			H:      h,
			Color:  defaultColors[0],
			Label:  p.Label,
			LabelX: plotLeft + slot*float64(i) + slot/2,
			LabelY: plotBottom + 18,
			Value:  formatTick(p.Value),
		})
	}

	view.XTitleX = plotLeft + plotW/2
	view.XTitleY = chartHeight - 24
	view.YTitleX = 18
	view.YTitleY = plotTop + plotH/2
	return view
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

var barTemplate = template.Must(template.New("bar").Parse(barTemplateHTML))

const barTemplateHTML = `<div class="snowq-chart" style="background-color:{{.Background}};color:{{.FontColor}};font-family:{{.FontFamily}};display:inline-block;padding:12px;border-radius:6px;">
<div class="snowq-chart-title" style="text-align:center;font-size:17px;padding:4px 0 8px 0;">{{.Title}}</div>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" xmlns="http://www.w3.org/2000/svg" role="img">
<rect x="0" y="0" width="{{.Width}}" height="{{.Height}}" fill="{{.Background}}"/>
{{- range .Ticks}}
<line x1="{{$.PlotLeft}}" y1="{{.Y}}" x2="{{$.PlotRight}}" y2="{{.Y}}" stroke="{{$.GridColor}}" stroke-width="1"/>
<text x="{{$.PlotLeft}}" y="{{.Y}}" dx="-8" dy="4" fill="{{$.FontColor}}" font-size="12" text-anchor="end">{{.Text}}</text>
{{- end}}
{{- range .Bars}}
<rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" fill="{{.Color}}"><title>{{.Label}}: {{.Value}}</title></rect>
<text x="{{.LabelX}}" y="{{.LabelY}}" fill="{{$.FontColor}}" font-size="12" text-anchor="middle">{{.Label}}</text>
{{- end}}
<line x1="{{.PlotLeft}}" y1="{{.PlotTop}}" x2="{{.PlotLeft}}" y2="{{.PlotBottom}}" stroke="{{.GridColor}}" stroke-width="1"/>
<line x1="{{.PlotLeft}}" y1="{{.PlotBottom}}" x2="{{.PlotRight}}" y2="{{.PlotBottom}}" stroke="{{.GridColor}}" stroke-width="1"/>
<text x="{{.XTitleX}}" y="{{.XTitleY}}" fill="{{.FontColor}}" font-size="14" text-anchor="middle">{{.XLabel}}</text>
<text x="{{.YTitleX}}" y="{{.YTitleY}}" fill="{{.FontColor}}" font-size="14" text-anchor="middle" transform="rotate(-90 {{.YTitleX}} {{.YTitleY}})">{{.YLabel}}</text>
</svg>
</div>
`
