package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/statplot/internal/chart"
)

const (
	tickSize     = 6
	labelSpacing = 20
	tooltipWidth = 180
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// SceneToSVG renders a scene as a standalone SVG document.
func SceneToSVG(s *chart.Scene) string {
	if s == nil {
		return ""
	}
	return xmlHeader + SceneToInlineSVG(s)
}

// SceneToInlineSVG renders the <svg> element alone, for embedding in HTML.
// Horizontal axis captions carry class "axis-text active|inactive" and a
// data-axis-name attribute so a page script can wire clicks; each mark
// carries its tooltip as <title>.
func SceneToInlineSVG(s *chart.Scene) string {
	if s == nil {
		return ""
	}

	l := s.Layout
	var sb strings.Builder

	// The plotting area plus bottom margin can exceed the outer height; the
	// axis captions live there, so overflow stays visible.
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" style="overflow: visible" font-family="sans-serif">
<g transform="translate(%.0f, %.0f)">
`, l.Width, l.Height, l.Margin.Left, l.Margin.Top))

	writeXAxis(&sb, s)
	writeYAxis(&sb, s)

	for i, m := range s.Marks {
		// NaN positions stay invisible rather than producing broken attributes
		if math.IsNaN(m.CX) || math.IsNaN(m.CY) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<g class="mark" data-index="%d" data-abbr="%s">
<circle cx="%.1f" cy="%.1f" r="%.0f" fill="%s"><title>%s</title></circle>
`, m.Index, html.EscapeString(m.Abbr), m.CX, m.CY, m.R, html.EscapeString(m.Fill), html.EscapeString(m.Tooltip.String())))

		lb := s.Labels[i]
		sb.WriteString(fmt.Sprintf(`<text class="stateText" x="%.1f" y="%.1f" text-anchor="middle" fill="%s" font-size="10" font-weight="bold" pointer-events="none">%s</text>
</g>
`, lb.X, lb.Y, html.EscapeString(lb.Fill), html.EscapeString(lb.Text)))
	}

	writeAxisLabels(&sb, s)

	if m, ok := s.Hovered(); ok && !math.IsNaN(m.CX) && !math.IsNaN(m.CY) {
		writeTooltip(&sb, m)
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func writeXAxis(sb *strings.Builder, s *chart.Scene) {
	w, h := s.Layout.InnerWidth, s.Layout.InnerHeight
	sb.WriteString(fmt.Sprintf(`<g class="x-axis" transform="translate(0,%.0f)">
<path stroke="black" fill="none" d="M0,0H%.1f"/>
`, h, w))
	for _, t := range s.XAxis.Ticks {
		sb.WriteString(fmt.Sprintf(`<g class="tick" transform="translate(%.1f,0)"><line stroke="black" y2="%d"/><text y="%d" dy="0.71em" text-anchor="middle" font-size="10">%s</text></g>
`, t.Pos, tickSize, tickSize+3, t.Text))
	}
	sb.WriteString("</g>\n")
}

func writeYAxis(sb *strings.Builder, s *chart.Scene) {
	h := s.Layout.InnerHeight
	sb.WriteString(fmt.Sprintf(`<g class="y-axis">
<path stroke="black" fill="none" d="M0,0V%.1f"/>
`, h))
	for _, t := range s.YAxis.Ticks {
		sb.WriteString(fmt.Sprintf(`<g class="tick" transform="translate(0,%.1f)"><line stroke="black" x2="-%d"/><text x="-%d" dy="0.32em" text-anchor="end" font-size="10">%s</text></g>
`, t.Pos, tickSize, tickSize+3, t.Text))
	}
	sb.WriteString("</g>\n")
}

func writeAxisLabels(sb *strings.Builder, s *chart.Scene) {
	l := s.Layout
	row := 0
	for _, a := range s.AxisLabels {
		if a.Horizontal {
			class := "axis-text inactive"
			if a.Active {
				class = "axis-text active"
			}
			row++
			sb.WriteString(fmt.Sprintf(`<text class="%s" data-axis-name="%s" x="%.1f" y="%.1f" text-anchor="middle">%s</text>
`, class, a.Field, l.InnerWidth/2, l.InnerHeight+float64(labelSpacing*(row+1)), html.EscapeString(a.Text)))
			continue
		}
		sb.WriteString(fmt.Sprintf(`<text class="axis-text y-label" data-axis-name="%s" transform="rotate(-90)" x="%.1f" y="%.1f" text-anchor="middle">%s</text>
`, a.Field, -l.InnerHeight/2, -l.Margin.Left+labelSpacing*2, html.EscapeString(a.Text)))
	}
}

func writeTooltip(sb *strings.Builder, m chart.Mark) {
	x := m.CX + m.R
	y := m.CY - m.R
	lines := append([]string{m.Tooltip.Title}, m.Tooltip.Lines...)
	height := float64(len(lines)*14 + 8)

	sb.WriteString(fmt.Sprintf(`<g class="tooltip" transform="translate(%.1f,%.1f)">
<rect width="%d" height="%.0f" rx="4" fill="black" fill-opacity="0.8"/>
`, x, y, tooltipWidth, height))
	for i, line := range lines {
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="white" font-size="11">%s</text>
`, 16+i*14, html.EscapeString(line)))
	}
	sb.WriteString("</g>\n")
}
