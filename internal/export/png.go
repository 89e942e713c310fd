package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/statplot/internal/chart"
)

// namedColors covers the fills a layout is likely to name; anything else is
// parsed as hex.
var namedColors = map[string]drawing.Color{
	"lightblue": drawing.ColorFromHex("add8e6"),
	"white":     drawing.ColorWhite,
	"black":     drawing.ColorBlack,
}

func parseColor(s string) drawing.Color {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c
	}
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

// pointStyle draws dots only, no connecting line.
func pointStyle(col drawing.Color, radius float64) gochart.Style {
	return gochart.Style{
		StrokeWidth: 0,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    radius,
		DotColor:    col,
	}
}

// SceneToPNG renders the scene as a static PNG. Axis captions come from the
// scene's axis labels; tooltips are not drawn.
func SceneToPNG(w io.Writer, s *chart.Scene) error {
	if s == nil {
		return fmt.Errorf("export: nil scene")
	}

	xs := make([]float64, 0, len(s.Marks))
	ys := make([]float64, 0, len(s.Marks))
	notes := make([]gochart.Value2, 0, len(s.Marks))
	for _, m := range s.Marks {
		if math.IsNaN(m.XValue) || math.IsNaN(m.YValue) {
			continue
		}
		xs = append(xs, m.XValue)
		ys = append(ys, m.YValue)
		notes = append(notes, gochart.Value2{XValue: m.XValue, YValue: m.YValue, Label: m.Abbr})
	}
	if len(xs) == 0 {
		return fmt.Errorf("export: no plottable marks")
	}

	var xName, yName string
	for _, a := range s.AxisLabels {
		switch {
		case a.Horizontal && a.Active:
			xName = a.Text
		case !a.Horizontal:
			yName = a.Text
		}
	}

	l := s.Layout
	graph := gochart.Chart{
		Width:  int(l.Width),
		Height: int(l.Height),
		Background: gochart.Style{Padding: gochart.Box{
			Top:    int(l.Margin.Top),
			Left:   int(l.Margin.Left / 2),
			Right:  int(l.Margin.Right),
			Bottom: int(l.Margin.Bottom / 2),
		}},
		XAxis: gochart.XAxis{Name: xName, Range: &gochart.ContinuousRange{Min: s.Bounds.XMin, Max: s.Bounds.XMax}},
		YAxis: gochart.YAxis{Name: yName, Range: &gochart.ContinuousRange{Min: s.Bounds.YMin, Max: s.Bounds.YMax}},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "states",
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(parseColor(l.MarkFill), l.MarkRadius/2),
			},
			gochart.AnnotationSeries{Annotations: notes},
		},
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("export: render png: %w", err)
	}
	return nil
}
