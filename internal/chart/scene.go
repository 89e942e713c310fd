package chart

import (
	"strconv"
	"strings"

	"github.com/san-kum/statplot/internal/config"
	"github.com/san-kum/statplot/internal/dataset"
	"github.com/san-kum/statplot/internal/scale"
)

// NoHover is the Scene.Hover value when no tooltip is shown.
const NoHover = -1

// Scene is everything a front end needs to draw one frame of the chart.
// Coordinates are relative to the plotting area origin.
type Scene struct {
	Layout     config.Layout
	X, Y       dataset.Field
	Bounds     scale.Bounds
	Marks      []Mark
	Labels     []Label
	XAxis      Axis
	YAxis      Axis
	AxisLabels []AxisLabel
	Analysis   string
	Hover      int
}

type Mark struct {
	Index   int
	State   string
	Abbr    string
	XValue  float64
	YValue  float64
	CX, CY  float64
	R       float64
	Fill    string
	Tooltip Tooltip
}

// Label is the abbreviation drawn on top of a mark.
type Label struct {
	Text string
	X, Y float64
	Fill string
}

type Tick struct {
	Value float64
	Pos   float64
	Text  string
}

type Axis struct {
	Field dataset.Field
	Ticks []Tick
}

// AxisLabel is a caption under or beside an axis. Only horizontal labels
// are clickable; exactly one of them is active at a time.
type AxisLabel struct {
	Field      dataset.Field
	Text       string
	Horizontal bool
	Active     bool
}

// Tooltip is the hover text for one mark.
type Tooltip struct {
	Title string
	Lines []string
}

// HTML renders the tooltip the way the page shows it.
func (t Tooltip) HTML() string {
	return t.Title + "<hr>" + strings.Join(t.Lines, "<br>")
}

func (t Tooltip) String() string {
	return t.Title + "\n" + strings.Join(t.Lines, "\n")
}

// Hovered returns the mark whose tooltip is showing.
func (s *Scene) Hovered() (Mark, bool) {
	if s.Hover < 0 || s.Hover >= len(s.Marks) {
		return Mark{}, false
	}
	return s.Marks[s.Hover], true
}

// ActiveLabel returns the active horizontal label.
func (s *Scene) ActiveLabel() (AxisLabel, bool) {
	for _, l := range s.AxisLabels {
		if l.Horizontal && l.Active {
			return l, true
		}
	}
	return AxisLabel{}, false
}

// Clone returns a deep copy so callers cannot reach controller state.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	out := *s
	out.Marks = make([]Mark, len(s.Marks))
	for i, m := range s.Marks {
		m.Tooltip.Lines = append([]string(nil), m.Tooltip.Lines...)
		out.Marks[i] = m
	}
	out.Labels = append([]Label(nil), s.Labels...)
	out.XAxis.Ticks = append([]Tick(nil), s.XAxis.Ticks...)
	out.YAxis.Ticks = append([]Tick(nil), s.YAxis.Ticks...)
	out.AxisLabels = append([]AxisLabel(nil), s.AxisLabels...)
	return &out
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func tooltipFor(r dataset.Record, x, y dataset.Field) Tooltip {
	eduPrefix := "College Grad: "
	if y == dataset.HighSchoolGrad {
		eduPrefix = "HS Grad: "
	}
	itemPrefix := "Obese: "
	if x == dataset.CurrentSmoker {
		itemPrefix = "Smoker: "
	}
	return Tooltip{
		Title: r.State,
		Lines: []string{
			eduPrefix + formatValue(r.Value(y)) + "%",
			itemPrefix + formatValue(r.Value(x)) + "%",
		},
	}
}

func axisTicks(s scale.Linear, n int) []Tick {
	values := s.Ticks(n)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Pos: s.Map(v), Text: formatValue(v)}
	}
	return ticks
}
