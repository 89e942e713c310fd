package chart

import (
	"fmt"

	"github.com/san-kum/statplot/internal/analysis"
	"github.com/san-kum/statplot/internal/config"
	"github.com/san-kum/statplot/internal/dataset"
	"github.com/san-kum/statplot/internal/scale"
)

// labelOffset drops the abbreviation below the mark center so it reads as centered.
const labelOffset = 4

// State is the axis selection plus the scales derived from it.
type State struct {
	X, Y   dataset.Field
	Bounds scale.Bounds
	XScale scale.Linear
	YScale scale.Linear
}

type Controller struct {
	data     *dataset.Dataset
	layout   config.Layout
	table    *analysis.Table
	labels   map[dataset.Field]string
	defaultX dataset.Field
	defaultY dataset.Field

	initialized bool
	state       State
	scene       *Scene
	renders     int
	listeners   []Listener
}

type Option func(*Controller)

// WithAnalysis replaces the default analysis table.
func WithAnalysis(t *analysis.Table) Option {
	return func(c *Controller) {
		if t != nil {
			c.table = t
		}
	}
}

// WithLabels sets the caption text for axis labels.
func WithLabels(labels map[dataset.Field]string) Option {
	return func(c *Controller) {
		for f, s := range labels {
			c.labels[f] = s
		}
	}
}

// WithDefaultAxes sets the pairing Initialize renders first.
func WithDefaultAxes(x, y dataset.Field) Option {
	return func(c *Controller) {
		c.defaultX, c.defaultY = x, y
	}
}

func New(ds *dataset.Dataset, layout config.Layout, opts ...Option) *Controller {
	c := &Controller{
		data:     ds,
		layout:   layout,
		table:    analysis.Default(),
		labels:   make(map[dataset.Field]string),
		defaultX: dataset.Obese,
		defaultY: dataset.BachelorOrHigher,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize renders the default pairing. It must run once before any event.
func (c *Controller) Initialize() error {
	if c.data.Len() == 0 {
		return ErrEmptyDataset
	}
	c.initialized = true
	if err := c.Render(c.defaultX, c.defaultY); err != nil {
		c.initialized = false
		return err
	}
	return nil
}

// Render recomputes the bounds for (x, y) and rebuilds the whole scene.
// Marks from a previous render are replaced, never appended to.
func (c *Controller) Render(x, y dataset.Field) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if !x.IsHorizontal() {
		return fmt.Errorf("%w: x=%s", ErrNotSelectable, x)
	}
	if !y.IsVertical() {
		return fmt.Errorf("%w: y=%s", ErrNotSelectable, y)
	}
	for _, f := range []dataset.Field{x, y} {
		if !c.data.Has(f) {
			return fmt.Errorf("chart: render %s/%s: %w %q", x, y, dataset.ErrMissingColumn, f)
		}
	}

	bounds := scale.ComputeBounds(c.data.Values(x), c.data.Values(y))
	xs, ys := bounds.Scales(c.layout.InnerWidth, c.layout.InnerHeight)

	c.state = State{X: x, Y: y, Bounds: bounds, XScale: xs, YScale: ys}
	c.scene = c.buildScene()
	c.renders++

	c.notify(Notification{Kind: Rendered, X: x, Y: y, Mark: NoHover})
	return nil
}

func (c *Controller) buildScene() *Scene {
	st := c.state
	n := c.data.Len()

	scene := &Scene{
		Layout:   c.layout,
		X:        st.X,
		Y:        st.Y,
		Bounds:   st.Bounds,
		Marks:    make([]Mark, 0, n),
		Labels:   make([]Label, 0, n),
		XAxis:    Axis{Field: st.X, Ticks: axisTicks(st.XScale, c.layout.Ticks)},
		YAxis:    Axis{Field: st.Y, Ticks: axisTicks(st.YScale, c.layout.Ticks)},
		Analysis: c.ComputeAnalysisText(st.X, st.Y),
		Hover:    NoHover,
	}

	for i := 0; i < n; i++ {
		r := c.data.At(i)
		xv, yv := r.Value(st.X), r.Value(st.Y)
		cx, cy := st.XScale.Map(xv), st.YScale.Map(yv)

		scene.Marks = append(scene.Marks, Mark{
			Index:   i,
			State:   r.State,
			Abbr:    r.Abbr,
			XValue:  xv,
			YValue:  yv,
			CX:      cx,
			CY:      cy,
			R:       c.layout.MarkRadius,
			Fill:    c.layout.MarkFill,
			Tooltip: tooltipFor(r, st.X, st.Y),
		})
		scene.Labels = append(scene.Labels, Label{
			Text: r.Abbr,
			X:    cx,
			Y:    cy + labelOffset,
			Fill: c.layout.LabelFill,
		})
	}

	for _, f := range dataset.Horizontal {
		scene.AxisLabels = append(scene.AxisLabels, AxisLabel{
			Field:      f,
			Text:       c.label(f),
			Horizontal: true,
			Active:     f == st.X,
		})
	}
	scene.AxisLabels = append(scene.AxisLabels, AxisLabel{
		Field: st.Y,
		Text:  c.label(st.Y),
	})

	return scene
}

// OnAxisLabelClick switches the x axis to f. Clicking the label that is
// already active does nothing and reports false.
func (c *Controller) OnAxisLabelClick(f dataset.Field) (bool, error) {
	if !c.initialized {
		return false, ErrNotInitialized
	}
	if !f.IsHorizontal() {
		return false, fmt.Errorf("%w: %s", ErrNotSelectable, f)
	}
	if f == c.state.X {
		return false, nil
	}
	if err := c.Render(f, c.state.Y); err != nil {
		return false, err
	}
	return true, nil
}

// ComputeAnalysisText looks up the canned statement for a pairing.
func (c *Controller) ComputeAnalysisText(x, y dataset.Field) string {
	return c.table.Text(x, y)
}

// Dispatch handles one UI event synchronously.
func (c *Controller) Dispatch(ev Event) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	switch ev.Kind {
	case Click:
		_, err := c.OnAxisLabelClick(ev.Field)
		return err
	case MouseOver:
		if ev.Mark < 0 || ev.Mark >= len(c.scene.Marks) {
			return fmt.Errorf("%w: %d", ErrUnknownMark, ev.Mark)
		}
		c.scene.Hover = ev.Mark
		c.notify(Notification{Kind: TooltipShown, X: c.state.X, Y: c.state.Y, Mark: ev.Mark})
	case MouseOut:
		if c.scene.Hover == NoHover {
			return nil
		}
		mark := c.scene.Hover
		c.scene.Hover = NoHover
		c.notify(Notification{Kind: TooltipHidden, X: c.state.X, Y: c.state.Y, Mark: mark})
	default:
		return fmt.Errorf("chart: unsupported event %v", ev.Kind)
	}
	return nil
}

// Subscribe registers fn for every notification and returns a func that
// removes it.
func (c *Controller) Subscribe(fn Listener) func() {
	c.listeners = append(c.listeners, fn)
	idx := len(c.listeners) - 1
	return func() {
		if idx < len(c.listeners) {
			c.listeners[idx] = nil
		}
	}
}

func (c *Controller) notify(n Notification) {
	if len(c.listeners) == 0 {
		return
	}
	n.Scene = c.scene.Clone()
	for _, fn := range c.listeners {
		if fn != nil {
			fn(n)
		}
	}
}

// Scene returns a copy of the current scene, or nil before Initialize.
func (c *Controller) Scene() *Scene {
	return c.scene.Clone()
}

func (c *Controller) State() State {
	return c.state
}

// Renders counts completed renders since construction.
func (c *Controller) Renders() int {
	return c.renders
}

func (c *Controller) Dataset() *dataset.Dataset {
	return c.data
}

func (c *Controller) label(f dataset.Field) string {
	if s, ok := c.labels[f]; ok && s != "" {
		return s
	}
	return string(f)
}
