package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/statplot/internal/chart"
	"github.com/san-kum/statplot/internal/dataset"
)

const (
	minCanvasW = 20
	minCanvasH = 6
	chromeRows = 12
)

// model drives a chart.Controller from the keyboard: keys stand in for
// clicks on axis labels and a cursor over the marks stands in for hover.
type model struct {
	ctrl          *chart.Controller
	order         []int
	cursor        int
	width, height int
	err           error
}

func NewApp(ctrl *chart.Controller) model {
	return model{ctrl: ctrl, cursor: -1, width: 80, height: 32, order: leftToRight(ctrl.Scene())}
}

// Run starts the terminal front end. ctrl must already be initialized.
func Run(ctrl *chart.Controller) error {
	p := tea.NewProgram(NewApp(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "left", "right", "h", "l":
		m.click(m.inactiveField())
	case "o":
		m.click(dataset.Obese)
	case "s":
		m.click(dataset.CurrentSmoker)
	case "down", "j":
		m.hover(1)
	case "up", "k":
		m.hover(-1)
	case "esc":
		m.leave()
		m.cursor = -1
	}
	return m, nil
}

func (m *model) click(f dataset.Field) {
	if err := m.ctrl.Dispatch(chart.ClickEvent(f)); err != nil {
		m.err = err
		return
	}
	// marks moved; keep hovering the same record
	prev := m.hovered()
	m.order = leftToRight(m.ctrl.Scene())
	m.cursor = -1
	if prev >= 0 {
		for i, idx := range m.order {
			if idx == prev {
				m.cursor = i
			}
		}
		m.err = m.ctrl.Dispatch(chart.HoverEvent(prev))
	}
}

func (m *model) hover(step int) {
	if len(m.order) == 0 {
		return
	}
	m.leave()
	n := len(m.order)
	switch {
	case m.cursor >= 0:
		m.cursor = (m.cursor + step + n) % n
	case step > 0:
		m.cursor = 0
	default:
		m.cursor = n - 1
	}
	m.err = m.ctrl.Dispatch(chart.HoverEvent(m.order[m.cursor]))
}

func (m *model) leave() {
	if idx := m.hovered(); idx >= 0 {
		m.err = m.ctrl.Dispatch(chart.LeaveEvent(idx))
	}
}

func (m model) hovered() int {
	if m.cursor < 0 || m.cursor >= len(m.order) {
		return -1
	}
	return m.order[m.cursor]
}

func (m model) inactiveField() dataset.Field {
	x := m.ctrl.State().X
	for _, f := range dataset.Horizontal {
		if f != x {
			return f
		}
	}
	return x
}

func (m model) View() string {
	s := m.ctrl.Scene()
	if s == nil {
		return ErrorText.Render("chart not initialized") + "\n"
	}

	var b strings.Builder
	b.WriteString(Title.Render("state statistics") + "  " + Subtle.Render(fmt.Sprintf("%d states", len(s.Marks))) + "\n\n")

	var xLabels []string
	yLabel := ""
	for _, a := range s.AxisLabels {
		switch {
		case a.Horizontal && a.Active:
			xLabels = append(xLabels, ActiveLabel.Render(a.Text))
		case a.Horizontal:
			xLabels = append(xLabels, InactiveLabel.Render(a.Text))
		default:
			yLabel = a.Text
		}
	}

	w := max(m.width-4, minCanvasW)
	h := max(m.height-chromeRows, minCanvasH)
	canvas := NewCanvas(w, h)
	canvas.Plot(s)

	plot := PlotStyle.Render(strings.TrimRight(canvas.String(), "\n"))
	if mark, ok := s.Hovered(); ok {
		tip := TooltipPanel.Render(mark.Tooltip.String())
		plot = lipgloss.JoinHorizontal(lipgloss.Top, plot, " ", tip)
	}

	b.WriteString(Subtle.Render("y: "+yLabel) + "\n")
	b.WriteString(plot + "\n")
	b.WriteString("x: " + strings.Join(xLabels, " ") + "\n\n")
	b.WriteString(GlassPanel.Render(AnalysisText.Render(s.Analysis)) + "\n")
	b.WriteString(Subtle.Render("x spread ") + SparklineChart(sortedValues(s), min(w, 60)) + "\n")

	if m.err != nil {
		b.WriteString(ErrorText.Render(m.err.Error()) + "\n")
	}
	b.WriteString(KeyHint.Render("tab switch axis · o/s pick axis · j/k hover · esc hide · q quit") + "\n")
	return b.String()
}

// leftToRight orders mark indices by x position so the cursor sweeps
// across the chart.
func leftToRight(s *chart.Scene) []int {
	if s == nil {
		return nil
	}
	order := make([]int, 0, len(s.Marks))
	for _, mk := range s.Marks {
		if !math.IsNaN(mk.CX) {
			order = append(order, mk.Index)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.Marks[order[i]].CX < s.Marks[order[j]].CX
	})
	return order
}

func sortedValues(s *chart.Scene) []float64 {
	vs := make([]float64, 0, len(s.Marks))
	for _, mk := range s.Marks {
		if !math.IsNaN(mk.XValue) {
			vs = append(vs, mk.XValue)
		}
	}
	sort.Float64s(vs)
	return vs
}
