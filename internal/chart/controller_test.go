package chart_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/statplot/internal/analysis"
	"github.com/san-kum/statplot/internal/chart"
	"github.com/san-kum/statplot/internal/config"
	"github.com/san-kum/statplot/internal/dataset"
)

func record(state, abbr string, obese, edu, smoker float64) dataset.Record {
	return dataset.Record{
		State: state,
		Abbr:  abbr,
		Values: map[dataset.Field]float64{
			dataset.Obese:            obese,
			dataset.BachelorOrHigher: edu,
			dataset.CurrentSmoker:    smoker,
		},
	}
}

func activeField(s *chart.Scene) dataset.Field {
	l, ok := s.ActiveLabel()
	Expect(ok).To(BeTrue())
	return l.Field
}

var _ = Describe("Controller", func() {
	var (
		ds *dataset.Dataset
		c  *chart.Controller
	)

	BeforeEach(func() {
		ds = dataset.New([]dataset.Record{
			record("Alabama", "AL", 35.7, 23.5, 21.5),
			record("Colorado", "CO", 22.3, 38.7, 15.6),
			record("Mississippi", "MS", 37.3, 20.7, 22.7),
		})
		c = chart.New(ds, config.DefaultLayout())
	})

	Describe("Initialize", func() {
		It("renders the default pairing", func() {
			Expect(c.Initialize()).To(Succeed())

			st := c.State()
			Expect(st.X).To(Equal(dataset.Obese))
			Expect(st.Y).To(Equal(dataset.BachelorOrHigher))
			Expect(c.Renders()).To(Equal(1))
			Expect(c.Scene().Marks).To(HaveLen(3))
		})

		It("rejects an empty dataset", func() {
			c = chart.New(dataset.New(nil), config.DefaultLayout())
			Expect(c.Initialize()).To(MatchError(chart.ErrEmptyDataset))
		})

		It("refuses events before initialization", func() {
			_, err := c.OnAxisLabelClick(dataset.CurrentSmoker)
			Expect(err).To(MatchError(chart.ErrNotInitialized))
			Expect(c.Dispatch(chart.HoverEvent(0))).To(MatchError(chart.ErrNotInitialized))
			Expect(c.Scene()).To(BeNil())
		})

		It("honours configured default axes", func() {
			c = chart.New(ds, config.DefaultLayout(), chart.WithDefaultAxes(dataset.CurrentSmoker, dataset.BachelorOrHigher))
			Expect(c.Initialize()).To(Succeed())
			Expect(c.State().X).To(Equal(dataset.CurrentSmoker))
		})
	})

	Describe("Render", func() {
		BeforeEach(func() {
			Expect(c.Initialize()).To(Succeed())
		})

		It("pads the bounds of the active columns", func() {
			b := c.State().Bounds
			Expect(b.XMin).To(BeNumerically("~", 22.3*0.8, 1e-9))
			Expect(b.XMax).To(BeNumerically("~", 37.3*1.1, 1e-9))
			Expect(b.YMin).To(BeZero())
			Expect(b.YMax).To(BeNumerically("~", 38.7*1.1, 1e-9))
		})

		It("keeps every mark inside the plotting area", func() {
			for _, x := range dataset.Horizontal {
				Expect(c.Render(x, dataset.BachelorOrHigher)).To(Succeed())
				for _, m := range c.Scene().Marks {
					Expect(m.CX).To(BeNumerically(">=", 0))
					Expect(m.CX).To(BeNumerically("<=", 700))
					Expect(m.CY).To(BeNumerically(">=", 0))
					Expect(m.CY).To(BeNumerically("<=", 480))
				}
			}
		})

		It("replaces marks instead of accumulating them", func() {
			Expect(c.Render(dataset.CurrentSmoker, dataset.BachelorOrHigher)).To(Succeed())
			Expect(c.Render(dataset.Obese, dataset.BachelorOrHigher)).To(Succeed())

			s := c.Scene()
			Expect(s.Marks).To(HaveLen(3))
			Expect(s.Labels).To(HaveLen(3))
			Expect(c.Renders()).To(Equal(3))
		})

		It("builds tooltips from the active fields", func() {
			Expect(c.Render(dataset.CurrentSmoker, dataset.BachelorOrHigher)).To(Succeed())
			tip := c.Scene().Marks[0].Tooltip
			Expect(tip.Title).To(Equal("Alabama"))
			Expect(tip.Lines).To(Equal([]string{"College Grad: 23.5%", "Smoker: 21.5%"}))
			Expect(tip.HTML()).To(Equal("Alabama<hr>College Grad: 23.5%<br>Smoker: 21.5%"))
		})

		It("rejects fields on the wrong axis", func() {
			Expect(c.Render(dataset.BachelorOrHigher, dataset.Obese)).To(MatchError(chart.ErrNotSelectable))
		})

		It("rejects a vertical column the dataset lacks", func() {
			err := c.Render(dataset.Obese, dataset.HighSchoolGrad)
			Expect(err).To(MatchError(dataset.ErrMissingColumn))
			Expect(c.State().Y).To(Equal(dataset.BachelorOrHigher))
		})

		It("places a NaN value at a NaN position without failing", func() {
			bad := record("Nowhere", "NW", math.NaN(), 10, 10)
			c = chart.New(dataset.New([]dataset.Record{bad, record("Test", "TS", 10, 20, 30)}), config.DefaultLayout())
			Expect(c.Initialize()).To(Succeed())
			Expect(math.IsNaN(c.Scene().Marks[0].CX)).To(BeTrue())
			Expect(c.State().Bounds.XMin).To(BeNumerically("~", 8, 1e-9))
		})
	})

	Describe("OnAxisLabelClick", func() {
		BeforeEach(func() {
			Expect(c.Initialize()).To(Succeed())
		})

		It("ignores a click on the active label", func() {
			before := c.Scene()
			switched, err := c.OnAxisLabelClick(dataset.Obese)
			Expect(err).NotTo(HaveOccurred())
			Expect(switched).To(BeFalse())
			Expect(c.Renders()).To(Equal(1))
			Expect(c.Scene()).To(Equal(before))
		})

		It("flips to the inactive label exactly once", func() {
			switched, err := c.OnAxisLabelClick(dataset.CurrentSmoker)
			Expect(err).NotTo(HaveOccurred())
			Expect(switched).To(BeTrue())
			Expect(c.Renders()).To(Equal(2))
			Expect(c.State().X).To(Equal(dataset.CurrentSmoker))
			Expect(activeField(c.Scene())).To(Equal(dataset.CurrentSmoker))
		})

		It("round-trips back to the original axis", func() {
			_, err := c.OnAxisLabelClick(dataset.CurrentSmoker)
			Expect(err).NotTo(HaveOccurred())
			_, err = c.OnAxisLabelClick(dataset.Obese)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.State().X).To(Equal(dataset.Obese))
			Expect(c.Scene().Analysis).To(Equal(analysis.Text(dataset.Obese, dataset.BachelorOrHigher)))
		})

		It("keeps exactly one horizontal label active", func() {
			for _, f := range []dataset.Field{dataset.CurrentSmoker, dataset.CurrentSmoker, dataset.Obese} {
				_, err := c.OnAxisLabelClick(f)
				Expect(err).NotTo(HaveOccurred())

				active := 0
				for _, l := range c.Scene().AxisLabels {
					if l.Horizontal && l.Active {
						active++
					}
					if !l.Horizontal {
						Expect(l.Active).To(BeFalse())
					}
				}
				Expect(active).To(Equal(1))
			}
		})

		It("rejects the vertical label", func() {
			_, err := c.OnAxisLabelClick(dataset.BachelorOrHigher)
			Expect(err).To(MatchError(chart.ErrNotSelectable))
		})
	})

	Describe("Dispatch", func() {
		var got []chart.Notification

		BeforeEach(func() {
			got = nil
			Expect(c.Initialize()).To(Succeed())
			c.Subscribe(func(n chart.Notification) { got = append(got, n) })
		})

		It("shows and hides tooltips", func() {
			Expect(c.Dispatch(chart.HoverEvent(1))).To(Succeed())
			m, ok := c.Scene().Hovered()
			Expect(ok).To(BeTrue())
			Expect(m.Abbr).To(Equal("CO"))

			Expect(c.Dispatch(chart.LeaveEvent(1))).To(Succeed())
			_, ok = c.Scene().Hovered()
			Expect(ok).To(BeFalse())

			Expect(got).To(HaveLen(2))
			Expect(got[0].Kind).To(Equal(chart.TooltipShown))
			Expect(got[1].Kind).To(Equal(chart.TooltipHidden))
			Expect(got[1].Mark).To(Equal(1))
		})

		It("rejects hover on a missing mark", func() {
			Expect(c.Dispatch(chart.HoverEvent(7))).To(MatchError(chart.ErrUnknownMark))
		})

		It("clears the tooltip on re-render", func() {
			Expect(c.Dispatch(chart.HoverEvent(0))).To(Succeed())
			Expect(c.Dispatch(chart.ClickEvent(dataset.CurrentSmoker))).To(Succeed())
			Expect(c.Scene().Hover).To(Equal(chart.NoHover))
			Expect(got[len(got)-1].Kind).To(Equal(chart.Rendered))
		})

		It("notifies nothing for an ignored click", func() {
			Expect(c.Dispatch(chart.ClickEvent(dataset.Obese))).To(Succeed())
			Expect(got).To(BeEmpty())
		})

		It("stops notifying after unsubscribe", func() {
			var extra int
			unsubscribe := c.Subscribe(func(chart.Notification) { extra++ })
			Expect(c.Dispatch(chart.ClickEvent(dataset.CurrentSmoker))).To(Succeed())
			unsubscribe()
			Expect(c.Dispatch(chart.ClickEvent(dataset.Obese))).To(Succeed())
			Expect(extra).To(Equal(1))
			Expect(got).To(HaveLen(2))
		})
	})

	Describe("ComputeAnalysisText", func() {
		It("returns the four canned statements", func() {
			for _, p := range analysis.Pairs() {
				Expect(c.ComputeAnalysisText(p.X, p.Y)).To(Equal(analysis.Text(p.X, p.Y)))
				Expect(c.ComputeAnalysisText(p.X, p.Y)).NotTo(BeEmpty())
			}
		})

		It("uses an injected table", func() {
			table := analysis.New(map[analysis.Pair]string{{X: dataset.Obese, Y: dataset.BachelorOrHigher}: "custom"})
			c = chart.New(ds, config.DefaultLayout(), chart.WithAnalysis(table))
			Expect(c.Initialize()).To(Succeed())
			Expect(c.Scene().Analysis).To(Equal("custom"))
		})
	})
})

var _ = Describe("Single record scenario", func() {
	var c *chart.Controller

	BeforeEach(func() {
		ds := dataset.New([]dataset.Record{record("Test", "TS", 10, 20, 30)})
		c = chart.New(ds, config.DefaultLayout())
		Expect(c.Initialize()).To(Succeed())
	})

	It("draws one mark at the scaled position", func() {
		s := c.Scene()
		st := c.State()
		Expect(s.Marks).To(HaveLen(1))
		Expect(s.Marks[0].CX).To(BeNumerically("~", st.XScale.Map(10), 1e-9))
		Expect(s.Marks[0].CY).To(BeNumerically("~", st.YScale.Map(20), 1e-9))
		// x domain [8, 11] over 700px, y domain [0, 22] over 480px
		Expect(s.Marks[0].CX).To(BeNumerically("~", 2.0/3.0*700, 1e-9))
		Expect(s.Marks[0].CY).To(BeNumerically("~", 480-20.0/22.0*480, 1e-9))
		Expect(s.Labels).To(HaveLen(1))
		Expect(s.Labels[0].Text).To(Equal("TS"))
		Expect(s.Labels[0].Y).To(BeNumerically("~", s.Marks[0].CY+4, 1e-9))
		Expect(s.Analysis).To(Equal(analysis.Text(dataset.Obese, dataset.BachelorOrHigher)))
	})

	It("switches analysis and active label on a smoker click", func() {
		var rendered []chart.Notification
		c.Subscribe(func(n chart.Notification) { rendered = append(rendered, n) })

		Expect(c.Dispatch(chart.ClickEvent(dataset.CurrentSmoker))).To(Succeed())

		Expect(rendered).To(HaveLen(1))
		Expect(rendered[0].X).To(Equal(dataset.CurrentSmoker))
		Expect(rendered[0].Y).To(Equal(dataset.BachelorOrHigher))
		Expect(c.Scene().Analysis).To(Equal(analysis.Text(dataset.CurrentSmoker, dataset.BachelorOrHigher)))
		Expect(activeField(c.Scene())).To(Equal(dataset.CurrentSmoker))
	})
})
