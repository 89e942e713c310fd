package scale

import "math"

// Linear maps a continuous domain onto a pixel range.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map converts a data value to a pixel coordinate. A degenerate domain maps
// everything to the middle of the range.
func (s Linear) Map(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/span*(s.R1-s.R0)
}

// Invert converts a pixel coordinate back to a data value.
func (s Linear) Invert(px float64) float64 {
	span := s.R1 - s.R0
	if span == 0 {
		return s.D0
	}
	return s.D0 + (px-s.R0)/span*(s.D1-s.D0)
}

// Ticks returns roughly n evenly spaced values inside the domain, using
// steps of 1, 2 or 5 times a power of ten.
func (s Linear) Ticks(n int) []float64 {
	lo, hi := s.D0, s.D1
	if lo > hi {
		lo, hi = hi, lo
	}
	if n <= 0 || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}

	step := tickStep(lo, hi, n)
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)

	ticks := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		ticks = append(ticks, round(i*step, step))
	}
	return ticks
}

func tickStep(lo, hi float64, n int) float64 {
	raw := (hi - lo) / float64(n)
	power := math.Floor(math.Log10(raw))
	base := math.Pow(10, power)
	ratio := raw / base

	switch {
	case ratio >= math.Sqrt(50):
		return 10 * base
	case ratio >= math.Sqrt(10):
		return 5 * base
	case ratio >= math.Sqrt(2):
		return 2 * base
	}
	return base
}

// round trims float noise such as 0.30000000000000004 to the precision of step.
func round(v, step float64) float64 {
	digits := math.Max(0, -math.Floor(math.Log10(step)))
	p := math.Pow(10, digits)
	return math.Round(v*p) / p
}
