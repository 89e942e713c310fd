package scale

import "math"

// Padding factors applied to the data extent before it becomes a domain.
const (
	XLowPad  = 0.8
	XHighPad = 1.1
	YHighPad = 1.1
)

// Bounds is the padded axis extent for one x/y pairing.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// ComputeBounds pads the x extent to [0.8*min, 1.1*max] and the y extent to
// [0, 1.1*max]. NaN values are ignored; an all-NaN column yields NaN bounds.
func ComputeBounds(xs, ys []float64) Bounds {
	xMin, xMax := extent(xs)
	_, yMax := extent(ys)

	return Bounds{
		XMin: xMin * XLowPad,
		XMax: xMax * XHighPad,
		YMin: 0,
		YMax: yMax * YHighPad,
	}
}

// Scales builds the x and y scales for bounds over a plotting area of
// width by height pixels. The y range is flipped so larger values sit higher.
func (b Bounds) Scales(width, height float64) (x, y Linear) {
	x = NewLinear(b.XMin, b.XMax, 0, width)
	y = NewLinear(b.YMin, b.YMax, height, 0)
	return x, y
}

func extent(vs []float64) (lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}
