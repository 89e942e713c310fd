// Package analysis holds the canned correlation statements shown next to
// the chart. The values describe one fixed dataset and are looked up, never
// computed.
package analysis

import "github.com/san-kum/statplot/internal/dataset"

// Pair identifies an x/y field combination.
type Pair struct {
	X, Y dataset.Field
}

var defaultResponses = map[Pair]string{
	{dataset.Obese, dataset.BachelorOrHigher}:         "There is a strong negative correlation (-0.751735757) between having at least a Bachelor's Degree and being obese.",
	{dataset.CurrentSmoker, dataset.BachelorOrHigher}: "There is a negative correlation (-0.617179941) between having at least a Bachelor's Degree and being a current smoker.",
	{dataset.Obese, dataset.HighSchoolGrad}:           "There is a positive correlation (0.67396584) between being a high school graduate and being obese.",
	{dataset.CurrentSmoker, dataset.HighSchoolGrad}:   "There is a strong positive correlation (0.757923374) between being a high school graduate and being a current smoker.",
}

// Table is a 2x2 lookup of analysis text keyed by axis pairing.
type Table struct {
	responses map[Pair]string
}

// Default returns the table for the bundled state statistics.
func Default() *Table {
	return New(nil)
}

// New returns the default table with any non-empty overrides applied.
func New(overrides map[Pair]string) *Table {
	t := &Table{responses: make(map[Pair]string, len(defaultResponses))}
	for k, v := range defaultResponses {
		t.responses[k] = v
	}
	for k, v := range overrides {
		if _, ok := t.responses[k]; ok && v != "" {
			t.responses[k] = v
		}
	}
	return t
}

// Text returns the statement for (x, y), or "" for a pairing outside the table.
func (t *Table) Text(x, y dataset.Field) string {
	return t.responses[Pair{X: x, Y: y}]
}

// Pairs lists the table keys in display order.
func Pairs() []Pair {
	return []Pair{
		{dataset.Obese, dataset.BachelorOrHigher},
		{dataset.CurrentSmoker, dataset.BachelorOrHigher},
		{dataset.Obese, dataset.HighSchoolGrad},
		{dataset.CurrentSmoker, dataset.HighSchoolGrad},
	}
}

// Text looks up (x, y) in the default table.
func Text(x, y dataset.Field) string {
	return defaultTable.Text(x, y)
}

var defaultTable = Default()
