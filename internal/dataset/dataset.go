package dataset

import (
	"errors"
	"fmt"
	"math"
)

// Record is one row: a state and its percentage columns.
type Record struct {
	State  string            `json:"state"`
	Abbr   string            `json:"abbr"`
	Values map[Field]float64 `json:"values"`
}

// Value returns the record's value for f, or NaN when the column is absent.
func (r Record) Value(f Field) float64 {
	v, ok := r.Values[f]
	if !ok {
		return math.NaN()
	}
	return v
}

var columnOrder = []Field{Obese, BachelorOrHigher, CurrentSmoker, HighSchoolGrad}

// Dataset is the ordered, read-only set of records loaded at startup.
type Dataset struct {
	records []Record
	fields  map[Field]bool
}

// New builds a Dataset from already parsed records. fields lists the
// columns present; when empty it is inferred from the first record.
func New(records []Record, fields ...Field) *Dataset {
	d := &Dataset{
		records: make([]Record, len(records)),
		fields:  make(map[Field]bool),
	}
	copy(d.records, records)
	if len(fields) == 0 && len(records) > 0 {
		for f := range records[0].Values {
			fields = append(fields, f)
		}
	}
	for _, f := range fields {
		d.fields[f] = true
	}
	return d
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of the records in file order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// At returns the i-th record, or a zero Record when i is out of range.
func (d *Dataset) At(i int) Record {
	if i < 0 || i >= d.Len() {
		return Record{}
	}
	return d.records[i]
}

// Has reports whether the column for f was loaded.
func (d *Dataset) Has(f Field) bool {
	return d != nil && d.fields[f]
}

// Values extracts one column in record order.
func (d *Dataset) Values(f Field) []float64 {
	if d == nil {
		return nil
	}
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = r.Value(f)
	}
	return out
}

// Validate checks the percentage range and abbreviation uniqueness. Loading
// never fails on these; callers decide whether to surface them.
func (d *Dataset) Validate() error {
	if d == nil {
		return nil
	}
	var errs []error
	seen := make(map[string]int, len(d.records))
	for i, r := range d.records {
		if j, dup := seen[r.Abbr]; dup {
			errs = append(errs, fmt.Errorf("%w: %q at rows %d and %d", ErrDuplicateAbbr, r.Abbr, j+1, i+1))
		} else {
			seen[r.Abbr] = i
		}
		for _, f := range columnOrder {
			v, ok := r.Values[f]
			if !ok {
				continue
			}
			if math.IsNaN(v) || v < 0 || v > 100 {
				errs = append(errs, fmt.Errorf("%w: %s %s=%v", ErrOutOfRange, r.Abbr, f, v))
			}
		}
	}
	return errors.Join(errs...)
}
