package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	colState = "state"
	colAbbr  = "abbr"
)

var requiredFields = []Field{Obese, BachelorOrHigher, CurrentSmoker}

// Load reads a comma-delimited file with a header row. Any failure here is
// fatal to the caller; there is no retry.
func Load(ctx context.Context, path string) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse decodes a dataset from r. Cells that are not numbers become NaN.
func Parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrLoad)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		if i == 0 {
			// spreadsheet exports often prefix a byte order mark
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}

	for _, name := range []string{colState, colAbbr} {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %w %q", ErrLoad, ErrMissingColumn, name)
		}
	}
	fields := make([]Field, 0, 4)
	for _, f := range requiredFields {
		if _, ok := index[string(f)]; !ok {
			return nil, fmt.Errorf("%w: %w %q", ErrLoad, ErrMissingColumn, f)
		}
		fields = append(fields, f)
	}
	if _, ok := index[string(HighSchoolGrad)]; ok {
		fields = append(fields, HighSchoolGrad)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		rec := Record{
			State:  cell(row, index[colState]),
			Abbr:   cell(row, index[colAbbr]),
			Values: make(map[Field]float64, len(fields)),
		}
		for _, f := range fields {
			rec.Values[f] = number(cell(row, index[string(f)]))
		}
		records = append(records, rec)
	}

	return New(records, fields...), nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func number(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
