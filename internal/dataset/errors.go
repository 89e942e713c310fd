package dataset

import "errors"

var (
	// ErrLoad wraps any failure to read or decode the input file.
	ErrLoad = errors.New("dataset: load failed")

	// ErrMissingColumn indicates a required header column is absent.
	ErrMissingColumn = errors.New("dataset: missing required column")

	// ErrUnknownField indicates a name that is not one of the numeric columns.
	ErrUnknownField = errors.New("dataset: unknown field")

	// ErrOutOfRange indicates a percentage outside [0,100].
	ErrOutOfRange = errors.New("dataset: value out of range")

	// ErrDuplicateAbbr indicates two records share an abbreviation.
	ErrDuplicateAbbr = errors.New("dataset: duplicate abbreviation")
)
