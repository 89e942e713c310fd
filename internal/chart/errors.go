package chart

import "errors"

var (
	// ErrEmptyDataset indicates there is nothing to plot.
	ErrEmptyDataset = errors.New("chart: empty dataset")

	// ErrNotInitialized indicates an event arrived before Initialize.
	ErrNotInitialized = errors.New("chart: controller not initialized")

	// ErrNotSelectable indicates a field that cannot be used on the requested axis.
	ErrNotSelectable = errors.New("chart: field not selectable on this axis")

	// ErrUnknownMark indicates a hover event for a mark that does not exist.
	ErrUnknownMark = errors.New("chart: unknown mark")
)
