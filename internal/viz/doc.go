// Package viz provides the terminal front end for the scatter chart.
//
// The chart is drawn on a Braille [Canvas] and the Bubble Tea model feeds
// key presses to the chart controller as UI events.
//
// # Key Bindings
//
//	Tab/←/→ - Switch to the inactive x axis
//	O / S   - Pick the obese or smoker axis
//	J / K   - Move the hover cursor across marks
//	Esc     - Hide the tooltip
//	Q       - Quit
package viz
