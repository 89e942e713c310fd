// Package scale maps data values to pixel coordinates for the scatter chart.
//
// [ComputeBounds] derives the padded axis extent from the active columns and
// [Bounds.Scales] turns it into a pair of [Linear] scales over the plotting
// area, with the y range flipped so that larger values sit higher.
package scale
