// Package chart implements the controller behind the state statistics
// scatter chart.
//
// A [Controller] owns the dataset, the active axis pairing and the current
// [Scene]. Front ends feed it UI events through [Controller.Dispatch] and
// draw whatever scene it hands back:
//
//   - [Controller.Initialize]: first render with the default axes
//   - [Controller.Render]: recompute bounds and rebuild every mark
//   - [Controller.OnAxisLabelClick]: switch the x axis to an inactive label
//   - [Controller.ComputeAnalysisText]: canned analysis for a pairing
//
// # Example
//
//	ds, _ := dataset.Load(ctx, "data.csv")
//	c := chart.New(ds, config.DefaultLayout())
//	_ = c.Initialize()
//	_, _ = c.OnAxisLabelClick(dataset.CurrentSmoker)
//	svg := export.SceneToSVG(c.Scene())
//
// # Thread Safety
//
// Controller instances are NOT thread-safe. Events are expected to arrive on
// one goroutine, the way a UI loop delivers them; concurrent front ends must
// serialize access themselves.
package chart
