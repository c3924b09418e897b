// Package viz renders problem descriptions and ensemble diagnostics in the
// terminal.
//
//   - [Plot]: asciigraph line of one diagnostic across ensemble samples
//   - [Summary]: styled per-metric statistics table
//   - [Browser]: Bubble Tea program for paging through ensemble samples
//
// # Key Bindings
//
//	j/k   - Next/previous sample
//	g/G   - First/last sample
//	T     - Cycle color themes
//	q     - Quit
package viz
