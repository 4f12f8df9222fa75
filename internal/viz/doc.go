// Package viz provides a terminal playback view for solved control loops.
//
// The package implements a small TUI using the Bubble Tea framework:
//
//   - [Trajectory]: a solved closed-loop response sampled on the time grid
//   - [Model]: playback application with ascii trend charts
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the beginning
//	[]/   - Scrub backward/forward one sample
//	Q     - Quit
package viz
