// Package viz draws running scenarios in the terminal.
//
// Sprites are projected through an orbit [Camera] onto a Braille [Canvas]
// and shown in a Bubble Tea program next to a live particle-count chart:
//
//   - [Model]: live view of one scenario
//   - [Menu]: scenario picker that hands off to a [Model]
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart the scenario
//	P     - Press (race player)
//	A     - Toggle axes
//	T     - Cycle color themes
//	x/y/z - Rotate camera (shift reverses)
//	+/-   - Zoom
//	?     - Show help overlay
package viz
