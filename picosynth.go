// package picosynth is a small fixed-point synthesis chain for
// microcontrollers: a table lookup oscillator (package osc), an
// attack-release envelope (package env) and an amplifier that combines them,
// each filling one fixed-size buffer per audio quantum.
package picosynth

import "errors"

var (
	// ErrLengthMismatch is returned, wrapped, when the buffers of one chain
	// are not all the same length.
	ErrLengthMismatch = errors.New("buffer lengths differ")
	// ErrConfig is returned, wrapped, for a chain that can't be built.
	ErrConfig = errors.New("bad voice configuration")
)
