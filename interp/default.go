//go:build !rp2040

package interp

// Default returns the software blend: there is no interpolator off the
// RP2040.
func Default() Accelerator { return Software{} }
