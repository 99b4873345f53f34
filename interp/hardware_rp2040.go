//go:build rp2040

package interp

import "device/rp"

// Hardware drives INTERP0 of the core it runs on. The interpolators are per
// core, so a chain must stay on one core between Configure and its last
// Blend.
type Hardware struct{}

var _ Accelerator = Hardware{}

func (Hardware) Configure() {
	rp.SIO.INTERP0_CTRL_LANE0.Set(Lane0Blend)
	rp.SIO.INTERP0_CTRL_LANE1.Set(Lane1Signed)
}

func (Hardware) Blend(v0, v1 int16, w uint8) int32 {
	rp.SIO.INTERP0_BASE_1AND0.Set(pack(v0, v1))
	rp.SIO.INTERP0_ACCUM1.Set(uint32(w))
	return int32(rp.SIO.INTERP0_PEEK_LANE1.Get())
}

func (Hardware) String() string { return "interp0" }

// Default returns the hardware interpolator.
func Default() Accelerator { return Hardware{} }
