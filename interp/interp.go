// package interp provides linear interpolation between adjacent table
// entries, either with the RP2040's interpolator hardware or in software.
package interp

// Accelerator interpolates between two table entries. Configure is called
// once before a run of Blend calls; Blend is called once per sample and must
// return
//
//	v0 + ((v1 - v0) * w) >> 8
//
// with an arithmetic shift, which is what the hardware computes. Any
// implementation has to match Software bit for bit.
type Accelerator interface {
	Configure()
	Blend(v0, v1 int16, w uint8) int32
}

// Software does the blend with plain arithmetic. It is the fallback when
// there is no interpolator to hand, and the reference the others are tested
// against.
type Software struct{}

var _ Accelerator = Software{}

func (Software) Configure() {}

func (Software) Blend(v0, v1 int16, w uint8) int32 {
	a, b := int32(v0), int32(v1)
	// |b-a| < 1<<16 and w < 1<<8, so the product fits.
	return a + ((b-a)*int32(w))>>8
}

func (Software) String() string { return "software" }

// pack builds the value written to BASE_1AND0: v0 in the low half, v1 in the
// high half.
func pack(v0, v1 int16) uint32 {
	return uint32(uint16(v1))<<16 | uint32(uint16(v0))
}
