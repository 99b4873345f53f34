package interp

import "fmt"

// Bits of an interpolator lane's CTRL register.
const (
	CtrlShiftMask   uint32 = 0x1f // SHIFT, bits 0-4
	CtrlMaskLSBPos         = 5    // MASK_LSB, bits 5-9
	CtrlMaskMSBPos         = 10   // MASK_MSB, bits 10-14
	CtrlSigned      uint32 = 1 << 15
	CtrlCrossInput  uint32 = 1 << 16
	CtrlCrossResult uint32 = 1 << 17
	CtrlAddRaw      uint32 = 1 << 18
	CtrlBlend       uint32 = 1 << 21 // lane 0 only
)

// FullMask selects all 32 bits: MASK_LSB = 0, MASK_MSB = 31.
const FullMask = 31 << CtrlMaskMSBPos

const (
	// Lane0Blend puts the interpolator in blend mode. Lane 0 is also
	// signed so that the low half of a BASE_1AND0 write is sign extended
	// into BASE0, the same as the high half into BASE1.
	Lane0Blend = CtrlBlend | CtrlSigned | FullMask
	// Lane1Signed makes the blend signed; the 8 LSBs of the lane 1
	// shift+mask value are the blend weight.
	Lane1Signed = CtrlSigned | FullMask
)

// Interp is a register level model of one RP2040 interpolator (the SIO
// INTERP0/INTERP1 blocks). It covers what the oscillator needs, blend mode,
// plus the ordinary shift/mask/add lanes so the model can be checked against
// the datasheet examples. Clamp mode, FORCE_MSB and the POP side effects are
// not modelled.
//
// The zero value is an interpolator straight out of reset.
type Interp struct {
	Accum [2]uint32
	Base  [3]uint32
	Ctrl  [2]uint32
}

var _ Accelerator = (*Interp)(nil)

// SetBase1And0 does what a write to BASE_1AND0 does: the low 16 bits go to
// BASE0 and the high 16 to BASE1, each sign extended if that lane is signed.
func (ip *Interp) SetBase1And0(v uint32) {
	ip.Base[0] = ip.extend16(0, v&0xffff)
	ip.Base[1] = ip.extend16(1, v>>16)
}

func (ip *Interp) extend16(lane int, v uint32) uint32 {
	if ip.Ctrl[lane]&CtrlSigned != 0 {
		return uint32(int32(int16(uint16(v))))
	}
	return v
}

// shiftMask is the lane's input after the shift and mask stages, sign
// extended from MASK_MSB if the lane is signed.
func (ip *Interp) shiftMask(lane int) uint32 {
	ctrl := ip.Ctrl[lane]
	in := ip.Accum[lane]
	if ctrl&CtrlCrossInput != 0 {
		in = ip.Accum[1-lane]
	}
	shift := ctrl & CtrlShiftMask
	lsb := (ctrl >> CtrlMaskLSBPos) & 0x1f
	msb := (ctrl >> CtrlMaskMSBPos) & 0x1f
	mask := (^uint32(0) >> (31 - msb)) & (^uint32(0) << lsb)
	v := (in >> shift) & mask
	if ctrl&CtrlSigned != 0 && msb < 31 && v&(1<<msb) != 0 {
		v |= ^uint32(0) << (msb + 1)
	}
	return v
}

func (ip *Interp) blending() bool { return ip.Ctrl[0]&CtrlBlend != 0 }

// Peek reads a lane's result (PEEK_LANE0, PEEK_LANE1 or PEEK_FULL for lane
// 2) without changing any state.
func (ip *Interp) Peek(lane int) uint32 {
	switch lane {
	case 0:
		if ip.blending() {
			// the blend weight, zero extended.
			return ip.shiftMask(1) & 0xff
		}
		return ip.laneResult(0)
	case 1:
		if ip.blending() {
			return ip.blend()
		}
		return ip.laneResult(1)
	case 2:
		if ip.blending() {
			return ip.Base[2] + ip.shiftMask(0)
		}
		return ip.Base[2] + ip.shiftMask(0) + ip.shiftMask(1)
	}
	panic(fmt.Errorf("interp: no lane %d", lane))
}

func (ip *Interp) laneResult(lane int) uint32 {
	if ip.Ctrl[lane]&CtrlAddRaw != 0 {
		return ip.Base[lane] + ip.Accum[lane]
	}
	return ip.Base[lane] + ip.shiftMask(lane)
}

// blend is the lane 1 result in blend mode:
// BASE0 + ((BASE1 - BASE0) * alpha) >> 8, alpha being the low byte of the
// lane 1 shift+mask value. Lane 1's SIGNED flag picks the interpretation of
// the bases.
func (ip *Interp) blend() uint32 {
	alpha := int64(ip.shiftMask(1) & 0xff)
	var b0, b1 int64
	if ip.Ctrl[1]&CtrlSigned != 0 {
		b0, b1 = int64(int32(ip.Base[0])), int64(int32(ip.Base[1]))
	} else {
		b0, b1 = int64(ip.Base[0]), int64(ip.Base[1])
	}
	return uint32(b0 + (((b1 - b0) * alpha) >> 8))
}

// Configure puts the model in the state the oscillator expects.
func (ip *Interp) Configure() {
	ip.Ctrl[0] = Lane0Blend
	ip.Ctrl[1] = Lane1Signed
}

// Blend drives the model the way the device driver drives the hardware: one
// write of both bases, one write of the weight to ACCUM1, one read of
// PEEK_LANE1.
func (ip *Interp) Blend(v0, v1 int16, w uint8) int32 {
	ip.SetBase1And0(pack(v0, v1))
	ip.Accum[1] = uint32(w)
	return int32(ip.Peek(1))
}

func (ip *Interp) String() string {
	return fmt.Sprintf("interp(ctrl=%08x,%08x)", ip.Ctrl[0], ip.Ctrl[1])
}
