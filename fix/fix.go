// package fix provides the fixed-point types shared by the synthesis chain.
package fix

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Sample is the set of sample widths a signal chain can be built on. Every
// buffer in one chain uses the same one.
type Sample interface {
	~int16 | ~int32
}

// Phase is an unsigned 8.8 fixed-point position within one period of a 256
// entry table: the high byte indexes the table and the low byte is the
// weight given to the following entry. Arithmetic on it wraps, which is
// exactly the modulo we want.
type Phase uint16

// Index is the table entry at or before p.
func (p Phase) Index() uint8 { return uint8(p >> 8) }

// Next is the table entry after p, wrapping from 255 back to 0.
func (p Phase) Next() uint8 { return p.Index() + 1 }

// Frac is how far p is between Index and Next, in 256ths.
func (p Phase) Frac() uint8 { return uint8(p) }

func (p Phase) String() string {
	return fmt.Sprintf("%d+%d/256", p.Index(), p.Frac())
}

// PhaseIncrement returns the per-sample phase increment that plays freq at
// the given sample rate: round(freq * 65536 / samplerate), reduced modulo
// 65536.
func PhaseIncrement[T constraints.Float](freq, samplerate T) Phase {
	x := math.Round(float64(freq) * (1 << 16) / float64(samplerate))
	return Phase(uint16(int64(x)))
}

// Frequency is the inverse of PhaseIncrement.
func Frequency[T constraints.Float](inc Phase, samplerate T) T {
	return T(inc) * samplerate / (1 << 16)
}

// Gain is an unsigned Q16 gain: 0 is silence and Unity (0xFFFF) is as close
// to 1 as the format gets.
type Gain uint16

const (
	// Unity is the largest Gain, 0.9999847.
	Unity Gain = 0xFFFF
	// Silent is the smallest Gain.
	Silent Gain = 0
)

func (g Gain) String() string {
	return fmt.Sprintf("%.5f", GainToFloat[float64](g))
}

// GainToFloat converts a Gain to a float in [0, 1).
func GainToFloat[T constraints.Float](g Gain) T {
	return T(g) / (1 << 16)
}

// GainFromFloat converts a float into a Gain, clamping to Silent or Unity.
func GainFromFloat[T constraints.Float](f T) Gain {
	if f <= 0 {
		return Silent
	}
	if f >= GainToFloat[T](Unity) {
		return Unity
	}
	return Gain(f * (1 << 16))
}

// Q16Mul is the fixed-point multiply used to apply a gain to a sample:
// (s * g) >> 16, computed in 64 bits so no 32 bit sample can overflow.
func Q16Mul[S Sample](s S, g Gain) S {
	return S((int64(s) * int64(g)) >> 16)
}
