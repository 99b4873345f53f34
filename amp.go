package picosynth

import (
	"fmt"

	"github.com/pfcm/picosynth/fix"
)

// DCA is a digitally controlled amplifier: it multiplies a signal by a gain,
// sample by sample. It has no state beyond the buffers it was built with.
type DCA[S fix.Sample] struct {
	in   []S
	gain []fix.Gain
	out  []S
}

// NewDCA makes an amplifier reading in and gain and writing out. All three
// must be the same length; out may be in.
func NewDCA[S fix.Sample](in []S, gain []fix.Gain, out []S) (*DCA[S], error) {
	if len(in) != len(gain) || len(in) != len(out) {
		return nil, fmt.Errorf("%w: in %d, gain %d, out %d",
			ErrLengthMismatch, len(in), len(gain), len(out))
	}
	return &DCA[S]{in: in, gain: gain, out: out}, nil
}

func (d *DCA[S]) String() string { return fmt.Sprintf("DCA(%d)", len(d.out)) }

// Process writes (in * gain) >> 16 for every sample. The gain is at most
// fix.Unity, so the output is never bigger than the input and there is
// nothing to clamp.
func (d *DCA[S]) Process() {
	for i, s := range d.in {
		d.out[i] = fix.Q16Mul(s, d.gain[i])
	}
}
