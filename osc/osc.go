// package osc provides the table lookup oscillator.
package osc

import (
	"fmt"

	"github.com/pfcm/picosynth/fix"
	"github.com/pfcm/picosynth/interp"
	"github.com/pfcm/picosynth/sinetab"
)

// DCO is a digitally controlled oscillator: a phase accumulator stepping
// through a sine table, interpolating between neighbouring entries. It
// fills one caller owned buffer per call to Process and keeps its phase
// between calls, so consecutive buffers join up without a click.
type DCO[S fix.Sample] struct {
	tab   *sinetab.Table
	accel interp.Accelerator
	out   []S
	phase fix.Phase
}

// New makes a DCO writing into out, starting at phase 0. The accelerator is
// configured here, once.
func New[S fix.Sample](tab *sinetab.Table, accel interp.Accelerator, out []S) *DCO[S] {
	if tab == nil || accel == nil {
		panic(fmt.Errorf("osc.New: nil table or accelerator"))
	}
	accel.Configure()
	return &DCO[S]{
		tab:   tab,
		accel: accel,
		out:   out,
	}
}

// Process fills the buffer with the next len(out) samples, advancing the
// phase by inc each sample. inc is the frequency control word, see
// fix.PhaseIncrement; 0 holds the output at the current table position.
func (d *DCO[S]) Process(inc fix.Phase) {
	p := d.phase
	for n := range d.out {
		v0 := d.tab.At(p.Index())
		v1 := d.tab.At(p.Next())
		d.out[n] = S(d.accel.Blend(v0, v1, p.Frac()))
		p += inc
	}
	d.phase = p
}

// Phase is where the next sample will be read from.
func (d *DCO[S]) Phase() fix.Phase { return d.phase }

// Reset moves the phase back to the start of the table.
func (d *DCO[S]) Reset() { d.phase = 0 }

func (d *DCO[S]) String() string {
	return fmt.Sprintf("DCO(%d, %v, %v)", len(d.out), d.accel, d.phase)
}
