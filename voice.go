package picosynth

import (
	"fmt"

	"github.com/pfcm/picosynth/env"
	"github.com/pfcm/picosynth/fix"
	"github.com/pfcm/picosynth/interp"
	"github.com/pfcm/picosynth/osc"
	"github.com/pfcm/picosynth/sinetab"
)

// Params describes a Voice.
type Params struct {
	// Table is the sine table; nil means sinetab.Default().
	Table *sinetab.Table
	// Accelerator does the table interpolation; nil means
	// interp.Default().
	Accelerator interp.Accelerator
	// Quantum is the number of samples produced per Process.
	Quantum int
	// Attack and Release are the envelope times in samples.
	Attack, Release int
	// Trigger is consulted once per quantum; nil means Never().
	Trigger Trigger
}

// Voice is one complete signal chain: an oscillator and an envelope feeding
// an amplifier, with the three buffers between them. Process runs the stages
// in order, so the chain has exactly one writer per buffer.
type Voice[S fix.Sample] struct {
	osc *osc.DCO[S]
	env *env.AR
	amp *DCA[S]

	signal []S
	gain   []fix.Gain
	out    []S

	inc     fix.Phase
	trigger Trigger
	pending bool
	quanta  int
}

// NewVoice builds a voice. Everything that can go wrong goes wrong here,
// before any audio is made.
func NewVoice[S fix.Sample](p Params) (*Voice[S], error) {
	if p.Quantum <= 0 {
		return nil, fmt.Errorf("%w: quantum of %d samples", ErrConfig, p.Quantum)
	}
	if p.Table == nil {
		p.Table = sinetab.Default()
	}
	if p.Accelerator == nil {
		p.Accelerator = interp.Default()
	}
	if p.Trigger == nil {
		p.Trigger = Never()
	}
	v := &Voice[S]{
		signal:  make([]S, p.Quantum),
		gain:    make([]fix.Gain, p.Quantum),
		out:     make([]S, p.Quantum),
		trigger: p.Trigger,
	}
	v.osc = osc.New(p.Table, p.Accelerator, v.signal)
	v.env = env.NewAR(v.gain)
	if err := v.env.Configure(p.Attack, p.Release); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	amp, err := NewDCA(v.signal, v.gain, v.out)
	if err != nil {
		return nil, err
	}
	v.amp = amp
	return v, nil
}

func (v *Voice[S]) String() string {
	return fmt.Sprintf("Voice(%v -> %v -> %v)", v.osc, v.env, v.amp)
}

// SetPhaseIncrement sets the frequency control word used from the next
// quantum on.
func (v *Voice[S]) SetPhaseIncrement(inc fix.Phase) { v.inc = inc }

// SetFrequency sets the pitch in Hz.
func (v *Voice[S]) SetFrequency(freq, samplerate float64) {
	v.inc = fix.PhaseIncrement(freq, samplerate)
}

// PhaseIncrement returns the current frequency control word.
func (v *Voice[S]) PhaseIncrement() fix.Phase { return v.inc }

// Trigger triggers the envelope at the start of the next quantum, on top of
// whatever the voice's Trigger decides.
func (v *Voice[S]) Trigger() { v.pending = true }

// Envelope exposes the envelope, for its state.
func (v *Voice[S]) Envelope() *env.AR { return v.env }

// Oscillator exposes the oscillator, for its phase.
func (v *Voice[S]) Oscillator() *osc.DCO[S] { return v.osc }

// Quantum is the length of every buffer in the chain.
func (v *Voice[S]) Quantum() int { return len(v.out) }

// Quanta is the number of times Process has run.
func (v *Voice[S]) Quanta() int { return v.quanta }

// Process makes the next quantum and returns the output buffer. The buffer
// is owned by the voice and overwritten by the next call; hand it to the
// sink before then.
func (v *Voice[S]) Process() []S {
	trig := v.trigger(v.env.Idle()) || v.pending
	v.pending = false
	v.osc.Process(v.inc)
	v.env.Process(trig)
	v.amp.Process()
	v.quanta++
	return v.out
}

// Gain returns the envelope buffer of the most recent quantum.
func (v *Voice[S]) Gain() []fix.Gain { return v.gain }
