// package env provides envelope generators.
package env

import (
	"errors"
	"fmt"

	"github.com/pfcm/picosynth/fix"
)

// ErrConfig is returned, wrapped, for envelope times that can't be used.
var ErrConfig = errors.New("bad envelope configuration")

// State is where an envelope is in its cycle.
type State byte

const (
	Off State = iota
	Attack
	Release
)

func (s State) String() string {
	switch s {
	case Off:
		return "x"
	case Attack:
		return "A"
	case Release:
		return "R"
	}
	return fmt.Sprintf("State(%d)", byte(s))
}

// Reference envelope times, in samples.
const (
	DefaultAttack  = 20
	DefaultRelease = 10000
)

// AR is an attack-release envelope. A trigger starts a linear ramp up to
// fix.Unity, after which it immediately ramps back down to zero and waits
// for the next trigger. The level is kept as a plain int between samples so
// the over- and undershoot can be seen before clamping.
type AR struct {
	out         []fix.Gain
	attackRate  int
	releaseRate int
	attack      int // samples, for String
	release     int
	state       State
	level       int
}

// NewAR makes an idle envelope writing into out, with the reference times.
func NewAR(out []fix.Gain) *AR {
	a := &AR{out: out}
	if err := a.Configure(DefaultAttack, DefaultRelease); err != nil {
		panic(err)
	}
	return a
}

// Configure sets the attack and release times, in samples. Both must be
// positive; on error the previous times stay in force.
func (a *AR) Configure(attackSamples, releaseSamples int) error {
	if attackSamples <= 0 {
		return fmt.Errorf("%w: attack of %d samples", ErrConfig, attackSamples)
	}
	if releaseSamples <= 0 {
		return fmt.Errorf("%w: release of %d samples", ErrConfig, releaseSamples)
	}
	a.attack, a.release = attackSamples, releaseSamples
	a.attackRate = int(fix.Unity) / attackSamples
	a.releaseRate = int(fix.Unity) / releaseSamples
	return nil
}

func (a *AR) String() string {
	return fmt.Sprintf("AR(%d,%d)", a.attack, a.release)
}

// State returns the current state.
func (a *AR) State() State { return a.state }

// Level returns the most recently written level.
func (a *AR) Level() fix.Gain { return fix.Gain(a.level) }

// Idle reports whether the envelope has finished and is waiting for a
// trigger.
func (a *AR) Idle() bool { return a.state == Off }

// Process fills the buffer with the next len(out) levels. If trigger is set
// the envelope (re)enters Attack before the first sample, ramping up from
// wherever it currently is rather than from zero, so retriggering during the
// release doesn't click.
func (a *AR) Process(trigger bool) {
	if trigger {
		a.state = Attack
	}
	s, x := a.state, a.level
	for n := range a.out {
		switch s {
		case Attack:
			x += a.attackRate
			if x > int(fix.Unity) {
				x = int(fix.Unity)
				s = Release
			}
		case Release:
			x -= a.releaseRate
			if x < 0 {
				x = 0
				s = Off
			}
		default:
			x = 0
		}
		a.out[n] = fix.Gain(x)
	}
	a.state, a.level = s, x
}
