package picosynth

import (
	"time"
)

// Trigger decides, once per quantum, whether a voice's envelope should be
// triggered. It is told whether the envelope is currently idle.
type Trigger func(idle bool) bool

// Never is a Trigger that never fires; use Voice.Trigger to play notes.
func Never() Trigger {
	return func(bool) bool { return false }
}

// Once fires on the first quantum only.
func Once() Trigger {
	done := false
	return func(bool) bool {
		if done {
			return false
		}
		done = true
		return true
	}
}

// WhenIdle fires whenever the previous note has finished, so the voice
// plays the same note over and over.
func WhenIdle() Trigger {
	return func(idle bool) bool { return idle }
}

// Every fires on the first quantum and then every interval quanta after
// that, whatever the envelope is doing.
func Every(interval int) Trigger {
	interval = max(interval, 1)
	n := 0
	return func(bool) bool {
		fire := n == 0
		n++
		if n >= interval {
			n = 0
		}
		return fire
	}
}

// EveryDuration is Every with the interval given as a duration, rounded to
// the nearest whole quantum.
func EveryDuration(d time.Duration, samplerate float64, quantum int) Trigger {
	quanta := d.Seconds() * samplerate / float64(quantum)
	return Every(int(quanta + 0.5))
}
