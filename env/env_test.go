package env

import (
	"errors"
	"testing"

	"github.com/pfcm/picosynth/fix"
)

func TestConfigure(t *testing.T) {
	a := NewAR(make([]fix.Gain, 1))
	if a.attackRate != 3276 || a.releaseRate != 6 {
		t.Errorf("default rates = %d, %d, want: 3276, 6", a.attackRate, a.releaseRate)
	}
	for _, c := range []struct {
		attack, release int
	}{
		{0, 100},
		{100, 0},
		{-1, 100},
		{0, 0},
	} {
		err := a.Configure(c.attack, c.release)
		if !errors.Is(err, ErrConfig) {
			t.Errorf("Configure(%d, %d) = %v, want: ErrConfig", c.attack, c.release, err)
		}
	}
	// rejected times don't stick.
	if a.attackRate != 3276 || a.releaseRate != 6 {
		t.Errorf("rates after bad Configure = %d, %d, want: 3276, 6", a.attackRate, a.releaseRate)
	}
	if err := a.Configure(1, 0xFFFF); err != nil {
		t.Fatal(err)
	}
	if a.attackRate != 0xFFFF || a.releaseRate != 1 {
		t.Errorf("rates = %d, %d, want: 65535, 1", a.attackRate, a.releaseRate)
	}
}

func TestAttack(t *testing.T) {
	for _, c := range []struct {
		attack int
		// samples until the level first reads 0xFFFF
		peak int
	}{
		{5, 5}, // divides 0xFFFF exactly
		{17, 17},
		{20, 21},
		{1, 1},
	} {
		buf := make([]fix.Gain, c.peak)
		a := NewAR(buf)
		if err := a.Configure(c.attack, 1000); err != nil {
			t.Fatal(err)
		}
		a.Process(true)
		for i := 1; i < len(buf); i++ {
			if buf[i] < buf[i-1] {
				t.Errorf("attack %d: level fell from %d to %d at sample %d", c.attack, buf[i-1], buf[i], i)
			}
		}
		for i, g := range buf[:c.peak-1] {
			if g == fix.Unity {
				t.Errorf("attack %d: peaked early, at sample %d", c.attack, i)
			}
		}
		if got := buf[c.peak-1]; got != fix.Unity {
			t.Errorf("attack %d: level after %d samples = %d, want: 0xFFFF", c.attack, c.peak, got)
		}

		// the next sample is released.
		one := make([]fix.Gain, 1)
		a.out = one
		a.Process(false)
		if a.State() != Release {
			t.Errorf("attack %d: state after peak = %v, want: R", c.attack, a.State())
		}
		if one[0] > fix.Unity-fix.Gain(a.releaseRate) && c.peak != c.attack {
			t.Errorf("attack %d: no release after the peak: %d", c.attack, one[0])
		}
	}
}

func TestRetrigger(t *testing.T) {
	buf := make([]fix.Gain, 100)
	a := NewAR(buf)
	if err := a.Configure(10, 1000); err != nil {
		t.Fatal(err)
	}
	a.Process(true)
	a.Process(false)
	if a.State() != Release {
		t.Fatalf("state = %v, want: R", a.State())
	}
	before := a.Level()
	if before == 0 {
		t.Fatal("level is already 0")
	}
	a.Process(true)
	if buf[0] != before+fix.Gain(a.attackRate) {
		t.Errorf("first level after retrigger = %d, want: %d", buf[0], before+fix.Gain(a.attackRate))
	}
	for i, g := range buf {
		if g < before {
			t.Errorf("sample %d: level %d dropped below the retrigger level %d", i, g, before)
		}
	}
}

func TestIdle(t *testing.T) {
	buf := make([]fix.Gain, 64)
	a := NewAR(buf)
	if err := a.Configure(2, 50); err != nil {
		t.Fatal(err)
	}
	a.Process(true)
	if !a.Idle() {
		t.Fatalf("state = %v after 64 samples of a 2/50 envelope, want: x", a.State())
	}
	if buf[len(buf)-1] != 0 {
		t.Errorf("last level = %d, want: 0", buf[len(buf)-1])
	}
	for i := 0; i < 100; i++ {
		a.Process(false)
		if a.State() != Off || a.Level() != 0 {
			t.Fatalf("call %d: state %v, level %d, want: x, 0", i, a.State(), a.Level())
		}
		for j, g := range buf {
			if g != 0 {
				t.Fatalf("call %d: sample %d = %d, want: 0", i, j, g)
			}
		}
	}
}

func TestNeverOutOfRange(t *testing.T) {
	buf := make([]fix.Gain, 37)
	a := NewAR(buf)
	if err := a.Configure(3, 7); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		a.Process(i%5 == 0)
		if a.level < 0 || a.level > int(fix.Unity) {
			t.Fatalf("call %d: level %d out of range", i, a.level)
		}
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Off: "x", Attack: "A", Release: "R", 7: "State(7)"} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want: %q", byte(s), got, want)
		}
	}
}
