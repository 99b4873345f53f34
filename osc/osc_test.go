package osc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pfcm/picosynth/fix"
	"github.com/pfcm/picosynth/interp"
	"github.com/pfcm/picosynth/sinetab"
)

// reference computes what the oscillator should produce for n samples from
// phase 0, without any of its state.
func reference(tab *sinetab.Table, inc fix.Phase, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		p := fix.Phase(uint32(i) * uint32(inc))
		v0 := int32(tab.At(p.Index()))
		v1 := int32(tab.At(p.Next()))
		out[i] = v0 + ((v1-v0)*int32(p.Frac()))>>8
	}
	return out
}

func TestPhaseContinuity(t *testing.T) {
	tab := sinetab.Default()
	for _, inc := range []fix.Phase{1, 0x0555, 0x0800, 0x3001, 0xFFFF} {
		const quantum, quanta = 100, 7
		buf := make([]int32, quantum)
		d := New(tab, interp.Software{}, buf)
		var got []int32
		for i := 0; i < quanta; i++ {
			d.Process(inc)
			got = append(got, buf...)
		}
		want := reference(tab, inc, quantum*quanta)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("inc %#04x: (-want +got):\n%s", uint16(inc), diff)
		}
	}
}

func TestTableWraparound(t *testing.T) {
	tab := sinetab.Default()
	buf := make([]int16, 4)
	d := New(tab, interp.Software{}, buf)
	// land at 255 + 128/256: half way between the last and first entries.
	d.phase = 0xFF80
	d.Process(0x0040)
	v255, v0 := int32(tab.At(255)), int32(tab.At(0))
	want := []int16{
		int16(v255 + ((v0-v255)*0x80)>>8),
		int16(v255 + ((v0-v255)*0xC0)>>8),
		tab.At(0),
		int16(int32(tab.At(0)) + ((int32(tab.At(1))-int32(tab.At(0)))*0x40)>>8),
	}
	if diff := cmp.Diff(want, buf); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if d.Phase() != 0x0080 {
		t.Errorf("Phase() = %v, want: 0+128/256", d.Phase())
	}
}

func TestDC(t *testing.T) {
	tab := sinetab.Generate(1000)
	buf := make([]int32, 64)
	for i := range buf {
		buf[i] = -1
	}
	d := New(tab, interp.Software{}, buf)
	d.Process(0)
	d.Process(0)
	for i, s := range buf {
		if s != int32(tab.At(0)) {
			t.Fatalf("sample %d = %d, want: %d", i, s, tab.At(0))
		}
	}
	if d.Phase() != 0 {
		t.Errorf("Phase() = %v, want: 0", d.Phase())
	}
}

func TestAcceleratorsAgree(t *testing.T) {
	tab := sinetab.Default()
	sw := make([]int32, 1000)
	hw := make([]int32, 1000)
	a := New(tab, interp.Software{}, sw)
	b := New(tab, &interp.Interp{}, hw)
	for _, inc := range []fix.Phase{1365, 0x0800, 7, 0xABCD} {
		a.Process(inc)
		b.Process(inc)
		if diff := cmp.Diff(sw, hw); diff != "" {
			t.Fatalf("inc %d: software vs interp (-sw +interp):\n%s", inc, diff)
		}
	}
}

func TestReset(t *testing.T) {
	buf := make([]int16, 10)
	d := New(sinetab.Default(), interp.Software{}, buf)
	d.Process(1000)
	if d.Phase() != 10000 {
		t.Errorf("Phase() = %d, want: 10000", d.Phase())
	}
	d.Reset()
	if d.Phase() != 0 {
		t.Errorf("Phase() after Reset = %d, want: 0", d.Phase())
	}
}

// countingAccelerator counts round trips.
type countingAccelerator struct {
	interp.Software
	configured, blends int
}

func (c *countingAccelerator) Configure() { c.configured++ }

func (c *countingAccelerator) Blend(v0, v1 int16, w uint8) int32 {
	c.blends++
	return c.Software.Blend(v0, v1, w)
}

func TestOneRoundTripPerSample(t *testing.T) {
	var acc countingAccelerator
	d := New(sinetab.Default(), &acc, make([]int32, 333))
	d.Process(1365)
	d.Process(1365)
	if acc.configured != 1 {
		t.Errorf("configured %d times, want: 1", acc.configured)
	}
	if acc.blends != 666 {
		t.Errorf("%d blends, want: 666", acc.blends)
	}
}

func BenchmarkProcess(b *testing.B) {
	tab := sinetab.Default()
	for _, c := range []struct {
		name  string
		accel interp.Accelerator
	}{
		{"software", interp.Software{}},
		{"interp", &interp.Interp{}},
	} {
		b.Run(c.name, func(b *testing.B) {
			d := New(tab, c.accel, make([]int32, 1000))
			for i := 0; i < b.N; i++ {
				d.Process(1365)
			}
		})
	}
}
