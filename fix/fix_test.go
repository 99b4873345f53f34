package fix

import (
	"testing"
)

func TestPhaseParts(t *testing.T) {
	for _, c := range []struct {
		p                 Phase
		index, next, frac uint8
	}{
		{0x0000, 0, 1, 0},
		{0x0180, 1, 2, 0x80},
		{0xFE01, 254, 255, 1},
		{0xFFFF, 255, 0, 255},
	} {
		if got := c.p.Index(); got != c.index {
			t.Errorf("%04x.Index() = %d, want: %d", uint16(c.p), got, c.index)
		}
		if got := c.p.Next(); got != c.next {
			t.Errorf("%04x.Next() = %d, want: %d", uint16(c.p), got, c.next)
		}
		if got := c.p.Frac(); got != c.frac {
			t.Errorf("%04x.Frac() = %d, want: %d", uint16(c.p), got, c.frac)
		}
	}
}

func TestPhaseWraps(t *testing.T) {
	p := Phase(0xFF00)
	p += 0x0200
	if p != 0x0100 {
		t.Errorf("0xFF00 + 0x0200 = %04x, want: 0100", uint16(p))
	}
}

func TestPhaseIncrement(t *testing.T) {
	for _, c := range []struct {
		freq, rate float64
		want       Phase
	}{
		{500, 24000, 1365},
		{0, 24000, 0},
		{440, 44100, 654},
		{12000, 24000, 0x8000},
		// A full cycle per sample is indistinguishable from no movement.
		{24000, 24000, 0},
	} {
		if got := PhaseIncrement(c.freq, c.rate); got != c.want {
			t.Errorf("PhaseIncrement(%v, %v) = %d, want: %d", c.freq, c.rate, got, c.want)
		}
	}
}

func TestFrequency(t *testing.T) {
	got := Frequency(Phase(0x0800), float32(24000))
	if got != 750 {
		t.Errorf("Frequency(0x0800, 24000) = %v, want: 750", got)
	}
}

func TestGainFromFloat(t *testing.T) {
	for _, c := range []struct {
		in  float64
		out Gain
	}{
		{-1, Silent},
		{0, Silent},
		{0.5, 0x8000},
		{1, Unity},
		{2, Unity},
	} {
		if got := GainFromFloat(c.in); got != c.out {
			t.Errorf("GainFromFloat(%v) = %v, want: %v", c.in, got, c.out)
		}
	}
}

func TestQ16Mul(t *testing.T) {
	for _, c := range []struct {
		s    int32
		g    Gain
		want int32
	}{
		{32000, Unity, 31999},
		{-32000, Unity, -32000},
		{32000, Silent, 0},
		{32000, 0x8000, 16000},
		{-32000, 0x8000, -16000},
		// Big samples need the 64 bit product.
		{1 << 30, Unity, (1 << 30) * 0xFFFF >> 16},
		// The shift floors, so negative samples come out a little above
		// the input.
		{-(1 << 24), Unity, -16776960},
		{-100, Unity, -100},
		{-1, 1, -1},
	} {
		if got := Q16Mul(c.s, c.g); got != c.want {
			t.Errorf("Q16Mul(%d, %v) = %d, want: %d", c.s, c.g, got, c.want)
		}
	}
}
