// package io gets audio out of the synthesis chain: into the speakers or
// into a file. None of it runs on the microcontroller.
package io

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pfcm/picosynth/fix"
	"github.com/pfcm/picosynth/internal/buffer"
)

// Source makes audio one quantum at a time, as Voice.Process does. The
// returned slice only has to stay valid until the next call.
type Source func() []int32

// Format describes how a Source is played.
type Format struct {
	SampleRate int
	// Shift lines the computed samples up with the sink's sample width
	// before they are converted to 16 bits; see Shift.
	Shift int
}

// Shift shifts every sample in buf left by n bits, or right by -n bits if n
// is negative. This is the sink specific alignment the synthesis chain
// leaves to its caller, like an I2S driver's shift.
func Shift[S fix.Sample](buf []S, n int) {
	switch {
	case n > 0:
		for i := range buf {
			buf[i] <<= n
		}
	case n < 0:
		for i := range buf {
			buf[i] >>= -n
		}
	}
}

// Saturate copies src into dst, clamping each sample to bits signed bits.
func Saturate(dst, src []int32, bits int) {
	if bits >= 32 {
		copy(dst, src)
		return
	}
	hi := int32(1)<<(bits-1) - 1
	lo := -hi - 1
	for i, s := range src {
		dst[i] = min(max(s, lo), hi)
	}
}

// S16 copies src into dst, clamping each sample to the int16 range.
func S16(dst []int16, src []int32) {
	for i, s := range src {
		dst[i] = int16(min(max(s, math.MinInt16), math.MaxInt16))
	}
}

// stream turns a Source into 16 bit samples for the device backends.
func stream(src Source, shift int) *buffer.Quanta {
	var s16 []int16
	return buffer.NewQuanta(func() []int16 {
		q := src()
		Shift(q, shift)
		if cap(s16) < len(q) {
			s16 = make([]int16, len(q))
		}
		s16 = s16[:len(q)]
		S16(s16, q)
		return s16
	})
}

// Player plays a Source until the context is cancelled.
type Player func(context.Context, Source, Format) error

var players = map[string]Player{
	"malgo": PlayMalgo,
	"oto":   PlayOto,
}

// Backends lists the names Play accepts.
func Backends() []string {
	var names []string
	for n := range players {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Play plays src with the named backend until ctx is cancelled.
func Play(ctx context.Context, backend string, src Source, f Format) error {
	p, ok := players[backend]
	if !ok {
		return fmt.Errorf("unknown backend %q, want one of %s", backend, strings.Join(Backends(), ", "))
	}
	return p(ctx, src, f)
}
