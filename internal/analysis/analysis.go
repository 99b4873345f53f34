// package analysis measures rendered audio: how loud it is and what pitch it
// is at.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"

	"github.com/pfcm/picosynth/fix"
)

// RMS returns the root mean square of s relative to full scale.
func RMS[S fix.Sample](s []S, full float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, x := range s {
		f := float64(x) / full
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(s)))
}

// Peak returns the largest absolute sample in s.
func Peak[S fix.Sample](s []S) int64 {
	var p int64
	for _, x := range s {
		v := int64(x)
		if v < 0 {
			v = -v
		}
		p = max(p, v)
	}
	return p
}

// PeakFrequency returns the frequency of the strongest component of s,
// looking at the longest power of two prefix of it through a Hann window.
func PeakFrequency[S fix.Sample](s []S, samplerate float64) (float64, error) {
	n := 1
	for n*2 <= len(s) {
		n *= 2
	}
	if n < 4 {
		return 0, errors.New("analysis: too few samples for a spectrum")
	}
	f, err := fft.New(n)
	if err != nil {
		return 0, err
	}
	buf := make([]complex128, n)
	for i := range buf {
		w := (1 - math.Cos(2*math.Pi*float64(i)/float64(n))) / 2
		buf[i] = complex(float64(s[i])*w, 0)
	}
	spec := f.Transform(buf)
	mag := func(k int) float64 { return cmplx.Abs(spec[k]) }

	best := 1
	for k := 2; k < n/2; k++ {
		if mag(k) > mag(best) {
			best = k
		}
	}
	// refine with a parabola through the peak and its neighbours.
	offset := 0.0
	if best > 0 && best < n/2-1 {
		a, b, c := mag(best-1), mag(best), mag(best+1)
		if d := a - 2*b + c; d != 0 {
			offset = 0.5 * (a - c) / d
		}
	}
	return (float64(best) + offset) * samplerate / float64(n), nil
}
