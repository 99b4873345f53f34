package io

import (
	"fmt"
	goio "io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	resampling "github.com/tphakala/go-audio-resampling"
)

// WAVFormat describes a rendered file.
type WAVFormat struct {
	// SampleRate is the rate the Source runs at.
	SampleRate int
	// FileRate is the rate written to the file; 0 means SampleRate.
	FileRate int
	// BitDepth is 16, 24 or 32. The chain makes 16 bit samples, which
	// are shifted up to fill the wider formats.
	BitDepth int
}

func (f WAVFormat) fileRate() int {
	if f.FileRate == 0 {
		return f.SampleRate
	}
	return f.FileRate
}

// Render pulls quanta from src until it has n samples, aligned to the
// format's bit depth.
func Render(src Source, n int, bitDepth int) []int32 {
	out := make([]int32, 0, n)
	for len(out) < n {
		q := src()
		if len(q) == 0 {
			panic("io: empty quantum")
		}
		out = append(out, q[:min(len(q), n-len(out))]...)
	}
	Shift(out, bitDepth-16)
	Saturate(out, out, bitDepth)
	return out
}

// WriteWAV renders n samples of src as a mono WAV file.
func WriteWAV(w goio.WriteSeeker, src Source, n int, f WAVFormat) error {
	switch f.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth %d", f.BitDepth)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("bad sample rate %d", f.SampleRate)
	}
	samples := Render(src, n, f.BitDepth)
	if rate := f.fileRate(); rate != f.SampleRate {
		var err error
		samples, err = resample(samples, f.SampleRate, rate, f.BitDepth)
		if err != nil {
			return fmt.Errorf("resample: %w", err)
		}
	}

	buf := &audio.IntBuffer{
		Data: make([]int, len(samples)),
		Format: &audio.Format{
			SampleRate:  f.fileRate(),
			NumChannels: 1,
		},
		SourceBitDepth: f.BitDepth,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}
	enc := wav.NewEncoder(w, f.fileRate(), f.BitDepth, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}

// WriteWAVFile is WriteWAV into a new file.
func WriteWAVFile(path string, src Source, n int, f WAVFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(file, src, n, f); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return file.Close()
}

// resample converts between sample rates with a polyphase filter, going via
// floats normalised to the bit depth's full scale.
func resample(samples []int32, from, to, bitDepth int) ([]int32, error) {
	full := math.Ldexp(1, bitDepth-1)
	floats := make([]float64, len(samples))
	for i, s := range samples {
		floats[i] = float64(s) / full
	}
	resampled, err := resampling.ResampleMono(floats, float64(from), float64(to), resampling.QualityLow)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(resampled))
	for i, f := range resampled {
		v := math.Round(f * full)
		out[i] = int32(min(max(v, -full), full-1))
	}
	return out, nil
}
