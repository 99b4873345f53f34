// render writes the configured voice to a WAV file instead of playing it,
// then prints a summary of what it wrote.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfcm/picosynth/config"
	"github.com/pfcm/picosynth/internal/analysis"
	"github.com/pfcm/picosynth/io"
)

var (
	configFlag   = flag.String("config", "picosynth.toml", "`path` of the TOML config; defaults are used if it doesn't exist")
	outFlag      = flag.String("out", "", "output `path`, overriding output.wav_path")
	durationFlag = flag.Duration("duration", time.Second, "how much audio to render")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("render: ")

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}
	if *outFlag != "" {
		cfg.Output.WAVPath = *outFlag
	}
	v, err := cfg.BuildVoice()
	if err != nil {
		log.Fatal(err)
	}
	n := int(durationFlag.Seconds() * float64(cfg.Engine.SampleRate))
	if n <= 0 {
		log.Fatalf("Nothing to render in %v", *durationFlag)
	}

	// Keep a copy of everything rendered for the summary.
	rendered := make([]int32, 0, n+cfg.Engine.Quantum)
	src := func() []int32 {
		out := v.Process()
		rendered = append(rendered, out...)
		return out
	}
	if err := io.WriteWAVFile(cfg.Output.WAVPath, src, n, cfg.WAVFormat()); err != nil {
		log.Fatal(err)
	}
	rendered = rendered[:n]

	p := message.NewPrinter(language.English)
	f := cfg.WAVFormat()
	rate := f.FileRate
	if rate == 0 {
		rate = f.SampleRate
	}
	p.Fprintf(os.Stderr, "Wrote %d samples (%d quanta) to %q: %d bit, %dHz\n",
		n, v.Quanta(), cfg.Output.WAVPath, f.BitDepth, rate)
	p.Fprintf(os.Stderr, "Peak %d, RMS %.4f of full scale\n", analysis.Peak(rendered), analysis.RMS(rendered, 1<<15))
	if pitch, err := analysis.PeakFrequency(rendered, float64(cfg.Engine.SampleRate)); err == nil {
		p.Fprintf(os.Stderr, "Pitch %.1fHz, asked for %.1fHz\n", pitch, cfg.Voice.Frequency)
	}
}
