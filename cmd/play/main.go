// play plays the configured voice on the default output device until
// interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pfcm/picosynth"
	"github.com/pfcm/picosynth/config"
	"github.com/pfcm/picosynth/fix"
	"github.com/pfcm/picosynth/internal/analysis"
	"github.com/pfcm/picosynth/io"
)

var (
	configFlag  = flag.String("config", "picosynth.toml", "`path` of the TOML config; defaults are used if it doesn't exist")
	backendFlag = flag.String("backend", "", "audio backend, overriding the config")
	profileFlag = flag.Bool("profile", false, "whether to write pprof profiles to the current working directory")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("play: ")

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}
	if *backendFlag != "" {
		cfg.Output.Backend = *backendFlag
	}
	v, err := cfg.BuildVoice()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%v at %gHz (phase increment %v), %s", v, cfg.Voice.Frequency, v.PhaseIncrement(), cfg.Output.Backend)

	if *profileFlag {
		finish, err := startProfiles()
		if err != nil {
			log.Fatalf("Starting profiling: %v", err)
		}
		defer func() {
			if err := finish(); err != nil {
				log.Fatalf("Finishing profiles: %v", err)
			}
		}()
	}

	g, ctx := errgroup.WithContext(interruptContext())

	m := &meter{v: v}
	g.Go(func() error {
		return io.Play(ctx, cfg.Output.Backend, m.process, cfg.Format())
	})
	g.Go(func() error {
		t0 := time.Now()
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				fmt.Println()
				return nil
			case <-t.C:
				rms, level, state := m.get()
				fmt.Printf("\r%.4f: rms %.3f env %s %.3f", time.Since(t0).Seconds(), rms, state, level)
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// meter runs the voice for the audio callback and keeps a smoothed RMS
// of what it made for the display.
type meter struct {
	v *picosynth.Voice[int32]

	mu    sync.Mutex
	rms   float64
	level fix.Gain
	state string
}

func (m *meter) process() []int32 {
	out := m.v.Process()
	rms := analysis.RMS(out, 1<<15)
	e := m.v.Envelope()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rms = 0.01*m.rms + 0.99*rms
	m.level = e.Level()
	m.state = e.State().String()
	return out
}

func (m *meter) get() (float64, float64, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rms, fix.GainToFloat[float64](m.level), m.state
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}

func startProfiles() (func() error, error) {
	cpu, err := os.Create("cpu.pprof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}

	mem, err := os.Create("mem.pprof")
	if err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := cpu.Close(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mem); err != nil {
			return err
		}
		return mem.Close()
	}, nil
}
