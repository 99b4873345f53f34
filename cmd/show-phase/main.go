// show-phase shows how a frequency becomes a phase increment and how the
// oscillator reads the table at a given phase, mostly for checking the
// fixed point arithmetic by hand.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfcm/picosynth/fix"
	"github.com/pfcm/picosynth/interp"
	"github.com/pfcm/picosynth/sinetab"
)

var (
	rateFlag  = flag.Float64("rate", 24000, "sample rate in Hz")
	stepsFlag = flag.Int("steps", 8, "number of oscillator steps to show")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fmt.Fprintln(flag.CommandLine.Output(), "\nOptional arguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if n := flag.NArg(); n < 1 || n > 2 {
		fail("Need exactly one or two arguments.")
	}
	freq, err := strconv.ParseFloat(flag.Arg(0), 64)
	if err != nil {
		fail(err.Error())
	}
	if freq <= 0 || freq >= *rateFlag/2 {
		fail(fmt.Sprintf("%gHz is outside (0, %g)", freq, *rateFlag/2))
	}
	var start fix.Phase
	if flag.NArg() == 2 {
		p, err := strconv.ParseUint(flag.Arg(1), 0, 16)
		if err != nil {
			fail(err.Error())
		}
		start = fix.Phase(p)
	}

	p := message.NewPrinter(language.English)
	inc := fix.PhaseIncrement(freq, *rateFlag)
	p.Printf("%gHz at %gHz: increment %d (%v), plays %.3fHz\n\n",
		freq, *rateFlag, uint16(inc), inc, fix.Frequency(inc, *rateFlag))

	tab := sinetab.Default()
	var accel interp.Interp
	accel.Configure()

	w := tabwriter.NewWriter(os.Stdout, 8, 1, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "phase\tindex\tnext\tfrac\tv0\tv1\tblend\tsine\t")
	phase := start
	for range *stepsFlag {
		i, next := phase.Index(), phase.Next()
		v0, v1 := tab.At(i), tab.At(next)
		got := accel.Blend(v0, v1, phase.Frac())
		exact := sinetab.Amplitude * math.Sin(2*math.Pi*float64(phase)/(1<<16))
		p.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.1f\t\n", uint16(phase), i, next, phase.Frac(), v0, v1, got, exact)
		phase += inc
	}
	if err := w.Flush(); err != nil {
		fail(err.Error())
	}
}

func fail(reason string) {
	fmt.Fprintln(os.Stderr, reason)
	fmt.Fprint(os.Stderr, help)
	os.Exit(1)
}

const help = `show-phase shows the phase increment for a frequency and the first
few steps of an oscillator playing it, next to the exact sine.
Usage:
	show-phase [-rate hz] [-steps n] freq [phase]

Where freq is in Hz and phase is the U8.8 starting phase as an integer
literal in Go syntax.
`
