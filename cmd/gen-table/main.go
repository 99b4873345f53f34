// gen-table writes the sine table resource the oscillators load.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/pfcm/picosynth/sinetab"
)

var (
	outFlag       = flag.String("out", "sineTable.dat", "`path` to write the table to")
	amplitudeFlag = flag.Int("amplitude", sinetab.Amplitude, "peak value of the table")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("gen-table: ")

	if *amplitudeFlag <= 0 || *amplitudeFlag > 32767 {
		log.Fatalf("Amplitude %d doesn't fit in 16 bits", *amplitudeFlag)
	}
	tab := sinetab.Generate(int16(*amplitudeFlag))

	f, err := os.Create(*outFlag)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := tab.WriteTo(f); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	// Read it back the way the oscillators will.
	if _, err := sinetab.LoadFile(*outFlag); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %q, peak %d", *outFlag, tab.Peak())
}
