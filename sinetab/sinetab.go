// package sinetab holds the sine table the oscillators read from.
package sinetab

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	// Len is the number of entries in one period.
	Len = 256
	// Size is the size of the binary resource in bytes.
	Size = Len * 2
	// Amplitude is the peak value of the reference table.
	Amplitude = 32000
)

// ErrResource is returned, wrapped, whenever a table can't be loaded.
var ErrResource = errors.New("bad sine table resource")

// Table is one period of a sine wave as signed 16 bit samples. It never
// changes once made, so one Table can be shared by any number of
// oscillators.
type Table struct {
	tab [Len]int16
}

// At returns entry i. A uint8 index can't be out of range.
func (t *Table) At(i uint8) int16 { return t.tab[i] }

// Peak returns the largest entry.
func (t *Table) Peak() int16 {
	var p int16
	for _, s := range t.tab {
		p = max(p, s)
	}
	return p
}

// Load reads a table in the resource format: exactly 256 little-endian
// int16s. Anything shorter or longer is an error and no table is returned.
func Load(r io.Reader) (*Table, error) {
	var raw [Size]byte
	if n, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("%w: read %d of %d bytes: %v", ErrResource, n, Size, err)
	}
	var extra [1]byte
	if n, err := io.ReadFull(r, extra[:]); n != 0 || err != io.EOF {
		if n == 0 {
			return nil, fmt.Errorf("%w: after %d bytes: %v", ErrResource, Size, err)
		}
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResource, Size)
	}
	t := &Table{}
	for i := range t.tab {
		t.tab[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return t, nil
}

// LoadFile loads a table from the named file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResource, err)
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Generate bakes a table with the given peak amplitude.
func Generate(amplitude int16) *Table {
	t := &Table{}
	for i := range t.tab {
		f := math.Sin(2 * math.Pi * float64(i) / Len)
		t.tab[i] = int16(math.Round(f * float64(amplitude)))
	}
	return t
}

// Default returns the reference table.
func Default() *Table { return Generate(Amplitude) }

// WriteTo writes t in the resource format.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	b := make([]byte, 0, Size)
	for _, s := range t.tab {
		b = binary.LittleEndian.AppendUint16(b, uint16(s))
	}
	n, err := w.Write(b)
	return int64(n), err
}
