// package buffer adapts fixed-size audio quanta to sinks that pull however
// many samples they like.
package buffer

import (
	"encoding/binary"
	"sync"
)

// Quanta is a stream of samples made one quantum at a time. Sinks read from
// it on their own goroutine; the mutex means the producer behind next is
// only ever run by one of them at a time.
type Quanta struct {
	mu   sync.Mutex
	next func() []int16
	cur  []int16
	pos  int
	read int64
}

// NewQuanta makes a stream that calls next whenever it runs out of samples.
// The slice next returns only has to stay valid until the following call.
func NewQuanta(next func() []int16) *Quanta {
	return &Quanta{next: next}
}

// ReadSamples fills out entirely, making as many new quanta as it takes.
func (q *Quanta) ReadSamples(out []int16) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(out) > 0 {
		if q.pos == len(q.cur) {
			q.cur = q.next()
			q.pos = 0
			if len(q.cur) == 0 {
				// an empty quantum would spin forever.
				panic("buffer: empty quantum")
			}
		}
		n := copy(out, q.cur[q.pos:])
		q.pos += n
		q.read += int64(n)
		out = out[n:]
	}
}

// Read implements io.Reader, producing signed 16 bit little-endian samples.
// It never fails and always fills a whole number of samples.
func (q *Quanta) Read(p []byte) (int, error) {
	n := len(p) / 2
	b := getB(n)
	defer putB(b)
	q.ReadSamples(b)
	for i, s := range b {
		binary.LittleEndian.PutUint16(p[2*i:], uint16(s))
	}
	return 2 * n, nil
}

// Samples is the number of samples read so far.
func (q *Quanta) Samples() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.read
}

var pool = sync.Pool{
	New: func() any {
		b := make([]int16, 4096)
		return &b
	},
}

func getB(size int) []int16 {
	b := *(pool.Get().(*[]int16))
	if cap(b) < size {
		b = make([]int16, size)
	}
	return b[:size]
}

func putB(b []int16) {
	pool.Put(&b)
}
