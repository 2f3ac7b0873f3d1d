// Package ring provides a fixed-capacity FIFO over real or complex samples.
//
// The buffer never grows on its own: a write beyond free space is an error,
// growth happens only through an explicit Resize. The backing store is
// promoted from real to complex on the first complex write and never
// reverts.
package ring

import (
	"errors"
	"fmt"

	"github.com/dudk/sound"
)

// Errors returned by buffer operations.
var (
	ErrFull      = errors.New("write exceeds free space")
	ErrUnderflow = errors.New("read exceeds buffered samples")
	ErrCapacity  = errors.New("capacity is less than buffered samples")
)

// Buffer is a fixed-capacity FIFO of samples. The zero value is not usable,
// use New.
type Buffer struct {
	floats []float64    // nil once promoted
	cplx   []complex128 // nil until promoted
	head   int          // index of the oldest sample
	size   int          // number of buffered samples
}

// New returns a buffer of the given capacity holding real samples.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{floats: make([]float64, capacity)}
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	if b.cplx != nil {
		return len(b.cplx)
	}
	return len(b.floats)
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	return b.size
}

// Empty reports whether the buffer holds no samples.
func (b *Buffer) Empty() bool {
	return b.size == 0
}

// IsComplex reports whether the backing store has been promoted to complex.
func (b *Buffer) IsComplex() bool {
	return b.cplx != nil
}

// Write appends the block to the tail of the buffer. It fails with ErrFull
// if the block is longer than the free space; the buffer never grows
// implicitly. Writing a complex block permanently promotes the backing
// store to complex.
func (b *Buffer) Write(block sound.Block) error {
	n := block.Len()
	if n == 0 {
		return nil
	}
	if free := b.Cap() - b.size; n > free {
		return fmt.Errorf("%w: writing %d into %d", ErrFull, n, free)
	}
	if block.IsComplex() {
		b.promote()
	}
	capacity := b.Cap()
	tail := (b.head + b.size) % capacity
	if b.cplx != nil {
		for i := 0; i < n; i++ {
			b.cplx[(tail+i)%capacity] = block.At(i)
		}
	} else {
		src := block.Floats()
		for i := 0; i < n; i++ {
			b.floats[(tail+i)%capacity] = src[i]
		}
	}
	b.size += n
	return nil
}

// Read removes and returns the oldest n samples in their original order.
// It fails with ErrUnderflow if fewer than n samples are buffered.
func (b *Buffer) Read(n int) (sound.Block, error) {
	if n > b.size {
		return sound.Block{}, fmt.Errorf("%w: reading %d of %d", ErrUnderflow, n, b.size)
	}
	capacity := b.Cap()
	var out sound.Block
	if b.cplx != nil {
		s := make([]complex128, n)
		for i := range s {
			s[i] = b.cplx[(b.head+i)%capacity]
		}
		out = sound.Complex(s)
	} else {
		s := make([]float64, n)
		for i := range s {
			s[i] = b.floats[(b.head+i)%capacity]
		}
		out = sound.Real(s)
	}
	if capacity > 0 {
		b.head = (b.head + n) % capacity
	}
	b.size -= n
	return out, nil
}

// Resize replaces the backing store with one of the given capacity, copying
// the buffered samples to its front in their original order. It fails with
// ErrCapacity if the buffered content would not fit.
func (b *Buffer) Resize(capacity int) error {
	if capacity < b.size {
		return fmt.Errorf("%w: %d buffered, resizing to %d", ErrCapacity, b.size, capacity)
	}
	old := b.Cap()
	if b.cplx != nil {
		s := make([]complex128, capacity)
		for i := 0; i < b.size; i++ {
			s[i] = b.cplx[(b.head+i)%old]
		}
		b.cplx = s
	} else {
		s := make([]float64, capacity)
		for i := 0; i < b.size; i++ {
			s[i] = b.floats[(b.head+i)%old]
		}
		b.floats = s
	}
	b.head = 0
	return nil
}

// promote converts the backing store to complex preserving content and
// layout.
func (b *Buffer) promote() {
	if b.cplx != nil {
		return
	}
	s := make([]complex128, len(b.floats))
	for i, v := range b.floats {
		s[i] = complex(v, 0)
	}
	b.cplx = s
	b.floats = nil
}
