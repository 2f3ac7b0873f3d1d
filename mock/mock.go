// Package mock provides signal graph components to test arbitrary
// combinators and sinks.
package mock

import (
	"errors"
	"io"

	"github.com/dudk/sound"
)

// Source produces a constant-valued signal. A negative Limit means an
// unbounded source; otherwise the source gets exhausted after Limit
// samples, producing a shorter final block if needed.
type Source struct {
	Value complex128
	Cplx  bool // produce complex blocks
	Limit int

	pos     int
	Sampled int // total samples produced
	Calls   int
}

// Sample produces the next block of the source.
func (s *Source) Sample(n int) (sound.Block, error) {
	s.Calls++
	if n <= 0 {
		return sound.Block{}, nil
	}
	if s.Limit >= 0 {
		left := s.Limit - s.pos
		if left <= 0 {
			return sound.Block{}, io.EOF
		}
		if n > left {
			n = left
		}
	}
	s.pos += n
	s.Sampled += n
	if s.Cplx {
		b := make([]complex128, n)
		for i := range b {
			b[i] = s.Value
		}
		return sound.Complex(b), nil
	}
	b := make([]float64, n)
	v := real(s.Value)
	for i := range b {
		b[i] = v
	}
	return sound.Real(b), nil
}

// Sources implements sound.Node. The source is a leaf.
func (s *Source) Sources() []sound.Node {
	return nil
}

// Unbounded returns an unbounded constant source.
func Unbounded(v complex128) *Source {
	return &Source{Value: v, Limit: -1}
}

// Blocks is a source scripted with explicit blocks. Every Sample call
// returns the next block regardless of the requested count, then io.EOF.
type Blocks struct {
	Script []sound.Block
	pos    int
}

// Sample returns the next scripted block.
func (b *Blocks) Sample(int) (sound.Block, error) {
	if b.pos >= len(b.Script) {
		return sound.Block{}, io.EOF
	}
	out := b.Script[b.pos]
	b.pos++
	return out, nil
}

// Sources implements sound.Node. The source is a leaf.
func (b *Blocks) Sources() []sound.Node {
	return nil
}

// ErrSinkClosed is returned by Sink.Write after Close.
var ErrSinkClosed = errors.New("sink is closed")

// Sink records every block it receives. It enforces the rigid-block
// contract: writes of any other size than BlockSize fail.
type Sink struct {
	Rate     int
	Channels int
	Block    int

	Received [][]sound.Block // one entry per Write call
	closed   bool

	FailWrite error // when set, Write returns it
	FailClose error // when set, Close returns it
}

// SampleRate returns the sink sample rate.
func (s *Sink) SampleRate() int { return s.Rate }

// NumChannels returns the number of sink channels.
func (s *Sink) NumChannels() int { return s.Channels }

// BlockSize returns the fixed block size of the sink.
func (s *Sink) BlockSize() int { return s.Block }

// Write records the received channels.
func (s *Sink) Write(channels []sound.Block) error {
	if s.closed {
		return ErrSinkClosed
	}
	if s.FailWrite != nil {
		return s.FailWrite
	}
	if len(channels) != s.Channels {
		return errors.New("channel count mismatch")
	}
	for _, c := range channels {
		if c.Len() != s.Block {
			return errors.New("block size mismatch")
		}
	}
	call := make([]sound.Block, len(channels))
	for i, c := range channels {
		call[i] = c.Clone()
	}
	s.Received = append(s.Received, call)
	return nil
}

// Close marks the sink closed.
func (s *Sink) Close() error {
	if s.FailClose != nil {
		return s.FailClose
	}
	s.closed = true
	return nil
}

// Closed reports whether the sink is closed.
func (s *Sink) Closed() bool { return s.closed }
