// Package adapter reconciles arbitrarily sized producer writes with a sink
// which only accepts blocks of exactly its fixed block size.
//
// The Writer buffers incoming samples in one ring buffer per channel and
// forwards them to the sink one rigid block at a time, preserving channel
// alignment and sample order exactly. Between writes at most
// blockSize-1 samples stay buffered per channel.
package adapter

import (
	"errors"
	"fmt"

	"github.com/dudk/sound"
	"github.com/dudk/sound/log"
	"github.com/dudk/sound/ring"
)

// Errors returned by writer operations.
var (
	ErrClosed         = errors.New("writer is closed")
	ErrChannelCount   = errors.New("channel count mismatch")
	ErrUnevenChannels = errors.New("channels of uneven length")
	ErrSink           = errors.New("sink is not usable")
)

// Writer owns a sink and smooths out block size mismatches in front of it.
type Writer struct {
	sink   sound.Sink
	rings  []*ring.Buffer // created lazily on first write
	closed bool
	logger log.Logger
}

// NewWriter returns a writer over the sink.
func NewWriter(sink sound.Sink) (*Writer, error) {
	if sink == nil || sink.BlockSize() <= 0 || sink.NumChannels() <= 0 {
		return nil, ErrSink
	}
	return &Writer{sink: sink, logger: log.GetLogger()}, nil
}

// Write buffers the per-channel blocks and forwards one sink-sized block
// per channel to the sink for as long as every channel holds a full one.
// All channels must carry blocks of one length; ring capacity grows as
// needed, buffered content is never dropped. Sink write failures propagate
// unchanged.
func (w *Writer) Write(channels []sound.Block) error {
	if w.closed {
		return ErrClosed
	}
	if len(channels) != w.sink.NumChannels() {
		return fmt.Errorf("%w: got %d, sink has %d", ErrChannelCount, len(channels), w.sink.NumChannels())
	}
	incoming := channels[0].Len()
	for _, c := range channels[1:] {
		if c.Len() != incoming {
			return ErrUnevenChannels
		}
	}

	blockSize := w.sink.BlockSize()
	if w.rings == nil {
		w.rings = make([]*ring.Buffer, len(channels))
		for i := range w.rings {
			w.rings[i] = ring.New(nextMultiple(blockSize, 2*blockSize))
		}
	}
	if buffered := w.rings[0].Len(); buffered+incoming > w.rings[0].Cap() {
		capacity := nextMultiple(blockSize, 2*blockSize+incoming)
		w.logger.Debug("adapter: growing rings to ", capacity)
		for _, r := range w.rings {
			if err := r.Resize(capacity); err != nil {
				return err
			}
		}
	}
	for i, c := range channels {
		if err := w.rings[i].Write(c); err != nil {
			return err
		}
	}

	for w.rings[0].Len() >= blockSize {
		if err := w.forward(blockSize); err != nil {
			return err
		}
	}
	return nil
}

// Flush forwards all buffered samples to the sink, zero-padding the final
// short block up to exactly the sink block size.
func (w *Writer) Flush() error {
	if w.rings == nil {
		return nil
	}
	blockSize := w.sink.BlockSize()
	for !w.rings[0].Empty() {
		n := w.rings[0].Len()
		if n > blockSize {
			n = blockSize
		}
		if err := w.forward(n); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered samples and closes the sink. The flush attempt is
// always performed, so a failing sink close does not also lose the
// buffered tail.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	errFlush := w.Flush()
	errClose := w.sink.Close()
	switch {
	case errFlush != nil && errClose != nil:
		return &ErrorClose{ErrFlush: errFlush, ErrClose: errClose}
	case errFlush != nil:
		return errFlush
	default:
		return errClose
	}
}

// forward pops n samples from every ring, zero-pads them to the sink block
// size and writes them to the sink as one call.
func (w *Writer) forward(n int) error {
	blockSize := w.sink.BlockSize()
	out := make([]sound.Block, len(w.rings))
	for i, r := range w.rings {
		b, err := r.Read(n)
		if err != nil {
			return err
		}
		if n < blockSize {
			b = pad(b, blockSize)
		}
		out[i] = b
	}
	return w.sink.Write(out)
}

// pad appends zeros to the block up to length n, preserving its dtype.
func pad(b sound.Block, n int) sound.Block {
	if b.IsComplex() {
		s := make([]complex128, n)
		copy(s, b.Complexes())
		return sound.Complex(s)
	}
	s := make([]float64, n)
	copy(s, b.Floats())
	return sound.Real(s)
}

// nextMultiple returns the smallest multiple of block strictly greater
// than n.
func nextMultiple(block, n int) int {
	return block * (n/block + 1)
}

// ErrorClose is returned if both the flush and the sink close failed.
type ErrorClose struct {
	ErrFlush error
	ErrClose error
}

func (e *ErrorClose) Error() string {
	return fmt.Sprintf("close error: %v after flush error: %v", e.ErrClose, e.ErrFlush)
}

// Is checks if any of the wrapped errors match the provided sentinel error.
func (e *ErrorClose) Is(err error) bool {
	return errors.Is(e.ErrFlush, err) || errors.Is(e.ErrClose, err)
}
