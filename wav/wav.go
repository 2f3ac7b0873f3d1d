// Package wav provides a wav file sink for the signal graph.
package wav

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dudk/sound"
	"github.com/dudk/sound/signal"
)

// Errors returned by the sink.
var (
	ErrUnsupportedBitDepth = errors.New("only 16 and 32 bit depth is supported")
	ErrClosed              = errors.New("sink is closed")
	ErrFormatMismatch      = errors.New("write does not match sink format")
)

// wav audio format value for PCM.
const wavFormat = 1

// Sink saves audio to a wav file. It accepts only blocks of exactly its
// fixed block size; put the adapter package in front of it to write
// arbitrarily sized blocks.
type Sink struct {
	path      string
	rate      int
	channels  int
	blockSize int
	bitDepth  signal.BitDepth

	file    *os.File
	encoder *wav.Encoder
	ib      *audio.IntBuffer
	closed  bool
}

// NewSink creates a wav file at path and returns a sink writing to it.
func NewSink(path string, sampleRate, numChannels, blockSize int, bitDepth signal.BitDepth) (*Sink, error) {
	if bitDepth != signal.BitDepth16 && bitDepth != signal.BitDepth32 {
		return nil, ErrUnsupportedBitDepth
	}
	if sampleRate <= 0 || numChannels <= 0 || blockSize <= 0 {
		return nil, fmt.Errorf("%w: rate %d, %d channels, block size %d", ErrFormatMismatch, sampleRate, numChannels, blockSize)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Sink{
		path:      path,
		rate:      sampleRate,
		channels:  numChannels,
		blockSize: blockSize,
		bitDepth:  bitDepth,
		file:      f,
		encoder:   wav.NewEncoder(f, sampleRate, int(bitDepth), numChannels, wavFormat),
		ib: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: numChannels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: int(bitDepth),
		},
	}, nil
}

// SampleRate returns the sink sample rate.
func (s *Sink) SampleRate() int { return s.rate }

// NumChannels returns the number of sink channels.
func (s *Sink) NumChannels() int { return s.channels }

// BlockSize returns the fixed block size of the sink.
func (s *Sink) BlockSize() int { return s.blockSize }

// Write encodes one block per channel into the file.
func (s *Sink) Write(channels []sound.Block) error {
	if s.closed {
		return ErrClosed
	}
	if len(channels) != s.channels {
		return fmt.Errorf("%w: got %d channels, want %d", ErrFormatMismatch, len(channels), s.channels)
	}
	for _, c := range channels {
		if c.Len() != s.blockSize {
			return fmt.Errorf("%w: got %d samples, want %d", ErrFormatMismatch, c.Len(), s.blockSize)
		}
	}
	s.ib.Data = signal.Interleave(channels, s.bitDepth)
	return s.encoder.Write(s.ib)
}

// Close finalizes the wav header and closes the file.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.encoder.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// Closed reports whether the sink is closed.
func (s *Sink) Closed() bool { return s.closed }
