// Package portaudio provides a hardware playback sink for the signal
// graph, using the default portaudio output device.
package portaudio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/dudk/sound"
	"github.com/dudk/sound/signal"
)

// Errors returned by the sink.
var (
	ErrClosed         = errors.New("sink is closed")
	ErrFormatMismatch = errors.New("write does not match sink format")
)

// Sink plays audio on the default output device. The portaudio stream has
// a structurally fixed block size: every write must carry exactly one
// stream buffer of samples per channel.
type Sink struct {
	rate      int
	channels  int
	blockSize int

	buf    []float32
	stream *portaudio.Stream
	closed bool
}

// NewSink initializes portaudio and opens a started stream on the default
// output device.
func NewSink(sampleRate, numChannels, blockSize int) (*Sink, error) {
	if sampleRate <= 0 || numChannels <= 0 || blockSize <= 0 {
		return nil, fmt.Errorf("%w: rate %d, %d channels, block size %d", ErrFormatMismatch, sampleRate, numChannels, blockSize)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &Sink{
		rate:      sampleRate,
		channels:  numChannels,
		blockSize: blockSize,
		buf:       make([]float32, blockSize*numChannels),
	}
	stream, err := portaudio.OpenDefaultStream(0, numChannels, float64(sampleRate), blockSize, &s.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

// SampleRate returns the sink sample rate.
func (s *Sink) SampleRate() int { return s.rate }

// NumChannels returns the number of sink channels.
func (s *Sink) NumChannels() int { return s.channels }

// BlockSize returns the fixed block size of the sink.
func (s *Sink) BlockSize() int { return s.blockSize }

// Write plays one block per channel on the stream.
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
	signal.InterFloat32(channels, s.buf)
	return s.stream.Write()
}

// Close stops the stream and terminates portaudio.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		portaudio.Terminate()
		return err
	}
	if err := s.stream.Close(); err != nil {
		portaudio.Terminate()
		return err
	}
	return portaudio.Terminate()
}

// Closed reports whether the sink is closed.
func (s *Sink) Closed() bool { return s.closed }
