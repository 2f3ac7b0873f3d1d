// Package mp3 provides an mp3 file sink for the signal graph.
package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/viert/lame"

	"github.com/dudk/sound"
	"github.com/dudk/sound/signal"
)

// Errors returned by the sink.
var (
	ErrClosed         = errors.New("sink is closed")
	ErrFormatMismatch = errors.New("write does not match sink format")
)

// Sink encodes audio into an mp3 file. It accepts only blocks of exactly
// its fixed block size.
type Sink struct {
	rate      int
	channels  int
	blockSize int

	file   *os.File
	writer *lame.LameWriter
	closed bool
}

// NewSink creates an mp3 file at path and returns a sink encoding into it.
func NewSink(path string, sampleRate, numChannels, blockSize, bitRate, quality int) (*Sink, error) {
	if sampleRate <= 0 || numChannels <= 0 || blockSize <= 0 {
		return nil, fmt.Errorf("%w: rate %d, %d channels, block size %d", ErrFormatMismatch, sampleRate, numChannels, blockSize)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	wr := lame.NewWriter(f)
	wr.Encoder.SetBitrate(bitRate)
	wr.Encoder.SetQuality(quality)
	wr.Encoder.SetNumChannels(numChannels)
	wr.Encoder.SetInSamplerate(sampleRate)
	wr.Encoder.SetMode(lame.JOINT_STEREO)
	wr.Encoder.SetVBR(lame.VBR_RH)
	wr.Encoder.InitParams()

	return &Sink{
		rate:      sampleRate,
		channels:  numChannels,
		blockSize: blockSize,
		file:      f,
		writer:    wr,
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

	buf := new(bytes.Buffer)
	ints := signal.Interleave(channels, signal.BitDepth16)
	for i := range ints {
		if err := binary.Write(buf, binary.LittleEndian, int16(ints[i])); err != nil {
			return err
		}
	}
	_, err := s.writer.Write(buf.Bytes())
	return err
}

// Close flushes the encoder and closes the file.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.writer.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// Closed reports whether the sink is closed.
func (s *Sink) Closed() bool { return s.closed }
