// Package signal converts graph blocks into the interleaved integer and
// float layouts consumed by audio transports.
//
// Complex blocks are encoded by their real part: the imaginary part is an
// analysis artifact and carries no audible signal of its own.
package signal

import (
	"math"

	"github.com/dudk/sound"
)

// BitDepth contains values required for float-to-int conversion.
type BitDepth int

const (
	// BitDepth8 is 8 bit depth.
	BitDepth8 = BitDepth(8)
	// BitDepth16 is 16 bit depth.
	BitDepth16 = BitDepth(16)
	// BitDepth32 is 32 bit depth.
	BitDepth32 = BitDepth(32)
)

// multiplier is used when float to int conversion is done.
func (bitDepth BitDepth) multiplier() int {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8 - 1
	case BitDepth16:
		return math.MaxInt16 - 1
	case BitDepth32:
		return math.MaxInt32 - 1
	default:
		return 1
	}
}

// Interleave converts per-channel blocks into interleaved ints of the
// given bit depth. All channels must have one length.
func Interleave(channels []sound.Block, bitDepth BitDepth) []int {
	numChannels := len(channels)
	if numChannels == 0 {
		return nil
	}
	size := channels[0].Len()
	multiplier := float64(bitDepth.multiplier())

	ints := make([]int, size*numChannels)
	for j, c := range channels {
		for i := 0; i < size; i++ {
			ints[i*numChannels+j] = int(at(c, i) * multiplier)
		}
	}
	return ints
}

// InterFloat32 converts per-channel blocks into interleaved float32
// samples. All channels must have one length.
func InterFloat32(channels []sound.Block, dst []float32) []float32 {
	numChannels := len(channels)
	if numChannels == 0 {
		return dst[:0]
	}
	size := channels[0].Len()
	if cap(dst) < size*numChannels {
		dst = make([]float32, size*numChannels)
	}
	dst = dst[:size*numChannels]
	for j, c := range channels {
		for i := 0; i < size; i++ {
			dst[i*numChannels+j] = float32(at(c, i))
		}
	}
	return dst
}

// at returns the i-th sample of the block as a real value.
func at(b sound.Block, i int) float64 {
	if b.IsComplex() {
		return real(b.Complexes()[i])
	}
	return b.Floats()[i]
}
