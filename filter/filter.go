// Package filter provides biquad filter nodes for the signal graph.
//
// A Biquad implements the sound.Filter capability: it processes blocks in
// a streaming fashion, describes itself in time and frequency domain and
// wraps a source node as its audio input.
package filter

import (
	"math"
	"math/cmplx"

	"github.com/dudk/sound"
)

// impulseLength is the length of the impulse response block. A biquad with
// any reasonable damping decays well below numeric noise within it.
const impulseLength = 512

// Biquad is a single second-order section in Direct Form II Transposed.
// a0 is normalized to 1 and not stored. Like the graph combinators, its
// output is promoted to complex once a complex block is processed and
// never reverts.
type Biquad struct {
	b0, b1, b2 float64 // feedforward
	a1, a2     float64 // feedback

	d0, d1 complex128 // state
	cplx   bool
	rate   int
}

// New returns a biquad with the given normalized coefficients.
func New(rate int, b0, b1, b2, a1, a2 float64) *Biquad {
	return &Biquad{b0: b0, b1: b1, b2: b2, a1: a1, a2: a2, rate: rate}
}

// Lowpass returns a lowpass biquad with the given cutoff frequency in Hz
// and quality factor.
func Lowpass(rate int, cutoff, q float64) *Biquad {
	w0 := 2 * math.Pi * cutoff / float64(rate)
	cw, alpha := math.Cos(w0), math.Sin(w0)/(2*q)
	a0 := 1 + alpha
	return New(rate,
		(1-cw)/2/a0, (1-cw)/a0, (1-cw)/2/a0,
		-2*cw/a0, (1-alpha)/a0,
	)
}

// Highpass returns a highpass biquad with the given cutoff frequency in Hz
// and quality factor.
func Highpass(rate int, cutoff, q float64) *Biquad {
	w0 := 2 * math.Pi * cutoff / float64(rate)
	cw, alpha := math.Cos(w0), math.Sin(w0)/(2*q)
	a0 := 1 + alpha
	return New(rate,
		(1+cw)/2/a0, -(1+cw)/a0, (1+cw)/2/a0,
		-2*cw/a0, (1-alpha)/a0,
	)
}

// SampleRate returns the sample rate the filter was designed for.
func (f *Biquad) SampleRate() int {
	return f.rate
}

// Process filters the block in place and returns it. The filter is
// stateful: consecutive calls continue the same stream.
func (f *Biquad) Process(b sound.Block) sound.Block {
	if b.IsComplex() {
		f.cplx = true
	}
	if f.cplx {
		b = b.AsComplex()
		s := b.Complexes()
		for i, x := range s {
			y := complex(f.b0, 0)*x + f.d0
			f.d0 = complex(f.b1, 0)*x - complex(f.a1, 0)*y + f.d1
			f.d1 = complex(f.b2, 0)*x - complex(f.a2, 0)*y
			s[i] = y
		}
		return b
	}
	s := b.Floats()
	for i, x := range s {
		y := f.b0*x + real(f.d0)
		f.d0 = complex(f.b1*x-f.a1*y+real(f.d1), 0)
		f.d1 = complex(f.b2*x-f.a2*y, 0)
		s[i] = y
	}
	return b
}

// ImpulseResponse returns the filter's impulse response. The streaming
// state of the filter is left untouched.
func (f *Biquad) ImpulseResponse() sound.Block {
	probe := *f
	probe.d0, probe.d1 = 0, 0
	probe.cplx = false
	in := make([]float64, impulseLength)
	in[0] = 1
	return probe.Process(sound.Real(in))
}

// FrequencyResponse returns the complex transfer function evaluated at n
// frequencies uniformly covering the full circle [0, 2*pi), the same grid
// an n-point FFT of the impulse response would produce.
func (f *Biquad) FrequencyResponse(n int) sound.Block {
	s := make([]complex128, n)
	for k := range s {
		w := 2 * math.Pi * float64(k) / float64(n)
		ejw := cmplx.Exp(complex(0, -w))
		ej2w := ejw * ejw
		num := complex(f.b0, 0) + complex(f.b1, 0)*ejw + complex(f.b2, 0)*ej2w
		den := complex(1, 0) + complex(f.a1, 0)*ejw + complex(f.a2, 0)*ej2w
		s[k] = num / den
	}
	return sound.Complex(s)
}

// Wrap returns a node filtering the source's output. When inPlace is
// false, sampled blocks are copied before filtering, so the source's
// scratch storage is never overwritten.
func (f *Biquad) Wrap(src sound.Node, inPlace bool) sound.Node {
	return &filtered{src: src, f: f, inPlace: inPlace}
}

type filtered struct {
	src     sound.Node
	f       *Biquad
	inPlace bool
}

func (n *filtered) Sample(count int) (sound.Block, error) {
	b, err := n.src.Sample(count)
	if err != nil {
		return sound.Block{}, err
	}
	if !n.inPlace {
		b = b.Clone()
	}
	return n.f.Process(b), nil
}

func (n *filtered) Sources() []sound.Node {
	return []sound.Node{n.src}
}
