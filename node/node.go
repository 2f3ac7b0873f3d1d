// Package node provides the arithmetic algebra of the signal graph:
// composition operators which construct new nodes from existing ones.
//
// Operators are pure: they never mutate the sampled output of an operand.
// The only side effect is the advisory duration/amplitude fix-up: Add, Sub
// and Mul ask operands implementing the sound.DurationExtender and
// sound.AmplitudeDefaulter hooks to switch themselves to an unbounded
// duration and, for Mul, a full-scale amplitude, so that combining a
// finite or quiet-by-default generator does not truncate or attenuate the
// combined output.
package node

import (
	"math"
	"math/cmplx"

	"github.com/dudk/sound"
	"github.com/dudk/sound/mixer"
)

// Add returns a mixer summing a and b with gain 1 each.
func Add(a, b sound.Node) (*mixer.Mixer, error) {
	extendDuration(a, b)
	return mixer.New(mixer.In(a), mixer.In(b))
}

// Sub returns a mixer summing a and b with gain -1 on b.
func Sub(a, b sound.Node) (*mixer.Mixer, error) {
	extendDuration(a, b)
	return mixer.New(mixer.In(a), mixer.Scaled(b, -1))
}

// Multiplier is the elementwise product of its sources, scaled by a
// coefficient. Like the mixer, its output dtype is promoted to complex once
// any source produces a complex block and never reverts.
type Multiplier struct {
	sound.UID
	srcs  []sound.Node
	coeff complex128
	cplx  bool
}

// Mul returns a multiplier over the given sources with coefficient 1.
// Every operand implementing the duration or amplitude hook is switched to
// unbounded duration and full-scale amplitude.
func Mul(srcs ...sound.Node) *Multiplier {
	extendDuration(srcs...)
	extendAmplitude(srcs...)
	return &Multiplier{UID: sound.NewUID(), srcs: srcs, coeff: 1}
}

// SetCoeff replaces the multiplicative coefficient.
func (m *Multiplier) SetCoeff(v complex128) {
	m.coeff = v
	if imag(v) != 0 {
		m.cplx = true
	}
}

// Sample pulls n samples from every source and returns their elementwise
// product. If any source is exhausted, the multiplier is exhausted. The
// result is truncated to the shortest pulled block.
func (m *Multiplier) Sample(n int) (sound.Block, error) {
	if n <= 0 {
		return sound.Block{}, nil
	}
	blocks := make([]sound.Block, len(m.srcs))
	out := n
	for i, src := range m.srcs {
		b, err := src.Sample(n)
		if err != nil {
			return sound.Block{}, err
		}
		if b.IsComplex() {
			m.cplx = true
		}
		if b.Len() < out {
			out = b.Len()
		}
		blocks[i] = b
	}

	if m.cplx {
		s := make([]complex128, out)
		for j := range s {
			s[j] = m.coeff
		}
		for _, b := range blocks {
			for j := 0; j < out; j++ {
				s[j] *= b.At(j)
			}
		}
		return sound.Complex(s), nil
	}

	s := make([]float64, out)
	c := real(m.coeff)
	for j := range s {
		s[j] = c
	}
	for _, b := range blocks {
		f := b.Floats()
		for j := 0; j < out; j++ {
			s[j] *= f[j]
		}
	}
	return sound.Real(s), nil
}

// Sources returns the multiplied sources.
func (m *Multiplier) Sources() []sound.Node {
	return append([]sound.Node(nil), m.srcs...)
}

// binary is an elementwise combinator of two operands. End of stream of
// either operand exhausts the combinator without an error.
type binary struct {
	a, b   sound.Node
	realFn func(x, y float64) float64
	cplxFn func(x, y complex128) complex128
	cplx   bool
}

// Div returns a node dividing a's samples by b's.
func Div(a, b sound.Node) sound.Node {
	return &binary{
		a: a, b: b,
		realFn: func(x, y float64) float64 { return x / y },
		cplxFn: func(x, y complex128) complex128 { return x / y },
	}
}

// Pow returns a node raising a's samples to b's.
func Pow(a, b sound.Node) sound.Node {
	return &binary{
		a: a, b: b,
		realFn: math.Pow,
		cplxFn: cmplx.Pow,
	}
}

func (n *binary) Sample(count int) (sound.Block, error) {
	if count <= 0 {
		return sound.Block{}, nil
	}
	ba, err := n.a.Sample(count)
	if err != nil {
		return sound.Block{}, err
	}
	bb, err := n.b.Sample(count)
	if err != nil {
		return sound.Block{}, err
	}
	out := ba.Len()
	if bb.Len() < out {
		out = bb.Len()
	}
	if ba.IsComplex() || bb.IsComplex() {
		n.cplx = true
	}

	if n.cplx {
		s := make([]complex128, out)
		for i := range s {
			s[i] = n.cplxFn(ba.At(i), bb.At(i))
		}
		return sound.Complex(s), nil
	}
	fa, fb := ba.Floats(), bb.Floats()
	s := make([]float64, out)
	for i := range s {
		s[i] = n.realFn(fa[i], fb[i])
	}
	return sound.Real(s), nil
}

func (n *binary) Sources() []sound.Node {
	return []sound.Node{n.a, n.b}
}

// proc applies a block function to its source's output.
type proc struct {
	src sound.Node
	fn  func(sound.Block) sound.Block
}

// Proc returns a node which samples src and applies fn to the resulting
// block. Ownership of the block transfers to fn, which may rework it in
// place. If src is exhausted, end of stream propagates without invoking fn.
func Proc(src sound.Node, fn func(sound.Block) sound.Block) sound.Node {
	return &proc{src: src, fn: fn}
}

func (p *proc) Sample(n int) (sound.Block, error) {
	b, err := p.src.Sample(n)
	if err != nil {
		return sound.Block{}, err
	}
	return p.fn(b), nil
}

func (p *proc) Sources() []sound.Node {
	return []sound.Node{p.src}
}

// mapped returns a node applying a per-sample function to src's output,
// picking the real or complex form to match the block dtype. It reworks
// blocks in place.
func mapped(src sound.Node, realFn func(float64) float64, cplxFn func(complex128) complex128) sound.Node {
	return Proc(src, func(b sound.Block) sound.Block {
		if b.IsComplex() {
			s := b.Complexes()
			for i, v := range s {
				s[i] = cplxFn(v)
			}
			return b
		}
		s := b.Floats()
		for i, v := range s {
			s[i] = realFn(v)
		}
		return b
	})
}

// Log returns a node applying the natural logarithm to every sample.
func Log(src sound.Node) sound.Node {
	return mapped(src, math.Log, cmplx.Log)
}

// Log2 returns a node applying the base-2 logarithm to every sample.
func Log2(src sound.Node) sound.Node {
	return mapped(src, math.Log2, func(z complex128) complex128 {
		return cmplx.Log(z) / complex(math.Ln2, 0)
	})
}

// Log10 returns a node applying the base-10 logarithm to every sample.
func Log10(src sound.Node) sound.Node {
	return mapped(src, math.Log10, func(z complex128) complex128 {
		return cmplx.Log(z) / complex(math.Log(10), 0)
	})
}

// Softclip returns a waveshaping node. Samples within [-threshold,
// threshold] pass through, samples beyond it approach +-1 asymptotically.
// Complex samples are shaped per component.
func Softclip(src sound.Node, threshold float64) sound.Node {
	clip := func(x float64) float64 {
		ax := math.Abs(x)
		if ax <= threshold {
			return x
		}
		u := (ax - threshold) / (1 - threshold)
		y := threshold + (1-threshold)*u/(1+u)
		return math.Copysign(y, x)
	}
	return mapped(src, clip, func(z complex128) complex128 {
		return complex(clip(real(z)), clip(imag(z)))
	})
}

// Filtered wraps src as the audio input of the filter.
func Filtered(src sound.Node, f sound.Filter) sound.Node {
	return f.Wrap(src, false)
}

// Constant is an unbounded source of a single value. It lets a bare number
// take part in graph arithmetic.
type Constant struct {
	value complex128
}

// Const returns a node producing the given value indefinitely.
func Const(v complex128) *Constant {
	return &Constant{value: v}
}

// ConstReal returns a node producing the given real value indefinitely.
func ConstReal(v float64) *Constant {
	return &Constant{value: complex(v, 0)}
}

// Value returns the produced value.
func (c *Constant) Value() complex128 {
	return c.value
}

// Sample produces n copies of the constant. A real value produces a real
// block.
func (c *Constant) Sample(n int) (sound.Block, error) {
	if n <= 0 {
		return sound.Block{}, nil
	}
	if imag(c.value) != 0 {
		s := make([]complex128, n)
		for i := range s {
			s[i] = c.value
		}
		return sound.Complex(s), nil
	}
	s := make([]float64, n)
	if v := real(c.value); v != 0 {
		for i := range s {
			s[i] = v
		}
	}
	return sound.Real(s), nil
}

// Sources implements sound.Node. The constant is a leaf.
func (c *Constant) Sources() []sound.Node {
	return nil
}

func extendDuration(srcs ...sound.Node) {
	for _, src := range srcs {
		if d, ok := src.(sound.DurationExtender); ok {
			d.ExtendDurationIfUnbounded()
		}
	}
}

func extendAmplitude(srcs ...sound.Node) {
	for _, src := range srcs {
		if a, ok := src.(sound.AmplitudeDefaulter); ok {
			a.ExtendAmplitudeIfDefault()
		}
	}
}
