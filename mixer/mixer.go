// Package mixer provides the weighted-summation combinator of the signal
// graph: output = constant + sum of gain-scaled inputs.
package mixer

import (
	"errors"
	"fmt"

	"github.com/dudk/sound"
)

// Errors returned by mixer operations.
var (
	ErrDuplicateSummand = errors.New("summand is already present")
	ErrNilSummand       = errors.New("summand is nil")
	ErrSummandMissing   = errors.New("summand is not present")
)

// Mixer sums up gain-scaled source nodes and a scalar constant. Once any
// summand produces a complex block, or a gain or the constant holds a
// complex value, the mixer's output stays complex for the rest of its
// lifetime.
type Mixer struct {
	sound.UID
	summands []summand
	index    map[sound.Node]int
	constant complex128
	cplx     bool

	// scratch accumulators, reused across calls of the same size and dtype
	accF []float64
	accC []complex128
}

type summand struct {
	src  sound.Node
	gain complex128
}

// Input is a single entry of the mixer constructor.
type Input struct {
	src     sound.Node
	gain    complex128
	offset  complex128
	numeric bool
}

// In adds a source with gain 1.
func In(src sound.Node) Input {
	return Input{src: src, gain: 1}
}

// Scaled adds a source with the given gain.
func Scaled(src sound.Node, gain complex128) Input {
	return Input{src: src, gain: gain}
}

// Offset folds a numeric entry into the mixer's scalar constant.
func Offset(v complex128) Input {
	return Input{offset: v, numeric: true}
}

// New returns a mixer over the given inputs. It fails if the same source
// appears twice or if a source entry is nil.
func New(inputs ...Input) (*Mixer, error) {
	m := &Mixer{
		UID:   sound.NewUID(),
		index: make(map[sound.Node]int),
	}
	for i, in := range inputs {
		if in.numeric {
			m.setConstant(m.constant + in.offset)
			continue
		}
		if in.src == nil {
			return nil, fmt.Errorf("%w: input %d", ErrNilSummand, i)
		}
		if _, ok := m.index[in.src]; ok {
			return nil, fmt.Errorf("%w: input %d (%v)", ErrDuplicateSummand, i, in.src)
		}
		m.add(in.src, in.gain)
	}
	return m, nil
}

// String returns the mixer id.
func (m *Mixer) String() string {
	return fmt.Sprintf("mixer %v (%d summands)", m.ID(), len(m.summands))
}

// Sample pulls n samples from every summand and returns
// constant + sum of gain-scaled blocks. The returned block is freshly
// allocated and never aliases the mixer's scratch state. If any summand is
// exhausted, the mixer is exhausted. If any summand produces a shorter
// final block, the result is truncated to the shortest length.
//
// With no summands the mixer produces an unbounded constant signal.
func (m *Mixer) Sample(n int) (sound.Block, error) {
	if n <= 0 {
		return sound.Block{}, nil
	}
	if len(m.summands) == 0 {
		return m.constantBlock(n), nil
	}

	blocks := make([]sound.Block, len(m.summands))
	out := n
	for i, s := range m.summands {
		b, err := s.src.Sample(n)
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
		m.growComplex(out)
		for i := range m.accC {
			m.accC[i] = m.constant
		}
		for i, s := range m.summands {
			b := blocks[i]
			for j := 0; j < out; j++ {
				m.accC[j] += s.gain * b.At(j)
			}
		}
		fresh := make([]complex128, out)
		copy(fresh, m.accC)
		return sound.Complex(fresh), nil
	}

	m.growReal(out)
	c := real(m.constant)
	for i := range m.accF {
		m.accF[i] = c
	}
	for i, s := range m.summands {
		b := blocks[i].Floats()
		g := real(s.gain)
		for j := 0; j < out; j++ {
			m.accF[j] += g * b[j]
		}
	}
	fresh := make([]float64, out)
	copy(fresh, m.accF)
	return sound.Real(fresh), nil
}

// Sources returns the current summands. It implements sound.Node.
func (m *Mixer) Sources() []sound.Node {
	return m.Summands()
}

// Summands returns the summand nodes in insertion order. The returned slice
// is a copy.
func (m *Mixer) Summands() []sound.Node {
	nodes := make([]sound.Node, len(m.summands))
	for i, s := range m.summands {
		nodes[i] = s.src
	}
	return nodes
}

// Gains returns the summand gains in insertion order. The returned slice is
// a copy.
func (m *Mixer) Gains() []complex128 {
	gains := make([]complex128, len(m.summands))
	for i, s := range m.summands {
		gains[i] = s.gain
	}
	return gains
}

// Len returns the number of summands.
func (m *Mixer) Len() int {
	return len(m.summands)
}

// Constant returns the scalar constant.
func (m *Mixer) Constant() complex128 {
	return m.constant
}

// SetConstant replaces the scalar constant.
func (m *Mixer) SetConstant(v complex128) {
	m.setConstant(v)
}

// Gain returns the gain of the given summand.
func (m *Mixer) Gain(src sound.Node) (complex128, error) {
	i, ok := m.index[src]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrSummandMissing, src)
	}
	return m.summands[i].gain, nil
}

// GainAt returns the gain of the summand at the given insertion index.
func (m *Mixer) GainAt(i int) (complex128, error) {
	if i < 0 || i >= len(m.summands) {
		return 0, fmt.Errorf("%w: index %d of %d", ErrSummandMissing, i, len(m.summands))
	}
	return m.summands[i].gain, nil
}

// SetGain sets the gain of the given summand, adding the summand if it is
// not yet present.
func (m *Mixer) SetGain(src sound.Node, gain complex128) error {
	if src == nil {
		return ErrNilSummand
	}
	if i, ok := m.index[src]; ok {
		m.summands[i].gain = gain
		m.observeGain(gain)
		return nil
	}
	m.add(src, gain)
	return nil
}

// SetGainAt sets the gain of the summand at the given insertion index.
func (m *Mixer) SetGainAt(i int, gain complex128) error {
	if i < 0 || i >= len(m.summands) {
		return fmt.Errorf("%w: index %d of %d", ErrSummandMissing, i, len(m.summands))
	}
	m.summands[i].gain = gain
	m.observeGain(gain)
	return nil
}

// Delete removes the given summand. The constant is left untouched.
func (m *Mixer) Delete(src sound.Node) error {
	i, ok := m.index[src]
	if !ok {
		return fmt.Errorf("%w: %v", ErrSummandMissing, src)
	}
	return m.DeleteAt(i)
}

// DeleteAt removes the summand at the given insertion index. Later summands
// shift down by one.
func (m *Mixer) DeleteAt(i int) error {
	if i < 0 || i >= len(m.summands) {
		return fmt.Errorf("%w: index %d of %d", ErrSummandMissing, i, len(m.summands))
	}
	delete(m.index, m.summands[i].src)
	m.summands = append(m.summands[:i], m.summands[i+1:]...)
	for j := i; j < len(m.summands); j++ {
		m.index[m.summands[j].src] = j
	}
	return nil
}

// Clear removes all summands. The constant is left untouched.
func (m *Mixer) Clear() {
	m.summands = nil
	m.index = make(map[sound.Node]int)
}

func (m *Mixer) add(src sound.Node, gain complex128) {
	m.index[src] = len(m.summands)
	m.summands = append(m.summands, summand{src: src, gain: gain})
	m.observeGain(gain)
}

func (m *Mixer) setConstant(v complex128) {
	m.constant = v
	if imag(v) != 0 {
		m.cplx = true
	}
}

func (m *Mixer) observeGain(gain complex128) {
	if imag(gain) != 0 {
		m.cplx = true
	}
}

func (m *Mixer) constantBlock(n int) sound.Block {
	if m.cplx {
		s := make([]complex128, n)
		for i := range s {
			s[i] = m.constant
		}
		return sound.Complex(s)
	}
	s := make([]float64, n)
	if c := real(m.constant); c != 0 {
		for i := range s {
			s[i] = c
		}
	}
	return sound.Real(s)
}

func (m *Mixer) growReal(n int) {
	if len(m.accF) != n {
		m.accF = make([]float64, n)
	}
}

func (m *Mixer) growComplex(n int) {
	if len(m.accC) != n {
		m.accC = make([]complex128, n)
	}
}
