package vst2

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/sound"
	"github.com/dudk/sound/mock"
)

// gain doubles every sample into a fresh buffer, the way a loaded plugin
// returns its own output buffers.
type gain struct{}

func (gain) Process(samples [][]float64) [][]float64 {
	out := make([][]float64, len(samples))
	for i, c := range samples {
		out[i] = make([]float64, len(c))
		for j, v := range c {
			out[i][j] = 2 * v
		}
	}
	return out
}

func TestProcess(t *testing.T) {
	f := &Filter{plugin: gain{}}

	b := f.Process(sound.Real([]float64{1, 2, 3}))
	assert.Equal(t, []float64{2, 4, 6}, b.Floats())

	// a complex block is narrowed to its real part
	b = f.Process(sound.Complex([]complex128{1 + 1i, 2 - 1i}))
	assert.False(t, b.IsComplex())
	assert.Equal(t, []float64{2, 4}, b.Floats())
}

func TestImpulseResponse(t *testing.T) {
	f := &Filter{plugin: gain{}}

	ir := f.ImpulseResponse().Floats()
	require.Len(t, ir, impulseLength)
	assert.Equal(t, 2.0, ir[0])
	for _, v := range ir[1:] {
		assert.Zero(t, v)
	}
}

func TestFrequencyResponse(t *testing.T) {
	f := &Filter{plugin: gain{}}

	fr := f.FrequencyResponse(64).Complexes()
	require.Len(t, fr, 64)
	for k, v := range fr {
		assert.InDelta(t, 2, real(v), 1e-9, "bin %d", k)
		assert.InDelta(t, 0, imag(v), 1e-9, "bin %d", k)
	}
}

func TestWrap(t *testing.T) {
	f := &Filter{plugin: gain{}}
	src := &mock.Blocks{Script: []sound.Block{sound.Real([]float64{1, 2})}}

	n := f.Wrap(src, false)
	assert.Equal(t, []sound.Node{src}, n.Sources())

	b, err := n.Sample(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, b.Floats())

	_, err = n.Sample(2)
	assert.Equal(t, io.EOF, err)
}
