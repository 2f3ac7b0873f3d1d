package sound_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/sound"
)

func TestBlockZeroValue(t *testing.T) {
	var b sound.Block
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.IsComplex())
}

func TestBlockAt(t *testing.T) {
	r := sound.Real([]float64{1, 2})
	assert.Equal(t, complex(2, 0), r.At(1))

	c := sound.Complex([]complex128{1i, 2i})
	assert.True(t, c.IsComplex())
	assert.Equal(t, 2i, c.At(1))
}

func TestBlockClone(t *testing.T) {
	samples := []float64{1, 2, 3}
	b := sound.Real(samples)
	clone := b.Clone()

	samples[0] = 9
	assert.Equal(t, []float64{1, 2, 3}, clone.Floats())
}

func TestBlockAsComplex(t *testing.T) {
	b := sound.Real([]float64{1, 2}).AsComplex()
	assert.True(t, b.IsComplex())
	assert.Equal(t, []complex128{1, 2}, b.Complexes())

	// a complex block is returned as is
	c := sound.Complex([]complex128{1i})
	assert.Equal(t, c.Complexes(), c.AsComplex().Complexes())
}

func TestBlockAppend(t *testing.T) {
	b := sound.Real([]float64{1}).Append(sound.Real([]float64{2, 3}))
	assert.Equal(t, []float64{1, 2, 3}, b.Floats())

	// either complex operand promotes the result
	c := sound.Real([]float64{1}).Append(sound.Complex([]complex128{2i}))
	assert.True(t, c.IsComplex())
	assert.Equal(t, []complex128{1, 2i}, c.Complexes())
}

func TestBlockSlice(t *testing.T) {
	b := sound.Real([]float64{1, 2, 3, 4})
	s := b.Slice(1, 3)
	assert.Equal(t, []float64{2, 3}, s.Floats())

	// slices alias the block storage
	s.Floats()[0] = 9
	assert.Equal(t, 9.0, b.Floats()[1])
}
