package mixer_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/sound"
	"github.com/dudk/sound/mixer"
	"github.com/dudk/sound/mock"
)

func TestSample(t *testing.T) {
	tests := []struct {
		description string
		inputs      func() []mixer.Input
		n           int
		expected    []float64
	}{
		{
			description: "gains and constant",
			inputs: func() []mixer.Input {
				return []mixer.Input{
					mixer.Scaled(mock.Unbounded(1), 2),
					mixer.Scaled(mock.Unbounded(4), -1),
					mixer.Offset(3),
				}
			},
			n:        4,
			expected: []float64{1, 1, 1, 1}, // 3 + 2*1 - 4
		},
		{
			description: "default gain",
			inputs: func() []mixer.Input {
				return []mixer.Input{
					mixer.In(mock.Unbounded(1)),
					mixer.Scaled(mock.Unbounded(2), 0.5),
				}
			},
			n:        4,
			expected: []float64{2, 2, 2, 2},
		},
		{
			description: "no summands, zero constant",
			inputs:      func() []mixer.Input { return nil },
			n:           3,
			expected:    []float64{0, 0, 0},
		},
		{
			description: "no summands, constant only",
			inputs: func() []mixer.Input {
				return []mixer.Input{mixer.Offset(0.5)}
			},
			n:        2,
			expected: []float64{0.5, 0.5},
		},
	}

	for _, test := range tests {
		m, err := mixer.New(test.inputs()...)
		require.NoError(t, err, test.description)

		b, sampleErr := m.Sample(test.n)
		require.NoError(t, sampleErr, test.description)
		assert.False(t, b.IsComplex(), test.description)
		assert.Equal(t, test.expected, b.Floats(), test.description)
	}
}

func TestConstructionErrors(t *testing.T) {
	src := mock.Unbounded(1)

	_, err := mixer.New(mixer.In(src), mixer.Scaled(src, 2))
	assert.ErrorIs(t, err, mixer.ErrDuplicateSummand)

	_, err = mixer.New(mixer.In(nil))
	assert.ErrorIs(t, err, mixer.ErrNilSummand)
}

func TestPromotion(t *testing.T) {
	real1 := mock.Unbounded(1)
	finite := &mock.Source{Value: 1i, Cplx: true, Limit: 4}

	m, err := mixer.New(mixer.In(real1), mixer.In(finite))
	require.NoError(t, err)

	b, err := m.Sample(4)
	require.NoError(t, err)
	assert.True(t, b.IsComplex())
	assert.Equal(t, []complex128{1 + 1i, 1 + 1i, 1 + 1i, 1 + 1i}, b.Complexes())

	// complex summand is gone, output dtype must not revert
	require.NoError(t, m.Delete(finite))
	b, err = m.Sample(2)
	require.NoError(t, err)
	assert.True(t, b.IsComplex())
	assert.Equal(t, []complex128{1, 1}, b.Complexes())
}

func TestComplexGainPromotes(t *testing.T) {
	m, err := mixer.New(mixer.Scaled(mock.Unbounded(1), 1i))
	require.NoError(t, err)

	b, err := m.Sample(2)
	require.NoError(t, err)
	assert.True(t, b.IsComplex())
	assert.Equal(t, []complex128{1i, 1i}, b.Complexes())
}

func TestEndOfStream(t *testing.T) {
	m, err := mixer.New(
		mixer.In(mock.Unbounded(1)),
		mixer.In(&mock.Source{Value: 1, Limit: 6}),
	)
	require.NoError(t, err)

	b, err := m.Sample(4)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Len())

	// second summand produces a short final block
	b, err = m.Sample(4)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2}, b.Floats())

	_, err = m.Sample(4)
	assert.Equal(t, io.EOF, err)
}

func TestIndexing(t *testing.T) {
	a, b, c := mock.Unbounded(1), mock.Unbounded(2), mock.Unbounded(3)
	m, err := mixer.New(mixer.In(a), mixer.In(b), mixer.In(c))
	require.NoError(t, err)

	g, err := m.Gain(b)
	require.NoError(t, err)
	assert.Equal(t, complex128(1), g)

	require.NoError(t, m.SetGainAt(1, 0.5))
	g, err = m.Gain(b)
	require.NoError(t, err)
	assert.Equal(t, complex128(0.5), g)

	// setting a gain on an absent node adds it
	d := mock.Unbounded(4)
	require.NoError(t, m.SetGain(d, 2))
	assert.Equal(t, 4, m.Len())
	g, err = m.GainAt(3)
	require.NoError(t, err)
	assert.Equal(t, complex128(2), g)

	_, err = m.GainAt(7)
	assert.ErrorIs(t, err, mixer.ErrSummandMissing)
}

func TestDelete(t *testing.T) {
	a, b, c := mock.Unbounded(1), mock.Unbounded(2), mock.Unbounded(3)
	m, err := mixer.New(mixer.In(a), mixer.In(b), mixer.In(c))
	require.NoError(t, err)

	require.NoError(t, m.DeleteAt(0))
	assert.Equal(t, 2, m.Len())

	// index 0 now refers to the former index-1 summand
	assert.Equal(t, []sound.Node{b, c}, m.Summands())
	require.NoError(t, m.Delete(c))
	assert.Equal(t, []sound.Node{b}, m.Summands())

	assert.ErrorIs(t, m.Delete(a), mixer.ErrSummandMissing)

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestViewsAreCopies(t *testing.T) {
	a, b := mock.Unbounded(1), mock.Unbounded(2)
	m, err := mixer.New(mixer.In(a), mixer.In(b))
	require.NoError(t, err)

	summands := m.Summands()
	summands[0] = nil
	assert.Equal(t, []sound.Node{a, b}, m.Summands())

	gains := m.Gains()
	gains[0] = 42
	g, err := m.GainAt(0)
	require.NoError(t, err)
	assert.Equal(t, complex128(1), g)
}

func TestFreshOutput(t *testing.T) {
	m, err := mixer.New(mixer.In(mock.Unbounded(1)))
	require.NoError(t, err)

	first, err := m.Sample(2)
	require.NoError(t, err)
	second, err := m.Sample(2)
	require.NoError(t, err)

	// mutating an earlier result must not leak into a later one
	first.Floats()[0] = 99
	assert.Equal(t, []float64{1, 1}, second.Floats())
}

func TestNonPositiveCount(t *testing.T) {
	m, err := mixer.New(mixer.In(mock.Unbounded(1)), mixer.Offset(3))
	require.NoError(t, err)

	for _, n := range []int{0, -2} {
		b, sampleErr := m.Sample(n)
		require.NoError(t, sampleErr)
		assert.Equal(t, 0, b.Len())
	}

	empty, err := mixer.New()
	require.NoError(t, err)
	b, err := empty.Sample(-1)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}
