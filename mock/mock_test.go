package mock_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/sound"
	"github.com/dudk/sound/mock"
)

func TestSourceLimit(t *testing.T) {
	src := &mock.Source{Value: 2, Limit: 10}

	b, err := src.Sample(8)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2, 2, 2, 2, 2, 2}, b.Floats())

	// the final block is shortened to the remaining samples
	b, err = src.Sample(8)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	_, err = src.Sample(8)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 10, src.Sampled)
	assert.Equal(t, 3, src.Calls)
}

func TestSourceComplex(t *testing.T) {
	src := &mock.Source{Value: 1i, Cplx: true, Limit: 4}

	b, err := src.Sample(4)
	require.NoError(t, err)
	assert.True(t, b.IsComplex())
	assert.Equal(t, []complex128{1i, 1i, 1i, 1i}, b.Complexes())
}

func TestUnbounded(t *testing.T) {
	src := mock.Unbounded(3)
	for i := 0; i < 5; i++ {
		b, err := src.Sample(100)
		require.NoError(t, err)
		assert.Equal(t, 100, b.Len())
	}
	assert.Nil(t, src.Sources())
}

func TestBlocks(t *testing.T) {
	src := &mock.Blocks{Script: []sound.Block{
		sound.Real([]float64{1, 2}),
		sound.Real([]float64{3}),
	}}

	b, err := src.Sample(100)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, b.Floats())

	b, err = src.Sample(100)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, b.Floats())

	_, err = src.Sample(100)
	assert.Equal(t, io.EOF, err)
}

func TestSink(t *testing.T) {
	sink := &mock.Sink{Rate: 44100, Channels: 1, Block: 4}

	require.NoError(t, sink.Write([]sound.Block{sound.Real([]float64{1, 2, 3, 4})}))
	assert.Error(t, sink.Write([]sound.Block{sound.Real([]float64{1, 2})}))
	assert.Error(t, sink.Write([]sound.Block{
		sound.Real(make([]float64, 4)),
		sound.Real(make([]float64, 4)),
	}))

	require.NoError(t, sink.Close())
	assert.True(t, sink.Closed())
	assert.Equal(t, mock.ErrSinkClosed, sink.Write([]sound.Block{sound.Real(make([]float64, 4))}))
	assert.Len(t, sink.Received, 1)
}

func TestSinkReceivedIsCopy(t *testing.T) {
	sink := &mock.Sink{Channels: 1, Block: 2}
	samples := []float64{1, 2}
	require.NoError(t, sink.Write([]sound.Block{sound.Real(samples)}))

	samples[0] = 9
	assert.Equal(t, []float64{1, 2}, sink.Received[0][0].Floats())
}
