package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/sound"
	"github.com/dudk/sound/mixer"
	"github.com/dudk/sound/mock"
	"github.com/dudk/sound/node"
)

func TestGraphLeaf(t *testing.T) {
	leaf := mock.Unbounded(1)
	assert.Equal(t, []sound.Node{leaf}, node.Graph(leaf))
}

func TestGraphDiamond(t *testing.T) {
	shared := mock.Unbounded(1)
	left := node.Log(shared)
	right := node.Proc(shared, func(b sound.Block) sound.Block { return b })
	root, err := mixer.New(mixer.In(left), mixer.In(right))
	require.NoError(t, err)

	graph := node.Graph(root)
	assert.Len(t, graph, 4)
	seen := map[sound.Node]int{}
	for _, n := range graph {
		seen[n]++
	}
	// each distinct reachable node exactly once
	assert.Equal(t, 1, seen[root])
	assert.Equal(t, 1, seen[left])
	assert.Equal(t, 1, seen[right])
	assert.Equal(t, 1, seen[shared])
}

func TestGraphCycle(t *testing.T) {
	m, err := mixer.New(mixer.In(mock.Unbounded(1)))
	require.NoError(t, err)
	// the mixer feeds itself
	require.NoError(t, m.SetGain(m, 1))

	graph := node.Graph(m)
	assert.Len(t, graph, 2)
}
